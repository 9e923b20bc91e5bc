package atomcss

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	core "github.com/yacobolo/atomcss"
)

// DefaultDebounce is the quiet period before a rebuild
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch
type WatchOptions struct {
	ConfigFile string                      // Reloaded with Reload when it changes
	Reload     func() (core.Config, error) // nil keeps the initial configuration
	OnBuild    func(*BuildResult, error)   // Called after every build, including the first
	Debounce   time.Duration               // Default: DefaultDebounce
}

// Watch builds once, then rebuilds whenever a content file or the config
// file changes. It returns when ctx is cancelled.
func Watch(ctx context.Context, config BuildConfig, opts WatchOptions) error {
	log := loggerOrNop(config.Logger).Named("watch")
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OnBuild == nil {
		opts.OnBuild = func(*BuildResult, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchRoots(config.Content) {
		if err := addRecursive(watcher, dir); err != nil {
			log.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	configAbs := ""
	if opts.ConfigFile != "" {
		configAbs, _ = filepath.Abs(opts.ConfigFile)
		if err := watcher.Add(filepath.Dir(opts.ConfigFile)); err != nil {
			log.Warn("cannot watch config file", zap.String("file", opts.ConfigFile), zap.Error(err))
		}
	}
	outputAbs := ""
	if config.Output != "" && config.Output != StdoutOutput {
		outputAbs, _ = filepath.Abs(config.Output)
	}

	opts.OnBuild(Build(ctx, config))

	var pending <-chan time.Time
	reload := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			switch {
			case abs == outputAbs:
				continue
			case abs == configAbs:
				reload = true
			case event.Has(fsnotify.Create) && isDir(event.Name):
				if err := addRecursive(watcher, event.Name); err != nil {
					log.Warn("cannot watch directory", zap.String("dir", event.Name), zap.Error(err))
				}
				continue
			case !matchesAny(config.Content, event.Name):
				continue
			}
			log.Debug("change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			pending = time.After(opts.Debounce)

		case <-pending:
			pending = nil
			if reload && opts.Reload != nil {
				cfg, err := opts.Reload()
				if err != nil {
					opts.OnBuild(nil, fmt.Errorf("reloading %s: %w", opts.ConfigFile, err))
					reload = false
					continue
				}
				config.Config = cfg
				log.Info("configuration reloaded", zap.String("file", opts.ConfigFile))
			}
			reload = false
			opts.OnBuild(Build(ctx, config))
		}
	}
}

// watchRoots returns the static directory prefix of every glob
func watchRoots(patterns []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		base = filepath.FromSlash(base)
		if !isDir(base) {
			base = filepath.Dir(base)
		}
		if !seen[base] {
			seen[base] = true
			roots = append(roots, base)
		}
	}
	return roots
}

// addRecursive watches dir and every directory below it, skipping hidden ones
func addRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(p), filepath.Clean(path)); ok {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
