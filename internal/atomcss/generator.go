package atomcss

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"go.uber.org/zap"

	core "github.com/yacobolo/atomcss"
)

// StdoutOutput is the Output value that writes the stylesheet to stdout
const StdoutOutput = "-"

// Build is the main entry point: scan content, generate rules, write CSS
func Build(ctx context.Context, config BuildConfig) (*BuildResult, error) {
	log := loggerOrNop(config.Logger).Named("build")
	result := &BuildResult{}

	engine, err := core.New(config.Config, core.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	// 1. Scan content files
	var extra []string
	if config.Output != "" && config.Output != StdoutOutput {
		extra = append(extra, config.Output)
	}
	classes, stats, warnings, err := collectClasses(ctx, config.Content, newScanner(config.IgnoreFile, extra...), log)
	if err != nil {
		return nil, err
	}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped
	result.Warnings = warnings
	result.ClassesFound = len(classes)

	log.Debug("scanned content",
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("classes", len(classes)))

	// 2. Generate rules
	rules := engine.Process(classes)
	resolved := lo.Uniq(lo.Map(rules, func(r core.GeneratedRule, _ int) string { return r.ClassName }))
	result.Unresolved = len(classes) - len(resolved)

	aggregated := core.Aggregate(rules)
	result.RulesGenerated = len(aggregated)
	css := core.Render(aggregated, core.RenderOptions{Pretty: config.Pretty})

	// 3. Write stylesheet
	written, err := writeStylesheet(config, css)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	result.Written = written

	log.Info("stylesheet built",
		zap.String("output", outputName(config.Output)),
		zap.Int("rules", result.RulesGenerated),
		zap.Bool("written", written))

	return result, nil
}

// collectClasses scans files and returns distinct class tokens in
// first-appearance order
func collectClasses(ctx context.Context, content []string, s *scanner, log *zap.Logger) ([]string, ScanStats, []string, error) {
	files, stats, err := s.expand(content)
	if err != nil {
		return nil, stats, nil, fmt.Errorf("scan failed: %w", err)
	}

	var tokens []string
	var warnings []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, stats, nil, err
		}
		refs, err := scanFile(file)
		if err != nil {
			log.Warn("failed to scan file", zap.String("file", file), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("Failed to scan %s: %v", file, err))
			continue
		}
		for _, ref := range refs {
			for _, tok := range ref.Tokens() {
				tokens = append(tokens, tok.Name)
			}
		}
	}

	return lo.Uniq(tokens), stats, warnings, nil
}

// writeStylesheet writes css to the configured output. Files are only
// rewritten when their content changes; it reports whether a write happened.
func writeStylesheet(config BuildConfig, css string) (bool, error) {
	if config.Output == "" || config.Output == StdoutOutput {
		var w io.Writer = os.Stdout
		if config.Stdout != nil {
			w = config.Stdout
		}
		_, err := io.WriteString(w, css)
		return err == nil, err
	}

	if existing, err := os.ReadFile(config.Output); err == nil && bytes.Equal(existing, []byte(css)) {
		return false, nil
	}

	if dir := filepath.Dir(config.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(config.Output, []byte(css), 0644); err != nil {
		return false, err
	}
	return true, nil
}

func outputName(output string) string {
	if output == "" || output == StdoutOutput {
		return "stdout"
	}
	return output
}

func loggerOrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
