package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	build "github.com/yacobolo/atomcss/internal/atomcss"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Generate the stylesheet from class names used in content files",
	Long: `Scan content files for class attributes and write one CSS rule per utility class.
Use --watch to rebuild whenever a content file or the config file changes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringSlice("content", nil, "Glob patterns for files to scan (default: **/*.html, **/*.templ, **/*.{jsx,tsx})")
	f.StringP("output", "o", "", `Stylesheet path, "-" for stdout (default: atoms.css)`)
	f.Bool("pretty", false, "Write multi-line rule blocks")
	f.BoolP("watch", "w", false, "Rebuild on changes")
	f.String("ignore-file", "", "Ignore file for content paths (default: .gitignore)")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	config, err := buildBuildConfig(log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	reporter := build.NewReporter(os.Stderr, build.CheckConfig{UseColors: getBoolWithFallback("color", "color", false)})
	report := func(result *build.BuildResult) {
		if !quiet {
			reporter.PrintBuild(*result, config.Output)
		}
	}

	if getBoolWithFallback("watch", "build.watch", false) {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		path := configPath(cmd)
		log.Info("watching for changes", zap.Strings("content", config.Content), zap.String("config", path))
		return build.Watch(ctx, config, build.WatchOptions{
			ConfigFile: path,
			Reload:     reloadEngineConfig(path),
			OnBuild: func(result *build.BuildResult, err error) {
				if err != nil {
					log.Error("build failed", zap.Error(err))
					return
				}
				report(result)
			},
		})
	}

	result, err := build.Build(ctx, config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	report(result)
	return nil
}
