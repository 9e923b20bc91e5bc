package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss"
	build "github.com/yacobolo/atomcss/internal/atomcss"
)

var k = koanf.New(".")

// defaultContent is scanned when neither flags nor config name content globs
var defaultContent = []string{
	"**/*.html",
	"**/*.templ",
	"**/*.{jsx,tsx}",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	if err := loadConfigFromPath(configPath(cmd)); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = ".atomcss.yaml"
	}
	return path
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(path string) error {
	return loadInto(k, path)
}

func loadInto(ko *koanf.Koanf, path string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(path); err == nil {
		if err := ko.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 2. Environment variables (ATOMCSS_* prefix)
	if err := ko.Load(env.Provider("ATOMCSS_", ".", func(s string) string {
		// ATOMCSS_BUILD_OUTPUT -> build.output
		// ATOMCSS_CHECK_STRICT -> check.strict
		// ATOMCSS_PRESET -> preset
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "ATOMCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// engineConfig decodes the utility sections of ko into an engine Config.
// With preset "default" (the default) the sections are layered over the
// built-in utilities; with "none" they are used as-is.
func engineConfig(ko *koanf.Koanf) (atomcss.Config, error) {
	var raw atomcss.RawConfig
	if err := ko.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return atomcss.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg, err := raw.Build()
	if err != nil {
		return atomcss.Config{}, err
	}

	switch preset := ko.String("preset"); preset {
	case "", "default":
		return atomcss.DefaultConfig().Merge(cfg), nil
	case "none":
		return cfg, nil
	default:
		return atomcss.Config{}, fmt.Errorf("unknown preset %q (want default or none)", preset)
	}
}

// reloadEngineConfig re-reads the config file and environment into a fresh
// koanf instance; used by watch mode.
func reloadEngineConfig(path string) func() (atomcss.Config, error) {
	return func() (atomcss.Config, error) {
		fresh := koanf.New(".")
		if err := loadInto(fresh, path); err != nil {
			return atomcss.Config{}, err
		}
		return engineConfig(fresh)
	}
}

// loggerFromConfig builds the console logger from the global flags
func loggerFromConfig() *zap.Logger {
	return newLogger(
		getBoolWithFallback("verbose", "verbose", false),
		getBoolWithFallback("quiet", "quiet", false),
	)
}

// buildBuildConfig constructs the pipeline's BuildConfig from koanf state.
func buildBuildConfig(log *zap.Logger) (build.BuildConfig, error) {
	cfg, err := engineConfig(k)
	if err != nil {
		return build.BuildConfig{}, err
	}

	return build.BuildConfig{
		Content:    getStringsWithFallback("content", "build.content", defaultContent),
		Output:     getStringWithFallback("output", "build.output", "atoms.css"),
		Pretty:     getBoolWithFallback("pretty", "build.pretty", false),
		IgnoreFile: getStringWithFallback("ignore-file", "ignore-file", ".gitignore"),
		Config:     cfg,
		Logger:     log,
	}, nil
}

// buildCheckConfig constructs the pipeline's CheckConfig from koanf state.
func buildCheckConfig(log *zap.Logger) (build.CheckConfig, error) {
	cfg, err := engineConfig(k)
	if err != nil {
		return build.CheckConfig{}, err
	}

	return build.CheckConfig{
		Content:          getStringsWithFallback("content", "build.content", defaultContent),
		IgnoreFile:       getStringWithFallback("ignore-file", "ignore-file", ".gitignore"),
		Config:           cfg,
		Logger:           log,
		Strict:           getBoolWithFallback("strict", "check.strict", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
