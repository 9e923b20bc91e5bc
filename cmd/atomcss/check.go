package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	build "github.com/yacobolo/atomcss/internal/atomcss"
)

// errIssuesFound makes the process exit non-zero without extra output
var errIssuesFound = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report utility classes that produce no CSS",
	Long: `Scan content files for class names that look like utilities (a variant prefix,
a bracketed value or a known utility name) but do not resolve.
Plain classes such as "container" are ignored.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringSlice("content", nil, "Glob patterns for files to scan")
	f.String("ignore-file", "", "Ignore file for content paths (default: .gitignore)")
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|json")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (atomcss) suffix on issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	config, err := buildCheckConfig(log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := build.Check(ctx, config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := build.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := build.WriteOutput(cmd.OutOrStdout(), result, format, config); err != nil {
			return err
		}
	}

	// Soft gate: only errors fail unless --strict
	errorCount := 0
	for _, issue := range result.Issues {
		if issue.Severity == build.SeverityError {
			errorCount++
		}
	}
	if errorCount > 0 || (config.Strict && len(result.Issues) > 0) {
		return fmt.Errorf("%w: %d issues", errIssuesFound, len(result.Issues))
	}

	return nil
}
