package atomcss

import (
	"fmt"
	"io"
)

// DetermineOutputFormat selects the output format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet flag wins (exit code only)
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "json":
		return OutputJSON
	default:
		// Issues only by default, matching golangci-lint
		return OutputIssues
	}
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config CheckConfig) error {
	switch format {
	case OutputSummary:
		NewReporter(w, config).PrintStatistics(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
	}
	return nil
}
