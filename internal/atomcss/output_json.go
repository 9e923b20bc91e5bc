package atomcss

import (
	"encoding/json"
	"io"
	"time"

	"github.com/samber/lo"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	ClassesFound int `json:"classes_found"`
	Resolved     int `json:"resolved"`
}

// JSONIssue represents a single check issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result, time.Now()))
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *CheckResult, now time.Time) JSONOutput {
	errors, warnings := countSeverities(result.Issues)

	issues := lo.Map(result.Issues, func(issue Issue, _ int) JSONIssue {
		return JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   lo.FirstOrEmpty(issue.SourceLines),
		}
	})

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			FilesScanned: result.FilesScanned,
			ClassesFound: result.ClassesFound,
			Resolved:     result.Resolved,
		},
		Issues:   issues,
		Warnings: result.Warnings,
	}
}
