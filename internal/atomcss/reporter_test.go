package atomcss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/yacobolo/atomcss"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <div class=\"p-4\">",
			column:     15,
			want:       "              ^", // 14 spaces + caret
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<button class=\"p-4\">",
			column:     17,
			want:       "\t\t              ^", // 2 tabs + 14 spaces + caret
		},
		{
			name:       "start of line",
			sourceLine: "class=\"p-4\"",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^", // Pads to line length only
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func testIssues() []Issue {
	line := `<div class="p-4 hovr:p-4 ghost">`
	return []Issue{
		{FromLinter: "atomcss", Text: `class "ghost" expands to no rules`, Severity: SeverityWarning,
			SourceLines: []string{line}, Pos: IssuePos{Filename: "b.html", Line: 1, Column: 26}},
		{FromLinter: "atomcss", Text: `unknown variant "hovr" in class "hovr:p-4"`, Severity: SeverityError,
			SourceLines: []string{line}, Pos: IssuePos{Filename: "a.html", Line: 1, Column: 17}},
	}
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf, printLines: true, printLinterName: true}

	r.PrintIssues(testIssues())

	want := "a.html:1:17: unknown variant \"hovr\" in class \"hovr:p-4\" (atomcss)\n" +
		"\t<div class=\"p-4 hovr:p-4 ghost\">\n" +
		"\t                ^\n" +
		"b.html:1:26: class \"ghost\" expands to no rules (atomcss)\n" +
		"\t<div class=\"p-4 hovr:p-4 ghost\">\n" +
		"\t                         ^\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintSummary(CheckResult{Issues: testIssues()})
	assert.Contains(t, buf.String(), "2 issues (1 error, 1 warning)\n")
	assert.Contains(t, buf.String(), "Hint:")

	buf.Reset()
	r.PrintSummary(CheckResult{})
	assert.Equal(t, "\n0 issues\n", buf.String())
}

func TestPrintStatistics(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	issues := append(testIssues(), testIssues()[1])
	r.PrintStatistics(CheckResult{Issues: issues, FilesScanned: 3, ClassesFound: 12, Resolved: 9, Warnings: []string{"Failed to scan x.html"}})

	out := buf.String()
	assert.Contains(t, out, "Files scanned:   3\n")
	assert.Contains(t, out, "Utility classes: 9\n")
	assert.Contains(t, out, "Errors:          2\n")
	assert.Contains(t, out, "  2x unknown variant \"hovr\" in class \"hovr:p-4\"\n")
	assert.Contains(t, out, "  - Failed to scan x.html\n")
}

func TestPrintBuild(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{w: &buf}

	r.PrintBuild(BuildResult{FilesScanned: 1, ClassesFound: 4, RulesGenerated: 3, Written: true}, "atoms.css")
	assert.Equal(t, "✓ atoms.css: 3 rules from 4 classes in 1 file (written)\n", buf.String())
}

func TestPrintExplanation(t *testing.T) {
	engine, err := core.New(core.DefaultConfig().WithClass("btn", "px-4 hover:blur"))
	require.NoError(t, err)

	tests := []struct {
		class string
		want  []string
	}{
		{
			class: "md:!p-4",
			want: []string{
				"  utility:   p\n",
				"  variant:   md\n",
				"  value:     4 (number)\n",
				"  important: true\n",
				"  @media (min-width: 768px) .md\\:\\!p-4\n",
				"    padding: 4px !important; /* Layout */\n",
			},
		},
		{
			class: "btn",
			want: []string{
				"  composite: 2 rules\n",
				"  .btn\n",
				"    padding-left: 4px; /* Layout */\n",
				"  .btn:hover\n",
				"    filter: blur(8px); /* Effects */\n",
			},
		},
		{
			class: "nope",
			want:  []string{"nope\n  no match\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			var buf bytes.Buffer
			r := &Reporter{w: &buf}
			ex, ok := engine.Explain(tt.class)
			r.PrintExplanation(tt.class, ex, ok)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 issue", pluralizeCount(1, "issue", "issues"))
	assert.Equal(t, "0 issues", pluralizeCount(0, "issue", "issues"))
	assert.Equal(t, "3 classes", pluralizeCount(3, "class", "classes"))
}
