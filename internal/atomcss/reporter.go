package atomcss

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"

	core "github.com/yacobolo/atomcss"
)

// Reporter handles formatting and outputting results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config CheckConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config.UseColors),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// CI environments that render ANSI colors
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	// Sort issues by file, then line, then column
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// countSeverities returns the number of error and warning issues
func countSeverities(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result CheckResult) {
	totalIssues := len(result.Issues)
	errors, warnings := countSeverities(result.Issues)

	fmt.Fprintln(r.w, "")

	if errors > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s)\n",
			pluralizeCount(totalIssues, "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s\n", pluralizeCount(totalIssues, "issue", "issues"))
	}

	if totalIssues > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run `atomcss resolve CLASS` to see how a class is matched", r.useColors))
	}
}

// PrintStatistics outputs scan statistics without individual issues
func (r *Reporter) PrintStatistics(result CheckResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class usage", r.useColors))
	fmt.Fprintf(r.w, "  Files scanned:   %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "  Class tokens:    %d\n", result.ClassesFound)
	fmt.Fprintf(r.w, "  Utility classes: %d\n", result.Resolved)

	errors, warnings := countSeverities(result.Issues)
	fmt.Fprintf(r.w, "  Errors:          %s\n", RenderStyle(StyleRed, fmt.Sprint(errors), r.useColors && errors > 0))
	fmt.Fprintf(r.w, "  Warnings:        %s\n", RenderStyle(StyleYellow, fmt.Sprint(warnings), r.useColors && warnings > 0))

	if len(result.Issues) > 0 {
		byText := lo.CountValuesBy(result.Issues, func(i Issue) string { return i.Text })
		top := lo.Keys(byText)
		sort.Slice(top, func(i, j int) bool {
			if byText[top[i]] != byText[top[j]] {
				return byText[top[i]] > byText[top[j]]
			}
			return top[i] < top[j]
		})
		if len(top) > 5 {
			top = top[:5]
		}
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Most frequent", r.useColors))
		for _, text := range top {
			fmt.Fprintf(r.w, "  %dx %s\n", byText[text], text)
		}
	}

	r.PrintWarnings(result.Warnings)
}

// PrintWarnings outputs non-fatal scan warnings
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	for _, w := range warnings {
		fmt.Fprintf(r.w, "  - %s\n", w)
	}
}

// PrintBuild outputs a one-line build summary
func (r *Reporter) PrintBuild(result BuildResult, output string) {
	status := "up to date"
	if result.Written {
		status = "written"
	}
	fmt.Fprintf(r.w, "%s %s: %s from %s in %s (%s)\n",
		RenderStyle(StyleGreen, "✓", r.useColors),
		outputName(output),
		pluralizeCount(result.RulesGenerated, "rule", "rules"),
		pluralizeCount(result.ClassesFound, "class", "classes"),
		pluralizeCount(result.FilesScanned, "file", "files"),
		status)
	r.PrintWarnings(result.Warnings)
}

// PrintExplanation outputs how one class name resolves
func (r *Reporter) PrintExplanation(className string, ex core.Explanation, ok bool) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, className, r.useColors))
	if !ok {
		fmt.Fprintln(r.w, "  "+RenderStyle(StyleRed, "no match", r.useColors))
		return
	}

	if ex.Composite {
		fmt.Fprintf(r.w, "  composite: %s\n", pluralizeCount(len(ex.Rules), "rule", "rules"))
	} else {
		m := ex.Match
		fmt.Fprintf(r.w, "  utility:   %s\n", m.Utility)
		if m.Variant != "" {
			fmt.Fprintf(r.w, "  variant:   %s\n", m.Variant)
		}
		if m.HasValue() {
			fmt.Fprintf(r.w, "  value:     %s (%s)\n", m.Token(), ex.Kind)
		}
		if m.HasSecond() {
			fmt.Fprintf(r.w, "  second:    %s\n", m.SecondToken())
		}
		if m.Important {
			fmt.Fprintln(r.w, "  important: true")
		}
	}

	for _, rule := range ex.Rules {
		header := rule.Selector()
		if rule.Context.Media != "" {
			header = "@media " + rule.Context.Media + " " + header
		}
		fmt.Fprintf(r.w, "  %s\n", header)
		for _, p := range categorizeDeclarations(rule.Declarations) {
			value := p.Value
			if p.Important {
				value += " !important"
			}
			fmt.Fprintf(r.w, "    %s: %s; %s\n", p.Name, value,
				RenderStyle(StyleGray, "/* "+string(p.Category)+" */", r.useColors))
		}
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
