package atomcss

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	core "github.com/yacobolo/atomcss"
)

const linterName = "atomcss"

// Check scans content files for class tokens that look like utility classes
// but produce no CSS
func Check(ctx context.Context, config CheckConfig) (*CheckResult, error) {
	log := loggerOrNop(config.Logger).Named("check")

	engine, err := core.New(config.Config, core.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	s := newScanner(config.IgnoreFile)
	files, stats, err := s.expand(config.Content)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	result := &CheckResult{FilesScanned: stats.FilesScanned}
	l := &classLinter{engine: engine, utilities: engine.Utilities()}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		refs, err := scanFile(file)
		if err != nil {
			log.Warn("failed to scan file", zap.String("file", file), zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to scan %s: %v", file, err))
			continue
		}
		for _, ref := range refs {
			for _, tok := range ref.Tokens() {
				result.ClassesFound++
				issue, resolved := l.lint(tok)
				if resolved {
					result.Resolved++
				}
				if issue != nil {
					result.Issues = append(result.Issues, *issue)
				}
			}
		}
	}

	log.Debug("check complete",
		zap.Int("files", result.FilesScanned),
		zap.Int("classes", result.ClassesFound),
		zap.Int("issues", len(result.Issues)))

	return result, nil
}

// classLinter classifies single class tokens
type classLinter struct {
	engine    *core.Engine
	utilities []string
}

// lint reports whether tok resolves, and an issue when it does not but
// carries utility intent: a variant prefix, a bracketed value or a
// registered utility prefix. Plain classes ("container") are left alone.
func (l *classLinter) lint(tok ClassToken) (*Issue, bool) {
	if _, ok := l.engine.Explain(tok.Name); ok {
		return nil, true
	}
	if l.engine.IsComposite(tok.Name) {
		return newIssue(tok, SeverityWarning, fmt.Sprintf(IssueEmptyComposite, tok.Name)), false
	}

	variant, rest := splitVariant(tok.Name)
	if variant != "" && l.engine.ResolveVariant(variant).Kind == core.ContextNone {
		return newIssue(tok, SeverityError, fmt.Sprintf(IssueUnknownVariant, variant, tok.Name)), false
	}

	rest = strings.TrimPrefix(rest, "!")
	if l.hasUtilityPrefix(rest) {
		return newIssue(tok, SeverityError, fmt.Sprintf(IssueInvalidValue, tok.Name)), false
	}
	if variant != "" || strings.ContainsAny(rest, "[{") {
		return newIssue(tok, SeverityError, fmt.Sprintf(IssueUnknownUtility, tok.Name)), false
	}
	return nil, false
}

func (l *classLinter) hasUtilityPrefix(s string) bool {
	for _, u := range l.utilities {
		if s == u || strings.HasPrefix(s, u+"-") {
			return true
		}
	}
	return false
}

// splitVariant splits at the last colon outside brackets and braces
func splitVariant(name string) (variant, rest string) {
	depth := 0
	split := -1
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case ':':
			if depth == 0 {
				split = i
			}
		}
	}
	if split < 0 {
		return "", name
	}
	return name[:split], name[split+1:]
}

func newIssue(tok ClassToken, severity, text string) *Issue {
	return &Issue{
		FromLinter:  linterName,
		Text:        text,
		Severity:    severity,
		SourceLines: []string{tok.Location.Text},
		Pos: IssuePos{
			Filename: tok.Location.File,
			Line:     tok.Location.Line,
			Column:   tok.Location.Column,
		},
	}
}
