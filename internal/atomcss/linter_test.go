package atomcss

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/yacobolo/atomcss"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<div class="p-4 hovr:p-4 w-[10px hover:container ghost container">`+"\n")

	result, err := Check(context.Background(), CheckConfig{
		Content: []string{filepath.Join(dir, "*.html")},
		Config:  core.DefaultConfig().WithClass("ghost", "container"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 6, result.ClassesFound)
	assert.Equal(t, 1, result.Resolved)

	file := filepath.Join(dir, "index.html")
	type found struct {
		text     string
		severity string
		column   int
	}
	var got []found
	for _, issue := range result.Issues {
		assert.Equal(t, file, issue.Pos.Filename)
		assert.Equal(t, 1, issue.Pos.Line)
		assert.Equal(t, "atomcss", issue.FromLinter)
		assert.Equal(t, []string{`<div class="p-4 hovr:p-4 w-[10px hover:container ghost container">`}, issue.SourceLines)
		got = append(got, found{issue.Text, issue.Severity, issue.Pos.Column})
	}

	assert.Equal(t, []found{
		{`unknown variant "hovr" in class "hovr:p-4"`, SeverityError, 17},
		{`invalid value in class "w-[10px"`, SeverityError, 26},
		{`unknown utility class "hover:container"`, SeverityError, 34},
		{`class "ghost" expands to no rules`, SeverityWarning, 50},
	}, got)
}

func TestClassLinter(t *testing.T) {
	engine, err := core.New(core.DefaultConfig())
	require.NoError(t, err)
	l := &classLinter{engine: engine, utilities: engine.Utilities()}

	tests := []struct {
		class    string
		resolved bool
		issue    string
	}{
		{class: "p-4", resolved: true},
		{class: "[&>p]:mt-2", resolved: true},
		{class: "!m-1", resolved: true},
		{class: "container"},
		{class: "pd-4"},
		{class: "btn--primary"},
		{class: "opacity", issue: `invalid value in class "opacity"`},
		{class: "!p-", issue: `invalid value in class "!p-"`},
		{class: "md:hover:p-4", issue: `unknown variant "md:hover" in class "md:hover:p-4"`},
		{class: "foo-[1px]", issue: `unknown utility class "foo-[1px]"`},
		{class: "md:card", issue: `unknown utility class "md:card"`},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			issue, resolved := l.lint(ClassToken{Name: tt.class})
			assert.Equal(t, tt.resolved, resolved)
			if tt.issue == "" {
				assert.Nil(t, issue)
				return
			}
			require.NotNil(t, issue)
			assert.Equal(t, tt.issue, issue.Text)
		})
	}
}

func TestSplitVariant(t *testing.T) {
	tests := []struct {
		in      string
		variant string
		rest    string
	}{
		{"p-4", "", "p-4"},
		{"hover:p-4", "hover", "p-4"},
		{"[&:hover]:p-4", "[&:hover]", "p-4"},
		{"bg-[url(a:b)]", "", "bg-[url(a:b)]"},
		{"md:hover:p-4", "md:hover", "p-4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			variant, rest := splitVariant(tt.in)
			assert.Equal(t, tt.variant, variant)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
