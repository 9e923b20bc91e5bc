package atomcss

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	core "github.com/yacobolo/atomcss"
)

func newBuildFixture(t *testing.T) (string, BuildConfig) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<div class=\"p-4 hover:bg-red container\">\n  <span class='md:w-1/2 p-4'>x</span>\n</div>\n")
	writeFile(t, dir, "app.tsx", `export const App = () => <div className={"blur unknown:p-1"} />`+"\n")
	writeFile(t, dir, "views/page_templ.go", `templ_7745c5c3_Var := "class=\"m-2\""`+"\n")

	return dir, BuildConfig{
		Content: []string{filepath.Join(dir, "**/*.{html,tsx,go}")},
		Output:  filepath.Join(dir, "out", "atoms.css"),
		Config:  core.DefaultConfig(),
		Logger:  zaptest.NewLogger(t),
	}
}

func TestBuild(t *testing.T) {
	_, cfg := newBuildFixture(t)

	result, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.FilesSkipped)
	assert.Equal(t, 6, result.ClassesFound)
	assert.Equal(t, 4, result.RulesGenerated)
	assert.Equal(t, 2, result.Unresolved)
	assert.True(t, result.Written)
	assert.Empty(t, result.Warnings)

	css, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(css), ".p-4 { padding: 4px; }\n")
	assert.Contains(t, string(css), ".hover\\:bg-red:hover { background: red; }\n")
	assert.Contains(t, string(css), "@media (min-width: 768px) { .md\\:w-1\\/2 { width: 50%; } }\n")
	assert.Contains(t, string(css), ".blur { filter: blur(8px); }\n")
	assert.NotContains(t, string(css), "margin", "generated files are not scanned")

	t.Run("unchanged output is not rewritten", func(t *testing.T) {
		again, err := Build(context.Background(), cfg)
		require.NoError(t, err)
		assert.False(t, again.Written)
	})
}

func TestBuildStdout(t *testing.T) {
	dir, cfg := newBuildFixture(t)
	var out bytes.Buffer
	cfg.Output = StdoutOutput
	cfg.Stdout = &out
	cfg.Pretty = true

	result, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Contains(t, out.String(), ".p-4 {\n  padding: 4px;\n}\n")

	_, err = os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildConfigurationError(t *testing.T) {
	_, cfg := newBuildFixture(t)
	cfg.Config = cfg.Config.WithClass("p", "m-1")

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
	var ambiguous *core.AmbiguousMatchError
	assert.ErrorAs(t, err, &ambiguous)
}

func TestBuildCancelled(t *testing.T) {
	_, cfg := newBuildFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildBadPattern(t *testing.T) {
	_, cfg := newBuildFixture(t)
	cfg.Content = []string{"[unclosed"}

	_, err := Build(context.Background(), cfg)
	assert.Error(t, err)
}
