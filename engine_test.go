package atomcss

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return e
}

// parseRulesets re-reads generated CSS and returns the selector of every
// ruleset, failing the test on any parse error.
func parseRulesets(t *testing.T, text string) []string {
	t.Helper()

	p := css.NewParser(parse.NewInputString(text), false)
	var selectors []string
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			require.False(t, p.HasParseError(), "invalid CSS: %v\n%s", p.Err(), text)
			return selectors
		case css.BeginRulesetGrammar:
			var sb strings.Builder
			sb.Write(data)
			for _, v := range p.Values() {
				sb.Write(v.Data)
			}
			selectors = append(selectors, strings.TrimSpace(sb.String()))
		}
	}
}

func TestEngineScenarios(t *testing.T) {
	t.Run("value alias", func(t *testing.T) {
		e := newTestEngine(t, Config{
			Properties: PropertyTable{"bg": Direct("background")},
			Values:     ValueDictionary{Global: map[string]string{"primary": "#ccf654"}},
		})
		decls, ok := e.Resolve("bg-primary")
		require.True(t, ok)
		assert.Equal(t, []Declaration{{Property: "background", Value: "#ccf654"}}, decls)
	})

	t.Run("multi property", func(t *testing.T) {
		e := newTestEngine(t, Config{Properties: PropertyTable{"size": Multi("width", "height")}})
		decls, ok := e.Resolve("size-100px")
		require.True(t, ok)
		assert.Equal(t, []Declaration{
			{Property: "width", Value: "100px"},
			{Property: "height", Value: "100px"},
		}, decls)
	})

	t.Run("hover stylesheet", func(t *testing.T) {
		e := newTestEngine(t, Config{Properties: PropertyTable{"bg": Direct("background")}})
		got := e.Stylesheet([]string{"hover:bg-red"}, RenderOptions{})
		assert.Equal(t, ".hover\\:bg-red:hover { background: red; }\n", got)
	})

	t.Run("arbitrary passthrough", func(t *testing.T) {
		e := newTestEngine(t, Config{Properties: PropertyTable{"bg": Direct("background")}})
		got := e.Stylesheet([]string{"bg-[rgb(75,104,229)]"}, RenderOptions{})
		assert.Equal(t, `.bg-\[rgb\(75\,104\,229\)\] { background: rgb(75,104,229); }`+"\n", got)
	})

	t.Run("computed bypasses units", func(t *testing.T) {
		e := newTestEngine(t, Config{
			Properties: PropertyTable{"m": Computed(func(m Match) []Declaration {
				return []Declaration{{Property: "margin", Value: m.Token()}}
			})},
			DefaultUnits: map[string]string{"margin": "px"},
		})
		decls, ok := e.Resolve("m-10")
		require.True(t, ok)
		assert.Equal(t, []Declaration{{Property: "margin", Value: "10"}}, decls)
	})

	t.Run("last class wins", func(t *testing.T) {
		e := newTestEngine(t, Config{Properties: PropertyTable{"p": Direct("padding")}})
		plan := e.Apply([]string{"p-1rem", "p-2rem"})
		assert.Equal(t, []Mutation{{Property: "padding", Value: "2rem"}}, plan.Mutations)
	})
}

func TestEngineIgnoresNonUtilities(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	inputs := []string{"", "  ", "container", "unknown:p-1", "p-[oops", "hover:", "p-", "!", "[&>p]:", "btn--primary"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Empty(t, e.Process([]string{in}))
			assert.Empty(t, e.Stylesheet([]string{in}, RenderOptions{}))
			assert.True(t, e.Apply([]string{in}).Empty())
		})
	}
}

func TestEngineStylesheet(t *testing.T) {
	cfg := DefaultConfig().
		WithValues(ValueDictionary{Global: map[string]string{"primary": "#ccf654"}}).
		WithClass("btn", "px-4 py-2 hover:bg-primary").
		WithClass("card", "btn rounded")
	cfg.Aliases = map[string]string{"tablet": "md"}
	e := newTestEngine(t, cfg)

	classes := []string{
		"p-4", "md:p-4", "tablet:p-1", "max-sm:p-0", "dark:bg-red",
		"blur", "brightness-[1.5]", "bg-red/50", "w-1/2", "p-4", "[&>p]:mt-2",
	}

	want := strings.Join([]string{
		`.p-4 { padding: 4px; }`,
		`@media (min-width: 768px) { .md\:p-4 { padding: 4px; } }`,
		`@media (min-width: 768px) { .tablet\:p-1 { padding: 1px; } }`,
		`@media (max-width: 639px) { .max-sm\:p-0 { padding: 0; } }`,
		`[data-theme=dark] .dark\:bg-red { background: red; }`,
		`.blur { filter: blur(8px); }`,
		`.brightness-\[1\.5\] { filter: brightness(1.5); }`,
		`.bg-red\/50 { background: color-mix(in srgb, red 50%, transparent); }`,
		`.w-1\/2 { width: 50%; }`,
		`.\[\&\>p\]\:mt-2>p { margin-top: 2px; }`,
	}, "\n") + "\n"

	got := e.Stylesheet(classes, RenderOptions{})
	assert.Equal(t, want, got)
	assert.Len(t, parseRulesets(t, got), 10)
	assert.Equal(t, got, e.Stylesheet(classes, RenderOptions{}), "output must be deterministic")

	t.Run("composites", func(t *testing.T) {
		got := e.Stylesheet([]string{"card", "btn"}, RenderOptions{})
		want := strings.Join([]string{
			`.card { padding-left: 4px; padding-right: 4px; padding-top: 2px; padding-bottom: 2px; border-radius: 0.25rem; }`,
			`.card:hover { background: #ccf654; }`,
			`.btn { padding-left: 4px; padding-right: 4px; padding-top: 2px; padding-bottom: 2px; }`,
			`.btn:hover { background: #ccf654; }`,
		}, "\n") + "\n"
		assert.Equal(t, want, got)
		assert.Equal(t, []string{".card", ".card:hover", ".btn", ".btn:hover"}, parseRulesets(t, got))
	})

	t.Run("function units", func(t *testing.T) {
		got := e.Stylesheet([]string{"blur-4", "brightness-50", "rotate-45", "scale-150", "translate-x-2"}, RenderOptions{})
		want := strings.Join([]string{
			`.blur-4 { filter: blur(4px); }`,
			`.brightness-50 { filter: brightness(50%); }`,
			`.rotate-45 { transform: rotate(45deg); }`,
			`.scale-150 { transform: scale(150%); }`,
			`.translate-x-2 { transform: translateX(2px); }`,
		}, "\n") + "\n"
		assert.Equal(t, want, got)
		assert.Len(t, parseRulesets(t, got), 5)
	})

	t.Run("pretty output parses", func(t *testing.T) {
		got := e.Stylesheet(classes, RenderOptions{Pretty: true})
		assert.Len(t, parseRulesets(t, got), 10)
	})
}

func TestEngineApply(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	plan := e.Apply([]string{"p-4", "hover:bg-red", "dark:bg-black", "md:p-8", "blur", "hover:contrast-[2]", "!m-1"})

	assert.Equal(t, []Mutation{
		{Property: "padding", Value: "4px"},
		{Property: "filter", Value: "blur(8px)"},
		{Property: "margin", Value: "1px", Priority: "important"},
	}, plan.Mutations)

	require.Len(t, plan.Pseudo, 1)
	assert.Equal(t, "hover", plan.Pseudo[0].Variant)
	assert.Equal(t, EventPair{Enter: "pointerenter", Leave: "pointerleave"}, plan.Pseudo[0].Events)
	assert.Equal(t, []Mutation{
		{Property: "background", Value: "red"},
		{Property: "filter", Value: "blur(8px) contrast(2)"},
	}, plan.Pseudo[0].Mutations)

	require.Len(t, plan.Media, 1)
	assert.Equal(t, Breakpoint{Name: "md", Min: 768}, plan.Media[0].Breakpoint)
	assert.Equal(t, []Mutation{{Property: "padding", Value: "8px"}}, plan.Media[0].Mutations)
}

func TestEngineExplain(t *testing.T) {
	e := newTestEngine(t, DefaultConfig().WithClass("btn", "px-4 hover:p-1"))

	ex, ok := e.Explain("hover:p-4")
	require.True(t, ok)
	assert.Equal(t, "hover", ex.Match.Variant)
	assert.Equal(t, "p", ex.Match.Utility)
	assert.Equal(t, KindNumber, ex.Kind)
	require.Len(t, ex.Rules, 1)
	assert.Equal(t, ContextPseudo, ex.Rules[0].Context.Kind)

	ex, ok = e.Explain("btn")
	require.True(t, ok)
	assert.True(t, ex.Composite)
	assert.Len(t, ex.Rules, 2)

	ex, ok = e.Explain("grid-cols-foo")
	assert.False(t, ok, "a bare word cannot fill a template placeholder")
	assert.Equal(t, KindIdent, ex.Kind)

	_, ok = e.Explain("nope")
	assert.False(t, ok)
}

func TestNewConfigurationErrors(t *testing.T) {
	cfg := Config{
		Properties: PropertyTable{
			"p":   Direct("padding"),
			"row": Templated("$1 / $2 / $3", "gridRow"),
		},
		Classes: map[string]string{"p": "p-1"},
		Aliases: map[string]string{"tablet": "nope"},
	}

	_, err := New(cfg)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2, "config errors are reported together: %v", err)

	var ambiguous *AmbiguousMatchError
	assert.True(t, errors.As(err, &ambiguous))

	cfg = Config{Aliases: map[string]string{"tablet": "nope", "hover": "focus"}}
	_, err = New(cfg)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestEngineAccessors(t *testing.T) {
	e := newTestEngine(t, DefaultConfig().WithClass("btn", "p-1"))

	assert.Contains(t, e.Utilities(), "bg")
	assert.Contains(t, e.Variants(), "hover")
	assert.Contains(t, e.Variants(), "max-md")
	assert.True(t, e.IsComposite("btn"))
	assert.Equal(t, ContextMedia, e.ResolveVariant("lg").Kind)

	m, ok := e.Match("md:p-4")
	require.True(t, ok)
	assert.Equal(t, "md", m.Variant)

	cfg := e.Config()
	cfg.Classes["other"] = "p-2"
	assert.False(t, e.IsComposite("other"), "Config returns a copy")
}

func TestEngineConcurrentUse(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	classes := []string{"p-4", "hover:bg-red", "md:w-1/2", "blur-[2px]", "grid-cols-3"}
	want := e.Stylesheet(classes, RenderOptions{})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Stylesheet(classes, RenderOptions{})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
