package atomcss

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()

	table := PropertyTable{
		"bg":        Direct("background"),
		"text":      Direct("color"),
		"p":         Direct("padding"),
		"w":         Direct("width"),
		"gap":       Direct("gap"),
		"flex":      Direct("flex"),
		"size":      Multi("width", "height"),
		"grid-row":  Templated("$1 / $2", "gridRow"),
		"grid-cols": Templated("repeat($1, minmax(0, 1fr))", "gridTemplateColumns"),
		"blur":      Composing("filter", "blur"),
		"m": Computed(func(m Match) []Declaration {
			return []Declaration{{Property: "margin", Value: m.Token()}}
		}),
		"boom": Computed(func(Match) []Declaration { panic("boom") }),
		"none": Computed(func(Match) []Declaration { return nil }),
	}
	values := ValueDictionary{
		Global:     map[string]string{"primary": "#ccf654", "full": "100%"},
		PerUtility: map[string]map[string]string{"text": {"primary": "#000"}, "flex": {DefaultKey: "1 1 0%"}},
	}

	r, err := NewResolver(table, values, map[string]string{"gap": "px", "blur": "px"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return r
}

func resolveClass(r *Resolver, class string) ([]Declaration, bool) {
	m, ok := NewMatcher(nil, r.Utilities()).Match(class)
	if !ok {
		return nil, false
	}
	return r.Resolve(m)
}

func TestResolverResolve(t *testing.T) {
	tests := []struct {
		name  string
		class string
		want  []Declaration
	}{
		{
			name:  "global alias",
			class: "bg-primary",
			want:  []Declaration{{Property: "background", Value: "#ccf654"}},
		},
		{
			name:  "per-utility alias wins",
			class: "text-primary",
			want:  []Declaration{{Property: "color", Value: "#000"}},
		},
		{
			name:  "literal with unit",
			class: "p-1rem",
			want:  []Declaration{{Property: "padding", Value: "1rem"}},
		},
		{
			name:  "multi",
			class: "size-100px",
			want: []Declaration{
				{Property: "width", Value: "100px"},
				{Property: "height", Value: "100px"},
			},
		},
		{
			name:  "arbitrary passthrough",
			class: "bg-[rgb(75,104,229)]",
			want:  []Declaration{{Property: "background", Value: "rgb(75,104,229)"}},
		},
		{
			name:  "arbitrary custom property",
			class: "bg-[--brand]",
			want:  []Declaration{{Property: "background", Value: "var(--brand)"}},
		},
		{
			name:  "computed skips unit inference",
			class: "m-10",
			want:  []Declaration{{Property: "margin", Value: "10"}},
		},
		{
			name:  "default unit",
			class: "gap-4",
			want:  []Declaration{{Property: "gap", Value: "4px"}},
		},
		{
			name:  "default unit skips zero",
			class: "gap-0",
			want:  []Declaration{{Property: "gap", Value: "0"}},
		},
		{
			name:  "default unit skips arbitrary",
			class: "gap-[4]",
			want:  []Declaration{{Property: "gap", Value: "4"}},
		},
		{
			name:  "templated with second value",
			class: "grid-row-1/3",
			want:  []Declaration{{Property: "gridRow", Value: "1 / 3"}},
		},
		{
			name:  "templated missing second value",
			class: "grid-row-2",
			want:  []Declaration{{Property: "gridRow", Value: "2"}},
		},
		{
			name:  "templated dictionary value",
			class: "grid-cols-full",
			want:  []Declaration{{Property: "gridTemplateColumns", Value: "repeat(100%, minmax(0, 1fr))"}},
		},
		{
			name:  "templated single placeholder",
			class: "grid-cols-3",
			want:  []Declaration{{Property: "gridTemplateColumns", Value: "repeat(3, minmax(0, 1fr))"}},
		},
		{
			name:  "composing",
			class: "blur-4px",
			want:  []Declaration{{Property: "filter", Value: "4px", Function: "blur"}},
		},
		{
			name:  "composing function unit",
			class: "blur-4",
			want:  []Declaration{{Property: "filter", Value: "4px", Function: "blur"}},
		},
		{
			name:  "DEFAULT value",
			class: "flex",
			want:  []Declaration{{Property: "flex", Value: "1 1 0%"}},
		},
		{
			name:  "fraction",
			class: "w-1/2",
			want:  []Declaration{{Property: "width", Value: "50%"}},
		},
		{
			name:  "repeating fraction",
			class: "w-1/3",
			want:  []Declaration{{Property: "width", Value: "33.3333%"}},
		},
		{
			name:  "color with alpha",
			class: "bg-red/50",
			want:  []Declaration{{Property: "background", Value: "color-mix(in srgb, red 50%, transparent)"}},
		},
		{
			name:  "aliased color with alpha",
			class: "bg-primary/50",
			want:  []Declaration{{Property: "background", Value: "color-mix(in srgb, #ccf654 50%, transparent)"}},
		},
		{
			name:  "other second value",
			class: "bg-none/auto",
			want:  []Declaration{{Property: "background", Value: "none / auto"}},
		},
		{
			name:  "braced value becomes calc",
			class: "w-{100%-2rem}",
			want:  []Declaration{{Property: "width", Value: "calc(100%-2rem)"}},
		},
		{
			name:  "important",
			class: "!p-4",
			want:  []Declaration{{Property: "padding", Value: "4", Important: true}},
		},
	}

	r := testResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveClass(r, tt.class)
			require.True(t, ok, "expected %q to resolve", tt.class)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverNoMatch(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name  string
		class string
	}{
		{"no DEFAULT value", "w"},
		{"panicking computed", "boom-1"},
		{"declining computed", "none-1"},
		{"templated bare word", "grid-cols-foo"},
		{"templated bare second word", "grid-row-1/foo"},
		{"templated spaced word", "grid-row-span_2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := resolveClass(r, tt.class)
			assert.False(t, ok)
		})
	}

	_, ok := r.Resolve(Match{Utility: "nope", Value: "1"})
	assert.False(t, ok, "unknown utility")
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name          string
		template      string
		first, second string
		want          string
	}{
		{"both placeholders", "$1 / $2", "1", "3", "1 / 3"},
		{"missing second drops separator", "$1 / $2", "2", "", "2"},
		{"missing leading placeholder", "$2 $1", "4px", "", "4px"},
		{"comma separator", "$1, $2", "a", "", "a"},
		{"placeholder inside call", "repeat($1, minmax(0, 1fr))", "3", "", "repeat(3, minmax(0, 1fr))"},
		{"literal dollar", "$3 $1", "x", "", "$3 x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandTemplate(tt.template, tt.first, tt.second))
		})
	}
}

func TestResolverPanicDoesNotAffectBatch(t *testing.T) {
	r := testResolver(t)

	var resolved []string
	for _, class := range []string{"p-1", "boom-2", "p-3"} {
		if decls, ok := resolveClass(r, class); ok {
			resolved = append(resolved, decls[0].Value)
		}
	}
	assert.Equal(t, []string{"1", "3"}, resolved)
}

func TestNewResolverConfigurationErrors(t *testing.T) {
	table := PropertyTable{
		"ok":        Direct("color"),
		"empty":     Direct(""),
		"slot":      Templated("$3", "gridRow"),
		"noslot":    Templated("auto", "gridRow"),
		"nilfn":     Computed(nil),
		"filter-ok": Composing("filter", "blur"),
		"badcomp":   Composing("color", "blur"),
	}

	_, err := NewResolver(table, ValueDictionary{}, nil, nil)
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 5)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(errs[0], &cfgErr))
	assert.Equal(t, "badcomp", cfgErr.Name)
}
