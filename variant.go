package atomcss

import (
	"sort"
	"strings"
)

// Variant is one entry of the variant table
type Variant struct {
	Name       string
	Selector   string     // "&:hover"; empty for media-only variants
	Media      string     // media condition; set for breakpoints and media variants
	Events     EventPair  // non-zero when direct styling can simulate the variant
	Breakpoint Breakpoint // set for breakpoint variants
	breakpoint bool
}

// VariantTable resolves variant tokens to contexts
type VariantTable struct {
	variants map[string]Variant
	aliases  map[string]string
}

// NewVariantTable layers breakpoints (with derived max-* forms) and custom
// variants over the built-in pseudo-class variants.
func NewVariantTable(breakpoints []Breakpoint, custom map[string]VariantSpec, aliases map[string]string) VariantTable {
	t := VariantTable{
		variants: make(map[string]Variant, len(builtinVariants)+2*len(breakpoints)+len(custom)),
		aliases:  cloneStrings(aliases),
	}
	for name, v := range builtinVariants {
		v.Name = name
		t.variants[name] = v
	}
	for _, bp := range breakpoints {
		t.variants[bp.Name] = Variant{Name: bp.Name, Media: bp.MediaQuery(), Breakpoint: bp, breakpoint: true}
		if bp.Min > 0 {
			maxBP := Breakpoint{Name: "max-" + bp.Name, Max: bp.Min - 1}
			if _, taken := t.variants[maxBP.Name]; !taken {
				t.variants[maxBP.Name] = Variant{Name: maxBP.Name, Media: maxBP.MediaQuery(), Breakpoint: maxBP, breakpoint: true}
			}
		}
	}
	for name, spec := range custom {
		t.variants[name] = Variant{Name: name, Selector: spec.Selector, Media: spec.Media, Events: spec.Events}
	}
	return t
}

// Names returns every token the matcher should accept as a variant,
// including alias names.
func (t VariantTable) Names() []string {
	names := make([]string, 0, len(t.variants)+len(t.aliases))
	for name := range t.variants {
		names = append(names, name)
	}
	for alias, target := range t.aliases {
		if _, ok := t.variants[target]; ok {
			names = append(names, alias)
		}
	}
	sort.Strings(names)
	return names
}

// Lookup returns the variant for name after alias rewriting
func (t VariantTable) Lookup(name string) (Variant, bool) {
	if target, ok := t.aliases[name]; ok {
		name = target
	}
	v, ok := t.variants[name]
	return v, ok
}

// Resolve turns a variant token into a context. An empty token yields
// ContextNone; so does an unknown one, since an unrecognized prefix must not
// silently claim the class.
func (t VariantTable) Resolve(variant string) VariantContext {
	if variant == "" {
		return VariantContext{Kind: ContextNone}
	}
	if strings.HasPrefix(variant, "[") && strings.HasSuffix(variant, "]") {
		return arbitraryVariant(variant)
	}

	v, ok := t.Lookup(variant)
	if !ok {
		return VariantContext{Kind: ContextNone}
	}

	ctx := VariantContext{
		Variant:    v.Name,
		Selector:   v.Selector,
		Media:      v.Media,
		Events:     v.Events,
		Breakpoint: v.Breakpoint,
	}
	switch {
	case v.Media != "":
		ctx.Kind = ContextMedia
	case !v.Events.IsZero():
		ctx.Kind = ContextPseudo
	default:
		ctx.Kind = ContextSelector
	}
	if v.Media != "" && !v.breakpoint {
		// Custom media variants have no breakpoint to re-evaluate
		ctx.Breakpoint = Breakpoint{}
	}
	return ctx
}

// arbitraryVariant handles [&>p] selector templates and [@media_...] at-rules
func arbitraryVariant(variant string) VariantContext {
	body := strings.TrimSpace(strings.ReplaceAll(variant[1:len(variant)-1], "_", " "))
	ctx := VariantContext{Variant: variant}

	if rest, ok := strings.CutPrefix(body, "@media"); ok {
		ctx.Kind = ContextMedia
		ctx.Media = strings.TrimSpace(rest)
		return ctx
	}

	ctx.Kind = ContextSelector
	if strings.Contains(body, "&") {
		ctx.Selector = body
	} else {
		ctx.Selector = "&" + body
	}
	return ctx
}

// simulable reports whether direct styling can honor the context
func (c VariantContext) simulable() bool {
	switch c.Kind {
	case ContextNone, ContextPseudo:
		return true
	case ContextMedia:
		return c.Breakpoint.Name != ""
	}
	return false
}
