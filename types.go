package atomcss

import (
	"strconv"
	"strings"
)

// Match is the structured decomposition of one utility class name
type Match struct {
	Raw             string // "md:p-[10px]"
	Variant         string // "md" ("" when absent)
	Important       bool   // "!p-1"
	Utility         string // "p"
	Value           string // "10px" for arbitrary values, "10" for plain numeric values
	Unit            string // "px" when split from a plain numeric value
	SecondValue     string // "50" in "bg-red/50"
	SecondUnit      string
	Arbitrary       bool // Value came from [...]
	Computed        bool // Value came from {...}
	SecondArbitrary bool // SecondValue came from [...]
}

// HasValue reports whether a value token was present
func (m Match) HasValue() bool {
	return m.Value != "" || m.Arbitrary || m.Computed
}

// HasSecond reports whether a /second token was present
func (m Match) HasSecond() bool {
	return m.SecondValue != "" || m.SecondArbitrary
}

// Token returns the plain value with its unit re-attached
func (m Match) Token() string {
	return m.Value + m.Unit
}

// SecondToken returns the second value with its unit re-attached
func (m Match) SecondToken() string {
	return m.SecondValue + m.SecondUnit
}

// Declaration is one resolved CSS property/value pair
type Declaration struct {
	Property  string // CSS property, camelCase or kebab-case
	Value     string // Resolved CSS value
	Function  string // Non-empty when the value composes into Property as Function(Value)
	Important bool
}

// String renders the declaration as "property: value"
func (d Declaration) String() string {
	value := d.Value
	if d.Function != "" {
		value = d.Function + "(" + d.Value + ")"
	}
	if d.Important {
		value += " !important"
	}
	return KebabCase(d.Property) + ": " + value
}

// ContextKind enumerates how a declaration is scoped
type ContextKind int

const (
	// ContextNone applies unconditionally.
	ContextNone ContextKind = iota
	// ContextPseudo is a pseudo-class that direct styling simulates with an event pair.
	ContextPseudo
	// ContextSelector wraps the rule selector; direct styling cannot simulate it.
	ContextSelector
	// ContextMedia nests the rule in a media query; direct styling re-evaluates the breakpoint.
	ContextMedia
)

func (k ContextKind) String() string {
	switch k {
	case ContextNone:
		return "none"
	case ContextPseudo:
		return "pseudo"
	case ContextSelector:
		return "selector"
	case ContextMedia:
		return "media"
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// EventPair names the enter/leave events that simulate a pseudo-class
type EventPair struct {
	Enter string `koanf:"enter"`
	Leave string `koanf:"leave"`
}

// IsZero reports whether no events are configured
func (e EventPair) IsZero() bool {
	return e.Enter == "" && e.Leave == ""
}

// Breakpoint is a named viewport range in px. Zero Min or Max means unbounded.
type Breakpoint struct {
	Name string `koanf:"name"`
	Min  int    `koanf:"min"`
	Max  int    `koanf:"max"`
}

// Matches reports whether the viewport width falls inside the breakpoint
func (b Breakpoint) Matches(width int) bool {
	if b.Min > 0 && width < b.Min {
		return false
	}
	if b.Max > 0 && width > b.Max {
		return false
	}
	return true
}

// MediaQuery renders the breakpoint as a media query condition
func (b Breakpoint) MediaQuery() string {
	var parts []string
	if b.Min > 0 {
		parts = append(parts, "(min-width: "+strconv.Itoa(b.Min)+"px)")
	}
	if b.Max > 0 {
		parts = append(parts, "(max-width: "+strconv.Itoa(b.Max)+"px)")
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " and ")
}

// VariantContext describes how declarations produced under a variant are scoped
type VariantContext struct {
	Kind       ContextKind
	Variant    string     // Variant token after alias rewriting
	Selector   string     // Selector template containing "&", e.g. "&:hover"
	Media      string     // Media condition for ContextMedia, e.g. "(min-width: 768px)"
	Events     EventPair  // ContextPseudo only
	Breakpoint Breakpoint // ContextMedia from a breakpoint
}

// Key identifies the context for rule grouping
func (c VariantContext) Key() string {
	return c.Media + "|" + c.Selector
}

// Wrap applies the selector template to a base selector
func (c VariantContext) Wrap(selector string) string {
	if c.Selector == "" {
		return selector
	}
	return strings.ReplaceAll(c.Selector, "&", selector)
}

// GeneratedRule is the unit of output: one class name's declarations under one context
type GeneratedRule struct {
	ClassName    string // Unescaped class name, e.g. "hover:bg-red"
	Declarations []Declaration
	Context      VariantContext
}

// Selector returns the escaped, context-wrapped CSS selector for the rule
func (r GeneratedRule) Selector() string {
	return r.Context.Wrap("." + Escape(r.ClassName))
}

// Mutation is one inline style write in direct-styling mode
type Mutation struct {
	Property string // kebab-case, suitable for style.setProperty
	Value    string
	Priority string // "important" or ""
}

// PseudoBinding groups mutations that apply while a simulated pseudo-class is active
type PseudoBinding struct {
	Variant   string
	Events    EventPair
	Mutations []Mutation
}

// MediaBinding groups mutations that apply while a breakpoint matches
type MediaBinding struct {
	Variant    string
	Breakpoint Breakpoint
	Mutations  []Mutation
}

// Plan is the direct-styling output for one element's class list
type Plan struct {
	Mutations []Mutation
	Pseudo    []PseudoBinding
	Media     []MediaBinding
}

// Empty reports whether the plan changes nothing
func (p Plan) Empty() bool {
	return len(p.Mutations) == 0 && len(p.Pseudo) == 0 && len(p.Media) == 0
}
