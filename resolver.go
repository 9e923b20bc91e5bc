package atomcss

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Resolver maps matched utilities to declarations using a property table and
// a value dictionary. Both are copied at construction; a Resolver never
// changes afterwards.
type Resolver struct {
	properties PropertyTable
	values     ValueDictionary
	units      map[string]string // kebab-case CSS property → default unit
	log        *zap.Logger
}

// NewResolver validates the property table and returns a resolver.
// Malformed entries are reported here, never during Resolve.
func NewResolver(properties PropertyTable, values ValueDictionary, units map[string]string, log *zap.Logger) (*Resolver, error) {
	if err := properties.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{
		properties: properties.clone(),
		values:     values.clone(),
		units:      make(map[string]string, len(units)),
		log:        log,
	}
	for prop, unit := range units {
		r.units[KebabCase(prop)] = unit
	}
	return r, nil
}

// Utilities returns the registered utility names, sorted
func (r *Resolver) Utilities() []string {
	return r.properties.names()
}

// Entry returns the property entry registered for utility
func (r *Resolver) Entry(utility string) (PropertyEntry, bool) {
	e, ok := r.properties[utility]
	return e, ok
}

// Resolve expands m into declarations. ok is false when the utility is
// unknown, has no usable value, or a computed entry declines the value.
func (r *Resolver) Resolve(m Match) ([]Declaration, bool) {
	entry, ok := r.properties[m.Utility]
	if !ok {
		return nil, false
	}

	var decls []Declaration
	switch entry.Kind {
	case EntryComputed:
		decls = r.compute(entry, m)
	case EntryTemplated:
		decls = r.expandTemplated(entry, m)
	default:
		decls = r.expandDirect(entry, m)
	}
	if len(decls) == 0 {
		return nil, false
	}
	if m.Important {
		for i := range decls {
			decls[i].Important = true
		}
	}
	return decls, true
}

// compute invokes a Computed entry, turning a panic into NoMatch
func (r *Resolver) compute(entry PropertyEntry, m Match) (decls []Declaration) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("computed utility panicked",
				zap.String("class", m.Raw),
				zap.String("utility", m.Utility),
				zap.String("panic", fmt.Sprint(rec)))
			decls = nil
		}
	}()

	out := entry.Compute(m)
	decls = make([]Declaration, 0, len(out))
	for _, d := range out {
		if strings.TrimSpace(d.Property) == "" {
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

func (r *Resolver) expandDirect(entry PropertyEntry, m Match) []Declaration {
	value, literal, ok := r.firstValue(m)
	if !ok {
		return nil
	}

	decls := make([]Declaration, 0, len(entry.Properties))
	if m.HasSecond() {
		second, _ := r.secondValue(m)
		combined := combineSecond(value, second)
		for _, prop := range entry.Properties {
			decls = append(decls, Declaration{Property: prop, Value: combined, Function: entry.Function})
		}
		return decls
	}

	for _, prop := range entry.Properties {
		v := value
		if literal {
			v = r.withUnit(prop, entry.Function, v)
		}
		decls = append(decls, Declaration{Property: prop, Value: v, Function: entry.Function})
	}
	return decls
}

func (r *Resolver) expandTemplated(entry PropertyEntry, m Match) []Declaration {
	value, literal, ok := r.firstValue(m)
	if !ok || (literal && !substitutable(value)) {
		return nil
	}
	var second string
	if m.HasSecond() {
		var secondLiteral bool
		second, secondLiteral = r.secondValue(m)
		if secondLiteral && !substitutable(second) {
			return nil
		}
	}

	decls := make([]Declaration, 0, len(entry.Properties))
	for _, prop := range entry.Properties {
		first := value
		if literal {
			first = r.withUnit(prop, "", first)
		}
		expanded := expandTemplate(entry.Template, first, second)
		if expanded == "" {
			continue
		}
		decls = append(decls, Declaration{Property: prop, Value: expanded})
	}
	return decls
}

// substitutable reports whether a token taken from the class name may fill a
// template placeholder. Bare words must come from the value dictionary or
// brackets instead.
func substitutable(token string) bool {
	switch Classify(token) {
	case KindUnknown, KindIdent:
		return false
	}
	return true
}

// firstValue resolves the main value token. literal is true when the result
// came straight from the class name and may receive a default unit.
func (r *Resolver) firstValue(m Match) (value string, literal, ok bool) {
	switch {
	case !m.HasValue():
		// Per-utility only; a global DEFAULT is an ordinary alias
		v, found := r.values.PerUtility[m.Utility][DefaultKey]
		return v, false, found && v != ""
	case m.Arbitrary:
		return arbitraryValue(m.Value), false, true
	case m.Computed:
		return "calc(" + m.Value + ")", false, true
	}

	token := m.Token()
	if v, found := r.values.Lookup(m.Utility, token); found {
		return v, false, true
	}
	return token, m.Unit == "", true
}

// secondValue resolves the token after "/". literal is true when the token
// came straight from the class name.
func (r *Resolver) secondValue(m Match) (value string, literal bool) {
	if m.SecondArbitrary {
		return arbitraryValue(m.SecondValue), false
	}
	token := m.SecondToken()
	if v, found := r.values.Lookup(m.Utility, token); found {
		return v, false
	}
	return token, true
}

// withUnit appends the default unit to a bare non-zero number. A composing
// function's unit (blur, rotate) takes precedence over the property's.
func (r *Resolver) withUnit(prop, fn, value string) string {
	if Classify(value) != KindNumber {
		return value
	}
	unit := r.units[KebabCase(prop)]
	if u, ok := r.units[KebabCase(fn)]; ok && fn != "" {
		unit = u
	}
	if unit == "" {
		return value
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == 0 {
		return value
	}
	return value + unit
}

// arbitraryValue treats [--x] as a custom property reference
func arbitraryValue(v string) string {
	if strings.HasPrefix(v, "--") {
		return "var(" + v + ")"
	}
	return v
}

// combineSecond joins a value with its /second token: a color gets an alpha
// via color-mix, two numbers form a percentage fraction, anything else is "a / b".
func combineSecond(value, second string) string {
	switch {
	case IsColor(value):
		alpha := second
		if IsNumber(second) {
			alpha = second + "%"
		}
		return "color-mix(in srgb, " + value + " " + alpha + ", transparent)"
	case IsNumber(value) && IsNumber(second):
		if pct, ok := fractionPercent(value, second); ok {
			return pct
		}
	}
	return value + " / " + second
}

func fractionPercent(num, den string) (string, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return "", false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return "", false
	}
	pct := math.Round(n/d*100*1e4) / 1e4
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%", true
}
