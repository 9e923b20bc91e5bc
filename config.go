package atomcss

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// DefaultKey is the per-utility value used when a class carries no value ("flex")
const DefaultKey = "DEFAULT"

// ValueDictionary resolves value aliases: per-utility overrides first, then
// global aliases, then the token itself.
type ValueDictionary struct {
	Global     map[string]string            // primary → #ccf654
	PerUtility map[string]map[string]string // bg → {primary → #000}
}

// Lookup resolves token for utility. ok is false when no alias matched.
func (d ValueDictionary) Lookup(utility, token string) (string, bool) {
	if overrides, found := d.PerUtility[utility]; found {
		if v, found := overrides[token]; found {
			return v, true
		}
	}
	if v, found := d.Global[token]; found {
		return v, true
	}
	return "", false
}

func (d ValueDictionary) clone() ValueDictionary {
	out := ValueDictionary{
		Global:     make(map[string]string, len(d.Global)),
		PerUtility: make(map[string]map[string]string, len(d.PerUtility)),
	}
	for k, v := range d.Global {
		out.Global[k] = v
	}
	for utility, overrides := range d.PerUtility {
		inner := make(map[string]string, len(overrides))
		for k, v := range overrides {
			inner[k] = v
		}
		out.PerUtility[utility] = inner
	}
	return out
}

// merge layers other over d; other wins on conflicts
func (d ValueDictionary) merge(other ValueDictionary) ValueDictionary {
	out := d.clone()
	for k, v := range other.Global {
		out.Global[k] = v
	}
	for utility, overrides := range other.PerUtility {
		inner, ok := out.PerUtility[utility]
		if !ok {
			inner = make(map[string]string, len(overrides))
			out.PerUtility[utility] = inner
		}
		for k, v := range overrides {
			inner[k] = v
		}
	}
	return out
}

// VariantSpec is a user-defined variant
type VariantSpec struct {
	Selector string    `koanf:"selector"` // "&[aria-expanded=true]"
	Media    string    `koanf:"media"`    // "(orientation: portrait)"
	Events   EventPair `koanf:"events"`   // enables direct-mode simulation
}

// Config is the immutable engine configuration. The With* and Merge methods
// return updated copies and never modify the receiver.
type Config struct {
	Properties   PropertyTable
	Values       ValueDictionary
	Classes      map[string]string      // pre-baked composites: btn → "px-4 py-2 hover:bg-primary"
	Breakpoints  []Breakpoint           // nil means DefaultBreakpoints
	Aliases      map[string]string      // variant rewrites: tablet → md
	Variants     map[string]VariantSpec // custom variants, layered over the built-ins
	DefaultUnits map[string]string      // CSS property → unit for bare numbers: padding → px
}

// clone returns a deep copy safe to modify
func (c Config) clone() Config {
	out := Config{
		Properties:   c.Properties.clone(),
		Values:       c.Values.clone(),
		Classes:      cloneStrings(c.Classes),
		Aliases:      cloneStrings(c.Aliases),
		DefaultUnits: cloneStrings(c.DefaultUnits),
		Variants:     make(map[string]VariantSpec, len(c.Variants)),
	}
	if c.Breakpoints != nil {
		out.Breakpoints = append([]Breakpoint(nil), c.Breakpoints...)
	}
	for k, v := range c.Variants {
		out.Variants[k] = v
	}
	return out
}

// WithProperty registers (or replaces) a utility
func (c Config) WithProperty(utility string, entry PropertyEntry) Config {
	out := c.clone()
	out.Properties[utility] = entry
	return out
}

// WithValues layers value aliases over the existing dictionary
func (c Config) WithValues(values ValueDictionary) Config {
	out := c.clone()
	out.Values = out.Values.merge(values)
	return out
}

// WithClass registers a pre-baked composite class
func (c Config) WithClass(name, utilities string) Config {
	out := c.clone()
	out.Classes[name] = utilities
	return out
}

// WithVariant registers a custom variant
func (c Config) WithVariant(name string, spec VariantSpec) Config {
	out := c.clone()
	out.Variants[name] = spec
	return out
}

// Merge layers other over c. Maps merge key by key with other winning;
// breakpoints are replaced when other defines any.
func (c Config) Merge(other Config) Config {
	out := c.clone()
	for k, v := range other.Properties {
		out.Properties[k] = v
	}
	out.Values = out.Values.merge(other.Values)
	for k, v := range other.Classes {
		out.Classes[k] = v
	}
	for k, v := range other.Aliases {
		out.Aliases[k] = v
	}
	for k, v := range other.Variants {
		out.Variants[k] = v
	}
	for k, v := range other.DefaultUnits {
		out.DefaultUnits[k] = v
	}
	if len(other.Breakpoints) > 0 {
		out.Breakpoints = append([]Breakpoint(nil), other.Breakpoints...)
	}
	return out
}

// Validate reports every configuration problem at once
func (c Config) Validate() error {
	err := c.Properties.Validate()

	for _, name := range sortedKeys(c.Classes) {
		if _, clash := c.Properties[name]; clash {
			err = multierr.Append(err, &AmbiguousMatchError{Name: name, Sources: []string{"property", "classes"}})
		}
		if strings.TrimSpace(c.Classes[name]) == "" {
			err = multierr.Append(err, configErr(name, "class has no utilities"))
		}
	}
	err = multierr.Append(err, c.checkClassCycles())

	seen := make(map[string]bool, len(c.Breakpoints))
	for _, bp := range c.Breakpoints {
		switch {
		case bp.Name == "":
			err = multierr.Append(err, configErr("", "breakpoint without a name"))
		case seen[bp.Name]:
			err = multierr.Append(err, &AmbiguousMatchError{Name: bp.Name, Sources: []string{"breakpoints", "breakpoints"}})
		case bp.Max > 0 && bp.Min > bp.Max:
			err = multierr.Append(err, configErr(bp.Name, fmt.Sprintf("breakpoint min %d exceeds max %d", bp.Min, bp.Max)))
		}
		seen[bp.Name] = true
		if _, clash := c.Variants[bp.Name]; clash {
			err = multierr.Append(err, &AmbiguousMatchError{Name: bp.Name, Sources: []string{"breakpoints", "variants"}})
		}
	}

	for _, name := range sortedKeys(c.Variants) {
		spec := c.Variants[name]
		if spec.Selector == "" && spec.Media == "" {
			err = multierr.Append(err, configErr(name, "variant needs a selector or a media condition"))
		}
		if spec.Selector != "" && !strings.Contains(spec.Selector, "&") {
			err = multierr.Append(err, configErr(name, fmt.Sprintf("variant selector %q has no '&'", spec.Selector)))
		}
	}

	return err
}

// checkClassCycles rejects composite classes that expand into themselves
func (c Config) checkClassCycles() error {
	var err error
	for _, name := range sortedKeys(c.Classes) {
		if c.classCycle(name, map[string]bool{}) {
			err = multierr.Append(err, configErr(name, "class expands into itself"))
		}
	}
	return err
}

func (c Config) classCycle(name string, visiting map[string]bool) bool {
	if visiting[name] {
		return true
	}
	visiting[name] = true
	defer delete(visiting, name)

	for _, token := range strings.Fields(c.Classes[name]) {
		// Only bare tokens can refer to other composites
		if _, ok := c.Classes[token]; ok && c.classCycle(token, visiting) {
			return true
		}
	}
	return false
}

// RawConfig is the decoded form of the YAML/env configuration sections
type RawConfig struct {
	Property    map[string]any         `koanf:"property"`
	Values      map[string]any         `koanf:"values"`
	Classes     map[string]string      `koanf:"classes"`
	Breakpoints []Breakpoint           `koanf:"breakpoints"`
	Aliases     map[string]string      `koanf:"aliases"`
	Variants    map[string]VariantSpec `koanf:"variants"`
	Units       map[string]string      `koanf:"units"`
}

// Build converts the raw sections into a validated Config. All problems are
// reported together (see multierr.Errors).
func (r RawConfig) Build() (Config, error) {
	cfg := Config{
		Properties:   make(PropertyTable, len(r.Property)),
		Classes:      cloneStrings(r.Classes),
		Aliases:      cloneStrings(r.Aliases),
		DefaultUnits: cloneStrings(r.Units),
		Variants:     make(map[string]VariantSpec, len(r.Variants)),
	}
	if len(r.Breakpoints) > 0 {
		cfg.Breakpoints = append([]Breakpoint(nil), r.Breakpoints...)
	}
	for k, v := range r.Variants {
		cfg.Variants[k] = v
	}

	var err error
	for _, name := range sortedKeys(r.Property) {
		entry, perr := ParsePropertyEntry(name, r.Property[name])
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		cfg.Properties[name] = entry
	}

	values, verr := ParseValues(r.Values)
	err = multierr.Append(err, verr)
	cfg.Values = values

	err = multierr.Append(err, cfg.Validate())
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseValues splits a decoded values section into global aliases (scalar
// entries) and per-utility overrides (nested maps).
func ParseValues(raw map[string]any) (ValueDictionary, error) {
	dict := ValueDictionary{
		Global:     make(map[string]string),
		PerUtility: make(map[string]map[string]string),
	}

	var err error
	for _, key := range sortedKeys(raw) {
		switch v := raw[key].(type) {
		case map[string]any:
			inner := make(map[string]string, len(v))
			for k, iv := range v {
				s, ok := scalarString(iv)
				if !ok {
					err = multierr.Append(err, configErr(key, fmt.Sprintf("value %q must be a scalar, got %T", k, iv)))
					continue
				}
				inner[k] = s
			}
			dict.PerUtility[key] = inner
		case map[string]string:
			dict.PerUtility[key] = cloneStrings(v)
		default:
			s, ok := scalarString(v)
			if !ok {
				err = multierr.Append(err, configErr(key, fmt.Sprintf("value must be a scalar or a map, got %T", v)))
				continue
			}
			dict.Global[key] = s
		}
	}
	return dict, err
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int64, float64, bool:
		return fmt.Sprint(s), true
	}
	return "", false
}

func cloneStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
