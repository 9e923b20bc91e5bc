package atomcss

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// EntryKind selects how a PropertyEntry maps a utility to CSS
type EntryKind int

const (
	// EntryDirect maps to one CSS property.
	EntryDirect EntryKind = iota
	// EntryMulti maps to several CSS properties sharing one value.
	EntryMulti
	// EntryTemplated substitutes the matched values into a value template.
	EntryTemplated
	// EntryComputed delegates to a Go function.
	EntryComputed
)

func (k EntryKind) String() string {
	switch k {
	case EntryDirect:
		return "direct"
	case EntryMulti:
		return "multi"
	case EntryTemplated:
		return "templated"
	case EntryComputed:
		return "computed"
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// ComputeFunc produces declarations straight from the match tokens.
// Returning no declarations means the utility does not apply to this value.
type ComputeFunc func(m Match) []Declaration

// PropertyEntry describes how one utility name maps to CSS declarations
type PropertyEntry struct {
	Kind       EntryKind
	Properties []string    // Target CSS properties (Direct, Multi, Templated)
	Template   string      // Value template with $1/$2 placeholders (Templated)
	Function   string      // Composing function name, e.g. "blur" into filter (Direct)
	Compute    ComputeFunc // Computed
}

// Direct maps a utility to a single CSS property
func Direct(property string) PropertyEntry {
	return PropertyEntry{Kind: EntryDirect, Properties: []string{property}}
}

// Composing maps a utility to fn(value) accumulated into a composable property
// such as filter or transform.
func Composing(property, fn string) PropertyEntry {
	return PropertyEntry{Kind: EntryDirect, Properties: []string{property}, Function: fn}
}

// Multi maps a utility to several CSS properties receiving the same value
func Multi(properties ...string) PropertyEntry {
	return PropertyEntry{Kind: EntryMulti, Properties: properties}
}

// Templated maps a utility to properties whose value is built from template.
// "$1" is replaced by the resolved value and "$2" by the resolved second value.
func Templated(template string, properties ...string) PropertyEntry {
	return PropertyEntry{Kind: EntryTemplated, Properties: properties, Template: template}
}

// Computed maps a utility to a function of the match
func Computed(fn ComputeFunc) PropertyEntry {
	return PropertyEntry{Kind: EntryComputed, Compute: fn}
}

// maxPlaceholder is the number of capture slots the matcher provides (value, second value)
const maxPlaceholder = 2

// validate checks the entry's shape; utility names the entry in errors
func (e PropertyEntry) validate(utility string) error {
	switch e.Kind {
	case EntryDirect:
		if len(e.Properties) != 1 || strings.TrimSpace(e.Properties[0]) == "" {
			return configErr(utility, "direct entry needs exactly one CSS property")
		}
		if e.Function != "" && !composable[KebabCase(e.Properties[0])] {
			return configErr(utility, fmt.Sprintf("property %q does not compose functions", e.Properties[0]))
		}
	case EntryMulti:
		if len(e.Properties) == 0 {
			return configErr(utility, "multi entry needs at least one CSS property")
		}
		for _, p := range e.Properties {
			if strings.TrimSpace(p) == "" {
				return configErr(utility, "multi entry has an empty CSS property")
			}
		}
	case EntryTemplated:
		if len(e.Properties) == 0 {
			return configErr(utility, "templated entry needs at least one CSS property")
		}
		slots := placeholders(e.Template)
		if len(slots) == 0 {
			return configErr(utility, fmt.Sprintf("template %q has no $1/$2 placeholder", e.Template))
		}
		for _, n := range slots {
			if n < 1 || n > maxPlaceholder {
				return configErr(utility, fmt.Sprintf("template %q uses $%d but only $1..$%d can be captured", e.Template, n, maxPlaceholder))
			}
		}
	case EntryComputed:
		if e.Compute == nil {
			return configErr(utility, "computed entry has a nil function")
		}
	default:
		return configErr(utility, fmt.Sprintf("unknown entry kind %s", e.Kind))
	}
	return nil
}

// placeholders returns the indices of every $N placeholder in template
func placeholders(template string) []int {
	var out []int
	for i := 0; i < len(template)-1; i++ {
		if template[i] != '$' {
			continue
		}
		j := i + 1
		for j < len(template) && template[j] >= '0' && template[j] <= '9' {
			j++
		}
		if j == i+1 {
			continue
		}
		n, _ := strconv.Atoi(template[i+1 : j])
		out = append(out, n)
		i = j - 1
	}
	return out
}

// templatePart is literal text (slot 0) or a $1/$2 placeholder
type templatePart struct {
	text string
	slot int
}

func splitTemplate(template string) []templatePart {
	var parts []templatePart
	start := 0
	for i := 0; i < len(template)-1; i++ {
		if template[i] != '$' || (template[i+1] != '1' && template[i+1] != '2') {
			continue
		}
		if i > start {
			parts = append(parts, templatePart{text: template[start:i]})
		}
		parts = append(parts, templatePart{slot: int(template[i+1] - '0')})
		i++
		start = i + 1
	}
	if start < len(template) {
		parts = append(parts, templatePart{text: template[start:]})
	}
	return parts
}

// isSeparator reports whether p is literal text made only of spaces, '/' and ','
func (p templatePart) isSeparator() bool {
	return p.slot == 0 && p.text != "" && strings.Trim(p.text, " /,") == ""
}

// expandTemplate substitutes $1/$2. A placeholder without a supplied token
// collapses to "" together with the separator joining it to its neighbour,
// so "$1 / $2" with no second token yields just the first.
func expandTemplate(template, first, second string) string {
	tokens := [3]string{"", first, second}
	parts := splitTemplate(template)
	for i, p := range parts {
		if p.slot == 0 || tokens[p.slot] != "" {
			continue
		}
		switch {
		case i > 0 && parts[i-1].isSeparator():
			parts[i-1].text = ""
		case i+1 < len(parts) && parts[i+1].isSeparator():
			parts[i+1].text = ""
		}
	}

	var b strings.Builder
	for _, p := range parts {
		if p.slot == 0 {
			b.WriteString(p.text)
			continue
		}
		b.WriteString(tokens[p.slot])
	}
	return strings.TrimSpace(b.String())
}

// PropertyTable maps utility names to entries
type PropertyTable map[string]PropertyEntry

// Validate reports every malformed entry at once
func (t PropertyTable) Validate() error {
	var err error
	for _, name := range t.names() {
		if verr := validateUtilityName(name); verr != nil {
			err = multierr.Append(err, verr)
			continue
		}
		err = multierr.Append(err, t[name].validate(name))
	}
	return err
}

// names returns the sorted utility names
func (t PropertyTable) names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t PropertyTable) clone() PropertyTable {
	out := make(PropertyTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// validateUtilityName rejects names the matcher could never produce
func validateUtilityName(name string) error {
	switch {
	case name == "":
		return configErr(name, "empty utility name")
	case strings.ContainsAny(name, " \t\n:[]{}/!"):
		return configErr(name, "utility name contains a reserved character")
	case strings.HasSuffix(name, "-") || strings.HasPrefix(name, "-"):
		return configErr(name, "utility name must not start or end with '-'")
	}
	return nil
}

// ParsePropertyEntry converts a decoded YAML/JSON value into an entry:
// a string is Direct ("filter:blur" composes), a list is Multi, and an object
// with "property" plus "value" (template) or "function" is Templated/composing.
func ParsePropertyEntry(utility string, raw any) (PropertyEntry, error) {
	switch v := raw.(type) {
	case string:
		if prop, fn, ok := strings.Cut(v, ":"); ok {
			return Composing(strings.TrimSpace(prop), strings.TrimSpace(fn)), nil
		}
		return Direct(strings.TrimSpace(v)), nil
	case []string:
		return Multi(v...), nil
	case []any:
		props, err := stringList(utility, v)
		if err != nil {
			return PropertyEntry{}, err
		}
		return Multi(props...), nil
	case map[string]any:
		return parseEntryObject(utility, v)
	case PropertyEntry:
		return v, nil
	case ComputeFunc:
		return Computed(v), nil
	case func(Match) []Declaration:
		return Computed(v), nil
	}
	return PropertyEntry{}, configErr(utility, fmt.Sprintf("unsupported property value of type %T", raw))
}

func parseEntryObject(utility string, obj map[string]any) (PropertyEntry, error) {
	var props []string
	switch p := obj["property"].(type) {
	case string:
		props = []string{p}
	case []any:
		list, err := stringList(utility, p)
		if err != nil {
			return PropertyEntry{}, err
		}
		props = list
	case []string:
		props = p
	case nil:
		return PropertyEntry{}, configErr(utility, `object entry needs a "property" key`)
	default:
		return PropertyEntry{}, configErr(utility, fmt.Sprintf(`"property" must be a string or list, got %T`, p))
	}

	if fn, ok := obj["function"].(string); ok {
		if len(props) != 1 {
			return PropertyEntry{}, configErr(utility, "a composing entry targets exactly one property")
		}
		return Composing(props[0], fn), nil
	}
	if tmpl, ok := obj["value"].(string); ok {
		return Templated(tmpl, props...), nil
	}
	if len(props) == 1 {
		return Direct(props[0]), nil
	}
	return Multi(props...), nil
}

func stringList(utility string, items []any) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, configErr(utility, fmt.Sprintf("list items must be strings, got %T", item))
		}
		out = append(out, s)
	}
	return out, nil
}
