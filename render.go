package atomcss

import "strings"

// vendorPrefixes are recognized at the start of camelCase and kebab-case property names
var vendorPrefixes = []string{"webkit", "moz", "ms", "o"}

// KebabCase converts a camelCase property name to CSS form. Vendor prefixes
// become "-webkit-…" whatever their source casing; custom properties are
// returned unchanged.
func KebabCase(prop string) string {
	if strings.HasPrefix(prop, "-") {
		return prop
	}
	if !hasUpper(prop) {
		for _, vendor := range vendorPrefixes {
			if strings.HasPrefix(prop, vendor+"-") {
				return "-" + prop
			}
		}
		return prop
	}

	var b strings.Builder
	b.Grow(len(prop) + 4)
	rest := prop
	for _, vendor := range vendorPrefixes {
		if len(rest) > len(vendor) && strings.EqualFold(rest[:len(vendor)], vendor) && isUpper(rest[len(vendor)]) {
			b.WriteByte('-')
			b.WriteString(vendor)
			rest = rest[len(vendor):]
			break
		}
	}

	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if isUpper(c) {
			if i > 0 || b.Len() > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) {
			return true
		}
	}
	return false
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// RenderOptions controls stylesheet text layout
type RenderOptions struct {
	Pretty bool   // multi-line blocks instead of one rule per line
	Indent string // indentation for Pretty output, default two spaces
}

// Render serializes rules as CSS text in the given order. Rules with a media
// condition are wrapped in their own @media block.
func Render(rules []GeneratedRule, opts RenderOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	var b strings.Builder
	for _, rule := range rules {
		if len(rule.Declarations) == 0 {
			continue
		}
		if opts.Pretty {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			renderPretty(&b, rule, opts.Indent)
		} else {
			renderCompact(&b, rule)
		}
	}
	return b.String()
}

func renderCompact(b *strings.Builder, rule GeneratedRule) {
	media := rule.Context.Media
	if media != "" {
		b.WriteString("@media " + media + " { ")
	}
	b.WriteString(rule.Selector())
	b.WriteString(" {")
	for _, d := range rule.Declarations {
		b.WriteByte(' ')
		b.WriteString(d.String())
		b.WriteByte(';')
	}
	b.WriteString(" }")
	if media != "" {
		b.WriteString(" }")
	}
	b.WriteByte('\n')
}

func renderPretty(b *strings.Builder, rule GeneratedRule, indent string) {
	prefix := ""
	media := rule.Context.Media
	if media != "" {
		b.WriteString("@media " + media + " {\n")
		prefix = indent
	}
	b.WriteString(prefix + rule.Selector() + " {\n")
	for _, d := range rule.Declarations {
		b.WriteString(prefix + indent + d.String() + ";\n")
	}
	b.WriteString(prefix + "}\n")
	if media != "" {
		b.WriteString("}\n")
	}
}
