package atomcss

import (
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Matcher decomposes class names into Match values against known variant and
// utility names. It is immutable after construction and safe for concurrent use.
type Matcher struct {
	variants  map[string]bool
	utilities []string // longest first
}

// NewMatcher builds a matcher. Utility names are tried longest first so that
// "bg-opacity" wins over "bg" for "bg-opacity-50".
func NewMatcher(variants, utilities []string) *Matcher {
	m := &Matcher{
		variants:  make(map[string]bool, len(variants)),
		utilities: append([]string(nil), utilities...),
	}
	for _, v := range variants {
		m.variants[v] = true
	}
	sort.SliceStable(m.utilities, func(i, j int) bool {
		if len(m.utilities[i]) != len(m.utilities[j]) {
			return len(m.utilities[i]) > len(m.utilities[j])
		}
		return m.utilities[i] < m.utilities[j]
	})
	return m
}

// Match splits className into its components following
// [variant:][!]utility[-value[unit]][/second[unit]].
// ok is false when the string is not a utility class.
func (m *Matcher) Match(className string) (Match, bool) {
	if className == "" || strings.ContainsAny(className, " \t\r\n") {
		return Match{}, false
	}

	result := Match{Raw: className}
	rest := className

	// An unknown variant prefix is not stripped: the whole string is then
	// matched as a utility, which normally fails.
	if idx := indexOutside(rest, ':'); idx > 0 {
		prefix := rest[:idx]
		if m.isVariant(prefix) {
			result.Variant = prefix
			rest = rest[idx+1:]
		}
	}

	if strings.HasPrefix(rest, "!") {
		result.Important = true
		rest = rest[1:]
	}

	utility, remainder, ok := m.matchUtility(rest)
	if !ok {
		return Match{}, false
	}
	result.Utility = utility

	if remainder == "" {
		return result, true
	}
	if !m.parseValue(remainder[1:], &result) {
		return Match{}, false
	}
	return result, true
}

// isVariant reports whether prefix is a known or arbitrary ([...]) variant
func (m *Matcher) isVariant(prefix string) bool {
	if m.variants[prefix] {
		return true
	}
	return len(prefix) > 2 && prefix[0] == '[' && prefix[len(prefix)-1] == ']'
}

// matchUtility finds the longest utility that is s itself or followed by "-"
func (m *Matcher) matchUtility(s string) (utility, remainder string, ok bool) {
	for _, u := range m.utilities {
		if !strings.HasPrefix(s, u) {
			continue
		}
		rest := s[len(u):]
		if rest == "" {
			return u, "", true
		}
		if rest[0] == '-' && len(rest) > 1 {
			return u, rest, true
		}
	}
	return "", "", false
}

// parseValue fills the value, unit and second value fields from raw
func (m *Matcher) parseValue(raw string, result *Match) bool {
	first, second, hasSecond := splitSecond(raw)

	switch {
	case strings.HasPrefix(first, "["):
		if !strings.HasSuffix(first, "]") || len(first) < 3 {
			return false
		}
		result.Value = decodeArbitrary(first[1 : len(first)-1])
		result.Arbitrary = true
	case strings.HasPrefix(first, "{"):
		if !strings.HasSuffix(first, "}") || len(first) < 3 {
			return false
		}
		result.Value = strings.ReplaceAll(first[1:len(first)-1], "_", " ")
		result.Computed = true
	default:
		if first == "" || strings.ContainsAny(first, "[]{}") {
			return false
		}
		result.Value, result.Unit = splitUnit(strings.ReplaceAll(first, "_", " "))
	}

	if !hasSecond {
		return true
	}
	if strings.HasPrefix(second, "[") {
		if !strings.HasSuffix(second, "]") || len(second) < 3 {
			return false
		}
		result.SecondValue = decodeArbitrary(second[1 : len(second)-1])
		result.SecondArbitrary = true
		return true
	}
	if second == "" || strings.ContainsAny(second, "[]{}") {
		return false
	}
	result.SecondValue, result.SecondUnit = splitUnit(second)
	return true
}

// splitSecond splits on the last '/' that is outside brackets, braces and parentheses
func splitSecond(s string) (first, second string, ok bool) {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ']', '}', ')':
			depth++
		case '[', '{', '(':
			depth--
		case '/':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

// splitUnit separates a trailing alphabetic or percent unit from a numeric token
func splitUnit(token string) (value, unit string) {
	num, u := parse.Dimension([]byte(token))
	if num == 0 || u == 0 || num+u != len(token) {
		return token, ""
	}
	return token[:num], token[num:]
}

// decodeArbitrary turns escaped spaces (\_) into literal spaces
func decodeArbitrary(s string) string {
	return strings.ReplaceAll(s, `\_`, " ")
}

// indexOutside returns the first index of c that is not inside brackets,
// braces or parentheses.
func indexOutside(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case c:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
