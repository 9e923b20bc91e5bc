package atomcss

import (
	"strconv"
	"strings"
)

// reservedSelectorChars must be backslash-escaped inside a class selector
const reservedSelectorChars = "#{}.:;?%&,@+*~'\"!^$[]()=>|/"

// Escape converts a raw class name into a valid CSS class selector token.
// A leading digit uses the numeric escape form ("1a" → `\31 a`); every
// reserved character is individually backslash-escaped.
func Escape(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 8)

	for i, r := range raw {
		switch {
		case i == 0 && r >= '0' && r <= '9':
			b.WriteString(`\`)
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte(' ')
		case strings.ContainsRune(reservedSelectorChars, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Unescape reverses Escape. Hex escapes of up to six digits consume one
// trailing space; any other escaped character stands for itself.
func Unescape(escaped string) string {
	if !strings.Contains(escaped, `\`) {
		return escaped
	}

	var b strings.Builder
	b.Grow(len(escaped))

	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '\\' || i == len(escaped)-1 {
			b.WriteByte(c)
			continue
		}

		j := i + 1
		for j < len(escaped) && j-i <= 6 && isHexDigit(escaped[j]) {
			j++
		}
		if j == i+1 {
			// Escaped literal character
			b.WriteByte(escaped[j])
			i = j
			continue
		}

		code, err := strconv.ParseInt(escaped[i+1:j], 16, 32)
		if err != nil {
			b.WriteString(escaped[i:j])
			i = j - 1
			continue
		}
		b.WriteRune(rune(code))
		if j < len(escaped) && escaped[j] == ' ' {
			j++
		}
		i = j - 1
	}

	return b.String()
}
