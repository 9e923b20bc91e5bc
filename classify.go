package atomcss

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ValueKind is the syntactic category of a raw value token
type ValueKind int

// Value kinds recognized by Classify.
const (
	KindUnknown ValueKind = iota // opaque literal, copied verbatim
	KindNumber
	KindPercentage
	KindLength
	KindTime
	KindAngle
	KindFrequency
	KindResolution
	KindFraction
	KindColor
	KindURL
	KindString
	KindIdent
	KindFunction
)

var kindNames = map[ValueKind]string{
	KindUnknown:    "unknown",
	KindNumber:     "number",
	KindPercentage: "percentage",
	KindLength:     "length",
	KindTime:       "time",
	KindAngle:      "angle",
	KindFrequency:  "frequency",
	KindResolution: "resolution",
	KindFraction:   "fraction",
	KindColor:      "color",
	KindURL:        "url",
	KindString:     "string",
	KindIdent:      "identifier",
	KindFunction:   "function",
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// unitKinds maps each whitelisted unit to the kind of dimension it forms
var unitKinds = map[string]ValueKind{
	// Absolute lengths
	"px": KindLength, "cm": KindLength, "mm": KindLength, "q": KindLength,
	"in": KindLength, "pt": KindLength, "pc": KindLength,
	// Font-relative lengths
	"em": KindLength, "rem": KindLength, "ex": KindLength, "rex": KindLength,
	"ch": KindLength, "rch": KindLength, "cap": KindLength, "rcap": KindLength,
	"ic": KindLength, "ric": KindLength, "lh": KindLength, "rlh": KindLength,
	// Viewport and container lengths
	"vw": KindLength, "vh": KindLength, "vmin": KindLength, "vmax": KindLength,
	"vi": KindLength, "vb": KindLength,
	"svw": KindLength, "svh": KindLength, "lvw": KindLength, "lvh": KindLength,
	"dvw": KindLength, "dvh": KindLength,
	"cqw": KindLength, "cqh": KindLength, "cqi": KindLength, "cqb": KindLength,
	"cqmin": KindLength, "cqmax": KindLength,
	// Grid flex
	"fr": KindLength,
	// Time
	"s": KindTime, "ms": KindTime,
	// Angle
	"deg": KindAngle, "grad": KindAngle, "rad": KindAngle, "turn": KindAngle,
	// Frequency
	"hz": KindFrequency, "khz": KindFrequency,
	// Resolution
	"dpi": KindResolution, "dpcm": KindResolution, "dppx": KindResolution, "x": KindResolution,
}

// colorFunctions are the functional color notations
var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true, "hsl": true, "hsla": true, "hwb": true,
	"lab": true, "lch": true, "oklab": true, "oklch": true,
	"color": true, "color-mix": true, "light-dark": true,
}

// Classify returns the kind of a raw value token. It never fails; anything it
// does not recognize is KindUnknown.
func Classify(token string) ValueKind {
	token = strings.TrimSpace(token)
	if token == "" {
		return KindUnknown
	}
	b := []byte(token)

	// Numeric forms: number, percentage, dimension
	if num, unit := parse.Dimension(b); num > 0 && num+unit == len(b) {
		if unit == 0 {
			return KindNumber
		}
		suffix := strings.ToLower(token[num:])
		if suffix == "%" {
			return KindPercentage
		}
		if kind, ok := unitKinds[suffix]; ok {
			return kind
		}
		return KindUnknown
	}

	if isFraction(token) {
		return KindFraction
	}
	if IsColor(token) {
		return KindColor
	}

	tt, rest := firstToken(b)
	switch tt {
	case css.URLToken:
		if len(rest) == 0 {
			return KindURL
		}
	case css.StringToken:
		if len(rest) == 0 {
			return KindString
		}
	case css.FunctionToken:
		if balancedCall(token) {
			return KindFunction
		}
	}

	if css.IsIdent(b) {
		return KindIdent
	}
	return KindUnknown
}

// IsNumber reports whether token is a bare number
func IsNumber(token string) bool {
	b := []byte(token)
	return len(b) > 0 && parse.Number(b) == len(b)
}

// IsColor reports whether token is a color literal: hex, functional notation,
// transparent/currentColor or a named color.
func IsColor(token string) bool {
	if token == "" {
		return false
	}
	if token[0] == '#' {
		hex := token[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return false
		}
		for i := 0; i < len(hex); i++ {
			if !isHexDigit(hex[i]) {
				return false
			}
		}
		return true
	}

	lower := strings.ToLower(token)
	if open := strings.IndexByte(lower, '('); open > 0 {
		return colorFunctions[lower[:open]] && balancedCall(lower)
	}
	return lower == "transparent" || lower == "currentcolor" || namedColors[lower]
}

// firstToken lexes the first CSS token of b and returns what remains after it
func firstToken(b []byte) (css.TokenType, []byte) {
	lexer := css.NewLexer(parse.NewInputBytes(b))
	tt, data := lexer.Next()
	if tt == css.ErrorToken {
		return tt, b
	}
	return tt, b[len(data):]
}

// balancedCall reports whether s is name(...) with balanced parentheses ending at len(s)
func balancedCall(s string) bool {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// isFraction matches "a/b" where both sides are unsigned integers
func isFraction(s string) bool {
	slash := strings.IndexByte(s, '/')
	if slash <= 0 || slash == len(s)-1 {
		return false
	}
	return isDigits(s[:slash]) && isDigits(s[slash+1:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
