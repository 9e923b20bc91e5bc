package atomcss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		token string
		want  ValueKind
	}{
		{"10", KindNumber},
		{"-1.5", KindNumber},
		{"50%", KindPercentage},
		{"10px", KindLength},
		{"2rem", KindLength},
		{"1fr", KindLength},
		{"200ms", KindTime},
		{"45deg", KindAngle},
		{"2x", KindResolution},
		{"1/2", KindFraction},
		{"#fff", KindColor},
		{"#ccf654", KindColor},
		{"rgb(75,104,229)", KindColor},
		{"oklch(70% 0.1 200)", KindColor},
		{"red", KindColor},
		{"currentColor", KindColor},
		{"transparent", KindColor},
		{"url(a.png)", KindURL},
		{`"hello"`, KindString},
		{"auto", KindIdent},
		{"calc(100% - 1rem)", KindFunction},
		{"10foo", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.token), "Classify(%q)", tt.token)
		})
	}
}

func TestIsColor(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"#abc", true},
		{"#abcd", true},
		{"#aabbcc", true},
		{"#aabbccdd", true},
		{"#abcde", false},
		{"#xyz", false},
		{"hsl(120 50% 50%)", true},
		{"rgb(1,2,3", false},
		{"rebeccapurple", true},
		{"RED", true},
		{"blur(2px)", false},
		{"primary", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, IsColor(tt.token))
		})
	}
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber("4"))
	assert.True(t, IsNumber("0.25"))
	assert.False(t, IsNumber("4px"))
	assert.False(t, IsNumber(""))
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "color", KindColor.String())
	assert.Equal(t, "unknown", ValueKind(99).String())
}
