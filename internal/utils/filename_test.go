package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name`,
			expected: "filename",
		},
		{
			name:     "removes ellipses",
			input:    "The Title... Continued",
			expected: "The Title Continued",
		},
		{
			name:     "removes repeated ellipses",
			input:    "Dots......Everywhere",
			expected: "DotsEverywhere",
		},
		{
			name:     "trims whitespace",
			input:    "  filename  ",
			expected: "filename",
		},
		{
			name:     "returns Untitled for empty",
			input:    "",
			expected: "Untitled",
		},
		{
			name:     "returns Untitled for only special chars",
			input:    `<>:?*...`,
			expected: "Untitled",
		},
		{
			name:     "truncates long names",
			input:    strings.Repeat("a", 250),
			expected: strings.Repeat("a", 100),
		},
		{
			name:     "handles unicode",
			input:    "Sapiens: Uma Breve História da Humanidade",
			expected: "Sapiens Uma Breve História da Humanidade",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFilename(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeFilename_NeverContainsInvalidChars(t *testing.T) {
	inputs := []string{
		`a<b>c:d"e/f\g|h?i*j`,
		strings.Repeat(`x/`, 300),
		"...///...",
	}

	for _, input := range inputs {
		result := SanitizeFilename(input)
		assert.NotContains(t, result, `<`)
		assert.NotContains(t, result, `>`)
		assert.NotContains(t, result, `:`)
		assert.NotContains(t, result, `"`)
		assert.NotContains(t, result, `/`)
		assert.NotContains(t, result, `\`)
		assert.NotContains(t, result, `|`)
		assert.NotContains(t, result, `?`)
		assert.NotContains(t, result, `*`)
		assert.LessOrEqual(t, len([]rune(result)), 100)
	}
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"Regular Title",
		`Odd <Title>... with "everything"`,
		strings.Repeat("é", 150),
		"",
	}

	for _, input := range inputs {
		once := SanitizeFilename(input)
		twice := SanitizeFilename(once)
		assert.Equal(t, once, twice, "not idempotent for %q", input)
	}
}
