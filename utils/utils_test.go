package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeChannelName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple name",
			input:    "Maria",
			expected: "maria",
		},
		{
			name:     "Name with spaces",
			input:    "Maria Silva",
			expected: "maria-silva",
		},
		{
			name:     "Accented characters stripped",
			input:    "João Conceição",
			expected: "joo-conceio",
		},
		{
			name:     "Surrounding whitespace",
			input:    "  Ana  ",
			expected: "ana",
		},
		{
			name:     "Only invalid characters falls back",
			input:    "!!!",
			expected: "atendente",
		},
		{
			name:     "Empty falls back",
			input:    "",
			expected: "atendente",
		},
		{
			name:     "Long name truncated",
			input:    "abcdefghijklmnopqrstuvwxyz",
			expected: "abcdefghijklmnopqrstu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeChannelName(tt.input))
		})
	}
}

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() {
		AssertInvariant(true, "should not panic")
	})
	assert.PanicsWithValue(t, "invariant violated - boom", func() {
		AssertInvariant(false, "boom")
	})
}
