package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain list",
			input:    "physics,energy,motion",
			expected: []string{"physics", "energy", "motion"},
		},
		{
			name:     "whitespace and empties",
			input:    " physics , , energy ,",
			expected: []string{"physics", "energy"},
		},
		{
			name:     "empty line",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitList(tt.input))
		})
	}
}
