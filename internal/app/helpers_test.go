package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxInt(t *testing.T) {
	assert.Equal(t, 3, maxInt(3, 2))
	assert.Equal(t, 3, maxInt(2, 3))
	assert.Equal(t, -1, maxInt(-1, -5))
}

func TestTruncateToHeight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "shorter than limit", input: "a\nb", max: 3, expected: "a\nb"},
		{name: "exact", input: "a\nb\nc", max: 3, expected: "a\nb\nc"},
		{name: "trimmed", input: "a\nb\nc\nd", max: 2, expected: "a\nb"},
		{name: "single line", input: "abc", max: 1, expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateToHeight(tt.input, tt.max))
		})
	}
}
