package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \t\n ", want: ""},
		{name: "collapses runs", input: "Get   started\n\ntoday", want: "Get started today"},
		{name: "trims ends", input: "  hello world  ", want: "hello world"},
		{name: "non-breaking space", input: "30\u00a0day\u00a0guarantee", want: "30 day guarantee"},
		{name: "zero width space", input: "risk\u200bfree", want: "risk free"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   "))
	assert.Equal(t, 1, CountWords("word"))
	assert.Equal(t, 4, CountWords("  one two\tthree\nfour "))
	assert.Equal(t, 3, CountWords("10x faster results"))
}
