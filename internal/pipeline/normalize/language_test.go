package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnglish(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"plain english title", "Best Gadget 2024", true},
		{"chinese title", "最好的产品", false},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"mostly digits still passes at half", "USB cable 2m 10x", true},
		{"mixed but mostly non-ascii", "ミニ扇風機 fan", false},
		{"punctuation heavy", "!!!???***###", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEnglish(tt.text))
		})
	}
}
