package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    bool
	}{
		{"star matches anything", "App.Models", "*", true},
		{"star matches empty", "", "*", true},
		{"exact literal", "App.Models", "App.Models", true},
		{"literal must be suffix", "App.Models.Dto", "App.Models", false},
		{"literal as suffix of longer text", "My.App.Models", "App.Models", true},
		{"trailing star prefix", "App.Models", "App.*", true},
		{"trailing star is not anchored at start", "Legacy.App.Models", "App.*", true},
		{"trailing star missing segment", "Core.Models", "App.*", false},
		{"leading star suffix", "App.Models", "*.Models", true},
		{"leading star wrong suffix", "App.Models.Dto", "*.Models", false},
		{"segments in order", "App.Core.Models", "App*Models", true},
		{"segments out of order", "Models.Core.App", "App*Models", false},
		{"segments must not overlap", "AB", "AB*B", false},
		{"empty pattern", "anything", "", true},
		{"empty pattern empty text", "", "", true},
		{"empty text with literal", "", "App", false},
		{"double star", "App.Models", "App**", true},
		{"middle star only", "AppModels", "App*Models", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.text, tt.pattern))
		})
	}
}

func TestMatch_LiteralPatternIsSuffixCheck(t *testing.T) {
	texts := []string{"", "A", "App", "App.Models", "Models.App", "xApp", "Appx"}
	patterns := []string{"App", "Models", "A", "x"}
	for _, text := range texts {
		for _, p := range patterns {
			want := len(text) >= len(p) && text[len(text)-len(p):] == p
			assert.Equal(t, want, Match(text, p), "Match(%q, %q)", text, p)
		}
	}
}
