package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Link", 2.4},             // generic, upper, single word
		{"Article", 2.7},          // generic, upper, single word
		{"QuantumComputing", 4.6}, // non-generic, upper, not a single capitalized word
		{"Travel", 4.6},           // non-generic, upper, single word
		{"travel", 2.6},           // non-generic only
		{"To Read", 3.7},          // non-generic, upper, two words
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.text), 1e-9)
		})
	}
}

func TestRankAndSelect(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		limit      int
		want       []string
	}{
		{
			name:       "specific beats generic",
			candidates: []string{"Link", "Article", "QuantumComputing"},
			limit:      1,
			want:       []string{"QuantumComputing"},
		},
		{
			name:       "equal scores keep input order",
			candidates: []string{"Alpha", "Bravo", "Delta"},
			limit:      2,
			want:       []string{"Alpha", "Bravo"},
		},
		{
			name:       "empty and duplicate dropped",
			candidates: []string{"", "  ", "Travel", "Travel", "travel"},
			limit:      5,
			want:       []string{"Travel", "travel"},
		},
		{
			name:       "fewer than limit",
			candidates: []string{"Video"},
			limit:      3,
			want:       []string{"Video"},
		},
		{name: "no candidates", candidates: nil, limit: 2, want: []string{}},
		{name: "zero limit", candidates: []string{"Travel"}, limit: 0, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RankAndSelect(tt.candidates, tt.limit))
		})
	}
}

func TestRankAndSelect_Properties(t *testing.T) {
	inputs := [][]string{
		{"Technology", "Learning", "Tutorial", "Learning", "Machine"},
		{"Link", "Link", "Document", "Page"},
		{"a", "B", "Cc", "dd", "Ee", "a"},
	}
	for _, in := range inputs {
		for n := 0; n <= len(in)+1; n++ {
			got := RankAndSelect(in, n)
			assert.LessOrEqual(t, len(got), n)
			seen := make(map[string]bool)
			for _, g := range got {
				assert.Contains(t, in, g)
				assert.False(t, seen[g], "duplicate %q", g)
				seen[g] = true
			}
		}
	}
}
