package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDismissalKind(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind DismissalKind
		ok   bool
	}{
		{"bowled", "Bowled", DismissalBowled, true},
		{"bowled in sentence", "b Bumrah (bowled)", DismissalBowled, true},
		{"caught", "Caught by Dhoni", DismissalCaught, true},
		{"caught and bowled ranks bowled", "caught and bowled", DismissalBowled, true},
		{"lbw exact", "lbw", DismissalLBW, true},
		{"lbw uppercase", "LBW", DismissalLBW, true},
		{"lbw padded", "  lbw  ", DismissalLBW, true},
		{"lbw in sentence does not match", "not out (lbw appeal)", "", false},
		{"run out", "Run Out (Jadeja)", DismissalRunOut, true},
		{"runout one word", "runout", DismissalRunOut, true},
		{"stumped", "stumped MS Dhoni", DismissalStumped, true},
		{"hit wicket", "Hit Wicket", DismissalHitWicket, true},
		{"retired hurt", "Retired Hurt", DismissalRetiredHurt, true},
		{"obstructing", "obstructing the field", DismissalObstructingField, true},
		{"hit ball twice", "hit ball twice", DismissalHitBallTwice, true},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"unknown", "timed out", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := ParseDismissalKind(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
