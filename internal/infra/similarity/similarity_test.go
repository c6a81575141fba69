package similarity

import (
	"math"
	"testing"
)

func TestDice(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "mike_p", "mike_p", 1},
		{"no overlap", "abc", "xyz", 0},
		{"both empty", "", "", 0},
		{"one empty", "mike", "", 0},
		{"single char", "a", "ab", 0},
		{"classic quarter", "night", "nacht", 0.25},
		{"whitespace ignored", "mike p", "mikep", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dice(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Dice(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDice_AliasPair(t *testing.T) {
	// The pair the resolver must group at the default 0.7 threshold.
	if got := Dice("mike_p", "mike_p99"); got < 0.7 {
		t.Errorf("Dice(mike_p, mike_p99) = %v, want >= 0.7", got)
	}
	if got := Dice("mike_p", "sarah"); got >= 0.7 {
		t.Errorf("Dice(mike_p, sarah) = %v, want < 0.7", got)
	}
}

func TestDice_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"mike_p", "mike_p99"},
		{"anna", "annna"},
		{"night", "nacht"},
	}
	for _, p := range pairs {
		if ab, ba := Dice(p[0], p[1]), Dice(p[1], p[0]); math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Dice not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestDice_Range(t *testing.T) {
	pairs := [][2]string{
		{"a", "a"}, {"ab", "ba"}, {"mike_p", "mike_p99"}, {"", "x"},
	}
	for _, p := range pairs {
		got := Dice(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Dice(%q, %q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "sarah", "sarah", 1},
		{"kitten sitting", "kitten", "sitting", 1 - 3.0/7.0},
		{"both empty", "", "", 0},
		{"one empty", "abc", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Levenshtein(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Levenshtein(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	if got := ByName("levenshtein")("sarah", "sarah"); got != 1 {
		t.Errorf("levenshtein scorer identical = %v, want 1", got)
	}
	// Unknown names fall back to dice.
	if got := ByName("whatever")("night", "nacht"); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("fallback scorer = %v, want dice 0.25", got)
	}
}
