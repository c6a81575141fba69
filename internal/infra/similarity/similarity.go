// Package similarity provides the pluggable name-similarity scorers used by
// the identity resolver. Scores are in [0, 1]; callers pass already
// case-folded input when they want case-insensitive matching.
package similarity

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Dice returns the Sørensen–Dice coefficient over character bigrams, the
// same scoring family the upstream ledger tooling uses. Whitespace is
// ignored; strings shorter than two characters only match exactly.
func Dice(a, b string) float64 {
	a = stripSpace(a)
	b = stripSpace(b)

	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigrams := make(map[string]int)
	for i := 0; i+2 <= len(a); i++ {
		bigrams[a[i:i+2]]++
	}

	matches := 0
	for i := 0; i+2 <= len(b); i++ {
		bg := b[i : i+2]
		if bigrams[bg] > 0 {
			bigrams[bg]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(len(a)+len(b)-2)
}

// Levenshtein returns an edit-distance score normalized to [0, 1]:
// 1 − distance/maxLen. Two empty strings score 0.
func Levenshtein(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// ByName resolves a scorer by its config name. Unknown names fall back to
// the dice scorer.
func ByName(name string) func(a, b string) float64 {
	switch strings.ToLower(name) {
	case "levenshtein":
		return Levenshtein
	default:
		return Dice
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
