package ledger

import (
	"strings"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// DefaultThreshold is the similarity score at or above which two nicknames
// are presumed to belong to the same player.
const DefaultThreshold = 0.7

// ScoreFunc scores the similarity of two names in [0, 1].
type ScoreFunc func(a, b string) float64

// Resolver groups nicknames that likely refer to the same person.
// The similarity function is injected; see internal/infra/similarity for
// the provided scorers.
type Resolver struct {
	sim       ScoreFunc
	threshold float64
}

// NewResolver builds a resolver. A non-positive threshold falls back to
// DefaultThreshold.
func NewResolver(sim ScoreFunc, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{sim: sim, threshold: threshold}
}

// GroupAliases clusters nicknames with a single greedy pass. An unclaimed
// name seeds a new group; every later unclaimed name scoring at or above the
// threshold against the seed (case-insensitively) joins it. Similarity is
// measured against the seed only, never transitively across members — a
// known simplification, mitigated by the human confirmation step.
//
// Every input name lands in exactly one group; groups are ordered by their
// seed's position in names; a size-1 group is valid. The canonical name
// starts as the seed and totals sum the per-nickname summaries.
func (r *Resolver) GroupAliases(names []string, summaries map[string]domain.AliasSummary) []domain.AliasGroup {
	claimed := make(map[string]bool, len(names))
	var groups []domain.AliasGroup

	for _, name := range names {
		if claimed[name] {
			continue
		}
		members := []string{name}
		claimed[name] = true

		for _, other := range names {
			if claimed[other] {
				continue
			}
			score := r.sim(strings.ToLower(name), strings.ToLower(other))
			if score >= r.threshold {
				members = append(members, other)
				claimed[other] = true
			}
		}

		var totals domain.AliasSummary
		for _, m := range members {
			totals.Add(summaries[m])
		}
		groups = append(groups, domain.AliasGroup{
			Members:   members,
			Canonical: name,
			Totals:    totals,
		})
	}
	return groups
}
