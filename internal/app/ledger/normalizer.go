// Package ledger implements the import side of the reconciliation pipeline:
// normalizing raw platform export rows into per-nickname summaries, fuzzy
// alias grouping with human confirmation, and the import workflow state.
package ledger

import (
	"strings"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// Normalize aggregates raw export rows into one financial summary per
// distinct trimmed nickname. Matching here is exact and case-sensitive —
// fuzzy identity resolution happens afterwards, over these keys.
//
// The returned order lists nicknames by first occurrence; the resolver
// depends on it for deterministic grouping. Pure aggregation, no errors:
// malformed numeric cells already decoded to zero.
func Normalize(rows []domain.LedgerRow) (map[string]domain.AliasSummary, []string) {
	summaries := make(map[string]domain.AliasSummary)
	var order []string

	for _, row := range rows {
		name := strings.TrimSpace(row.PlayerNickname)
		s, ok := summaries[name]
		if !ok {
			order = append(order, name)
		}
		s.BuyIn += float64(row.BuyIn)
		s.BuyOut += float64(row.BuyOut)
		s.Stack += float64(row.Stack)
		s.Combined = s.BuyOut + s.Stack
		summaries[name] = s
	}
	return summaries, order
}
