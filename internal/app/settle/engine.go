// Package settle implements the shared settlement core: net position
// calculation over player records and the greedy debt-settlement engine.
// Both the live-game flow and the ledger-import flow adapt their data into
// this package's shapes and call the one engine.
//
// Everything here is pure: inputs are snapshots, outputs are fresh slices,
// and re-running on the same input yields identical results.
package settle

import (
	"math"
	"sort"
	"strings"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// zeroBand is the tolerance under which a balance counts as settled.
// Amounts are native floats, so exact zero cannot be relied on.
const zeroBand = 0.01

// ─── Net Position Calculation ───────────────────────────────────────────────

// NetPositions computes per-player nets from live-game players. Players
// sharing a name merge into one position; order follows first occurrence.
func NetPositions(players []domain.Player) []domain.NetPosition {
	index := make(map[string]int)
	var nets []domain.NetPosition
	for _, p := range players {
		i, ok := index[p.Name]
		if !ok {
			i = len(nets)
			index[p.Name] = i
			nets = append(nets, domain.NetPosition{Name: p.Name})
		}
		nets[i].Net += p.Net()
	}
	return nets
}

// NetPositionsFromLedger computes dollar nets from canonicalized ledger
// rows. The platform exports amounts in cents, so totals divide by 100.
// Nicknames are trimmed; order follows first occurrence in the rows.
func NetPositionsFromLedger(rows []domain.LedgerRow) []domain.NetPosition {
	type totals struct {
		buyIn       float64
		buyOutStack float64
	}
	index := make(map[string]int)
	var order []string
	var sums []totals
	for _, row := range rows {
		name := strings.TrimSpace(row.PlayerNickname)
		i, ok := index[name]
		if !ok {
			i = len(sums)
			index[name] = i
			order = append(order, name)
			sums = append(sums, totals{})
		}
		sums[i].buyIn += float64(row.BuyIn)
		sums[i].buyOutStack += float64(row.BuyOut) + float64(row.Stack)
	}

	nets := make([]domain.NetPosition, len(order))
	for i, name := range order {
		nets[i] = domain.NetPosition{
			Name: name,
			Net:  (sums[i].buyOutStack - sums[i].buyIn) / 100,
		}
	}
	return nets
}

// Imbalance returns the sum of all nets — zero for a session that balances.
// The engine itself never checks this; callers surface it as the
// "we are off by" figure.
func Imbalance(nets []domain.NetPosition) float64 {
	var sum float64
	for _, n := range nets {
		sum += n.Net
	}
	return sum
}

// ─── Settlement Engine ──────────────────────────────────────────────────────

// Settle computes a minimal set of debtor→creditor payments that drives
// every balance to within a cent of zero, provided the input nets sum to
// zero. Zero-net players are ignored. Empty or one-sided input yields no
// transactions.
//
// When total credits and total debits differ, the walk stops as soon as one
// side is exhausted and the leftover balance on the other side is silently
// dropped — no error, no residual transaction. Callers that care must check
// Imbalance before settling.
func Settle(nets []domain.NetPosition) []domain.SettlementTransaction {
	var creditors, debtors []domain.NetPosition
	for _, n := range nets {
		switch {
		case n.Net > 0:
			creditors = append(creditors, n)
		case n.Net < 0:
			debtors = append(debtors, n)
		}
	}

	// Largest receivable first; most negative (largest payable) first.
	// Stable sorts keep input order for equal nets.
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].Net > creditors[j].Net })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].Net < debtors[j].Net })

	var transactions []domain.SettlementTransaction
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := math.Min(creditor.Net, -debtor.Net)
		if amount > 0 {
			transactions = append(transactions, domain.SettlementTransaction{
				From:   debtor.Name,
				To:     creditor.Name,
				Amount: domain.FormatAmount(amount),
				Value:  amount,
			})
			creditor.Net -= amount
			debtor.Net += amount
		}
		if math.Abs(creditor.Net) < zeroBand {
			i++
		}
		if math.Abs(debtor.Net) < zeroBand {
			j++
		}
	}
	return transactions
}
