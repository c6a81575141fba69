// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture: it depends on nothing.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// ─── Session Types ──────────────────────────────────────────────────────────

// Session is one logged bankroll session (a single sitting at a game).
type Session struct {
	ID             string    `json:"id"`
	GameName       string    `json:"game_name"`
	BuyIn          Cents     `json:"buy_in"`
	CashOut        Cents     `json:"cash_out"`
	Stakes         string    `json:"stakes,omitempty"`
	GainLoss       Cents     `json:"gain_loss"`
	MemorableHands string    `json:"memorable_hands,omitempty"`
	PlayerNotes    string    `json:"player_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasNotes reports whether the session carries any non-blank note text.
func (s Session) HasNotes() bool {
	return strings.TrimSpace(s.MemorableHands) != "" || strings.TrimSpace(s.PlayerNotes) != ""
}

// ─── Live Game Types ────────────────────────────────────────────────────────

// Player is one participant in a live game session. Buy-ins accumulate in an
// ordered list; the cash-out is a single overwritable value, not a sum.
type Player struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	BuyIns  []float64 `json:"buy_ins"`
	CashOut float64   `json:"cash_out"`
}

// TotalBuyIn returns the sum of all recorded buy-ins.
func (p Player) TotalBuyIn() float64 {
	var total float64
	for _, b := range p.BuyIns {
		total += b
	}
	return total
}

// Net returns the player's gain or loss for the session.
func (p Player) Net() float64 {
	return p.CashOut - p.TotalBuyIn()
}

// ─── Ledger Import Types ────────────────────────────────────────────────────

// LedgerRow is one raw row from an exported platform ledger: one
// hand/event per player. Numeric fields tolerate malformed input.
type LedgerRow struct {
	PlayerNickname string `json:"player_nickname"`
	BuyIn          Amount `json:"buy_in"`
	BuyOut         Amount `json:"buy_out"`
	Stack          Amount `json:"stack"`
}

// AliasSummary holds aggregated financials for one nickname or alias group.
// Values are in the ledger's native unit (the platform exports cents).
type AliasSummary struct {
	BuyIn    float64 `json:"buy_in"`
	BuyOut   float64 `json:"buy_out"`
	Stack    float64 `json:"stack"`
	Combined float64 `json:"combined"` // buy_out + stack
}

// Add accumulates another summary into this one.
func (a *AliasSummary) Add(b AliasSummary) {
	a.BuyIn += b.BuyIn
	a.BuyOut += b.BuyOut
	a.Stack += b.Stack
	a.Combined += b.Combined
}

// AliasGroup is a cluster of raw nicknames believed to denote one real
// player. Canonical defaults to the seed nickname and stays editable until
// the grouping is confirmed.
type AliasGroup struct {
	Members   []string     `json:"members"`
	Canonical string       `json:"canonical"`
	Totals    AliasSummary `json:"totals"`
}

// CanonicalSummary is an alias group flattened under its confirmed name.
// Groups that share a canonical name merge into one summary.
type CanonicalSummary struct {
	Name    string       `json:"name"`
	Aliases []string     `json:"aliases"`
	Totals  AliasSummary `json:"totals"`
}

// ─── Settlement Types ───────────────────────────────────────────────────────

// NetPosition is one player's net gain (>0) or loss (<0) in dollars.
type NetPosition struct {
	Name string  `json:"name"`
	Net  float64 `json:"net"`
}

// SettlementTransaction is one peer-to-peer payment instruction produced by
// the settlement engine. Amount carries the 2-decimal display string; Value
// is the numeric amount in dollars.
type SettlementTransaction struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount string  `json:"amount"`
	Value  float64 `json:"value"`
}

// ─── Money ──────────────────────────────────────────────────────────────────

// Cents is a monetary amount tracked as integer cents to avoid
// floating-point drift in storage. JSON round-trips as dollars.
type Cents int64

// Dollars converts to a dollar amount.
func (c Cents) Dollars() float64 { return float64(c) / 100 }

// String formats the amount as dollars with two decimal places.
func (c Cents) String() string {
	return strconv.FormatFloat(c.Dollars(), 'f', 2, 64)
}

// MarshalJSON renders the amount as a dollar number with cent precision.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a dollar number or numeric string, rounding to the
// nearest cent. Malformed input decodes to zero, like ledger fields.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*c = CentsFromDollars(ParseAmount(s))
	return nil
}

// CentsFromDollars rounds a dollar amount to the nearest cent.
func CentsFromDollars(d float64) Cents {
	if d < 0 {
		return Cents(d*100 - 0.5)
	}
	return Cents(d*100 + 0.5)
}

// FormatAmount renders a dollar value with two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ─── Tolerant Numeric Parsing ───────────────────────────────────────────────

// Amount is a numeric field that tolerates string, number, null, or junk
// input. Anything unparseable decodes to zero: imported ledgers are
// free-form and a bad cell must never fail the import.
type Amount float64

// UnmarshalJSON never returns an error; malformed values become 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*a = Amount(ParseAmount(s))
	return nil
}

// ParseAmount parses the longest leading numeric prefix of s, returning 0
// when no number is present: "12.5abc" → 12.5, "" → 0, "junk" → 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	end := 0
	seenDigit := false
	seenDot := false
loop:
	for i, r := range s {
		switch {
		case r == '-' || r == '+':
			if i != 0 {
				break loop
			}
		case r == '.':
			if seenDot {
				break loop
			}
			seenDot = true
		case r >= '0' && r <= '9':
			seenDigit = true
		default:
			break loop
		}
		end = i + 1
	}
	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimRight(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}
