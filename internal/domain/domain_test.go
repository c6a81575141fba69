package domain

import (
	"encoding/json"
	"testing"
)

// ─── Money Tests ────────────────────────────────────────────────────────────

func TestCents_String(t *testing.T) {
	tests := []struct {
		cents Cents
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{12345, "123.45"},
		{-3050, "-30.50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.cents.String(); got != tt.want {
				t.Errorf("Cents(%d).String() = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestCentsFromDollars_Rounding(t *testing.T) {
	tests := []struct {
		dollars float64
		want    Cents
	}{
		{0, 0},
		{12.34, 1234},
		{19.99, 1999},
		{-19.99, -1999},
		{0.1 + 0.2, 30}, // classic float drift must not leak into storage
	}
	for _, tt := range tests {
		if got := CentsFromDollars(tt.dollars); got != tt.want {
			t.Errorf("CentsFromDollars(%v) = %d, want %d", tt.dollars, got, tt.want)
		}
	}
}

func TestCents_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Cents(1999))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "19.99" {
		t.Errorf("marshal = %s, want 19.99", b)
	}

	var c Cents
	if err := json.Unmarshal([]byte(`19.99`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != 1999 {
		t.Errorf("unmarshal 19.99 = %d cents, want 1999", c)
	}
}

// ─── ParseAmount Tests ──────────────────────────────────────────────────────

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"12.50", 12.5},
		{"  7 ", 7},
		{"-3.25", -3.25},
		{"+4", 4},
		{"12.5abc", 12.5}, // longest numeric prefix
		{"5.", 5},
		{"", 0},
		{"null", 0},
		{"n/a", 0},
		{"abc", 0},
		{"-", 0},
		{".", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseAmount(tt.input); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAmount_UnmarshalNeverFails(t *testing.T) {
	var row LedgerRow
	raw := `{"player_nickname":"Mike_P","buy_in":"2000","buy_out":null,"stack":"garbage"}`
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if row.BuyIn != 2000 {
		t.Errorf("BuyIn = %v, want 2000", row.BuyIn)
	}
	if row.BuyOut != 0 || row.Stack != 0 {
		t.Errorf("malformed fields should decode to 0, got buy_out=%v stack=%v", row.BuyOut, row.Stack)
	}
}

// ─── Player Tests ───────────────────────────────────────────────────────────

func TestPlayer_Totals(t *testing.T) {
	p := Player{Name: "Alice", BuyIns: []float64{50, 25, 25}, CashOut: 130}
	if got := p.TotalBuyIn(); got != 100 {
		t.Errorf("TotalBuyIn() = %v, want 100", got)
	}
	if got := p.Net(); got != 30 {
		t.Errorf("Net() = %v, want 30", got)
	}
}

func TestPlayer_NoBuyIns(t *testing.T) {
	p := Player{Name: "Bob"}
	if got := p.Net(); got != 0 {
		t.Errorf("Net() = %v, want 0", got)
	}
}

// ─── Session Tests ──────────────────────────────────────────────────────────

func TestSession_HasNotes(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{"no notes", Session{}, false},
		{"whitespace only", Session{MemorableHands: "   "}, false},
		{"memorable hands", Session{MemorableHands: "flopped quads"}, true},
		{"player notes", Session{PlayerNotes: "Bob bluffs rivers"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.HasNotes(); got != tt.want {
				t.Errorf("HasNotes() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ─── AliasSummary Tests ─────────────────────────────────────────────────────

func TestAliasSummary_Add(t *testing.T) {
	a := AliasSummary{BuyIn: 1000, BuyOut: 500, Stack: 200, Combined: 700}
	a.Add(AliasSummary{BuyIn: 500, BuyOut: 300, Stack: 100, Combined: 400})
	want := AliasSummary{BuyIn: 1500, BuyOut: 800, Stack: 300, Combined: 1100}
	if a != want {
		t.Errorf("Add() = %+v, want %+v", a, want)
	}
}

// ─── Error Tests ────────────────────────────────────────────────────────────

func TestSentinelErrors(t *testing.T) {
	errs := []struct {
		name string
		err  error
	}{
		{"ErrSessionNotFound", ErrSessionNotFound},
		{"ErrGameNotFound", ErrGameNotFound},
		{"ErrPlayerExists", ErrPlayerExists},
		{"ErrEmptyName", ErrEmptyName},
		{"ErrImportNotFound", ErrImportNotFound},
		{"ErrGroupingConfirmed", ErrGroupingConfirmed},
		{"ErrGroupingPending", ErrGroupingPending},
		{"ErrGroupIndex", ErrGroupIndex},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Errorf("%s is nil", tt.name)
			}
			if tt.err.Error() == "" {
				t.Errorf("%s.Error() is empty", tt.name)
			}
		})
	}
}
