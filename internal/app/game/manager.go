// Package game tracks live home-game sessions in memory: seat players,
// append buy-ins, set cash-outs, and settle up through the shared engine.
// State lives here, in the application layer; the settlement core only
// ever sees immutable snapshots.
package game

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankrollbuddy/bankroll/internal/app/settle"
	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// Game is one live session in progress.
type Game struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Players   []domain.Player `json:"players"`
}

// Totals are the whole-table aggregates shown alongside a live game.
// OffBy is the imbalance between cash taken off the table and cash put on
// it; nonzero means someone's entry is wrong (or money walked away).
type Totals struct {
	Players        int     `json:"players"`
	TotalBuyIn     float64 `json:"total_buy_in"`
	TotalCashOut   float64 `json:"total_cash_out"`
	OffBy          float64 `json:"off_by"`
	AverageBuyIn   float64 `json:"average_buy_in"`
	AverageCashOut float64 `json:"average_cash_out"`
	AverageNet     float64 `json:"average_net"`
}

// Manager owns all live games, keyed by ID.
type Manager struct {
	mu    sync.Mutex
	games map[string]*Game
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// Create starts a new empty game.
func (m *Manager) Create() *Game {
	g := &Game{ID: uuid.NewString(), CreatedAt: time.Now()}
	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g
}

// Get returns a snapshot of a game.
func (m *Manager) Get(id string) (Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return Game{}, domain.ErrGameNotFound
	}
	return snapshot(g), nil
}

// AddPlayer seats a new player with no buy-ins and zero cash-out. Blank
// names are rejected; names are unique within a game.
func (m *Manager) AddPlayer(gameID, name string) (domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Player{}, domain.ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return domain.Player{}, domain.ErrGameNotFound
	}
	for _, p := range g.Players {
		if p.Name == name {
			return domain.Player{}, domain.ErrPlayerExists
		}
	}

	p := domain.Player{ID: uuid.NewString(), Name: name}
	g.Players = append(g.Players, p)
	return p, nil
}

// AddBuyIn appends a buy-in amount to a player's ordered list.
func (m *Manager) AddBuyIn(gameID, player string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.findPlayer(gameID, player)
	if err != nil {
		return err
	}
	p.BuyIns = append(p.BuyIns, amount)
	return nil
}

// SetCashOut overwrites a player's cash-out value. It is a single value,
// not a running sum: cashing out twice keeps only the latest entry.
func (m *Manager) SetCashOut(gameID, player string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.findPlayer(gameID, player)
	if err != nil {
		return err
	}
	p.CashOut = amount
	return nil
}

// Totals computes the table aggregates for a game.
func (m *Manager) Totals(gameID string) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return Totals{}, domain.ErrGameNotFound
	}

	t := Totals{Players: len(g.Players)}
	for _, p := range g.Players {
		t.TotalBuyIn += p.TotalBuyIn()
		t.TotalCashOut += p.CashOut
	}
	t.OffBy = t.TotalCashOut - t.TotalBuyIn
	if t.Players > 0 {
		n := float64(t.Players)
		t.AverageBuyIn = t.TotalBuyIn / n
		t.AverageCashOut = t.TotalCashOut / n
		t.AverageNet = t.OffBy / n
	}
	return t, nil
}

// Settle computes the payment list for a game from a snapshot of its
// current players.
func (m *Manager) Settle(gameID string) ([]domain.SettlementTransaction, error) {
	m.mu.Lock()
	g, ok := m.games[gameID]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrGameNotFound
	}
	snap := snapshot(g)
	m.mu.Unlock()

	return settle.Settle(settle.NetPositions(snap.Players)), nil
}

// End removes a finished game.
func (m *Manager) End(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[gameID]; !ok {
		return domain.ErrGameNotFound
	}
	delete(m.games, gameID)
	return nil
}

func (m *Manager) findPlayer(gameID, name string) (*domain.Player, error) {
	g, ok := m.games[gameID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	for i := range g.Players {
		if g.Players[i].Name == name {
			return &g.Players[i], nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

// snapshot deep-copies a game so callers never share slices with live state.
func snapshot(g *Game) Game {
	out := Game{ID: g.ID, CreatedAt: g.CreatedAt, Players: make([]domain.Player, len(g.Players))}
	for i, p := range g.Players {
		cp := p
		cp.BuyIns = append([]float64(nil), p.BuyIns...)
		out.Players[i] = cp
	}
	return out
}
