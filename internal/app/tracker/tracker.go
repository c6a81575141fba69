// Package tracker is the bankroll session log: add a finished session,
// amend it, and roll the history up into stats and a running profit line.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// Store is the persistence the tracker needs. internal/infra/sqlite
// implements it.
type Store interface {
	InsertSession(s domain.Session) error
	UpdateSession(s domain.Session) error
	GetSession(id string) (domain.Session, error)
	DeleteSession(id string) error
	ClearSessions() error
	ListSessions() ([]domain.Session, error)
}

// Service wraps a Store with the session bookkeeping rules.
type Service struct {
	store Store
}

// New creates a tracker service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Add logs a finished session. Gain/loss is derived, never supplied.
func (s *Service) Add(gameName string, buyIn, cashOut float64, stakes string) (domain.Session, error) {
	if gameName == "" {
		return domain.Session{}, domain.ErrEmptyName
	}
	sess := domain.Session{
		ID:        uuid.NewString(),
		GameName:  gameName,
		BuyIn:     domain.CentsFromDollars(buyIn),
		CashOut:   domain.CentsFromDollars(cashOut),
		Stakes:    stakes,
		CreatedAt: time.Now(),
	}
	sess.GainLoss = sess.CashOut - sess.BuyIn
	if err := s.store.InsertSession(sess); err != nil {
		return domain.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Update is a partial amendment of one session. Only non-nil fields change;
// gain/loss is recomputed whenever a financial field moves.
type Update struct {
	GameName       *string
	BuyIn          *float64
	CashOut        *float64
	Stakes         *string
	MemorableHands *string
	PlayerNotes    *string
}

// Update applies an amendment and returns the stored result.
func (s *Service) Update(id string, upd Update) (domain.Session, error) {
	sess, err := s.store.GetSession(id)
	if err != nil {
		return domain.Session{}, err
	}

	if upd.GameName != nil {
		sess.GameName = *upd.GameName
	}
	if upd.Stakes != nil {
		sess.Stakes = *upd.Stakes
	}
	if upd.MemorableHands != nil {
		sess.MemorableHands = *upd.MemorableHands
	}
	if upd.PlayerNotes != nil {
		sess.PlayerNotes = *upd.PlayerNotes
	}
	if upd.BuyIn != nil {
		sess.BuyIn = domain.CentsFromDollars(*upd.BuyIn)
	}
	if upd.CashOut != nil {
		sess.CashOut = domain.CentsFromDollars(*upd.CashOut)
	}
	if upd.BuyIn != nil || upd.CashOut != nil {
		sess.GainLoss = sess.CashOut - sess.BuyIn
	}

	if err := s.store.UpdateSession(sess); err != nil {
		return domain.Session{}, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

// Delete removes one session.
func (s *Service) Delete(id string) error { return s.store.DeleteSession(id) }

// Clear wipes the whole log.
func (s *Service) Clear() error { return s.store.ClearSessions() }

// List returns all sessions, oldest first.
func (s *Service) List() ([]domain.Session, error) { return s.store.ListSessions() }

// Noted returns sessions carrying any note text, for the notes view.
func (s *Service) Noted() ([]domain.Session, error) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		return nil, err
	}
	var out []domain.Session
	for _, sess := range sessions {
		if sess.HasNotes() {
			out = append(out, sess)
		}
	}
	return out, nil
}

// ─── Aggregates ─────────────────────────────────────────────────────────────

// Stats are the whole-log aggregates for the stats page.
type Stats struct {
	GamesPlayed     int     `json:"games_played"`
	TotalBuyIn      float64 `json:"total_buy_in"`
	TotalCashOut    float64 `json:"total_cash_out"`
	TotalGainLoss   float64 `json:"total_gain_loss"`
	AverageBuyIn    float64 `json:"average_buy_in"`
	AverageCashOut  float64 `json:"average_cash_out"`
	AverageGainLoss float64 `json:"average_gain_loss"`
}

// Stats rolls the session log up into totals and per-game averages.
func (s *Service) Stats() (Stats, error) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	st.GamesPlayed = len(sessions)
	var buyIn, cashOut, gainLoss domain.Cents
	for _, sess := range sessions {
		buyIn += sess.BuyIn
		cashOut += sess.CashOut
		gainLoss += sess.GainLoss
	}
	st.TotalBuyIn = buyIn.Dollars()
	st.TotalCashOut = cashOut.Dollars()
	st.TotalGainLoss = gainLoss.Dollars()
	if st.GamesPlayed > 0 {
		n := float64(st.GamesPlayed)
		st.AverageBuyIn = st.TotalBuyIn / n
		st.AverageCashOut = st.TotalCashOut / n
		st.AverageGainLoss = st.TotalGainLoss / n
	}
	return st, nil
}

// ProfitSeries is the cumulative gain/loss after each session, with the
// high-water and low-water points marked for the chart.
type ProfitSeries struct {
	Labels   []string  `json:"labels"`
	Running  []float64 `json:"running"`
	MaxIndex int       `json:"max_index"`
	MinIndex int       `json:"min_index"`
}

// RunningProfit computes the profit line in session order.
func (s *Service) RunningProfit() (ProfitSeries, error) {
	sessions, err := s.store.ListSessions()
	if err != nil {
		return ProfitSeries{}, err
	}

	series := ProfitSeries{MaxIndex: -1, MinIndex: -1}
	var total domain.Cents
	for i, sess := range sessions {
		total += sess.GainLoss
		series.Labels = append(series.Labels, sess.GameName)
		series.Running = append(series.Running, total.Dollars())
		if series.MaxIndex < 0 || series.Running[i] > series.Running[series.MaxIndex] {
			series.MaxIndex = i
		}
		if series.MinIndex < 0 || series.Running[i] < series.Running[series.MinIndex] {
			series.MinIndex = i
		}
	}
	return series, nil
}
