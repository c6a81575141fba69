// Session log operations. Implements the tracker.Store contract.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// InsertSession stores one finished session.
func (db *DB) InsertSession(s domain.Session) error {
	_, err := db.db.Exec(`
		INSERT INTO sessions (id, game_name, buy_in_cents, cash_out_cents, gain_loss_cents,
			stakes, memorable_hands, player_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.GameName, int64(s.BuyIn), int64(s.CashOut), int64(s.GainLoss),
		s.Stakes, s.MemorableHands, s.PlayerNotes, s.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// UpdateSession overwrites a stored session in place.
func (db *DB) UpdateSession(s domain.Session) error {
	res, err := db.db.Exec(`
		UPDATE sessions SET game_name = ?, buy_in_cents = ?, cash_out_cents = ?,
			gain_loss_cents = ?, stakes = ?, memorable_hands = ?, player_notes = ?
		WHERE id = ?
	`, s.GameName, int64(s.BuyIn), int64(s.CashOut), int64(s.GainLoss),
		s.Stakes, s.MemorableHands, s.PlayerNotes, s.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// GetSession retrieves one session by ID.
func (db *DB) GetSession(id string) (domain.Session, error) {
	row := db.db.QueryRow(`
		SELECT id, game_name, buy_in_cents, cash_out_cents, gain_loss_cents,
			stakes, memorable_hands, player_notes, created_at
		FROM sessions WHERE id = ?
	`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// DeleteSession removes one session by ID.
func (db *DB) DeleteSession(id string) error {
	res, err := db.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// ClearSessions wipes the whole session log.
func (db *DB) ClearSessions() error {
	_, err := db.db.Exec(`DELETE FROM sessions`)
	if err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

// ListSessions returns all sessions, oldest first. Insertion order and
// created_at order agree for this app, so rowid breaks same-second ties.
func (db *DB) ListSessions() ([]domain.Session, error) {
	rows, err := db.db.Query(`
		SELECT id, game_name, buy_in_cents, cash_out_cents, gain_loss_cents,
			stakes, memorable_hands, player_notes, created_at
		FROM sessions ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var s domain.Session
	var buyIn, cashOut, gainLoss int64
	var createdAt string
	err := row.Scan(&s.ID, &s.GameName, &buyIn, &cashOut, &gainLoss,
		&s.Stakes, &s.MemorableHands, &s.PlayerNotes, &createdAt)
	if err != nil {
		return domain.Session{}, err
	}
	s.BuyIn = domain.Cents(buyIn)
	s.CashOut = domain.Cents(cashOut)
	s.GainLoss = domain.Cents(gainLoss)
	if ts, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		s.CreatedAt = ts
	}
	return s, nil
}
