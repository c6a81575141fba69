// Settlement audit trail operations.
package sqlite

import (
	"fmt"
	"time"
)

// SettlementRun is one recorded settlement computation: who asked for it,
// how big the table was, and how far off balance the inputs were.
type SettlementRun struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	PlayerCount int       `json:"player_count"`
	TxCount     int       `json:"tx_count"`
	Imbalance   float64   `json:"imbalance"`
	CreatedAt   time.Time `json:"created_at"`
}

// InsertSettlementRun appends one run to the audit trail.
func (db *DB) InsertSettlementRun(source string, playerCount, txCount int, imbalance float64) error {
	_, err := db.db.Exec(`
		INSERT INTO settlement_runs (source, player_count, tx_count, imbalance)
		VALUES (?, ?, ?, ?)
	`, source, playerCount, txCount, imbalance)
	if err != nil {
		return fmt.Errorf("insert settlement run: %w", err)
	}
	return nil
}

// RecentSettlementRuns returns the latest runs, newest first.
func (db *DB) RecentSettlementRuns(limit int) ([]SettlementRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.db.Query(`
		SELECT id, source, player_count, tx_count, imbalance, created_at
		FROM settlement_runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list settlement runs: %w", err)
	}
	defer rows.Close()

	var out []SettlementRun
	for rows.Next() {
		var r SettlementRun
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Source, &r.PlayerCount, &r.TxCount, &r.Imbalance, &createdAt); err != nil {
			return nil, fmt.Errorf("scan settlement run: %w", err)
		}
		if ts, perr := time.Parse("2006-01-02 15:04:05", createdAt); perr == nil {
			r.CreatedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
