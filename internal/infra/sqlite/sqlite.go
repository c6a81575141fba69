// Package sqlite is the persistence layer: the session log and the
// settlement audit trail, stored in a single SQLite file.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle. All operations hang off it.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema migrations. Parent directories are created as needed.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite handles are not safe for concurrent writers.
	raw.SetMaxOpenConns(1)

	db := &DB{db: raw}
	if err := db.migrate(); err != nil {
		raw.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying handle.
func (db *DB) Close() error { return db.db.Close() }

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Finished-session log
		`CREATE TABLE IF NOT EXISTS sessions (
			id              TEXT PRIMARY KEY,
			game_name       TEXT NOT NULL,
			buy_in_cents    INTEGER NOT NULL DEFAULT 0,
			cash_out_cents  INTEGER NOT NULL DEFAULT 0,
			gain_loss_cents INTEGER NOT NULL DEFAULT 0,
			stakes          TEXT NOT NULL DEFAULT '',
			memorable_hands TEXT NOT NULL DEFAULT '',
			player_notes    TEXT NOT NULL DEFAULT '',
			created_at      TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at)`,

		// Settlement audit trail
		`CREATE TABLE IF NOT EXISTS settlement_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			source       TEXT NOT NULL,
			player_count INTEGER NOT NULL DEFAULT 0,
			tx_count     INTEGER NOT NULL DEFAULT 0,
			imbalance    REAL NOT NULL DEFAULT 0,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
