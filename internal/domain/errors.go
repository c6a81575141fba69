package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency. The settlement core
// itself never returns errors: degenerate input degrades to empty output.

var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Live game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerExists   = errors.New("player already seated in this game")
	ErrPlayerNotFound = errors.New("player not found in this game")
	ErrEmptyName      = errors.New("name must not be blank")

	// Import / grouping errors
	ErrImportNotFound    = errors.New("import not found")
	ErrGroupingConfirmed = errors.New("grouping already confirmed")
	ErrGroupingPending   = errors.New("grouping not yet confirmed")
	ErrGroupIndex        = errors.New("alias group index out of range")
)
