package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

// ─── Import Workflow ────────────────────────────────────────────────────────

// Import is one loaded ledger export moving through the grouping workflow:
// rows → summaries → suggested alias groups → (renames) → confirm → settle.
// Groups stay editable until Confirm; after that the alias→canonical mapping
// is frozen and the rows are rewritten to canonical names.
//
// Imports are shared between concurrent HTTP requests, so all workflow
// state is guarded by the import's own mutex.
type Import struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	rows      []domain.LedgerRow
	groups    []domain.AliasGroup
	confirmed bool
	summaries map[string]domain.AliasSummary
}

// Summaries returns the per-nickname aggregates computed at load time.
// The map is never modified after load.
func (im *Import) Summaries() map[string]domain.AliasSummary { return im.summaries }

// Groups returns a snapshot of the current alias groups.
func (im *Import) Groups() []domain.AliasGroup {
	im.mu.Lock()
	defer im.mu.Unlock()
	return append([]domain.AliasGroup(nil), im.groups...)
}

// Confirmed reports whether the grouping has been frozen.
func (im *Import) Confirmed() bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.confirmed
}

// Rename sets the canonical name for one suggested group. Rejected once the
// grouping is confirmed, or for a blank name.
func (im *Import) Rename(index int, canonical string) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.confirmed {
		return domain.ErrGroupingConfirmed
	}
	if index < 0 || index >= len(im.groups) {
		return domain.ErrGroupIndex
	}
	canonical = strings.TrimSpace(canonical)
	if canonical == "" {
		return domain.ErrEmptyName
	}
	im.groups[index].Canonical = canonical
	return nil
}

// Confirm freezes the alias→canonical mapping and rewrites every row's
// nickname to its canonical name. Idempotent: confirming twice is a no-op.
func (im *Import) Confirm() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.confirmed {
		return
	}
	mapping := make(map[string]string)
	for _, g := range im.groups {
		for _, alias := range g.Members {
			mapping[alias] = g.Canonical
		}
	}
	for i, row := range im.rows {
		original := strings.TrimSpace(row.PlayerNickname)
		if canonical, ok := mapping[original]; ok {
			im.rows[i].PlayerNickname = canonical
		}
	}
	im.confirmed = true
}

// ConfirmedRows returns a snapshot of the canonicalized rows, or
// ErrGroupingPending while the grouping is still editable.
func (im *Import) ConfirmedRows() ([]domain.LedgerRow, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if !im.confirmed {
		return nil, domain.ErrGroupingPending
	}
	return append([]domain.LedgerRow(nil), im.rows...), nil
}

// Aggregated merges groups by canonical name, so two groups the user pointed
// at the same player combine into one summary.
func (im *Import) Aggregated() []domain.CanonicalSummary {
	im.mu.Lock()
	defer im.mu.Unlock()
	index := make(map[string]int)
	var out []domain.CanonicalSummary
	for _, g := range im.groups {
		i, ok := index[g.Canonical]
		if !ok {
			i = len(out)
			index[g.Canonical] = i
			out = append(out, domain.CanonicalSummary{Name: g.Canonical})
		}
		out[i].Aliases = append(out[i].Aliases, g.Members...)
		out[i].Totals.Add(g.Totals)
	}
	return out
}

// ─── Hub ────────────────────────────────────────────────────────────────────

// Hub owns live imports. The core stays stateless; the hub is the
// application-layer holder of workflow state between HTTP calls.
type Hub struct {
	mu       sync.Mutex
	resolver *Resolver
	imports  map[string]*Import
}

// NewHub creates an import hub using the given resolver.
func NewHub(resolver *Resolver) *Hub {
	return &Hub{resolver: resolver, imports: make(map[string]*Import)}
}

// Load normalizes rows, runs alias grouping, and registers a new import.
func (h *Hub) Load(rows []domain.LedgerRow) *Import {
	summaries, order := Normalize(rows)
	groups := h.resolver.GroupAliases(order, summaries)

	im := &Import{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		rows:      rows,
		groups:    groups,
		summaries: summaries,
	}

	h.mu.Lock()
	h.imports[im.ID] = im
	h.mu.Unlock()
	return im
}

// Get looks up an import by ID.
func (h *Hub) Get(id string) (*Import, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	im, ok := h.imports[id]
	if !ok {
		return nil, domain.ErrImportNotFound
	}
	return im, nil
}

// Discard drops an import (a new file replaces the old context).
func (h *Hub) Discard(id string) {
	h.mu.Lock()
	delete(h.imports, id)
	h.mu.Unlock()
}
