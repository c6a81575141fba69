// Ledger import workflow endpoints: upload → review groups → rename →
// confirm → settle.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bankrollbuddy/bankroll/internal/app/ledger"
	"github.com/bankrollbuddy/bankroll/internal/app/settle"
	"github.com/bankrollbuddy/bankroll/internal/domain"
	"github.com/bankrollbuddy/bankroll/internal/infra/observability"
)

type createImportRequest struct {
	Rows []domain.LedgerRow `json:"rows"`
}

type importResponse struct {
	ID        string                         `json:"id"`
	Confirmed bool                           `json:"confirmed"`
	Groups    []domain.AliasGroup            `json:"groups"`
	Summaries map[string]domain.AliasSummary `json:"summaries"`
}

func importView(im *ledger.Import) importResponse {
	groups := im.Groups()
	if groups == nil {
		groups = []domain.AliasGroup{}
	}
	return importResponse{
		ID:        im.ID,
		Confirmed: im.Confirmed(),
		Groups:    groups,
		Summaries: im.Summaries(),
	}
}

func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	var req createImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "rows is required")
		return
	}

	im := s.imports.Load(req.Rows)
	observability.ImportRows.Add(float64(len(req.Rows)))
	observability.AliasGroups.Observe(float64(len(im.Groups())))

	writeJSON(w, http.StatusCreated, importView(im))
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	im, err := s.imports.Get(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrImportNotFound) {
		writeError(w, http.StatusNotFound, "import not found")
		return
	}
	writeJSON(w, http.StatusOK, importView(im))
}

func (s *Server) handleDiscardImport(w http.ResponseWriter, r *http.Request) {
	s.imports.Discard(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type renameGroupRequest struct {
	Canonical string `json:"canonical"`
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	im, err := s.imports.Get(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrImportNotFound) {
		writeError(w, http.StatusNotFound, "import not found")
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "group index must be an integer")
		return
	}

	var req renameGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch err := im.Rename(index, req.Canonical); {
	case errors.Is(err, domain.ErrGroupingConfirmed):
		writeError(w, http.StatusConflict, "grouping already confirmed")
	case errors.Is(err, domain.ErrGroupIndex):
		writeError(w, http.StatusNotFound, "no such group")
	case errors.Is(err, domain.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "canonical name is required")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, importView(im))
	}
}

func (s *Server) handleConfirmImport(w http.ResponseWriter, r *http.Request) {
	im, err := s.imports.Get(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrImportNotFound) {
		writeError(w, http.StatusNotFound, "import not found")
		return
	}

	im.Confirm()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"confirmed": true,
		"players":   im.Aggregated(),
	})
}

func (s *Server) handleImportSettle(w http.ResponseWriter, r *http.Request) {
	im, err := s.imports.Get(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrImportNotFound) {
		writeError(w, http.StatusNotFound, "import not found")
		return
	}
	rows, err := im.ConfirmedRows()
	if errors.Is(err, domain.ErrGroupingPending) {
		writeError(w, http.StatusConflict, "grouping not confirmed yet")
		return
	}

	nets := settle.NetPositionsFromLedger(rows)
	txs := settle.Settle(nets)
	if txs == nil {
		txs = []domain.SettlementTransaction{}
	}
	imbalance := settle.Imbalance(nets)
	s.recordSettlement("import", len(nets), len(txs), imbalance)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"imbalance":    imbalance,
	})
}
