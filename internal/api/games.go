// Live game table endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bankrollbuddy/bankroll/internal/domain"
)

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	g := s.games.Create()
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	err := s.games.End(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddGamePlayer(w http.ResponseWriter, r *http.Request) {
	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.games.AddPlayer(chi.URLParam(r, "id"), req.Name)
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, domain.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "player name is required")
	case errors.Is(err, domain.ErrPlayerExists):
		writeError(w, http.StatusConflict, "player already seated")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, p)
	}
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleAddBuyIn(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.games.AddBuyIn(chi.URLParam(r, "id"), chi.URLParam(r, "name"), req.Amount)
	if writeGamePlayerErr(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetCashOut(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.games.SetCashOut(chi.URLParam(r, "id"), chi.URLParam(r, "name"), req.Amount)
	if writeGamePlayerErr(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGameTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.games.Totals(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleGameSettle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	txs, err := s.games.Settle(id)
	if errors.Is(err, domain.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if txs == nil {
		txs = []domain.SettlementTransaction{}
	}

	totals, _ := s.games.Totals(id)
	s.recordSettlement("api", totals.Players, len(txs), totals.OffBy)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"off_by":       totals.OffBy,
	})
}

func (s *Server) handleRecentSettlements(w http.ResponseWriter, r *http.Request) {
	runs, err := s.audit.RecentSettlementRuns(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// writeGamePlayerErr maps game/player lookup failures to HTTP responses.
// Returns true when a response was written.
func writeGamePlayerErr(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, domain.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		return false
	}
	return true
}
