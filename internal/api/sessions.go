// Session log endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bankrollbuddy/bankroll/internal/app/tracker"
	"github.com/bankrollbuddy/bankroll/internal/domain"
)

type addSessionRequest struct {
	GameName string  `json:"game_name"`
	BuyIn    float64 `json:"buy_in"`
	CashOut  float64 `json:"cash_out"`
	Stakes   string  `json:"stakes"`
}

func (s *Server) handleAddSession(w http.ResponseWriter, r *http.Request) {
	var req addSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := s.tracker.Add(req.GameName, req.BuyIn, req.CashOut, req.Stakes)
	if errors.Is(err, domain.ErrEmptyName) {
		writeError(w, http.StatusBadRequest, "game_name is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.tracker.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

type updateSessionRequest struct {
	GameName       *string  `json:"game_name"`
	BuyIn          *float64 `json:"buy_in"`
	CashOut        *float64 `json:"cash_out"`
	Stakes         *string  `json:"stakes"`
	MemorableHands *string  `json:"memorable_hands"`
	PlayerNotes    *string  `json:"player_notes"`
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := s.tracker.Update(chi.URLParam(r, "id"), tracker.Update{
		GameName:       req.GameName,
		BuyIn:          req.BuyIn,
		CashOut:        req.CashOut,
		Stakes:         req.Stakes,
		MemorableHands: req.MemorableHands,
		PlayerNotes:    req.PlayerNotes,
	})
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.tracker.Delete(chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearSessions(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProfit(w http.ResponseWriter, r *http.Request) {
	series, err := s.tracker.RunningProfit()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	noted, err := s.tracker.Noted()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if noted == nil {
		noted = []domain.Session{}
	}
	writeJSON(w, http.StatusOK, noted)
}
