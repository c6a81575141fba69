// Package api provides the HTTP server for the bankroll tracker.
// It exposes the session log, live game tables, and the ledger import
// workflow as a JSON REST API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bankrollbuddy/bankroll/internal/app/game"
	"github.com/bankrollbuddy/bankroll/internal/app/ledger"
	"github.com/bankrollbuddy/bankroll/internal/app/tracker"
	"github.com/bankrollbuddy/bankroll/internal/infra/observability"
	"github.com/bankrollbuddy/bankroll/internal/infra/sqlite"
)

// Version is reported by /api/version.
const Version = "0.1.0"

// Server is the bankroll HTTP API server.
type Server struct {
	tracker        *tracker.Service
	games          *game.Manager
	imports        *ledger.Hub
	audit          *sqlite.DB // nil disables the settlement audit trail
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(tr *tracker.Service, games *game.Manager, imports *ledger.Hub) *Server {
	return &Server{tracker: tr, games: games, imports: imports}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetAudit enables recording settlement runs to the database.
func (s *Server) SetAudit(db *sqlite.DB) { s.audit = db }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)
	r.Use(observability.Middleware(routePattern))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Post("/login", s.handleLogin)

	// Session log
	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleAddSession)
		r.Delete("/", s.handleClearSessions)
		r.Get("/stats", s.handleStats)
		r.Get("/profit", s.handleProfit)
		r.Get("/notes", s.handleNotes)
		r.Patch("/{id}", s.handleUpdateSession)
		r.Delete("/{id}", s.handleDeleteSession)
	})

	// Live game tables
	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/{id}", s.handleGetGame)
		r.Delete("/{id}", s.handleEndGame)
		r.Get("/{id}/totals", s.handleGameTotals)
		r.Post("/{id}/settle", s.handleGameSettle)
		r.Post("/{id}/players", s.handleAddGamePlayer)
		r.Post("/{id}/players/{name}/buyins", s.handleAddBuyIn)
		r.Put("/{id}/players/{name}/cashout", s.handleSetCashOut)
	})

	// Ledger import workflow
	r.Route("/api/imports", func(r chi.Router) {
		r.Post("/", s.handleCreateImport)
		r.Get("/{id}", s.handleGetImport)
		r.Delete("/{id}", s.handleDiscardImport)
		r.Patch("/{id}/groups/{index}", s.handleRenameGroup)
		r.Post("/{id}/confirm", s.handleConfirmImport)
		r.Post("/{id}/settle", s.handleImportSettle)
	})

	// Settlement audit trail
	if s.audit != nil {
		r.Get("/api/settlements/recent", s.handleRecentSettlements)
	}

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// routePattern maps a request to its chi route pattern for metric labels.
func routePattern(r *http.Request) string {
	if ctx := chi.RouteContext(r.Context()); ctx != nil {
		if p := ctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// recordSettlement appends a run to the audit trail and metrics. Audit
// failures are deliberately swallowed: the payment list already went out.
func (s *Server) recordSettlement(source string, playerCount, txCount int, imbalance float64) {
	observability.SettlementRuns.WithLabelValues(source).Inc()
	observability.SettlementTransactions.Observe(float64(txCount))
	if imbalance < 0 {
		imbalance = -imbalance
	}
	observability.SettlementImbalance.Observe(imbalance)
	if s.audit != nil {
		s.audit.InsertSettlementRun(source, playerCount, txCount, imbalance)
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
