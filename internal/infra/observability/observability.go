// Package observability holds the Prometheus instrumentation. Metrics are
// package-level and registered on the default registry at init.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Settlement Metrics ─────────────────────────────────────────────────────

var (
	// SettlementRuns counts settlement computations by source
	// ("api", "cli", "import").
	SettlementRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bankroll",
		Subsystem: "settle",
		Name:      "runs_total",
		Help:      "Settlement computations performed, by source.",
	}, []string{"source"})

	// SettlementTransactions observes the payment count per run.
	SettlementTransactions = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bankroll",
		Subsystem: "settle",
		Name:      "transactions_per_run",
		Help:      "Number of transactions emitted per settlement run.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
	})

	// SettlementImbalance observes the absolute dollar imbalance of
	// settlement inputs. Anything above a cent means bad bookkeeping.
	SettlementImbalance = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bankroll",
		Subsystem: "settle",
		Name:      "input_imbalance_dollars",
		Help:      "Absolute imbalance of settlement inputs in dollars.",
		Buckets:   []float64{0, 0.01, 0.1, 1, 10, 100},
	})
)

// ─── Import Metrics ─────────────────────────────────────────────────────────

var (
	// ImportRows counts ledger rows ingested from platform exports.
	ImportRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bankroll",
		Subsystem: "ledger",
		Name:      "import_rows_total",
		Help:      "Ledger rows ingested from platform exports.",
	})

	// AliasGroups observes how many alias groups each import produced.
	AliasGroups = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bankroll",
		Subsystem: "ledger",
		Name:      "alias_groups_per_import",
		Help:      "Alias groups detected per ledger import.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16},
	})
)

// ─── HTTP Metrics ───────────────────────────────────────────────────────────

var (
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bankroll",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and path pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// ObserveHTTP records one request's latency. path should be the route
// pattern, not the raw URL, to keep cardinality bounded.
func ObserveHTTP(method, path string, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Middleware instruments an http.Handler with request latency. The pattern
// function maps a request to its route pattern.
func Middleware(pattern func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			ObserveHTTP(r.Method, pattern(r), time.Since(start))
		})
	}
}
