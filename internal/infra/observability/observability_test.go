package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSettlementRunsCounter(t *testing.T) {
	before := testutil.ToFloat64(SettlementRuns.WithLabelValues("test"))
	SettlementRuns.WithLabelValues("test").Inc()
	after := testutil.ToFloat64(SettlementRuns.WithLabelValues("test"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestImportRowsCounter(t *testing.T) {
	before := testutil.ToFloat64(ImportRows)
	ImportRows.Add(7)
	after := testutil.ToFloat64(ImportRows)
	if after != before+7 {
		t.Errorf("counter = %v, want %v", after, before+7)
	}
}

func TestMiddleware(t *testing.T) {
	var sawPattern string
	mw := Middleware(func(r *http.Request) string {
		return "/api/sessions"
	})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawPattern = r.URL.Path
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if sawPattern != "/api/sessions" {
		t.Errorf("inner handler not reached, path = %q", sawPattern)
	}
}
