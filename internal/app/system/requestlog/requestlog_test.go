package requestlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/stephub/internal/app/system/requestlog"
	"go.uber.org/zap"
)

func TestMiddleware_MintsRequestID(t *testing.T) {
	handler := requestlog.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/steps", nil))

	if rec.Header().Get(requestlog.HeaderRequestID) == "" {
		t.Error("expected a generated request id header")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestMiddleware_HonorsIncomingRequestID(t *testing.T) {
	handler := requestlog.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/steps", nil)
	req.Header.Set(requestlog.HeaderRequestID, "upstream-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestlog.HeaderRequestID); got != "upstream-id" {
		t.Errorf("request id: got %q, want %q", got, "upstream-id")
	}
}
