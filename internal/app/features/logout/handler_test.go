package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	logoutfeature "github.com/dalemusser/stephub/internal/app/features/logout"
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/dalemusser/stephub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeLogout(t *testing.T) {
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "stephub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager init failed: %v", err)
	}
	h := logoutfeature.NewHandler(sm, zap.NewNop())

	req := testutil.WithUser(httptest.NewRequest("POST", "/logout", nil), testutil.RegularUser("alice"))
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestServeLogout_AnonymousIsNoOp(t *testing.T) {
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "stephub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager init failed: %v", err)
	}
	h := logoutfeature.NewHandler(sm, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, httptest.NewRequest("POST", "/logout", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}
