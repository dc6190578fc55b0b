// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/stephub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler clears the session cookie.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Log: logger}
}

// ServeLogout handles POST /logout. Logging out while signed out is a no-op
// success.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("logout", zap.String("username", u.Username))
	}
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("logout: session clear failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
