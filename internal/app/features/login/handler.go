// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/stephub/internal/app/store/users"
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler authenticates username/password credentials against the user
// directory and establishes a session cookie.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Sessions: sm,
		Log:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ServeLogin handles POST /login.
//
// Unknown usernames and wrong passwords produce the same 401 so the endpoint
// does not reveal which usernames exist.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		httperr.Write(w, h.Log, httperr.Validation("invalid JSON body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.VerifyPassword(ctx, req.Username, req.Password)
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	su := &auth.SessionUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
	if err := h.Sessions.SignIn(w, r, su); err != nil {
		h.Log.Error("login: session write failed", zap.String("username", u.Username), zap.Error(err))
		httperr.Write(w, h.Log, httperr.Dependency(err, "could not establish session"))
		return
	}

	h.Log.Info("login", zap.String("username", u.Username), zap.String("role", u.Role))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"user": u})
}
