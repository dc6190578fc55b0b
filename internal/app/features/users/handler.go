// internal/app/features/users/handler.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/stephub/internal/app/store/users"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the user directory. Password material never leaves the
// store layer: models.User marshals without its hash.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("response encode failed", zap.Error(err))
	}
}

func (h *Handler) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return httperr.Validation("invalid JSON body")
	}
	return nil
}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Users.List(ctx)
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// ServeGet handles GET /users/{username}. Lookup is case-insensitive.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, u)
}
