// internal/app/features/users/create.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"github.com/dalemusser/stephub/internal/domain/models"
)

type createRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// HandleCreate handles POST /users (admin only, enforced in routes).
// The store normalizes the username, validates the role, and hashes the
// password; a duplicate username comes back as a conflict.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := h.decodeJSON(r, &req); err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Name:     req.Name,
		Username: req.Username,
		Role:     req.Role,
	}, req.Password)
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}
