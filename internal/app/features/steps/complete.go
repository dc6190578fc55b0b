// internal/app/features/steps/complete.go
package steps

import (
	"context"
	"net/http"

	stepstore "github.com/dalemusser/stephub/internal/app/store/steps"
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/dalemusser/stephub/internal/app/system/authz"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleComplete handles PATCH /steps/{id}/complete.
//
// Only the step's assignee (role user) may complete it. The store write is a
// single atomic document update; re-completing an already-completed step is
// an idempotent success that refreshes completedAt.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httperr.Write(w, h.Log, httperr.Unauthorized("sign in required"))
		return
	}

	id, err := stepstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	step, err := h.Steps.GetByID(ctx, id)
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	if !authz.CanCompleteStep(u, step) {
		httperr.Write(w, h.Log, httperr.Forbidden("step is not assigned to you"))
		return
	}

	done, err := h.Steps.Complete(ctx, id)
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, done)
}
