// internal/app/features/steps/manage.go
package steps

import (
	"context"
	"net/http"

	stepstore "github.com/dalemusser/stephub/internal/app/store/steps"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"github.com/dalemusser/stephub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
}

// HandleCreate handles POST /steps (admin only, enforced in routes).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := h.decodeJSON(r, &req); err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Steps.Create(ctx, models.Step{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assignedTo"`
}

// HandleUpdate handles PUT /steps/{id}. Absent fields are left untouched;
// completion state is only reachable through the complete endpoint.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := stepstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	var req updateRequest
	if err := h.decodeJSON(r, &req); err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Steps.Update(ctx, id, stepstore.Update{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /steps/{id}. Deletion is permanent.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := stepstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Steps.Delete(ctx, id); err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Step deleted successfully"})
}
