// internal/app/features/steps/list.go
package steps

import (
	"context"
	"net/http"

	stepstore "github.com/dalemusser/stephub/internal/app/store/steps"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"github.com/dalemusser/stephub/internal/app/system/timeouts"
	"github.com/dalemusser/stephub/internal/domain/models"
	"github.com/dalemusser/stephub/internal/domain/stats"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /steps?assignedTo=<username>.
// Without the query parameter it returns every step.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Steps.List(ctx, stepstore.Filter{
		AssignedTo: r.URL.Query().Get("assignedTo"),
	})
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Step{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

// ServeGet handles GET /steps/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := stepstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	step, err := h.Steps.GetByID(ctx, id)
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, step)
}

// ServeStats handles GET /steps/stats/{username}: the completion roll-up for
// one assignee. The aggregation itself lives in the stats package so every
// consumer reports identical numbers.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Steps.List(ctx, stepstore.Filter{
		AssignedTo: chi.URLParam(r, "username"),
	})
	if err != nil {
		httperr.Write(w, h.Log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats.Compute(list))
}
