// internal/app/features/steps/routes.go
package steps

import (
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the step resource under whatever base path the caller
// chooses (typically "/steps" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Read routes: any signed-in user may list steps and read stats.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/stats/{username}", h.ServeStats)
		pr.Get("/{id}", h.ServeGet)
	})

	// Completion: role user only; the handler checks assignee ownership.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("user"))

		pr.Patch("/{id}/complete", h.HandleComplete)
	})

	// Management: admin only.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
