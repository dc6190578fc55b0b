// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user directory (typically under "/users").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{username}", h.ServeGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Post("/", h.HandleCreate)
	})

	return r
}
