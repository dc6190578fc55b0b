// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /userinfo.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeUserInfo)
	return r
}
