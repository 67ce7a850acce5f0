// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the login routes, mounted at "/login".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Get("/callback", h.ServeCallback)
	return r
}
