// internal/app/features/home/routes.go
package home

import "github.com/go-chi/chi/v5"

// Routes returns the public home routes, mounted at "/".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLanding)
	r.Get("/pricing", h.ServePricing)
	return r
}
