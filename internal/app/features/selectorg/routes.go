// internal/app/features/selectorg/routes.go
package selectorg

import (
	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the picker routes, mounted at "/select-organization".
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServePicker)
	r.Post("/", h.HandlePick)
	return r
}
