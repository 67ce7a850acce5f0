// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	role, name, signedIn := authz.UserCtx(r)

	data := pageData{
		Title:      "Access denied",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    "You don't have permission to view this page.",
		BackURL:    "/",
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_page", data)
}

// NotFound renders a friendly 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	role, name, signedIn := authz.UserCtx(r)

	data := pageData{
		Title:      "Page not found",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    "The page you were looking for doesn't exist.",
		BackURL:    "/",
	}

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", data)
}
