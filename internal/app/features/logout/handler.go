// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler clears the session and returns the user to the landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve handles GET /logout.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("email", u.Email))
	}
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("clear session failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
