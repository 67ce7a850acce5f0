package errors

import (
	"net/http"
	"strings"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs server-side logging with a user-facing error
// response so handlers can fail in one line.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger bound to the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the internal error with request context and
// renders a 500 page with userMsg. backURL, when non-empty, gives the
// error page a way back; otherwise "/" is used.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	if backURL == "" {
		backURL = "/"
	}
	if userMsg == "" {
		userMsg = "Something went wrong. Please try again."
	}

	// API and HTMX callers get a plain error, not a full page.
	if r.Header.Get("HX-Request") == "true" || !wantsHTML(r) {
		http.Error(w, userMsg, http.StatusInternalServerError)
		return
	}

	role, name, signedIn := authz.UserCtx(r)
	data := pageData{
		Title:      "Something went wrong",
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    userMsg,
		BackURL:    backURL,
	}

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_page", data)
}

// LogBadRequest logs a client error and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	if userMsg == "" {
		userMsg = "Invalid request."
	}
	http.Error(w, userMsg, http.StatusBadRequest)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
