package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mrfarhan786/MVOTE/httpx"
	"github.com/mrfarhan786/MVOTE/internal/services"
)

// writeServiceError maps the service error taxonomy to HTTP statuses. Unknown
// errors are logged and reported as a generic internal failure so storage
// details never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
	case errors.Is(err, services.ErrEmailTaken):
		httpx.JSONError(w, http.StatusConflict, "email_taken", nil)
	case errors.Is(err, services.ErrUsernameTaken):
		httpx.JSONError(w, http.StatusConflict, "username_taken", nil)
	case errors.Is(err, services.ErrDuplicateVote):
		httpx.JSONError(w, http.StatusConflict, "already_voted", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
	case errors.Is(err, services.ErrForbidden):
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrSessionNotActive):
		httpx.JSONError(w, http.StatusConflict, "session_not_active", nil)
	default:
		slog.Error("unexpected service error", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
