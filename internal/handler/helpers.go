package handler

import (
	"errors"
	"net/http"

	"feedstudio/internal/domain"
	"feedstudio/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Validation
// failures carry the full per-field violation map so the caller sees
// every problem at once, not just the first.
func handleError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, "request validation failed",
			map[string]interface{}{"errors": validationErr.Fields})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrPersistence):
		// Underlying cause is logged at the service layer, not exposed
		httputil.RespondError(w, http.StatusServiceUnavailable, "could not save right now")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
