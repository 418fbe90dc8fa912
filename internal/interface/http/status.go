package handlers

import (
	"errors"
	"net/http"

	"github.com/raihansp/wishwell/internal/application"
)

// statusFor maps service-level outcomes onto HTTP status codes. The
// mapping is the single source of truth for the whole API surface.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrDuplicateEmail),
		errors.Is(err, application.ErrDuplicateUsername),
		errors.Is(err, application.ErrNotEmpty),
		errors.Is(err, application.ErrReferencedEntity):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidWish):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrUnauthenticated),
		errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internals on unexpected failures but passes typed
// outcomes through verbatim.
func messageFor(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
