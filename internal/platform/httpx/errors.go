// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer. Handlers and services raise
// these (possibly wrapped) and RespondError translates them to status
// codes at the boundary.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("resource not found")
)

// IsClientError reports whether err maps to a 4xx response. Anything
// else is an internal fault and should be logged server side.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound)
}

// RespondError maps domain errors to HTTP responses using RFC7807.
// Missing resources and ownership violations share ErrNotFound so the
// response does not reveal whether a foreign record exists. Internal
// faults carry no detail across the boundary.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrDuplicateEmail):
		Problem(w, http.StatusForbidden, "Forbidden", ErrDuplicateEmail.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Problem(w, http.StatusForbidden, "Forbidden", ErrInvalidCredentials.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", ErrNotFound.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
