package errors

import (
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors.
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrBadRequest   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
)

// Sentinel errors the services surface to handlers.
var (
	// ErrReservationEnded rejects cancellation of a reservation whose end
	// time has already passed. Mapped to 409: client-side expiry hints are
	// UX-only, this check is authoritative.
	ErrReservationEnded = errors.New("reservation has already ended")
	// ErrSlotUnavailable rejects booking a slot that overlaps another
	// active reservation or is not operational.
	ErrSlotUnavailable = errors.New("slot is not available for the requested interval")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInterval = errors.New("end time must be after start time")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid credentials")
)
