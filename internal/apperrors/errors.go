// Package apperrors defines the error taxonomy of the cart-to-order
// subsystem. Store and catalog failures are wrapped into one of these
// sentinels before they cross a package boundary, so handlers can map any
// error to an HTTP status with errors.Is and never leak raw storage errors.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks bad input shape or range.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an authenticated caller without access rights.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyCart marks an attempt to create an order from an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition marks a status change the state machine rejects.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCatalogUnavailable marks a cart line whose product could not be
	// priced at checkout. The order fails closed instead of snapshotting a
	// zero price.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrConflict marks a unique-constraint or concurrent-update clash.
	ErrConflict = errors.New("conflict")
)

var sentinels = []error{
	ErrValidation,
	ErrNotFound,
	ErrForbidden,
	ErrEmptyCart,
	ErrInvalidTransition,
	ErrCatalogUnavailable,
	ErrConflict,
}

// IsAppError reports whether err wraps one of the taxonomy sentinels.
// Anything else is treated as an internal failure and its message is not
// shown to callers.
func IsAppError(err error) bool {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

// HTTPStatus maps an error to the status code the HTTP surface responds
// with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmptyCart), errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with the entity that was missing.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
