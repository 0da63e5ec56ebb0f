// Package apierrors maps application errors onto the HTTP envelope.
package apierrors

import (
	"fmt"
	"net/http"

	"github.com/storeline/storefront-api/internal/shared/envelope"
)

// APIError is an error that knows its HTTP status and envelope shape.
type APIError struct {
	Status  int
	Message string
	Fields  []envelope.FieldError
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}

// WithMessage returns a copy carrying the given message.
func (e APIError) WithMessage(message string) APIError {
	e.Message = message
	return e
}

// WithFields returns a copy carrying field-level validation detail.
func (e APIError) WithFields(fields []envelope.FieldError) APIError {
	e.Fields = fields
	return e
}

// Common templates for the error taxonomy.
var (
	ErrValidation = APIError{Status: http.StatusBadRequest, Message: "validation failed"}

	ErrNotFound = APIError{Status: http.StatusNotFound, Message: "resource not found"}

	ErrConflict = APIError{Status: http.StatusConflict, Message: "conflict with current state"}

	ErrUnauthorized = APIError{Status: http.StatusUnauthorized, Message: "missing or invalid credentials"}

	// ErrInternal deliberately carries no internal detail.
	ErrInternal = APIError{Status: http.StatusInternalServerError, Message: "internal server error"}
)

// NotFound builds a 404 for a scoped lookup miss.
func NotFound(resource string, id any) APIError {
	return ErrNotFound.WithMessage(fmt.Sprintf("%s with id '%v' not found", resource, id))
}

// InsufficientStock builds the domain-specific 400 reporting availability.
func InsufficientStock(available, requested int) APIError {
	return APIError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("insufficient stock: requested %d, available %d", requested, available),
	}
}
