package apierrors

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/storeline/storefront-api/internal/shared/envelope"
)

// ErrorMapper translates a domain/application error into an APIError.
type ErrorMapper func(err error) (APIError, bool)

// Responder renders errors through a chain of mappers. Unmapped errors fall
// through to a generic 500 so store internals never leak to callers.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder builds a responder with the given mapper chain.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// AddMapper appends an error mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// Respond writes an APIError as a failure envelope.
func Respond(c *gin.Context, apiErr APIError) {
	env := envelope.Envelope{Success: false, Message: apiErr.Message, Errors: apiErr.Fields}
	c.JSON(apiErr.Status, env)
}

// RespondError resolves err through the chain and writes the envelope.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		Respond(c, apiErr)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			Respond(c, mapped)
			return
		}
	}
	Respond(c, ErrInternal)
}
