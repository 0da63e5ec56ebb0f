package application

import (
	"errors"
	"fmt"

	"github.com/storeline/storefront-api/internal/domains/retailers/domain"
	"github.com/storeline/storefront-api/internal/domains/retailers/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid retailer input")

	// ErrAlreadyRegistered signals the identity already owns a profile.
	ErrAlreadyRegistered = errors.New("retailer profile already exists")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNameRequired) ||
		errors.Is(err, domain.ErrEmailRequired) ||
		errors.Is(err, domain.ErrInvalidTheme) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrUserAlreadyRegistered) {
		return fmt.Errorf("%w: %w", ErrAlreadyRegistered, err)
	}
	return err
}
