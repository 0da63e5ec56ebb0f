package application

import (
	"errors"
	"fmt"

	"github.com/storeline/storefront-api/internal/domains/products/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")

	// ErrProductReferenced blocks deletion while orders reference the product.
	ErrProductReferenced = errors.New("product has existing orders; deactivate it instead of deleting")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNameRequired) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
