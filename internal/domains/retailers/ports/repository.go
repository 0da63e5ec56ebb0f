package ports

import (
	"context"
	"errors"

	"github.com/storeline/storefront-api/internal/domains/retailers/domain"
)

var ErrNotFound = errors.New("retailer not found")

// ErrUserAlreadyRegistered signals a second registration for the same identity.
var ErrUserAlreadyRegistered = errors.New("retailer already registered for this user")

// Repository persists retailer profiles.
type Repository interface {
	Create(ctx context.Context, retailer *domain.Retailer) (*domain.Retailer, error)
	GetByID(ctx context.Context, id string) (*domain.Retailer, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Retailer, error)
	Update(ctx context.Context, retailer *domain.Retailer) (*domain.Retailer, error)
}
