package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storeline/storefront-api/internal/domains/products/domain"
)

// CreateProductInput carries the fields for a new catalog item.
type CreateProductInput struct {
	RetailerID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
	ImageURL    *string
	IsActive    *bool
}

// Service exposes catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, retailerID, id string) (*domain.Product, error)
	List(ctx context.Context, retailerID string, filter ListFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, retailerID, id string, input UpdateProductInput) (*domain.Product, error)
	ToggleStatus(ctx context.Context, retailerID, id string) (*domain.Product, error)
	Delete(ctx context.Context, retailerID, id string) error
	ListPublic(ctx context.Context, retailerID string) ([]*domain.Product, error)
}
