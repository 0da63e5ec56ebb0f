package ports

import (
	"context"
	"errors"

	"github.com/storeline/storefront-api/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// ListFilter narrows a tenant's catalog listing.
type ListFilter struct {
	Category string
	IsActive *bool
	Page     int
	Limit    int
}

// Repository persists products scoped to their owning retailer.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, retailerID, id string) (*domain.Product, error)
	List(ctx context.Context, retailerID string, filter ListFilter) ([]*domain.Product, int64, error)
	// Update writes only the non-nil fields, so columns maintained
	// concurrently (stock, during sales) are never written back stale.
	Update(ctx context.Context, retailerID, id string, fields UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, retailerID, id string) error
	// ListPublic returns active, in-stock products for the public storefront.
	ListPublic(ctx context.Context, retailerID string) ([]*domain.Product, error)
}

// OrderCounter reports how many orders reference a product. Implemented by the
// orders context; used to block deletion of referenced products.
type OrderCounter interface {
	CountByProduct(ctx context.Context, retailerID, productID string) (int64, error)
}
