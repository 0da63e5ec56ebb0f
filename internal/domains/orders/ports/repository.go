package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrInsufficientStock is returned by the guarded stock decrement when the
	// requested quantity exceeds what is on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductUnavailable covers products that are missing or inactive for
	// the calling tenant.
	ErrProductUnavailable = errors.New("product not found or inactive")
)

// ListFilter narrows a tenant's order listing.
type ListFilter struct {
	Status       string
	CustomerName string
	Page         int
	Limit        int
}

// ProductSummary is the slice of product state the order flow needs.
type ProductSummary struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Stock    int
	ImageURL string
}

// ProductCatalog resolves sellable products for order creation and response
// embedding. Missing or inactive products yield ErrProductUnavailable.
type ProductCatalog interface {
	GetForSale(ctx context.Context, retailerID, productID string) (*ProductSummary, error)
}

// Repository persists orders. Create and Delete are atomic with their stock
// side effects: Create performs the guarded decrement (stock >= quantity) and
// the insert as one unit, and Delete restores stock for pending orders in the
// same transaction as the row removal.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, retailerID, id string) (*domain.Order, error)
	List(ctx context.Context, retailerID string, filter ListFilter) ([]*domain.Order, int64, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, order *domain.Order) error
	CountByProduct(ctx context.Context, retailerID, productID string) (int64, error)
}
