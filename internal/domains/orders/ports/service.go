package ports

import (
	"context"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
)

// CreateOrderInput carries the fields for a new purchase.
type CreateOrderInput struct {
	RetailerID    string
	ProductID     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Quantity      int
	Notes         string
}

// UpdateOrderInput changes status and, optionally, notes.
type UpdateOrderInput struct {
	Status string
	Notes  *string
}

// OrderWithProduct pairs an order with a summary of its product.
type OrderWithProduct struct {
	Order   *domain.Order
	Product *ProductSummary
}

// Service exposes order lifecycle use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderWithProduct, error)
	GetByID(ctx context.Context, retailerID, id string) (*OrderWithProduct, error)
	List(ctx context.Context, retailerID string, filter ListFilter) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, retailerID, id string, input UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, retailerID, id string) error
}
