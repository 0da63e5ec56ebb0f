package application

import (
	"context"
	"errors"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
	"github.com/storeline/storefront-api/internal/domains/orders/ports"
)

// Service orchestrates the order lifecycle.
type Service struct {
	repo    ports.Repository
	catalog ports.ProductCatalog
}

func NewService(repo ports.Repository, catalog ports.ProductCatalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Create places an order against product availability. The price is
// snapshotted from the product at this moment; the stock decrement and the
// order insert happen atomically in the repository, guarded by
// stock >= quantity, so concurrent creations can never oversell.
func (s *Service) Create(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderWithProduct, error) {
	product, err := s.catalog.GetForSale(ctx, input.RetailerID, input.ProductID)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Quantity > product.Stock {
		return nil, &InsufficientStockError{Available: product.Stock, Requested: input.Quantity}
	}
	order, err := domain.NewOrder(
		input.RetailerID,
		input.ProductID,
		input.CustomerName,
		input.CustomerEmail,
		input.CustomerPhone,
		input.Quantity,
		product.Price,
		input.Notes,
	)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		if errors.Is(err, ports.ErrInsufficientStock) {
			// Lost the race against a concurrent creation; report what the
			// guard saw rather than the stale pre-check value.
			if current, cerr := s.catalog.GetForSale(ctx, input.RetailerID, input.ProductID); cerr == nil {
				return nil, &InsufficientStockError{Available: current.Stock, Requested: input.Quantity}
			}
			return nil, &InsufficientStockError{Available: 0, Requested: input.Quantity}
		}
		return nil, mapError(err)
	}
	product.Stock -= saved.Quantity
	return &ports.OrderWithProduct{Order: saved, Product: product}, nil
}

// GetByID loads an order with its product summary, scoped to the tenant.
func (s *Service) GetByID(ctx context.Context, retailerID, id string) (*ports.OrderWithProduct, error) {
	order, err := s.repo.GetByID(ctx, retailerID, id)
	if err != nil {
		return nil, mapError(err)
	}
	product, err := s.catalog.GetForSale(ctx, retailerID, order.ProductID)
	if err != nil && !errors.Is(err, ports.ErrProductUnavailable) {
		return nil, mapError(err)
	}
	return &ports.OrderWithProduct{Order: order, Product: product}, nil
}

// List returns a filtered, paginated slice of the tenant's orders, newest first.
func (s *Service) List(ctx context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Status != "" && !domain.IsValidStatus(domain.Status(filter.Status)) {
		return nil, 0, mapError(domain.ErrInvalidStatus)
	}
	orders, total, err := s.repo.List(ctx, retailerID, filter)
	if err != nil {
		return nil, 0, mapError(err)
	}
	return orders, total, nil
}

// UpdateStatus moves the order to any member of the closed status set. No
// transition graph is enforced; membership in the set is the only constraint.
func (s *Service) UpdateStatus(ctx context.Context, retailerID, id string, input ports.UpdateOrderInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, retailerID, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := order.SetStatus(domain.Status(input.Status)); err != nil {
		return nil, mapError(err)
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	saved, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a pending or cancelled order. Deleting a pending order
// restores its reserved stock; the repository performs restore and delete as
// one transaction.
func (s *Service) Delete(ctx context.Context, retailerID, id string) error {
	order, err := s.repo.GetByID(ctx, retailerID, id)
	if err != nil {
		return mapError(err)
	}
	if !order.Deletable() {
		return ErrNotDeletable
	}
	if err := s.repo.Delete(ctx, order); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
