package application

import (
	"context"
	"strings"

	"github.com/storeline/storefront-api/internal/domains/products/domain"
	"github.com/storeline/storefront-api/internal/domains/products/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo   ports.Repository
	orders ports.OrderCounter
}

func NewService(repo ports.Repository, orders ports.OrderCounter) *Service {
	return &Service{repo: repo, orders: orders}
}

// Create persists a new catalog item.
func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(
		input.RetailerID,
		input.Name,
		input.Description,
		input.Price,
		input.Stock,
		input.Category,
		input.ImageURL,
	)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a product scoped to its owning retailer.
func (s *Service) GetByID(ctx context.Context, retailerID, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, retailerID, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// List returns a filtered, paginated slice of the tenant's catalog.
func (s *Service) List(ctx context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	products, total, err := s.repo.List(ctx, retailerID, filter)
	if err != nil {
		return nil, 0, mapError(err)
	}
	return products, total, nil
}

// Update applies a partial mutation; only provided fields change. The write
// is column-targeted, so fields left nil (stock above all) are never written
// back from the validation read.
func (s *Service) Update(ctx context.Context, retailerID, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, retailerID, id)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	applyUpdate(product, input)
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, retailerID, id, input)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ToggleStatus flips the active flag, leaving every other field untouched.
// Only is_active is written, so concurrent stock movement survives the toggle.
func (s *Service) ToggleStatus(ctx context.Context, retailerID, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, retailerID, id)
	if err != nil {
		return nil, mapError(err)
	}
	product.ToggleActive()
	saved, err := s.repo.Update(ctx, retailerID, id, ports.UpdateProductInput{IsActive: &product.IsActive})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a product, unless any order still references it. Referenced
// products must be deactivated instead.
func (s *Service) Delete(ctx context.Context, retailerID, id string) error {
	if _, err := s.repo.GetByID(ctx, retailerID, id); err != nil {
		return mapError(err)
	}
	count, err := s.orders.CountByProduct(ctx, retailerID, id)
	if err != nil {
		return mapError(err)
	}
	if count > 0 {
		return ErrProductReferenced
	}
	if err := s.repo.Delete(ctx, retailerID, id); err != nil {
		return mapError(err)
	}
	return nil
}

// ListPublic returns the storefront view: active products with stock on hand.
func (s *Service) ListPublic(ctx context.Context, retailerID string) ([]*domain.Product, error) {
	products, err := s.repo.ListPublic(ctx, retailerID)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

func applyUpdate(product *domain.Product, input ports.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

var _ ports.Service = (*Service)(nil)
