package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storeline/storefront-api/internal/domains/products/domain"
	"github.com/storeline/storefront-api/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, retailerID, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok || product.RetailerID != retailerID {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) List(_ context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.Product
	for _, product := range r.products {
		if product.RetailerID != retailerID {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(product.Category, filter.Category) {
			continue
		}
		if filter.IsActive != nil && product.IsActive != *filter.IsActive {
			continue
		}
		clone := *product
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Update applies only the non-nil fields under the lock, mirroring the
// column-targeted SQL update.
func (r *Repository) Update(_ context.Context, retailerID, id string, fields ports.UpdateProductInput) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[id]
	if !ok || existing.RetailerID != retailerID {
		return nil, ports.ErrNotFound
	}
	if fields.Name != nil {
		existing.Name = *fields.Name
	}
	if fields.Description != nil {
		existing.Description = *fields.Description
	}
	if fields.Price != nil {
		existing.Price = *fields.Price
	}
	if fields.Stock != nil {
		existing.Stock = *fields.Stock
	}
	if fields.Category != nil {
		existing.Category = *fields.Category
	}
	if fields.ImageURL != nil {
		existing.ImageURL = *fields.ImageURL
	}
	if fields.IsActive != nil {
		existing.IsActive = *fields.IsActive
	}
	existing.UpdatedAt = time.Now().UTC()
	clone := *existing
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, retailerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.RetailerID != retailerID {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) ListPublic(_ context.Context, retailerID string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.Product
	for _, product := range r.products {
		if product.RetailerID != retailerID || !product.InStock() {
			continue
		}
		clone := *product
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

// AdjustStock applies a conditional stock delta, mirroring the guarded SQL
// update. Returns false when the decrement would drive stock negative.
func (r *Repository) AdjustStock(_ context.Context, retailerID, id string, delta int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.RetailerID != retailerID {
		return false, ports.ErrNotFound
	}
	if product.Stock+delta < 0 {
		return false, nil
	}
	product.Stock += delta
	product.UpdatedAt = time.Now().UTC()
	return true, nil
}
