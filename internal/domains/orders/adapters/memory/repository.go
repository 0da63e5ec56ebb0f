package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
	"github.com/storeline/storefront-api/internal/domains/orders/ports"
	productsmemory "github.com/storeline/storefront-api/internal/domains/products/adapters/memory"
)

var (
	_ ports.Repository     = (*Repository)(nil)
	_ ports.ProductCatalog = (*Repository)(nil)
)

// Repository is an in-memory order persistence adapter backed by the products
// memory adapter for stock adjustments. A single mutex makes the order insert
// and the stock decrement one unit, mirroring the SQL transaction.
type Repository struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	products *productsmemory.Repository
}

func NewRepository(products *productsmemory.Repository) *Repository {
	return &Repository{orders: map[string]*domain.Order{}, products: products}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ok, err := r.products.AdjustStock(ctx, order.RetailerID, order.ProductID, -order.Quantity)
	if err != nil {
		return nil, ports.ErrProductUnavailable
	}
	if !ok {
		return nil, ports.ErrInsufficientStock
	}
	clone := *order
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, retailerID, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok || order.RetailerID != retailerID {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) List(_ context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.Order
	for _, order := range r.orders {
		if order.RetailerID != retailerID {
			continue
		}
		if filter.Status != "" && string(order.Status) != filter.Status {
			continue
		}
		if filter.CustomerName != "" &&
			!strings.Contains(strings.ToLower(order.CustomerName), strings.ToLower(filter.CustomerName)) {
			continue
		}
		clone := *order
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

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok || existing.RetailerID != order.RetailerID {
		return nil, ports.ErrNotFound
	}
	clone := *existing
	clone.Status = order.Status
	clone.Notes = order.Notes
	clone.UpdatedAt = time.Now().UTC()
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Delete(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok || existing.RetailerID != order.RetailerID {
		return ports.ErrNotFound
	}
	delete(r.orders, order.ID)
	if order.RestoresStockOnDelete() {
		if _, err := r.products.AdjustStock(ctx, order.RetailerID, order.ProductID, order.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) CountByProduct(_ context.Context, retailerID, productID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, order := range r.orders {
		if order.RetailerID == retailerID && order.ProductID == productID {
			count++
		}
	}
	return count, nil
}

// GetForSale resolves an active product through the products memory adapter.
func (r *Repository) GetForSale(ctx context.Context, retailerID, productID string) (*ports.ProductSummary, error) {
	product, err := r.products.GetByID(ctx, retailerID, productID)
	if err != nil || !product.IsActive {
		return nil, ports.ErrProductUnavailable
	}
	return &ports.ProductSummary{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Stock:    product.Stock,
		ImageURL: product.ImageURL,
	}, nil
}
