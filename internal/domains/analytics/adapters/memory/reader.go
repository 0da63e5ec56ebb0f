package memory

import (
	"context"
	"sort"
	"time"

	analyticsports "github.com/storeline/storefront-api/internal/domains/analytics/ports"
	ordersmemory "github.com/storeline/storefront-api/internal/domains/orders/adapters/memory"
	ordersports "github.com/storeline/storefront-api/internal/domains/orders/ports"
	productsmemory "github.com/storeline/storefront-api/internal/domains/products/adapters/memory"
	productsports "github.com/storeline/storefront-api/internal/domains/products/ports"
)

var _ analyticsports.Reader = (*Reader)(nil)

// Reader derives aggregation rows from the in-memory adapters. Used when the
// process runs without PostgreSQL.
type Reader struct {
	products *productsmemory.Repository
	orders   *ordersmemory.Repository
}

func NewReader(products *productsmemory.Repository, orders *ordersmemory.Repository) *Reader {
	return &Reader{products: products, orders: orders}
}

const allRows = 1 << 30

func (r *Reader) ProductFlags(ctx context.Context, retailerID string) ([]analyticsports.ProductFlag, error) {
	products, _, err := r.products.List(ctx, retailerID, productsports.ListFilter{Page: 1, Limit: allRows})
	if err != nil {
		return nil, err
	}
	flags := make([]analyticsports.ProductFlag, 0, len(products))
	for _, p := range products {
		flags = append(flags, analyticsports.ProductFlag{Active: p.IsActive, Stock: p.Stock})
	}
	return flags, nil
}

func (r *Reader) LowestStock(ctx context.Context, retailerID string, limit int) ([]analyticsports.LowStockProduct, error) {
	active := true
	products, _, err := r.products.List(ctx, retailerID, productsports.ListFilter{IsActive: &active, Page: 1, Limit: allRows})
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Stock < products[j].Stock })
	if len(products) > limit {
		products = products[:limit]
	}
	out := make([]analyticsports.LowStockProduct, 0, len(products))
	for _, p := range products {
		out = append(out, analyticsports.LowStockProduct{ID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return out, nil
}

func (r *Reader) OrdersSince(ctx context.Context, retailerID string, since time.Time) ([]analyticsports.OrderFacts, error) {
	orders, _, err := r.orders.List(ctx, retailerID, ordersports.ListFilter{Page: 1, Limit: allRows})
	if err != nil {
		return nil, err
	}
	var facts []analyticsports.OrderFacts
	for _, o := range orders {
		if !since.IsZero() && o.CreatedAt.Before(since) {
			continue
		}
		facts = append(facts, analyticsports.OrderFacts{
			Status:      string(o.Status),
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}
	return facts, nil
}

func (r *Reader) OrderTimesSince(ctx context.Context, retailerID string, since time.Time) ([]time.Time, error) {
	facts, err := r.OrdersSince(ctx, retailerID, since)
	if err != nil {
		return nil, err
	}
	times := make([]time.Time, 0, len(facts))
	for _, f := range facts {
		times = append(times, f.CreatedAt)
	}
	return times, nil
}
