package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductFlag is the per-product slice of state the dashboard folds over.
type ProductFlag struct {
	Active bool
	Stock  int
}

// LowStockProduct is one entry of the low-stock listing.
type LowStockProduct struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// OrderFacts is the per-order slice of state aggregations fold over.
type OrderFacts struct {
	Status      string
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// Reader supplies the raw rows behind aggregations. A zero `since` means
// all-time.
type Reader interface {
	ProductFlags(ctx context.Context, retailerID string) ([]ProductFlag, error)
	LowestStock(ctx context.Context, retailerID string, limit int) ([]LowStockProduct, error)
	OrdersSince(ctx context.Context, retailerID string, since time.Time) ([]OrderFacts, error)
	OrderTimesSince(ctx context.Context, retailerID string, since time.Time) ([]time.Time, error)
}
