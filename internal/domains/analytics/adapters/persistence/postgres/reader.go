package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storeline/storefront-api/internal/domains/analytics/ports"
)

var _ ports.Reader = (*Reader)(nil)

// Reader runs the read-only aggregation queries against PostgreSQL.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

type productFlagRow struct {
	IsActive bool `gorm:"column:is_active"`
	Stock    int  `gorm:"column:stock"`
}

type lowStockRow struct {
	ID    string `gorm:"column:id"`
	Name  string `gorm:"column:name"`
	Stock int    `gorm:"column:stock"`
}

type orderFactsRow struct {
	Status      string          `gorm:"column:status"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

// ProductFlags returns every product's active flag and stock level.
func (r *Reader) ProductFlags(ctx context.Context, retailerID string) ([]ports.ProductFlag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []productFlagRow
	err := r.db.WithContext(ctx).Table("products").
		Select("is_active", "stock").
		Where("retailer_id = ?", retailerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	flags := make([]ports.ProductFlag, 0, len(rows))
	for _, row := range rows {
		flags = append(flags, ports.ProductFlag{Active: row.IsActive, Stock: row.Stock})
	}
	return flags, nil
}

// LowestStock returns up to limit active products, ascending by stock.
func (r *Reader) LowestStock(ctx context.Context, retailerID string, limit int) ([]ports.LowStockProduct, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []lowStockRow
	err := r.db.WithContext(ctx).Table("products").
		Select("id", "name", "stock").
		Where("retailer_id = ? AND is_active = ?", retailerID, true).
		Order("stock ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	products := make([]ports.LowStockProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, ports.LowStockProduct{ID: row.ID, Name: row.Name, Stock: row.Stock})
	}
	return products, nil
}

// OrdersSince returns status/amount/timestamp facts; a zero since means
// all-time.
func (r *Reader) OrdersSince(ctx context.Context, retailerID string, since time.Time) ([]ports.OrderFacts, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Table("orders").
		Select("status", "total_amount", "created_at").
		Where("retailer_id = ?", retailerID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	var rows []orderFactsRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	facts := make([]ports.OrderFacts, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, ports.OrderFacts{
			Status:      row.Status,
			TotalAmount: row.TotalAmount,
			CreatedAt:   row.CreatedAt,
		})
	}
	return facts, nil
}

// OrderTimesSince returns creation timestamps only, for the daily series.
func (r *Reader) OrderTimesSince(ctx context.Context, retailerID string, since time.Time) ([]time.Time, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var times []time.Time
	err := r.db.WithContext(ctx).Table("orders").
		Where("retailer_id = ? AND created_at >= ?", retailerID, since).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *Reader) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres analytics reader not configured")
	}
	return nil
}
