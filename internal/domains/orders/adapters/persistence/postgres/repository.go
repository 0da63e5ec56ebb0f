package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
	"github.com/storeline/storefront-api/internal/domains/orders/ports"
)

var (
	_ ports.Repository     = (*Repository)(nil)
	_ ports.ProductCatalog = (*Repository)(nil)
)

// Repository persists orders in PostgreSQL using GORM. Stock side effects are
// executed in the same transaction as the order row change.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID            string          `gorm:"primaryKey;column:id;type:uuid"`
	RetailerID    string          `gorm:"column:retailer_id;type:uuid;index:idx_orders_retailer_status"`
	ProductID     string          `gorm:"column:product_id;type:uuid;index"`
	CustomerName  string          `gorm:"column:customer_name;index"`
	CustomerEmail string          `gorm:"column:customer_email"`
	CustomerPhone string          `gorm:"column:customer_phone"`
	Quantity      int             `gorm:"column:quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	Status        string          `gorm:"column:status;type:varchar(32);index:idx_orders_retailer_status"`
	Notes         string          `gorm:"column:notes"`
	CreatedAt     time.Time       `gorm:"column:created_at;index"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// productRow is the slice of the products table this context touches.
type productRow struct {
	ID         string          `gorm:"primaryKey;column:id"`
	RetailerID string          `gorm:"column:retailer_id"`
	Name       string          `gorm:"column:name"`
	Price      decimal.Decimal `gorm:"column:price"`
	Stock      int             `gorm:"column:stock"`
	ImageURL   string          `gorm:"column:image_url"`
	IsActive   bool            `gorm:"column:is_active"`
}

func (productRow) TableName() string { return "products" }

// Create inserts the order and decrements product stock as one transaction.
// The decrement is a conditional update guarded by stock >= quantity; zero
// rows affected rolls the whole operation back with ErrInsufficientStock.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&productRow{}).
			Where("id = ? AND retailer_id = ? AND stock >= ?", record.ProductID, record.RetailerID, record.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", record.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrInsufficientStock
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.RetailerID, record.ID)
}

// GetByID fetches an order scoped to its owning retailer.
func (r *Repository) GetByID(ctx context.Context, retailerID, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).
		First(&record, "id = ? AND retailer_id = ?", id, retailerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns a filtered page of the tenant's orders, newest first. The
// customer name filter is a case-insensitive substring match.
func (r *Repository) List(ctx context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{}).Where("retailer_id = ?", retailerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerName != "" {
		query = query.Where("customer_name ILIKE ?", "%"+filter.CustomerName+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []orderRecord
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, total, nil
}

// Update persists status and notes. Pricing snapshots are immutable and never
// written back.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND retailer_id = ?", order.ID, order.RetailerID).
		Updates(map[string]any{
			"status":     string(order.Status),
			"notes":      order.Notes,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.RetailerID, order.ID)
}

// Delete removes the order row and, for pending orders, restores the reserved
// stock in the same transaction.
func (r *Repository) Delete(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND retailer_id = ?", order.ID, order.RetailerID).
			Delete(&orderRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		if order.RestoresStockOnDelete() {
			return tx.Model(&productRow{}).
				Where("id = ? AND retailer_id = ?", order.ProductID, order.RetailerID).
				UpdateColumn("stock", gorm.Expr("stock + ?", order.Quantity)).Error
		}
		return nil
	})
}

// CountByProduct reports how many orders reference a product.
func (r *Repository) CountByProduct(ctx context.Context, retailerID, productID string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("retailer_id = ? AND product_id = ?", retailerID, productID).
		Count(&count).Error
	return count, err
}

// GetForSale resolves an active product for order creation.
func (r *Repository) GetForSale(ctx context.Context, retailerID, productID string) (*ports.ProductSummary, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row productRow
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND retailer_id = ? AND is_active = ?", productID, retailerID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductUnavailable
		}
		return nil, err
	}
	return &ports.ProductSummary{
		ID:       row.ID,
		Name:     row.Name,
		Price:    row.Price,
		Stock:    row.Stock,
		ImageURL: row.ImageURL,
	}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:            order.ID,
		RetailerID:    order.RetailerID,
		ProductID:     order.ProductID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Quantity:      order.Quantity,
		UnitPrice:     order.UnitPrice,
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		Notes:         order.Notes,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		RetailerID:    r.RetailerID,
		ProductID:     r.ProductID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		TotalAmount:   r.TotalAmount,
		Status:        domain.Status(r.Status),
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
