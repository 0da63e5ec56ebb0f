package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/storeline/storefront-api/internal/domains/products/domain"
	"github.com/storeline/storefront-api/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID          string          `gorm:"primaryKey;column:id;type:uuid"`
	RetailerID  string          `gorm:"column:retailer_id;type:uuid;index:idx_products_retailer_category"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Stock       int             `gorm:"column:stock"`
	Category    string          `gorm:"column:category;index:idx_products_retailer_category"`
	ImageURL    string          `gorm:"column:image_url"`
	IsActive    bool            `gorm:"column:is_active"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Create inserts a new product, minting its identifier.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.RetailerID, record.ID)
}

// GetByID fetches a product scoped to its owning retailer.
func (r *Repository) GetByID(ctx context.Context, retailerID, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
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

// List returns a filtered page of the tenant's catalog, newest first.
func (r *Repository) List(ctx context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{}).Where("retailer_id = ?", retailerID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []productRecord
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, total, nil
}

// Update writes only the supplied fields. Stock stays untouched unless
// explicitly provided, so a sale landing mid-request is never overwritten.
func (r *Repository) Update(ctx context.Context, retailerID, id string, fields ports.UpdateProductInput) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	updates := map[string]any{"updated_at": gorm.Expr("NOW()")}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Price != nil {
		updates["price"] = *fields.Price
	}
	if fields.Stock != nil {
		updates["stock"] = *fields.Stock
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.ImageURL != nil {
		updates["image_url"] = *fields.ImageURL
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND retailer_id = ?", id, retailerID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, retailerID, id)
}

// Delete removes a product scoped to its owning retailer.
func (r *Repository) Delete(ctx context.Context, retailerID, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("id = ? AND retailer_id = ?", id, retailerID).
		Delete(&productRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ListPublic returns active, in-stock products for the public storefront.
func (r *Repository) ListPublic(ctx context.Context, retailerID string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	err := r.db.WithContext(ctx).
		Where("retailer_id = ? AND is_active = ? AND stock > 0", retailerID, true).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		RetailerID:  product.RetailerID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		IsActive:    product.IsActive,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		RetailerID:  r.RetailerID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
