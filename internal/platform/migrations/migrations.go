package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&retailerRecord{},
		&productRecord{},
		&orderRecord{},
	)
}

// Retailer schema mirrors the retailers Postgres adapter.
type retailerRecord struct {
	ID             string            `gorm:"primaryKey;column:id;type:uuid"`
	UserID         string            `gorm:"column:user_id;uniqueIndex"`
	Name           string            `gorm:"column:name"`
	Email          string            `gorm:"column:email"`
	LogoURL        string            `gorm:"column:logo_url"`
	BannerURL      string            `gorm:"column:banner_url"`
	PrimaryColor   string            `gorm:"column:primary_color"`
	SecondaryColor string            `gorm:"column:secondary_color"`
	FontFamily     string            `gorm:"column:font_family"`
	NavLayout      string            `gorm:"column:nav_layout"`
	ContactPhone   string            `gorm:"column:contact_phone"`
	ContactAddress string            `gorm:"column:contact_address"`
	SocialLinks    map[string]string `gorm:"column:social_links;serializer:json"`
	FooterText     string            `gorm:"column:footer_text"`
	Theme          string            `gorm:"column:theme;type:varchar(32)"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`
}

func (retailerRecord) TableName() string { return "retailers" }

// Product schema mirrors the products Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
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
