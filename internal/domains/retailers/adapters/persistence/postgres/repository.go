package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeline/storefront-api/internal/domains/retailers/domain"
	"github.com/storeline/storefront-api/internal/domains/retailers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists retailers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// retailerRecord maps the retailer aggregate to a relational table.
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

// Create inserts a new retailer profile, minting its identifier.
func (r *Repository) Create(ctx context.Context, retailer *domain.Retailer) (*domain.Retailer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(retailer)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrUserAlreadyRegistered
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a retailer by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Retailer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record retailerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByUserID fetches the retailer linked to an identity subject.
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*domain.Retailer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record retailerRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update persists the mutable profile fields.
func (r *Repository) Update(ctx context.Context, retailer *domain.Retailer) (*domain.Retailer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(retailer)
	result := r.db.WithContext(ctx).Model(&retailerRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"name":            record.Name,
			"logo_url":        record.LogoURL,
			"banner_url":      record.BannerURL,
			"primary_color":   record.PrimaryColor,
			"secondary_color": record.SecondaryColor,
			"font_family":     record.FontFamily,
			"nav_layout":      record.NavLayout,
			"contact_phone":   record.ContactPhone,
			"contact_address": record.ContactAddress,
			"social_links":    record.SocialLinks,
			"footer_text":     record.FooterText,
			"theme":           record.Theme,
			"updated_at":      gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres retailer repository not configured")
	}
	return nil
}

func toRecord(retailer *domain.Retailer) retailerRecord {
	return retailerRecord{
		ID:             retailer.ID,
		UserID:         retailer.UserID,
		Name:           retailer.Name,
		Email:          retailer.Email,
		LogoURL:        retailer.Branding.LogoURL,
		BannerURL:      retailer.Branding.BannerURL,
		PrimaryColor:   retailer.Branding.PrimaryColor,
		SecondaryColor: retailer.Branding.SecondaryColor,
		FontFamily:     retailer.Branding.FontFamily,
		NavLayout:      retailer.Branding.NavLayout,
		ContactPhone:   retailer.Branding.ContactPhone,
		ContactAddress: retailer.Branding.ContactAddress,
		SocialLinks:    retailer.Branding.SocialLinks,
		FooterText:     retailer.Branding.FooterText,
		Theme:          string(retailer.Theme),
	}
}

func (r retailerRecord) toDomain() *domain.Retailer {
	return &domain.Retailer{
		ID:     r.ID,
		UserID: r.UserID,
		Name:   r.Name,
		Email:  r.Email,
		Branding: domain.Branding{
			LogoURL:        r.LogoURL,
			BannerURL:      r.BannerURL,
			PrimaryColor:   r.PrimaryColor,
			SecondaryColor: r.SecondaryColor,
			FontFamily:     r.FontFamily,
			NavLayout:      r.NavLayout,
			ContactPhone:   r.ContactPhone,
			ContactAddress: r.ContactAddress,
			SocialLinks:    r.SocialLinks,
			FooterText:     r.FooterText,
		},
		Theme:     domain.Theme(r.Theme),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
