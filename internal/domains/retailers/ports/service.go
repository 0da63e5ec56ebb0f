package ports

import (
	"context"

	"github.com/storeline/storefront-api/internal/domains/retailers/domain"
)

// RegisterInput carries the fields required to create a tenant profile.
type RegisterInput struct {
	UserID string
	Name   string
	Email  string
}

// SettingsInput is a partial branding update; nil fields are left untouched.
type SettingsInput struct {
	Name           *string
	LogoURL        *string
	BannerURL      *string
	PrimaryColor   *string
	SecondaryColor *string
	FontFamily     *string
	NavLayout      *string
	ContactPhone   *string
	ContactAddress *string
	SocialLinks    map[string]string
	FooterText     *string
}

// Service exposes retailer use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Retailer, error)
	GetByID(ctx context.Context, id string) (*domain.Retailer, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Retailer, error)
	UpdateSettings(ctx context.Context, retailerID string, input SettingsInput) (*domain.Retailer, error)
	ChangeTheme(ctx context.Context, retailerID string, theme string) (*domain.Retailer, error)
}
