package application

import (
	"context"
	"strings"

	"github.com/storeline/storefront-api/internal/domains/retailers/domain"
	"github.com/storeline/storefront-api/internal/domains/retailers/ports"
)

// Service orchestrates retailer profile use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Register creates the tenant profile for an authenticated identity.
// A second registration for the same identity is rejected.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.Retailer, error) {
	if _, err := s.repo.GetByUserID(ctx, input.UserID); err == nil {
		return nil, mapError(ports.ErrUserAlreadyRegistered)
	}
	retailer, err := domain.NewRetailer(input.UserID, input.Name, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, retailer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a retailer; used by the public storefront surface.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Retailer, error) {
	retailer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return retailer, nil
}

// GetByUserID resolves the tenant profile for an identity subject.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.Retailer, error) {
	retailer, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return retailer, nil
}

// UpdateSettings applies a partial branding update; only provided fields change.
func (s *Service) UpdateSettings(ctx context.Context, retailerID string, input ports.SettingsInput) (*domain.Retailer, error) {
	retailer, err := s.repo.GetByID(ctx, retailerID)
	if err != nil {
		return nil, mapError(err)
	}
	applySettings(retailer, input)
	if err := retailer.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, retailer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ChangeTheme activates one of the supported themes.
func (s *Service) ChangeTheme(ctx context.Context, retailerID string, theme string) (*domain.Retailer, error) {
	retailer, err := s.repo.GetByID(ctx, retailerID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := retailer.ChangeTheme(domain.Theme(theme)); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, retailer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func applySettings(retailer *domain.Retailer, input ports.SettingsInput) {
	b := &retailer.Branding
	if input.Name != nil {
		retailer.Name = strings.TrimSpace(*input.Name)
	}
	if input.LogoURL != nil {
		b.LogoURL = *input.LogoURL
	}
	if input.BannerURL != nil {
		b.BannerURL = *input.BannerURL
	}
	if input.PrimaryColor != nil {
		b.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		b.SecondaryColor = *input.SecondaryColor
	}
	if input.FontFamily != nil {
		b.FontFamily = *input.FontFamily
	}
	if input.NavLayout != nil {
		b.NavLayout = *input.NavLayout
	}
	if input.ContactPhone != nil {
		b.ContactPhone = *input.ContactPhone
	}
	if input.ContactAddress != nil {
		b.ContactAddress = *input.ContactAddress
	}
	if input.SocialLinks != nil {
		b.SocialLinks = input.SocialLinks
	}
	if input.FooterText != nil {
		b.FooterText = *input.FooterText
	}
}

var _ ports.Service = (*Service)(nil)
