package domain

import (
	"errors"
	"strings"
	"time"
)

// Theme enumerates the storefront themes a retailer can activate.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeModern  Theme = "modern"
	ThemeClassic Theme = "classic"
	ThemeMinimal Theme = "minimal"
	ThemeBold    Theme = "bold"
)

var (
	ErrNameRequired  = errors.New("retailer name is required")
	ErrEmailRequired = errors.New("retailer email is required")
	ErrInvalidTheme  = errors.New("theme is not one of the supported set")
)

// Branding groups the storefront customization fields.
type Branding struct {
	LogoURL        string
	BannerURL      string
	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	NavLayout      string
	ContactPhone   string
	ContactAddress string
	SocialLinks    map[string]string
	FooterText     string
}

// Retailer is the tenant aggregate. Exactly one retailer exists per linked
// user identity; every product and order is scoped to one retailer.
type Retailer struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Branding  Branding
	Theme     Theme
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRetailer validates and constructs a retailer with the default theme.
func NewRetailer(userID, name, email string) (*Retailer, error) {
	r := &Retailer{
		UserID: strings.TrimSpace(userID),
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Theme:  ThemeDefault,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate enforces invariants on the aggregate.
func (r *Retailer) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Email == "" {
		return ErrEmailRequired
	}
	if !isValidTheme(r.Theme) {
		return ErrInvalidTheme
	}
	return nil
}

// ChangeTheme activates one of the supported themes.
func (r *Retailer) ChangeTheme(theme Theme) error {
	if !isValidTheme(theme) {
		return ErrInvalidTheme
	}
	r.Theme = theme
	return nil
}

func isValidTheme(theme Theme) bool {
	switch theme {
	case ThemeDefault, ThemeModern, ThemeClassic, ThemeMinimal, ThemeBold:
		return true
	default:
		return false
	}
}
