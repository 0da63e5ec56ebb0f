package httpapi

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	analyticsapp "github.com/storeline/storefront-api/internal/domains/analytics/application"
	retailersapp "github.com/storeline/storefront-api/internal/domains/retailers/application"
	retailersdomain "github.com/storeline/storefront-api/internal/domains/retailers/domain"
	retailersports "github.com/storeline/storefront-api/internal/domains/retailers/ports"
	"github.com/storeline/storefront-api/internal/shared/apierrors"
	"github.com/storeline/storefront-api/internal/shared/envelope"
)

// RetailerAPI wires HTTP transport with the retailers bounded context plus
// the dashboard aggregation.
type RetailerAPI struct {
	service   retailersports.Service
	analytics analyticsapp.Port
	responder *apierrors.Responder
}

// NewRetailerAPI creates a RetailerAPI backed by the provided services.
func NewRetailerAPI(service retailersports.Service, analytics analyticsapp.Port) RetailerAPI {
	return RetailerAPI{
		service:   service,
		analytics: analytics,
		responder: apierrors.NewResponder(mapRetailerError),
	}
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type settingsRequest struct {
	Name           *string           `json:"name"`
	LogoURL        *string           `json:"logo_url"`
	BannerURL      *string           `json:"banner_url"`
	PrimaryColor   *string           `json:"primary_color"`
	SecondaryColor *string           `json:"secondary_color"`
	FontFamily     *string           `json:"font_family"`
	NavLayout      *string           `json:"nav_layout"`
	ContactPhone   *string           `json:"contact_phone"`
	ContactAddress *string           `json:"contact_address"`
	SocialLinks    map[string]string `json:"social_links"`
	FooterText     *string           `json:"footer_text"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=default modern classic minimal bold"`
}

type retailerResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	LogoURL        string            `json:"logo_url,omitempty"`
	BannerURL      string            `json:"banner_url,omitempty"`
	PrimaryColor   string            `json:"primary_color,omitempty"`
	SecondaryColor string            `json:"secondary_color,omitempty"`
	FontFamily     string            `json:"font_family,omitempty"`
	NavLayout      string            `json:"nav_layout,omitempty"`
	ContactPhone   string            `json:"contact_phone,omitempty"`
	ContactAddress string            `json:"contact_address,omitempty"`
	SocialLinks    map[string]string `json:"social_links,omitempty"`
	FooterText     string            `json:"footer_text,omitempty"`
	Theme          string            `json:"theme"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Post /api/retailer/register
// Create the tenant profile for the authenticated identity.
func (api *RetailerAPI) Register(c *gin.Context) {
	var payload registerRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer, err := api.service.Register(c.Request.Context(), retailersports.RegisterInput{
		UserID: currentUserID(c),
		Name:   payload.Name,
		Email:  payload.Email,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.Created(c, "retailer registered", fromRetailer(retailer))
}

// Get /api/retailer/profile
func (api *RetailerAPI) Profile(c *gin.Context) {
	envelope.OK(c, "", fromRetailer(currentRetailer(c)))
}

// Put /api/retailer/settings
// Partial branding update; only provided fields change.
func (api *RetailerAPI) UpdateSettings(c *gin.Context) {
	var payload settingsRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer := currentRetailer(c)
	updated, err := api.service.UpdateSettings(c.Request.Context(), retailer.ID, retailersports.SettingsInput{
		Name:           payload.Name,
		LogoURL:        payload.LogoURL,
		BannerURL:      payload.BannerURL,
		PrimaryColor:   payload.PrimaryColor,
		SecondaryColor: payload.SecondaryColor,
		FontFamily:     payload.FontFamily,
		NavLayout:      payload.NavLayout,
		ContactPhone:   payload.ContactPhone,
		ContactAddress: payload.ContactAddress,
		SocialLinks:    payload.SocialLinks,
		FooterText:     payload.FooterText,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "settings updated", fromRetailer(updated))
}

// Patch /api/retailer/theme
// Activate one of the supported themes.
func (api *RetailerAPI) UpdateTheme(c *gin.Context) {
	var payload themeRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer := currentRetailer(c)
	updated, err := api.service.ChangeTheme(c.Request.Context(), retailer.ID, payload.Theme)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "theme updated", fromRetailer(updated))
}

// Get /api/retailer/dashboard
// Aggregate dashboard; fails whole when any underlying fetch fails.
func (api *RetailerAPI) Dashboard(c *gin.Context) {
	retailer := currentRetailer(c)
	dashboard, err := api.analytics.Dashboard(c.Request.Context(), retailer.ID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "", dashboard)
}

func fromRetailer(retailer *retailersdomain.Retailer) retailerResponse {
	return retailerResponse{
		ID:             retailer.ID,
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
		CreatedAt:      retailer.CreatedAt,
		UpdatedAt:      retailer.UpdatedAt,
	}
}

func mapRetailerError(err error) (apierrors.APIError, bool) {
	switch {
	case errors.Is(err, retailersports.ErrNotFound):
		return apierrors.ErrNotFound.WithMessage("retailer not found"), true
	case errors.Is(err, retailersapp.ErrAlreadyRegistered):
		return apierrors.ErrConflict.WithMessage("retailer profile already exists"), true
	case errors.Is(err, retailersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	default:
		return apierrors.APIError{}, false
	}
}
