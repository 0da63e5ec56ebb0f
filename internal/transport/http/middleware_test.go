package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	retailersdomain "github.com/storeline/storefront-api/internal/domains/retailers/domain"
	retailersports "github.com/storeline/storefront-api/internal/domains/retailers/ports"
	"github.com/storeline/storefront-api/internal/platform/auth"
)

const middlewareTestSecret = "middleware-test-secret"

// fakeRetailerService resolves a fixed profile for one user ID.
type fakeRetailerService struct {
	retailer *retailersdomain.Retailer
}

func (f *fakeRetailerService) Register(_ context.Context, _ retailersports.RegisterInput) (*retailersdomain.Retailer, error) {
	return nil, retailersports.ErrUserAlreadyRegistered
}

func (f *fakeRetailerService) GetByID(_ context.Context, id string) (*retailersdomain.Retailer, error) {
	if f.retailer != nil && f.retailer.ID == id {
		return f.retailer, nil
	}
	return nil, retailersports.ErrNotFound
}

func (f *fakeRetailerService) GetByUserID(_ context.Context, userID string) (*retailersdomain.Retailer, error) {
	if f.retailer != nil && f.retailer.UserID == userID {
		return f.retailer, nil
	}
	return nil, retailersports.ErrNotFound
}

func (f *fakeRetailerService) UpdateSettings(_ context.Context, _ string, _ retailersports.SettingsInput) (*retailersdomain.Retailer, error) {
	return nil, retailersports.ErrNotFound
}

func (f *fakeRetailerService) ChangeTheme(_ context.Context, _ string, _ string) (*retailersdomain.Retailer, error) {
	return nil, retailersports.ErrNotFound
}

func signTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(middlewareTestSecret))
	require.NoError(t, err)
	return signed
}

func newAuthTestRouter(retailers retailersports.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	verifier := auth.NewVerifier(middlewareTestSecret)
	group := router.Group("", Authenticate(verifier, retailers))
	group.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUserID(c)})
	})
	group.GET("/tenant", RequireRetailer(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"retailer": currentRetailer(c).ID})
	})
	return router
}

func TestAuthenticate_MissingToken(t *testing.T) {
	router := newAuthTestRouter(&fakeRetailerService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	router := newAuthTestRouter(&fakeRetailerService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidTokenWithoutProfile(t *testing.T) {
	router := newAuthTestRouter(&fakeRetailerService{})
	token := signTestToken(t, "user-1")

	// Unregistered identities may still reach routes like registration.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "user-1")

	// Tenant routes demand the profile.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/tenant", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "complete registration")
}

func TestAuthenticate_ResolvesRetailer(t *testing.T) {
	service := &fakeRetailerService{retailer: &retailersdomain.Retailer{
		ID:     "ret-1",
		UserID: "user-1",
		Name:   "Corner Shop",
		Email:  "owner@corner.example",
		Theme:  retailersdomain.ThemeDefault,
	}}
	router := newAuthTestRouter(service)
	token := signTestToken(t, "user-1")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tenant", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ret-1")
}
