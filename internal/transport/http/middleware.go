package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	retailersdomain "github.com/storeline/storefront-api/internal/domains/retailers/domain"
	retailersports "github.com/storeline/storefront-api/internal/domains/retailers/ports"
	"github.com/storeline/storefront-api/internal/platform/auth"
	"github.com/storeline/storefront-api/internal/shared/apierrors"
)

const (
	ctxKeyUserID   = "auth.user_id"
	ctxKeyRetailer = "auth.retailer"
)

// Authenticate validates the bearer token and resolves the tenant profile.
// Missing or invalid tokens yield 401. A valid token without a retailer
// profile is allowed through with no retailer in context; routes that need a
// profile add RequireRetailer.
func Authenticate(verifier *auth.Verifier, retailers retailersports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(ctxKeyUserID, claims.Subject)
		retailer, err := retailers.GetByUserID(c.Request.Context(), claims.Subject)
		if err == nil {
			c.Set(ctxKeyRetailer, retailer)
		} else if !errors.Is(err, retailersports.ErrNotFound) {
			apierrors.Respond(c, apierrors.ErrInternal)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRetailer rejects authenticated callers that have not completed
// registration yet.
func RequireRetailer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxKeyRetailer); !ok {
			apierrors.Respond(c, apierrors.ErrNotFound.
				WithMessage("retailer profile not found; complete registration first"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

func currentRetailer(c *gin.Context) *retailersdomain.Retailer {
	value, ok := c.Get(ctxKeyRetailer)
	if !ok {
		return nil
	}
	retailer, _ := value.(*retailersdomain.Retailer)
	return retailer
}
