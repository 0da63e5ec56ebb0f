package httpapi

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	productsports "github.com/storeline/storefront-api/internal/domains/products/ports"
	retailersports "github.com/storeline/storefront-api/internal/domains/retailers/ports"
	"github.com/storeline/storefront-api/internal/platform/rediscache"
	"github.com/storeline/storefront-api/internal/shared/apierrors"
	"github.com/storeline/storefront-api/internal/shared/envelope"
)

const storefrontCacheTTL = 30 * time.Second

// StorefrontAPI serves the public, unauthenticated storefront view.
type StorefrontAPI struct {
	retailers retailersports.Service
	products  productsports.Service
	cache     *rediscache.Cache
	responder *apierrors.Responder
}

// NewStorefrontAPI creates a StorefrontAPI. cache may be nil.
func NewStorefrontAPI(retailers retailersports.Service, products productsports.Service, cache *rediscache.Cache) StorefrontAPI {
	return StorefrontAPI{
		retailers: retailers,
		products:  products,
		cache:     cache,
		responder: apierrors.NewResponder(mapRetailerError, mapProductError),
	}
}

type storefrontResponse struct {
	Store    retailerResponse  `json:"store"`
	Products []productResponse `json:"products"`
}

// Get /api/retailer/store/:retailerId
// Public storefront: branding plus active in-stock products only.
func (api *StorefrontAPI) GetStore(c *gin.Context) {
	retailerID := c.Param("retailerId")
	cacheKey := fmt.Sprintf("storefront:%s", retailerID)

	var cached storefrontResponse
	if err := api.cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil {
		envelope.OK(c, "", cached)
		return
	}

	retailer, err := api.retailers.GetByID(c.Request.Context(), retailerID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	products, err := api.products.ListPublic(c.Request.Context(), retailerID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	items := make([]productResponse, 0, len(products))
	for _, product := range products {
		items = append(items, fromProduct(product))
	}
	response := storefrontResponse{Store: fromRetailer(retailer), Products: items}
	_ = api.cache.SetJSON(c.Request.Context(), cacheKey, response, storefrontCacheTTL)
	envelope.OK(c, "", response)
}
