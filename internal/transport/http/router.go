package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	retailersports "github.com/storeline/storefront-api/internal/domains/retailers/ports"
	"github.com/storeline/storefront-api/internal/platform/auth"
)

// Deps collects everything the router needs. All handler APIs are value
// types; the verifier and retailers service feed the auth middleware.
type Deps struct {
	Verifier  *auth.Verifier
	Retailers retailersports.Service

	RetailerAPI   RetailerAPI
	ProductAPI    ProductAPI
	OrderAPI      OrderAPI
	StorefrontAPI StorefrontAPI
	UploadAPI     UploadAPI

	PublicRateRPS   float64
	PublicRateBurst int

	Middleware []gin.HandlerFunc
}

// NewRouter assembles the gin engine and mounts all routes.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(deps.Middleware...)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	public := api.Group("")
	if deps.PublicRateRPS > 0 {
		public.Use(RateLimit(deps.PublicRateRPS, deps.PublicRateBurst))
	}
	public.GET("/retailer/store/:retailerId", deps.StorefrontAPI.GetStore)

	authed := api.Group("", Authenticate(deps.Verifier, deps.Retailers))
	authed.POST("/retailer/register", deps.RetailerAPI.Register)

	tenant := authed.Group("", RequireRetailer())

	tenant.GET("/retailer/profile", deps.RetailerAPI.Profile)
	tenant.PUT("/retailer/settings", deps.RetailerAPI.UpdateSettings)
	tenant.PATCH("/retailer/theme", deps.RetailerAPI.UpdateTheme)
	tenant.GET("/retailer/dashboard", deps.RetailerAPI.Dashboard)

	tenant.POST("/products", deps.ProductAPI.CreateProduct)
	tenant.GET("/products", deps.ProductAPI.ListProducts)
	tenant.GET("/products/:id", deps.ProductAPI.GetProduct)
	tenant.PUT("/products/:id", deps.ProductAPI.UpdateProduct)
	tenant.PATCH("/products/:id/toggle-status", deps.ProductAPI.ToggleProductStatus)
	tenant.DELETE("/products/:id", deps.ProductAPI.DeleteProduct)

	tenant.POST("/orders", deps.OrderAPI.CreateOrder)
	tenant.GET("/orders", deps.OrderAPI.ListOrders)
	tenant.GET("/orders/stats", deps.OrderAPI.OrderStats)
	tenant.GET("/orders/:id", deps.OrderAPI.GetOrder)
	tenant.PUT("/orders/:id", deps.OrderAPI.UpdateOrder)
	tenant.DELETE("/orders/:id", deps.OrderAPI.DeleteOrder)

	tenant.POST("/uploads", deps.UploadAPI.Upload)

	return router
}
