package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	productsapp "github.com/storeline/storefront-api/internal/domains/products/application"
	productsdomain "github.com/storeline/storefront-api/internal/domains/products/domain"
	productsports "github.com/storeline/storefront-api/internal/domains/products/ports"
	"github.com/storeline/storefront-api/internal/shared/apierrors"
	"github.com/storeline/storefront-api/internal/shared/envelope"
)

// ProductAPI wires HTTP transport with the products bounded context.
type ProductAPI struct {
	service   productsports.Service
	responder *apierrors.Responder
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productsports.Service) ProductAPI {
	return ProductAPI{service: service, responder: apierrors.NewResponder(mapProductError)}
}

type createProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Post /api/products
// Add a product to the catalog.
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload createProductRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer := currentRetailer(c)
	product, err := api.service.Create(c.Request.Context(), productsports.CreateProductInput{
		RetailerID:  retailer.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.Created(c, "product created", fromProduct(product))
}

// Get /api/products
// List the catalog with category/active filters and pagination.
func (api *ProductAPI) ListProducts(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	filter := productsports.ListFilter{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &active
		}
	}
	retailer := currentRetailer(c)
	products, total, err := api.service.List(c.Request.Context(), retailer.ID, filter)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	items := make([]productResponse, 0, len(products))
	for _, product := range products {
		items = append(items, fromProduct(product))
	}
	envelope.Paginated(c, items, envelope.NewPagination(page, limit, total))
}

// Get /api/products/:id
func (api *ProductAPI) GetProduct(c *gin.Context) {
	retailer := currentRetailer(c)
	product, err := api.service.GetByID(c.Request.Context(), retailer.ID, c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "", fromProduct(product))
}

// Put /api/products/:id
// Partial update; only provided fields change.
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	var payload updateProductRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer := currentRetailer(c)
	product, err := api.service.Update(c.Request.Context(), retailer.ID, c.Param("id"), productsports.UpdateProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "product updated", fromProduct(product))
}

// Patch /api/products/:id/toggle-status
// Flip the active flag, leaving every other field untouched.
func (api *ProductAPI) ToggleProductStatus(c *gin.Context) {
	retailer := currentRetailer(c)
	product, err := api.service.ToggleStatus(c.Request.Context(), retailer.ID, c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "product status toggled", fromProduct(product))
}

// Delete /api/products/:id
// Blocked with 409 while any order references the product.
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	retailer := currentRetailer(c)
	if err := api.service.Delete(c.Request.Context(), retailer.ID, c.Param("id")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "product deleted", nil)
}

func fromProduct(product *productsdomain.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func mapProductError(err error) (apierrors.APIError, bool) {
	switch {
	case errors.Is(err, productsports.ErrNotFound):
		return apierrors.ErrNotFound.WithMessage("product not found"), true
	case errors.Is(err, productsapp.ErrProductReferenced):
		return apierrors.ErrConflict.WithMessage(productsapp.ErrProductReferenced.Error()), true
	case errors.Is(err, productsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	default:
		return apierrors.APIError{}, false
	}
}
