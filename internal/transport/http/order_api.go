package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	analyticsapp "github.com/storeline/storefront-api/internal/domains/analytics/application"
	ordersapp "github.com/storeline/storefront-api/internal/domains/orders/application"
	ordersdomain "github.com/storeline/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/storeline/storefront-api/internal/domains/orders/ports"
	"github.com/storeline/storefront-api/internal/shared/apierrors"
	"github.com/storeline/storefront-api/internal/shared/envelope"
)

// OrderAPI wires HTTP transport with the orders bounded context.
type OrderAPI struct {
	service   ordersports.Service
	analytics analyticsapp.Port
	responder *apierrors.Responder
}

// NewOrderAPI creates an OrderAPI backed by the provided services.
func NewOrderAPI(service ordersports.Service, analytics analyticsapp.Port) OrderAPI {
	return OrderAPI{
		service:   service,
		analytics: analytics,
		responder: apierrors.NewResponder(mapOrderError),
	}
}

type createOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone string `json:"customer_phone"`
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	Notes         string `json:"notes"`
}

type updateOrderRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	Notes  *string `json:"notes"`
}

type orderResponse struct {
	ID            string               `json:"id"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email,omitempty"`
	CustomerPhone string               `json:"customer_phone,omitempty"`
	ProductID     string               `json:"product_id"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     decimal.Decimal      `json:"unit_price"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	Status        string               `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Product       *productSummaryEmbed `json:"product,omitempty"`
}

type productSummaryEmbed struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url,omitempty"`
}

// Post /api/orders
// Place an order against product availability.
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload createOrderRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer := currentRetailer(c)
	result, err := api.service.Create(c.Request.Context(), ordersports.CreateOrderInput{
		RetailerID:    retailer.ID,
		ProductID:     payload.ProductID,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
		Quantity:      payload.Quantity,
		Notes:         payload.Notes,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.Created(c, "order created", fromOrderWithProduct(result))
}

// Get /api/orders
// List orders newest first with optional status and customer name filters.
func (api *OrderAPI) ListOrders(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	filter := ordersports.ListFilter{
		Status:       c.Query("status"),
		CustomerName: c.Query("customer_name"),
		Page:         page,
		Limit:        limit,
	}
	retailer := currentRetailer(c)
	orders, total, err := api.service.List(c.Request.Context(), retailer.ID, filter)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	items := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, fromOrder(order))
	}
	envelope.Paginated(c, items, envelope.NewPagination(page, limit, total))
}

// Get /api/orders/:id
// Load a single order with its product detail.
func (api *OrderAPI) GetOrder(c *gin.Context) {
	retailer := currentRetailer(c)
	result, err := api.service.GetByID(c.Request.Context(), retailer.ID, c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "", fromOrderWithProduct(result))
}

// Put /api/orders/:id
// Update order status and, optionally, notes.
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	var payload updateOrderRequest
	if !bindJSON(c, &payload) {
		return
	}
	retailer := currentRetailer(c)
	order, err := api.service.UpdateStatus(c.Request.Context(), retailer.ID, c.Param("id"), ordersports.UpdateOrderInput{
		Status: payload.Status,
		Notes:  payload.Notes,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "order updated", fromOrder(order))
}

// Delete /api/orders/:id
// Remove a pending or cancelled order, restoring stock for pending ones.
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	retailer := currentRetailer(c)
	if err := api.service.Delete(c.Request.Context(), retailer.ID, c.Param("id")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "order deleted", nil)
}

// Get /api/orders/stats
// All-time per-status counts plus delivered revenue.
func (api *OrderAPI) OrderStats(c *gin.Context) {
	retailer := currentRetailer(c)
	stats, err := api.analytics.OrderStats(c.Request.Context(), retailer.ID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	envelope.OK(c, "", stats)
}

func fromOrder(order *ordersdomain.Order) orderResponse {
	return orderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		ProductID:     order.ProductID,
		Quantity:      order.Quantity,
		UnitPrice:     order.UnitPrice,
		TotalAmount:   order.TotalAmount,
		Status:        string(order.Status),
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func fromOrderWithProduct(result *ordersports.OrderWithProduct) orderResponse {
	response := fromOrder(result.Order)
	if result.Product != nil {
		response.Product = &productSummaryEmbed{
			ID:       result.Product.ID,
			Name:     result.Product.Name,
			Price:    result.Product.Price,
			Stock:    result.Product.Stock,
			ImageURL: result.Product.ImageURL,
		}
	}
	return response
}

func mapOrderError(err error) (apierrors.APIError, bool) {
	var stockErr *ordersapp.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return apierrors.InsufficientStock(stockErr.Available, stockErr.Requested), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithMessage("order not found"), true
	case errors.Is(err, ordersports.ErrProductUnavailable):
		return apierrors.ErrNotFound.WithMessage("product not found or inactive"), true
	case errors.Is(err, ordersapp.ErrNotDeletable):
		return apierrors.ErrConflict.WithMessage(ordersapp.ErrNotDeletable.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	default:
		return apierrors.APIError{}, false
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
