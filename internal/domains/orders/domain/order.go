package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. Any status may follow any other; the
// set itself is closed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists the closed status set in its canonical order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusProcessing,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidStatus        = errors.New("order status is invalid")
	ErrNegativeUnitPrice    = errors.New("unit price must not be negative")
)

// Order is a single-product purchase record owned by one retailer. Unit price
// and total are snapshotted at creation and never recomputed, so later product
// price edits leave existing orders untouched.
type Order struct {
	ID            string
	RetailerID    string
	ProductID     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        Status
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder validates inputs and snapshots pricing: total = unitPrice × quantity.
// New orders always start pending.
func NewOrder(retailerID, productID, customerName, customerEmail, customerPhone string, quantity int, unitPrice decimal.Decimal, notes string) (*Order, error) {
	o := &Order{
		RetailerID:    retailerID,
		ProductID:     productID,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: customerEmail,
		CustomerPhone: customerPhone,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Status:        StatusPending,
		Notes:         notes,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerName == "" {
		return ErrCustomerNameRequired
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// SetStatus moves the order to any member of the closed status set.
func (o *Order) SetStatus(status Status) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// Deletable reports whether the order may be removed. Only pending and
// cancelled orders qualify; a pending deletion also restores reserved stock.
func (o *Order) Deletable() bool {
	return o.Status == StatusPending || o.Status == StatusCancelled
}

// RestoresStockOnDelete reports whether deleting this order returns its
// reserved quantity to the product.
func (o *Order) RestoresStockOnDelete() bool {
	return o.Status == StatusPending
}

// IsValidStatus reports membership in the closed status set.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
