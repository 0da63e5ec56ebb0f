package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired  = errors.New("product name is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

// Product is a catalog item owned by exactly one retailer.
type Product struct {
	ID          string
	RetailerID  string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and constructs an active product.
func NewProduct(retailerID, name, description string, price decimal.Decimal, stock int, category, imageURL string) (*Product, error) {
	p := &Product{
		RetailerID:  retailerID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		ImageURL:    imageURL,
		IsActive:    true,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants: stock and price never negative, name present.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// ToggleActive flips the active flag and nothing else.
func (p *Product) ToggleActive() {
	p.IsActive = !p.IsActive
}

// InStock reports whether the product can currently be sold.
func (p *Product) InStock() bool {
	return p.IsActive && p.Stock > 0
}
