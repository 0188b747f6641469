package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// UpdateProductRequest body for PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// ListPriceRequest body for POST /api/products/:id/prices. Appends to the
// price history; existing entries are never rewritten.
type ListPriceRequest struct {
	PriceType     string          `json:"price_type" validate:"required,oneof=consumer retail"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"required"`
	EffectiveFrom string          `json:"effective_from,omitempty"` // 2006-01-02, defaults to today
}

// ListPriceResponse one price history entry.
type ListPriceResponse struct {
	ID            string          `json:"id"`
	PriceType     string          `json:"price_type"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EffectiveFrom string          `json:"effective_from"`
}

// ProductResponse product in responses.
type ProductResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductDetailResponse product with its full price history.
type ProductDetailResponse struct {
	ProductResponse
	Prices []ListPriceResponse `json:"prices"`
}
