package dto

import "github.com/shopspring/decimal"

// DocumentItemRequest one line on a quote or invoice request. UnitPrice
// is optional: when nil the price is resolved from the customer's
// overrides and the product's list prices.
type DocumentItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// LineItemResponse one document line in responses.
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CreateQuoteRequest body for POST /api/quotes.
type CreateQuoteRequest struct {
	CustomerID string                `json:"customer_id" validate:"required"`
	IssueDate  string                `json:"issue_date,omitempty"`  // 2006-01-02, defaults to today
	ValidUntil string                `json:"valid_until,omitempty"` // defaults to issue + 30 days
	Notes      string                `json:"notes,omitempty"`
	Items      []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteRequest body for PUT /api/quotes/:id (draft only).
type UpdateQuoteRequest struct {
	ValidUntil string                `json:"valid_until,omitempty"`
	Notes      string                `json:"notes,omitempty"`
	Items      []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteResponse quote with lines.
type QuoteResponse struct {
	ID         string             `json:"id"`
	Number     string             `json:"number"`
	CustomerID string             `json:"customer_id"`
	IssueDate  string             `json:"issue_date"`
	ValidUntil string             `json:"valid_until"`
	Status     string             `json:"status"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	VATAmount  decimal.Decimal    `json:"vat_amount"`
	Total      decimal.Decimal    `json:"total"`
	Notes      string             `json:"notes,omitempty"`
	InvoiceID  string             `json:"invoice_id,omitempty"`
	Items      []LineItemResponse `json:"items,omitempty"`
}
