package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body for POST /api/invoices. Creates a draft.
type CreateInvoiceRequest struct {
	CustomerID     string                `json:"customer_id" validate:"required"`
	IssueDate      string                `json:"issue_date,omitempty"` // 2006-01-02, defaults to today
	PONumber       string                `json:"po_number,omitempty"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	ShippingAmount decimal.Decimal       `json:"shipping_amount"`
	Notes          string                `json:"notes,omitempty"`
	Items          []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id (draft only).
type UpdateInvoiceRequest struct {
	PONumber       string                `json:"po_number,omitempty"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	ShippingAmount decimal.Decimal       `json:"shipping_amount"`
	Notes          string                `json:"notes,omitempty"`
	Items          []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceResponse invoice with derived payment state.
type InvoiceResponse struct {
	ID               string             `json:"id"`
	Number           string             `json:"number,omitempty"` // empty while draft
	CustomerID       string             `json:"customer_id"`
	BillToCustomerID string             `json:"bill_to_customer_id"`
	IssueDate        string             `json:"issue_date"`
	DueDate          string             `json:"due_date"`
	Status           string             `json:"status"`
	PONumber         string             `json:"po_number,omitempty"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	VATAmount        decimal.Decimal    `json:"vat_amount"`
	DiscountAmount   decimal.Decimal    `json:"discount_amount"`
	ShippingAmount   decimal.Decimal    `json:"shipping_amount"`
	Total            decimal.Decimal    `json:"total"`
	AmountPaid       decimal.Decimal    `json:"amount_paid"`
	Balance          decimal.Decimal    `json:"balance"`
	Notes            string             `json:"notes,omitempty"`
	Items            []LineItemResponse `json:"items,omitempty"`
}
