package dto

import "github.com/shopspring/decimal"

// AllocationRequest applies part of a payment to one invoice.
type AllocationRequest struct {
	InvoiceID string          `json:"invoice_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

// CreatePaymentRequest body for POST /api/payments. Allocations are
// optional; an unallocated remainder stays on the account as credit.
type CreatePaymentRequest struct {
	CustomerID  string              `json:"customer_id" validate:"required"`
	PaymentDate string              `json:"payment_date,omitempty"` // 2006-01-02, defaults to today
	Amount      decimal.Decimal     `json:"amount" validate:"required"`
	Method      string              `json:"method" validate:"required,oneof=eft card cash other"`
	Reference   string              `json:"reference,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	Allocations []AllocationRequest `json:"allocations,omitempty" validate:"omitempty,dive"`
}

// AllocationResponse allocation in responses.
type AllocationResponse struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentResponse payment with its allocations.
type PaymentResponse struct {
	ID          string               `json:"id"`
	CustomerID  string               `json:"customer_id"`
	PaymentDate string               `json:"payment_date"`
	Amount      decimal.Decimal      `json:"amount"`
	Method      string               `json:"method"`
	Reference   string               `json:"reference,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	Allocated   decimal.Decimal      `json:"allocated"`
	Unallocated decimal.Decimal      `json:"unallocated"`
	Allocations []AllocationResponse `json:"allocations,omitempty"`
}
