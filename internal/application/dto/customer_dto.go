package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name             string `json:"name" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=consumer retail"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string `json:"phone,omitempty"`
	VATNumber        string `json:"vat_number,omitempty"`
	ParentCompanyID  string `json:"parent_company_id,omitempty"`
	BillingMode      string `json:"billing_mode,omitempty" validate:"omitempty,oneof=self parent"`
	PaymentTermsDays int    `json:"payment_terms_days" validate:"min=0,max=120"`
	Notes            string `json:"notes,omitempty"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id.
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	VATNumber        string    `json:"vat_number,omitempty"`
	ParentCompanyID  string    `json:"parent_company_id,omitempty"`
	BillingMode      string    `json:"billing_mode"`
	PaymentTermsDays int       `json:"payment_terms_days"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// AddressRequest body for address create/update.
type AddressRequest struct {
	Type       string `json:"type" validate:"required,oneof=billing shipping"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	IsPrimary  bool   `json:"is_primary"`
}

// AddressResponse address in responses.
type AddressResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Type       string `json:"type"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	IsPrimary  bool   `json:"is_primary"`
}

// CustomerPriceRequest body for POST /api/customers/:id/prices.
type CustomerPriceRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"required"`
	EffectiveFrom string          `json:"effective_from,omitempty"` // 2006-01-02, defaults to today
}

// CustomerPriceResponse pricing override in responses.
type CustomerPriceResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EffectiveFrom string          `json:"effective_from"`
}

// CustomerDetailResponse customer with addresses, overrides and branches.
type CustomerDetailResponse struct {
	CustomerResponse
	Addresses []AddressResponse       `json:"addresses"`
	Prices    []CustomerPriceResponse `json:"prices"`
	Branches  []CustomerResponse      `json:"branches,omitempty"`
}
