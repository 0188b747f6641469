package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings. Zero values mean "any".
type InvoiceFilter struct {
	CustomerID       string
	BillToCustomerID string
	Status           string
	From             time.Time
	To               time.Time
	Limit            int
	Offset           int
}

// InvoiceRepository is the persistence port for Invoice headers and lines.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate locks the invoice row for the duration of the
	// enclosing transaction, serialising concurrent allocation checks.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetLines(ctx context.Context, invoiceID string) ([]entity.LineItem, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id, status string) error
	// ReplaceLines swaps the full line set of a draft invoice.
	ReplaceLines(ctx context.Context, invoiceID string, lines []entity.LineItem) error
	// NextNumber increments and returns the invoice number sequence.
	NextNumber(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int, error)

	// AllocatedAmount sums the payment allocations applied to one invoice.
	AllocatedAmount(ctx context.Context, invoiceID string) (decimal.Decimal, error)
	// AllocatedAmounts batches AllocatedAmount for listings; invoices with
	// no allocations are absent from the map.
	AllocatedAmounts(ctx context.Context, invoiceIDs []string) (map[string]decimal.Decimal, error)
	// ListOutstanding returns finalized and partially paid invoices issued
	// on or before asOf, for aging and statements.
	ListOutstanding(ctx context.Context, asOf time.Time) ([]*entity.Invoice, error)
}
