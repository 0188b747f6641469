package repository

import (
	"context"
	"time"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// PaymentRepository is the persistence port for Payment and its invoice
// allocations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	CreateAllocation(ctx context.Context, alloc *entity.Allocation) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// List pages payments, newest first; customerID filters when non-empty.
	List(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error)
	// ListByCustomerBetween returns payments in a date window, for
	// statements and reports. Zero times mean an open end; an empty
	// customerID means all accounts.
	ListByCustomerBetween(ctx context.Context, customerID string, from, to time.Time) ([]*entity.Payment, error)
	ListAllocations(ctx context.Context, paymentID string) ([]entity.Allocation, error)
	// Delete removes the payment and its allocations.
	Delete(ctx context.Context, id string) error
}
