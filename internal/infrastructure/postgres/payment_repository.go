package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements the PaymentRepository port on PostgreSQL
// (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the persistence adapter for payments.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, customer_id, payment_date, amount, method, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CustomerID, p.PaymentDate, p.Amount, p.Method, p.Reference, p.Notes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) CreateAllocation(ctx context.Context, a *entity.Allocation) error {
	query := `INSERT INTO allocations (id, payment_id, invoice_id, amount) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, a.ID, a.PaymentID, a.InvoiceID, a.Amount)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `
		SELECT id, customer_id, payment_date, amount, method, reference, notes, created_at
		FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CustomerID, &p.PaymentDate, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepo) List(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT id, customer_id, payment_date, amount, method, reference, notes, created_at
		FROM payments
		WHERE ($1 = '' OR customer_id::text = $1)
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryPayments(ctx, query, customerID, limit, offset)
}

func (r *PaymentRepo) ListByCustomerBetween(ctx context.Context, customerID string, from, to time.Time) ([]*entity.Payment, error) {
	query := `
		SELECT id, customer_id, payment_date, amount, method, reference, notes, created_at
		FROM payments
		WHERE ($1 = '' OR customer_id::text = $1)
		  AND ($2::date IS NULL OR payment_date >= $2)
		  AND ($3::date IS NULL OR payment_date <= $3)
		ORDER BY payment_date, created_at`
	return r.queryPayments(ctx, query, customerID, nullableDate(from), nullableDate(to))
}

func (r *PaymentRepo) queryPayments(ctx context.Context, query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.PaymentDate, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) ListAllocations(ctx context.Context, paymentID string) ([]entity.Allocation, error) {
	query := `SELECT id, payment_id, invoice_id, amount FROM allocations WHERE payment_id = $1`
	rows, err := r.q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	var out []entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.InvoiceID, &a.Amount); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	// allocations go with the payment via ON DELETE CASCADE
	_, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
