package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, type, email, phone, vat_number, COALESCE(parent_company_id::text, ''), billing_mode, payment_terms_days, notes, created_at, updated_at`

// CustomerRepo implements the CustomerRepository port on PostgreSQL
// (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the persistence adapter for customers.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Type, &c.Email, &c.Phone, &c.VATNumber,
		&c.ParentCompanyID, &c.BillingMode, &c.PaymentTermsDays, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, type, email, phone, vat_number, parent_company_id, billing_mode, payment_terms_days, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Type, c.Email, c.Phone, c.VATNumber,
		c.ParentCompanyID, c.BillingMode, c.PaymentTermsDays, c.Notes,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) FindDuplicate(ctx context.Context, name, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE lower(name) = lower($1) AND lower(email) = lower($2)`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, name, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find duplicate customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context, custType string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR type = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, custType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) ListBranches(ctx context.Context, parentID string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE parent_company_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, type = $3, email = $4, phone = $5, vat_number = $6,
		    parent_company_id = NULLIF($7, '')::uuid, billing_mode = $8,
		    payment_terms_days = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Type, c.Email, c.Phone, c.VATNumber,
		c.ParentCompanyID, c.BillingMode, c.PaymentTermsDays, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) CreateAddress(ctx context.Context, a *entity.Address) error {
	query := `
		INSERT INTO addresses (id, customer_id, type, line1, line2, city, province, postal_code, country, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CustomerID, a.Type, a.Line1, a.Line2, a.City, a.Province, a.PostalCode, a.Country, a.IsPrimary,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetAddress(ctx context.Context, id string) (*entity.Address, error) {
	query := `
		SELECT id, customer_id, type, line1, line2, city, province, postal_code, country, is_primary
		FROM addresses WHERE id = $1`
	var a entity.Address
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CustomerID, &a.Type, &a.Line1, &a.Line2, &a.City, &a.Province, &a.PostalCode, &a.Country, &a.IsPrimary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

func (r *CustomerRepo) ListAddresses(ctx context.Context, customerID string) ([]entity.Address, error) {
	query := `
		SELECT id, customer_id, type, line1, line2, city, province, postal_code, country, is_primary
		FROM addresses WHERE customer_id = $1 ORDER BY type, is_primary DESC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var out []entity.Address
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Type, &a.Line1, &a.Line2, &a.City, &a.Province, &a.PostalCode, &a.Country, &a.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) UpdateAddress(ctx context.Context, a *entity.Address) error {
	query := `
		UPDATE addresses
		SET type = $2, line1 = $3, line2 = $4, city = $5, province = $6, postal_code = $7, country = $8, is_primary = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.Line1, a.Line2, a.City, a.Province, a.PostalCode, a.Country, a.IsPrimary,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (r *CustomerRepo) DeleteAddress(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func (r *CustomerRepo) ClearPrimary(ctx context.Context, customerID, addrType string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE addresses SET is_primary = FALSE WHERE customer_id = $1 AND type = $2 AND is_primary`,
		customerID, addrType,
	)
	if err != nil {
		return fmt.Errorf("clear primary address: %w", err)
	}
	return nil
}

func (r *CustomerRepo) CreatePrice(ctx context.Context, p *entity.CustomerPrice) error {
	query := `
		INSERT INTO customer_prices (id, customer_id, product_id, unit_price, effective_from, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CustomerID, p.ProductID, p.UnitPrice, p.EffectiveFrom, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer price: %w", err)
	}
	return nil
}

func (r *CustomerRepo) ListPrices(ctx context.Context, customerID string) ([]entity.CustomerPrice, error) {
	query := `
		SELECT id, customer_id, product_id, unit_price, effective_from, created_at
		FROM customer_prices WHERE customer_id = $1 ORDER BY product_id, effective_from DESC`
	return r.queryPrices(ctx, query, customerID)
}

func (r *CustomerRepo) ListPricesForProduct(ctx context.Context, customerID, productID string) ([]entity.CustomerPrice, error) {
	query := `
		SELECT id, customer_id, product_id, unit_price, effective_from, created_at
		FROM customer_prices WHERE customer_id = $1 AND product_id = $2 ORDER BY effective_from DESC`
	return r.queryPrices(ctx, query, customerID, productID)
}

func (r *CustomerRepo) queryPrices(ctx context.Context, query string, args ...any) ([]entity.CustomerPrice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customer prices: %w", err)
	}
	defer rows.Close()

	var out []entity.CustomerPrice
	for rows.Next() {
		var p entity.CustomerPrice
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ProductID, &p.UnitPrice, &p.EffectiveFrom, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer price: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) DeletePrice(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customer_prices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer price: %w", err)
	}
	return nil
}
