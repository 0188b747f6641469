package repository

import (
	"context"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// CustomerRepository is the persistence port for Customer, its addresses
// and its per-product price overrides.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// FindDuplicate locates a customer with the same name and email,
	// used to reject duplicate captures.
	FindDuplicate(ctx context.Context, name, email string) (*entity.Customer, error)
	// List pages customers ordered by name. custType filters by
	// consumer/retail when non-empty.
	List(ctx context.Context, custType string, limit, offset int) ([]*entity.Customer, error)
	// ListBranches returns the customers whose parent company is the
	// given account.
	ListBranches(ctx context.Context, parentID string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error

	CreateAddress(ctx context.Context, addr *entity.Address) error
	GetAddress(ctx context.Context, id string) (*entity.Address, error)
	ListAddresses(ctx context.Context, customerID string) ([]entity.Address, error)
	UpdateAddress(ctx context.Context, addr *entity.Address) error
	DeleteAddress(ctx context.Context, id string) error
	// ClearPrimary demotes the current primary address of the given type,
	// if any. Called before promoting another address.
	ClearPrimary(ctx context.Context, customerID, addrType string) error

	CreatePrice(ctx context.Context, price *entity.CustomerPrice) error
	ListPrices(ctx context.Context, customerID string) ([]entity.CustomerPrice, error)
	// ListPricesForProduct returns the full override history for one
	// customer+product pair, for price resolution.
	ListPricesForProduct(ctx context.Context, customerID, productID string) ([]entity.CustomerPrice, error)
	DeletePrice(ctx context.Context, id string) error
}
