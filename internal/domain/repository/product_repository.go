package repository

import (
	"context"

	"github.com/snowva/business-hub/internal/domain/entity"
)

// ProductRepository is the persistence port for Product and its list
// price history.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// CreateListPrice appends one entry to the price history. Entries are
	// never updated in place.
	CreateListPrice(ctx context.Context, price *entity.ListPrice) error
	ListPrices(ctx context.Context, productID string) ([]entity.ListPrice, error)
}
