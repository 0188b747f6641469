package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// ProductUseCase catalogue items and their list price history.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create adds a catalogue item. Codes are unique.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByCode(ctx, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update rewrites name, description and active flag. The code is fixed
// at creation.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get returns a product with its full price history, newest first.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	prices, err := uc.repo.ListPrices(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductDetailResponse{
		ProductResponse: *toProductResponse(product),
		Prices:          make([]dto.ListPriceResponse, 0, len(prices)),
	}
	for _, p := range prices {
		out.Prices = append(out.Prices, dto.ListPriceResponse{
			ID:            p.ID,
			PriceType:     p.PriceType,
			UnitPrice:     p.UnitPrice,
			EffectiveFrom: p.EffectiveFrom.Format(dto.DateLayout),
		})
	}
	return out, nil
}

// List pages products.
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// AddPrice appends a list price entry. Repricing never rewrites history.
func (uc *ProductUseCase) AddPrice(ctx context.Context, productID string, in dto.ListPriceRequest) (*dto.ListPriceResponse, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	effective, err := dto.ParseDate(in.EffectiveFrom)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if effective.IsZero() {
		effective = today()
	}
	price := &entity.ListPrice{
		ID:            uuid.New().String(),
		ProductID:     productID,
		PriceType:     in.PriceType,
		UnitPrice:     in.UnitPrice,
		EffectiveFrom: effective,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.CreateListPrice(ctx, price); err != nil {
		return nil, err
	}
	return &dto.ListPriceResponse{
		ID:            price.ID,
		PriceType:     price.PriceType,
		UnitPrice:     price.UnitPrice,
		EffectiveFrom: price.EffectiveFrom.Format(dto.DateLayout),
	}, nil
}

// Delete removes a product. Products referenced by documents should be
// deactivated instead; the repository surfaces a conflict if referenced.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
