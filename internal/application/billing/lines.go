package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain"
	domainbilling "github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/domain/repository"
)

// buildLines turns request items into priced line items for a quote or
// invoice. An explicit unit price on the item wins; otherwise the price
// is resolved from the customer's overrides and the product's list
// prices as of the document date.
func buildLines(
	ctx context.Context,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	customer *entity.Customer,
	items []dto.DocumentItemRequest,
	at time.Time,
) ([]entity.LineItem, error) {
	lines := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}

		var unitPrice decimal.Decimal
		if item.UnitPrice != nil {
			if item.UnitPrice.LessThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			unitPrice = *item.UnitPrice
		} else {
			overrides, err := customerRepo.ListPricesForProduct(ctx, customer.ID, product.ID)
			if err != nil {
				return nil, err
			}
			listPrices, err := productRepo.ListPrices(ctx, product.ID)
			if err != nil {
				return nil, err
			}
			unitPrice, err = domainbilling.ResolveUnitPrice(customer.Type, overrides, listPrices, at)
			if err != nil {
				return nil, err
			}
		}

		lines = append(lines, entity.LineItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Description: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   domainbilling.LineTotal(item.Quantity, unitPrice),
		})
	}
	return lines, nil
}

func toLineResponses(lines []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineItemResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return out
}
