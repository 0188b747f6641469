// Package billing holds the pure calculation services of the invoicing
// domain: price resolution, document totals, balances, aging and
// statement folding. No I/O here.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/entity"
)

// ResolveUnitPrice returns the unit price for one product sold to one
// customer at a given date.
//
// Precedence:
//  1. the customer's own override for the product, latest EffectiveFrom <= at
//  2. the product's list price for the customer's type, latest EffectiveFrom <= at
//
// Returns domain.ErrNoPrice when neither applies. overrides and listPrices
// are expected to already be scoped to the product in question.
func ResolveUnitPrice(
	customerType string,
	overrides []entity.CustomerPrice,
	listPrices []entity.ListPrice,
	at time.Time,
) (decimal.Decimal, error) {
	var best *entity.CustomerPrice
	for i := range overrides {
		o := &overrides[i]
		if o.EffectiveFrom.After(at) {
			continue
		}
		if best == nil || o.EffectiveFrom.After(best.EffectiveFrom) {
			best = o
		}
	}
	if best != nil {
		return best.UnitPrice, nil
	}

	var list *entity.ListPrice
	for i := range listPrices {
		p := &listPrices[i]
		if p.PriceType != customerType || p.EffectiveFrom.After(at) {
			continue
		}
		if list == nil || p.EffectiveFrom.After(list.EffectiveFrom) {
			list = p
		}
	}
	if list != nil {
		return list.UnitPrice, nil
	}
	return decimal.Zero, domain.ErrNoPrice
}
