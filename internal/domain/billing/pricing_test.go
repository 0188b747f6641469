package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/domain/billing"
	"github.com/snowva/business-hub/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func listPrice(priceType string, price float64, from time.Time) entity.ListPrice {
	return entity.ListPrice{
		ProductID:     "prod_snowva",
		PriceType:     priceType,
		UnitPrice:     decimal.NewFromFloat(price),
		EffectiveFrom: from,
	}
}

func override(price float64, from time.Time) entity.CustomerPrice {
	return entity.CustomerPrice{
		CustomerID:    "cust_takealot",
		ProductID:     "prod_snowva",
		UnitPrice:     decimal.NewFromFloat(price),
		EffectiveFrom: from,
	}
}

// A customer override beats the list price even when the list price is newer.
func TestResolveUnitPrice_OverrideWins(t *testing.T) {
	prices := []entity.ListPrice{
		listPrice(entity.PriceTypeRetail, 450, date(2024, 1, 1)),
		listPrice(entity.PriceTypeRetail, 480, date(2024, 6, 1)),
	}
	overrides := []entity.CustomerPrice{override(420, date(2024, 2, 1))}

	got, err := billing.ResolveUnitPrice(entity.CustomerTypeRetail, overrides, prices, date(2024, 7, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(420)), "override must win, got %s", got)
}

// The latest effective entry not after the pricing date applies.
func TestResolveUnitPrice_PicksLatestEffective(t *testing.T) {
	prices := []entity.ListPrice{
		listPrice(entity.PriceTypeRetail, 450, date(2024, 1, 1)),
		listPrice(entity.PriceTypeRetail, 480, date(2024, 6, 1)),
		listPrice(entity.PriceTypeRetail, 500, date(2025, 1, 1)), // future
	}

	got, err := billing.ResolveUnitPrice(entity.CustomerTypeRetail, nil, prices, date(2024, 7, 15))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(480)), "got %s", got)
}

// Future-dated overrides are ignored until they come into force.
func TestResolveUnitPrice_FutureOverrideIgnored(t *testing.T) {
	prices := []entity.ListPrice{listPrice(entity.PriceTypeRetail, 450, date(2024, 1, 1))}
	overrides := []entity.CustomerPrice{override(400, date(2024, 12, 1))}

	got, err := billing.ResolveUnitPrice(entity.CustomerTypeRetail, overrides, prices, date(2024, 3, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(450)))
}

// List prices for the other customer type never apply.
func TestResolveUnitPrice_TypeMismatch(t *testing.T) {
	prices := []entity.ListPrice{listPrice(entity.PriceTypeConsumer, 599, date(2024, 1, 1))}

	_, err := billing.ResolveUnitPrice(entity.CustomerTypeRetail, nil, prices, date(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrNoPrice)
}

func TestResolveUnitPrice_NoPriceAtAll(t *testing.T) {
	_, err := billing.ResolveUnitPrice(entity.CustomerTypeConsumer, nil, nil, date(2024, 3, 1))
	assert.ErrorIs(t, err, domain.ErrNoPrice)
}
