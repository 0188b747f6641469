package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/domain/entity"
	"github.com/snowva/business-hub/internal/testutil"
)

func newCustomerUseCase(s *testutil.Store) *CustomerUseCase {
	repos := s.Repos()
	return NewCustomerUseCase(repos.Customers, repos.Products)
}

func seedCustomer(s *testutil.Store) {
	s.Customers["cust-1"] = &entity.Customer{
		ID:          "cust-1",
		Name:        "Kloof Trading",
		Type:        entity.CustomerTypeRetail,
		BillingMode: entity.BillingModeSelf,
	}
}

func TestAddAddressNewPrimaryDemotesOldOne(t *testing.T) {
	s := testutil.NewStore()
	seedCustomer(s)
	uc := newCustomerUseCase(s)

	first, err := uc.AddAddress(context.Background(), "cust-1", dto.AddressRequest{
		Type:      entity.AddressTypeBilling,
		Line1:     "12 Field Street",
		City:      "Durban",
		IsPrimary: true,
	})
	require.NoError(t, err)
	require.True(t, first.IsPrimary)

	// a primary of another type is untouched by billing changes
	shipping, err := uc.AddAddress(context.Background(), "cust-1", dto.AddressRequest{
		Type:      entity.AddressTypeShipping,
		Line1:     "Unit 4, Riverhorse Valley",
		City:      "Durban",
		IsPrimary: true,
	})
	require.NoError(t, err)

	second, err := uc.AddAddress(context.Background(), "cust-1", dto.AddressRequest{
		Type:      entity.AddressTypeBilling,
		Line1:     "88 Umgeni Road",
		City:      "Durban",
		IsPrimary: true,
	})
	require.NoError(t, err)

	assert.False(t, s.Addresses[first.ID].IsPrimary, "old billing primary not demoted")
	assert.True(t, s.Addresses[second.ID].IsPrimary)
	assert.True(t, s.Addresses[shipping.ID].IsPrimary, "shipping primary lost")
}

func TestUpdateAddressPromotionDemotesOldPrimary(t *testing.T) {
	s := testutil.NewStore()
	seedCustomer(s)
	uc := newCustomerUseCase(s)

	first, err := uc.AddAddress(context.Background(), "cust-1", dto.AddressRequest{
		Type:      entity.AddressTypeBilling,
		Line1:     "12 Field Street",
		IsPrimary: true,
	})
	require.NoError(t, err)
	second, err := uc.AddAddress(context.Background(), "cust-1", dto.AddressRequest{
		Type:  entity.AddressTypeBilling,
		Line1: "88 Umgeni Road",
	})
	require.NoError(t, err)

	promoted, err := uc.UpdateAddress(context.Background(), "cust-1", second.ID, dto.AddressRequest{
		Type:      entity.AddressTypeBilling,
		Line1:     "88 Umgeni Road",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, promoted.IsPrimary)
	assert.False(t, s.Addresses[first.ID].IsPrimary)
}
