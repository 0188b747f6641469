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

// CustomerUseCase customer accounts: CRUD, addresses, pricing overrides
// and the parent/branch billing hierarchy.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	productRepo repository.ProductRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository, productRepo repository.ProductRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, productRepo: productRepo}
}

// Create captures a new customer.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Email != "" {
		if existing, _ := uc.repo.FindDuplicate(ctx, in.Name, in.Email); existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	mode := in.BillingMode
	if mode == "" {
		mode = entity.BillingModeSelf
	}
	if err := uc.checkParentLink(ctx, "", in.ParentCompanyID, mode); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Type:             in.Type,
		Email:            in.Email,
		Phone:            in.Phone,
		VATNumber:        in.VATNumber,
		ParentCompanyID:  in.ParentCompanyID,
		BillingMode:      mode,
		PaymentTermsDays: in.PaymentTermsDays,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update rewrites a customer's master data.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	mode := in.BillingMode
	if mode == "" {
		mode = entity.BillingModeSelf
	}
	if err := uc.checkParentLink(ctx, id, in.ParentCompanyID, mode); err != nil {
		return nil, err
	}
	customer.Name = in.Name
	customer.Type = in.Type
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.VATNumber = in.VATNumber
	customer.ParentCompanyID = in.ParentCompanyID
	customer.BillingMode = mode
	customer.PaymentTermsDays = in.PaymentTermsDays
	customer.Notes = in.Notes
	customer.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// checkParentLink enforces the hierarchy rules: a parent must exist, a
// customer cannot be its own parent, and the hierarchy is one level deep
// (a head office cannot itself be a branch, and a customer with branches
// cannot be demoted to one).
func (uc *CustomerUseCase) checkParentLink(ctx context.Context, id, parentID, mode string) error {
	if mode == entity.BillingModeParent && parentID == "" {
		return domain.ErrInvalidInput
	}
	if parentID == "" {
		return nil
	}
	if parentID == id {
		return domain.ErrInvalidInput
	}
	parent, err := uc.repo.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.ErrNotFound
	}
	if parent.ParentCompanyID != "" {
		return domain.ErrConflict
	}
	if id != "" {
		branches, err := uc.repo.ListBranches(ctx, id)
		if err != nil {
			return err
		}
		if len(branches) > 0 {
			return domain.ErrConflict
		}
	}
	return nil
}

// Get returns a customer with addresses, overrides and branches.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	addrs, err := uc.repo.ListAddresses(ctx, id)
	if err != nil {
		return nil, err
	}
	prices, err := uc.repo.ListPrices(ctx, id)
	if err != nil {
		return nil, err
	}
	branches, err := uc.repo.ListBranches(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &dto.CustomerDetailResponse{
		CustomerResponse: *toCustomerResponse(customer),
		Addresses:        make([]dto.AddressResponse, 0, len(addrs)),
		Prices:           make([]dto.CustomerPriceResponse, 0, len(prices)),
	}
	for _, a := range addrs {
		out.Addresses = append(out.Addresses, toAddressResponse(a))
	}
	for _, p := range prices {
		out.Prices = append(out.Prices, uc.toPriceResponse(ctx, p))
	}
	for _, b := range branches {
		out.Branches = append(out.Branches, *toCustomerResponse(b))
	}
	return out, nil
}

// List pages customers; custType filters by consumer/retail when non-empty.
func (uc *CustomerUseCase) List(ctx context.Context, custType string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, custType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Delete removes a customer. An account with branches cannot be removed.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	branches, err := uc.repo.ListBranches(ctx, id)
	if err != nil {
		return err
	}
	if len(branches) > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// AddAddress attaches an address. Marking it primary demotes any current
// primary of the same type first.
func (uc *CustomerUseCase) AddAddress(ctx context.Context, customerID string, in dto.AddressRequest) (*dto.AddressResponse, error) {
	customer, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.IsPrimary {
		if err := uc.repo.ClearPrimary(ctx, customerID, in.Type); err != nil {
			return nil, err
		}
	}
	addr := &entity.Address{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Type:       in.Type,
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		Province:   in.Province,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		IsPrimary:  in.IsPrimary,
	}
	if err := uc.repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}
	resp := toAddressResponse(*addr)
	return &resp, nil
}

// UpdateAddress rewrites an address, keeping the primary invariant.
func (uc *CustomerUseCase) UpdateAddress(ctx context.Context, customerID, addressID string, in dto.AddressRequest) (*dto.AddressResponse, error) {
	addr, err := uc.repo.GetAddress(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr == nil || addr.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	if in.IsPrimary && (!addr.IsPrimary || addr.Type != in.Type) {
		if err := uc.repo.ClearPrimary(ctx, customerID, in.Type); err != nil {
			return nil, err
		}
	}
	addr.Type = in.Type
	addr.Line1 = in.Line1
	addr.Line2 = in.Line2
	addr.City = in.City
	addr.Province = in.Province
	addr.PostalCode = in.PostalCode
	addr.Country = in.Country
	addr.IsPrimary = in.IsPrimary
	if err := uc.repo.UpdateAddress(ctx, addr); err != nil {
		return nil, err
	}
	resp := toAddressResponse(*addr)
	return &resp, nil
}

// DeleteAddress removes an address.
func (uc *CustomerUseCase) DeleteAddress(ctx context.Context, customerID, addressID string) error {
	addr, err := uc.repo.GetAddress(ctx, addressID)
	if err != nil {
		return err
	}
	if addr == nil || addr.CustomerID != customerID {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteAddress(ctx, addressID)
}

// SetPrice appends a pricing override for one product. History is
// append-only; the entry with the latest effective date wins at pricing
// time.
func (uc *CustomerUseCase) SetPrice(ctx context.Context, customerID string, in dto.CustomerPriceRequest) (*dto.CustomerPriceResponse, error) {
	customer, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	effective, err := dto.ParseDate(in.EffectiveFrom)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if effective.IsZero() {
		effective = today()
	}
	price := &entity.CustomerPrice{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		ProductID:     in.ProductID,
		UnitPrice:     in.UnitPrice,
		EffectiveFrom: effective,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.CreatePrice(ctx, price); err != nil {
		return nil, err
	}
	resp := uc.toPriceResponse(ctx, *price)
	return &resp, nil
}

// DeletePrice removes one override entry.
func (uc *CustomerUseCase) DeletePrice(ctx context.Context, customerID, priceID string) error {
	prices, err := uc.repo.ListPrices(ctx, customerID)
	if err != nil {
		return err
	}
	for _, p := range prices {
		if p.ID == priceID {
			return uc.repo.DeletePrice(ctx, priceID)
		}
	}
	return domain.ErrNotFound
}

func (uc *CustomerUseCase) toPriceResponse(ctx context.Context, p entity.CustomerPrice) dto.CustomerPriceResponse {
	name := ""
	if product, err := uc.productRepo.GetByID(ctx, p.ProductID); err == nil && product != nil {
		name = product.Name
	}
	return dto.CustomerPriceResponse{
		ID:            p.ID,
		ProductID:     p.ProductID,
		ProductName:   name,
		UnitPrice:     p.UnitPrice,
		EffectiveFrom: p.EffectiveFrom.Format(dto.DateLayout),
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Type:             c.Type,
		Email:            c.Email,
		Phone:            c.Phone,
		VATNumber:        c.VATNumber,
		ParentCompanyID:  c.ParentCompanyID,
		BillingMode:      c.BillingMode,
		PaymentTermsDays: c.PaymentTermsDays,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
	}
}

func toAddressResponse(a entity.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Type:       a.Type,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsPrimary:  a.IsPrimary,
	}
}

// today returns midnight UTC of the current day, the default effective
// date for appended prices.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
