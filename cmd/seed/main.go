// seed populates a fresh database with the product catalogue, an admin
// user and a couple of demo accounts.
//
// Usage: go run ./cmd/seed
// Safe to re-run: duplicates are skipped, not rewritten.
package main

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/snowva/business-hub/internal/application/auth"
	"github.com/snowva/business-hub/internal/application/dto"
	"github.com/snowva/business-hub/internal/application/usecase"
	"github.com/snowva/business-hub/internal/domain"
	"github.com/snowva/business-hub/internal/infrastructure/postgres"
	"github.com/snowva/business-hub/pkg/config"
	"github.com/snowva/business-hub/pkg/logger"
)

type catalogueItem struct {
	code     string
	name     string
	desc     string
	consumer string
	retail   string
}

var catalogue = []catalogueItem{
	{"SNOWVA", "Snowva", "Collapsible snow saucer", "949", "760"},
	{"OUTRAY", "Outray", "Fold-flat serving tray", "449", "360"},
	{"MAKABRAI", "Makabrai", "Portable braai stand", "1899", "1520"},
	{"GRID-S", "Braai Grid Small", "Stainless grid, small", "349", "280"},
	{"GRID-M", "Braai Grid Medium", "Stainless grid, medium", "449", "360"},
	{"GRID-L", "Braai Grid Large", "Stainless grid, large", "549", "440"},
	{"BAK-25", "Braai Bak 2.5l", "Coals carrier, 2.5 litre", "299", "240"},
	{"BAK-38", "Braai Bak 3.8l", "Coals carrier, 3.8 litre", "379", "300"},
	{"BAK-52", "Braai Bak 5.2l", "Coals carrier, 5.2 litre", "449", "360"},
	{"BORKI", "Borki", "Cutting board and knife set", "549", "440"},
	{"BRAAITAS", "BraaiTas", "Carry bag for braai kit", "399", "320"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	for _, item := range catalogue {
		product, err := productUC.Create(ctx, dto.CreateProductRequest{
			Code:        item.code,
			Name:        item.name,
			Description: item.desc,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			log.Info().Str("code", item.code).Msg("product exists, skipping")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("code", item.code).Msg("create product")
		}
		for priceType, amount := range map[string]string{
			"consumer": item.consumer,
			"retail":   item.retail,
		} {
			_, err := productUC.AddPrice(ctx, product.ID, dto.ListPriceRequest{
				PriceType: priceType,
				UnitPrice: decimal.RequireFromString(amount),
			})
			if err != nil {
				log.Fatal().Err(err).Str("code", item.code).Msg("add list price")
			}
		}
		log.Info().Str("code", item.code).Msg("product seeded")
	}

	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "admin@snowva.example",
		Password: "change-me-now",
		Name:     "Administrator",
		Role:     "admin",
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Msg("admin user exists, skipping")
	case err != nil:
		log.Fatal().Err(err).Msg("create admin user")
	default:
		log.Info().Msg("admin user seeded")
	}

	head, err := customerUC.Create(ctx, dto.CreateCustomerRequest{
		Name:             "Kloof Trading Head Office",
		Type:             "retail",
		Email:            "accounts@klooftrading.example",
		BillingMode:      "self",
		PaymentTermsDays: 30,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Msg("demo accounts exist, skipping")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("create demo customer")
	}
	_, err = customerUC.Create(ctx, dto.CreateCustomerRequest{
		Name:             "Kloof Trading Umhlanga",
		Type:             "retail",
		ParentCompanyID:  head.ID,
		BillingMode:      "parent",
		PaymentTermsDays: 7,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create demo branch")
	}
	_, err = customerUC.Create(ctx, dto.CreateCustomerRequest{
		Name:             "Thandi Ngcobo",
		Type:             "consumer",
		Email:            "thandi@example.net",
		BillingMode:      "self",
		PaymentTermsDays: 0,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create demo consumer")
	}
	log.Info().Msg("demo accounts seeded")
}
