// checkdata scans the database for broken invariants: orphaned
// references, over-allocated invoices, statuses that disagree with the
// allocation ledger. Exit code 1 when anything is found.
//
// Usage: go run ./cmd/checkdata
package main

import (
	"context"
	"os"

	"github.com/snowva/business-hub/internal/infrastructure/postgres"
	"github.com/snowva/business-hub/pkg/config"
	"github.com/snowva/business-hub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	checker := postgres.NewIntegrityChecker(pool)
	report, err := checker.Check(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("run integrity checks")
	}

	for _, issue := range report.Issues {
		log.Error().
			Str("check", issue.Check).
			Str("detail", issue.Detail).
			Msg("integrity violation")
	}

	if !report.Clean() {
		log.Error().
			Int("checks", report.Checked).
			Int("issues", len(report.Issues)).
			Msg("database has integrity problems")
		os.Exit(1)
	}
	log.Info().Int("checks", report.Checked).Msg("database is consistent")
}
