package main

import (
	"context"
	"os"
	"time"

	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/config"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/database"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	pricingRepo "github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
	pricingService "github.com/tarikuzuma/ShelfSmart/internal/pricing/service"
)

// One-shot daily price update. Usage:
//
//	price_job [YYYY-MM-DD | MM-DD]
//
// With no argument the job prices tomorrow. Re-running for the same date is a
// no-op for batches that already have a price row.
func main() {
	config.LoadEnvFile()

	now := time.Now()
	targetDate, err := jobdate.Parse(os.Args[1:], now, now.AddDate(0, 0, 1))
	if err != nil {
		logger.Fatal("Invalid date argument", err)
	}

	db, err := database.Connect(config.LoadMarketplaceDBConfig().DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database for price job", err)
	}
	defer db.Close()

	policy, err := pricingService.NewPolicyFromConfig(config.LoadPricingConfig())
	if err != nil {
		logger.Fatal("Invalid PRICE_POLICY configuration", err)
	}

	priceService := pricingService.NewPriceService(
		pricingRepo.NewPostgresPriceRepository(db),
		catalogRepo.NewPostgresBatchRepository(db),
		catalogRepo.NewPostgresProductRepository(db),
		policy,
	)

	summary, err := priceService.RunForDate(context.Background(), targetDate)
	if err != nil {
		logger.Fatal("Price job failed", err)
	}
	logger.Info("Updated prices for %d batches for %s (%d already priced)",
		summary.Updated, summary.Date.Format("2006-01-02"), summary.Skipped)
}
