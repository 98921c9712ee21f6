package main

import (
	"context"
	"os"
	"time"

	inventoryRepo "github.com/tarikuzuma/ShelfSmart/internal/inventory/repository"
	inventoryService "github.com/tarikuzuma/ShelfSmart/internal/inventory/service"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/config"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/database"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

// One-shot daily inventory reconciliation. Usage:
//
//	snapshot_job [YYYY-MM-DD | MM-DD]
//
// Snapshot rows are append-only and never revised, so a day is only closed
// out after it has ended: with no argument the job snapshots yesterday. Pass
// an explicit date to backfill a specific day.
func main() {
	config.LoadEnvFile()

	now := time.Now()
	targetDate, err := jobdate.Parse(os.Args[1:], now, now.AddDate(0, 0, -1))
	if err != nil {
		logger.Fatal("Invalid date argument", err)
	}

	db, err := database.Connect(config.LoadMarketplaceDBConfig().DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database for snapshot job", err)
	}
	defer db.Close()

	invService := inventoryService.NewInventoryService(inventoryRepo.NewPostgresSnapshotRepository(db))

	summary, err := invService.RunForDate(context.Background(), targetDate)
	if err != nil {
		logger.Fatal("Snapshot job failed", err)
	}
	logger.Info("Wrote inventory snapshots for %d products for %s (%d already reconciled)",
		summary.Written, summary.Date.Format("2006-01-02"), summary.Skipped)
}
