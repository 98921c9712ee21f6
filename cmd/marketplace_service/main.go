package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	catalogAPI "github.com/tarikuzuma/ShelfSmart/internal/catalog/api"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	catalogService "github.com/tarikuzuma/ShelfSmart/internal/catalog/service"
	forecastAPI "github.com/tarikuzuma/ShelfSmart/internal/forecast/api"
	forecastService "github.com/tarikuzuma/ShelfSmart/internal/forecast/service"
	inventoryAPI "github.com/tarikuzuma/ShelfSmart/internal/inventory/api"
	inventoryRepo "github.com/tarikuzuma/ShelfSmart/internal/inventory/repository"
	inventoryService "github.com/tarikuzuma/ShelfSmart/internal/inventory/service"
	orderAPI "github.com/tarikuzuma/ShelfSmart/internal/order/api"
	orderRepo "github.com/tarikuzuma/ShelfSmart/internal/order/repository"
	orderService "github.com/tarikuzuma/ShelfSmart/internal/order/service"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/config"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/database"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	pricingAPI "github.com/tarikuzuma/ShelfSmart/internal/pricing/api"
	pricingRepo "github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
	pricingService "github.com/tarikuzuma/ShelfSmart/internal/pricing/service"
	subscriptionAPI "github.com/tarikuzuma/ShelfSmart/internal/subscription/api"
	subscriptionRepo "github.com/tarikuzuma/ShelfSmart/internal/subscription/repository"
	subscriptionService "github.com/tarikuzuma/ShelfSmart/internal/subscription/service"

	"time"
)

func main() {
	config.LoadEnvFile()
	dbCfg := config.LoadMarketplaceDBConfig()
	serverCfg := config.LoadServerConfig("8080")
	pricingCfg := config.LoadPricingConfig()

	logger.Info("Starting Marketplace Service...")

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database for Marketplace Service", err)
	}
	defer db.Close()

	// Repositories
	productRepository := catalogRepo.NewPostgresProductRepository(db)
	batchRepository := catalogRepo.NewPostgresBatchRepository(db)
	retailerRepository := catalogRepo.NewPostgresRetailerRepository(db)
	userRepository := catalogRepo.NewPostgresUserRepository(db)
	priceRepository := pricingRepo.NewPostgresPriceRepository(db)
	snapshotRepository := inventoryRepo.NewPostgresSnapshotRepository(db)
	orderRepository := orderRepo.NewPostgresOrderRepository(db)
	subRepository := subscriptionRepo.NewPostgresSubscriptionRepository(db)

	// Services
	policy, err := pricingService.NewPolicyFromConfig(pricingCfg)
	if err != nil {
		logger.Fatal("Invalid PRICE_POLICY configuration", err)
	}
	catService := catalogService.NewCatalogService(productRepository, batchRepository, retailerRepository, userRepository)
	priceService := pricingService.NewPriceService(priceRepository, batchRepository, productRepository, policy)
	invService := inventoryService.NewInventoryService(snapshotRepository)
	allocator := orderService.NewBatchAllocator(batchRepository, priceService)
	ordService := orderService.NewOrderService(orderRepository, allocator)
	fcService := forecastService.NewForecastService(orderRepository, batchRepository, productRepository)
	subService := subscriptionService.NewSubscriptionService(subRepository, productRepository, userRepository)

	// Daily jobs: tomorrow's prices in advance, yesterday's closing inventory.
	// Snapshot rows are append-only, so a day is only reconciled once it has
	// ended and no further orders can land on it.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(pricingCfg.CronSchedule, func() {
		ctx := context.Background()
		if _, err := priceService.RunForDate(ctx, jobdate.Truncate(time.Now().AddDate(0, 0, 1))); err != nil {
			logger.Error("Scheduler: price job failed", err)
		}
		if _, err := invService.RunForDate(ctx, jobdate.Truncate(time.Now().AddDate(0, 0, -1))); err != nil {
			logger.Error("Scheduler: snapshot job failed", err)
		}
	}); err != nil {
		logger.Fatal("Invalid DAILY_JOB_SCHEDULE", err)
	}
	scheduler.Start()
	logger.Info("Daily job scheduler initialized with spec '%s' (policy %s)", pricingCfg.CronSchedule, policy.Name())

	// HTTP surface
	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	catalogAPI.NewCatalogHandler(catService).RegisterRoutes(apiV1)
	pricingAPI.NewPriceHandler(priceService).RegisterRoutes(apiV1)
	inventoryAPI.NewInventoryHandler(invService).RegisterRoutes(apiV1)
	orderAPI.NewOrderHandler(ordService).RegisterRoutes(apiV1)
	forecastAPI.NewForecastHandler(fcService).RegisterRoutes(apiV1)
	subscriptionAPI.NewSubscriptionHandler(subService).RegisterRoutes(apiV1)

	logger.Info("Marketplace Service running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Fatal("Failed to run Marketplace Service server", err)
	}
}
