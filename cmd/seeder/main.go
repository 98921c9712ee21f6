package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	catalogDomain "github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	orderDomain "github.com/tarikuzuma/ShelfSmart/internal/order/domain"
	orderRepo "github.com/tarikuzuma/ShelfSmart/internal/order/repository"
	orderService "github.com/tarikuzuma/ShelfSmart/internal/order/service"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/config"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/database"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	pricingDomain "github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
	pricingRepo "github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
	pricingService "github.com/tarikuzuma/ShelfSmart/internal/pricing/service"
)

var productNames = []string{
	"Apple", "Banana", "Carrot", "Tomato", "Potato", "Onion", "Orange", "Pear", "Peach", "Grape",
	"Lettuce", "Cucumber", "Broccoli", "Spinach", "Pepper", "Eggplant", "Zucchini", "Pumpkin", "Corn", "Celery",
	"Strawberry", "Blueberry", "Raspberry", "Watermelon", "Melon", "Kiwi", "Mango", "Pineapple", "Avocado", "Cabbage",
	"Radish", "Beet", "Turnip", "Garlic", "Ginger", "Chili", "Papaya", "Plum", "Apricot", "Fig",
	"Date", "Lime", "Lemon", "Cherry", "Cranberry", "Gooseberry", "Blackberry", "Passionfruit", "Guava", "Lychee",
}

var retailerNames = []string{"FreshMart", "GreenGrocer", "Fruitopia", "VeggieVille", "MarketPlace"}

var categories = []string{"Fruit", "Vegetable", "Berry"}

const (
	userCount    = 50
	productCount = 50
	historyDays  = 50
	orderCount   = 50
)

// Seeds retailers, users, products, batches, a price history and a spread of
// historical orders so the marketplace has something to show on a fresh
// database, the forecast included.
func main() {
	config.LoadEnvFile()

	db, err := database.Connect(config.LoadMarketplaceDBConfig().DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database for seeder", err)
	}
	defer db.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	retailerRepository := catalogRepo.NewPostgresRetailerRepository(db)
	userRepository := catalogRepo.NewPostgresUserRepository(db)
	productRepository := catalogRepo.NewPostgresProductRepository(db)
	batchRepository := catalogRepo.NewPostgresBatchRepository(db)
	priceRepository := pricingRepo.NewPostgresPriceRepository(db)

	retailers := make([]catalogDomain.Retailer, 0, len(retailerNames))
	for i, name := range retailerNames {
		retailer := catalogDomain.Retailer{Name: name, Location: fmt.Sprintf("District %d", i+1)}
		if err := retailerRepository.CreateRetailer(ctx, &retailer); err != nil {
			logger.Fatal("Seeder: failed to create retailer", err)
		}
		retailers = append(retailers, retailer)
	}

	userIDs := make([]int64, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := catalogDomain.User{
			Name:            fmt.Sprintf("User%d", i+1),
			ShippingAddress: fmt.Sprintf("%d Main St, City", rng.Intn(100)+1),
		}
		if err := userRepository.CreateUser(ctx, &user); err != nil {
			logger.Fatal("Seeder: failed to create user", err)
		}
		userIDs = append(userIDs, user.ID)
	}

	// History starts far enough back that every product has a full price
	// series leading up to today.
	startDate := jobdate.Truncate(time.Now()).AddDate(0, 0, -(historyDays - 1))

	walk := pricingService.NewRandomWalkPolicy(nil, rng)
	productIDs := make([]int64, 0, productCount)
	for i := 0; i < productCount; i++ {
		name := productNames[i%len(productNames)]
		category := categories[rng.Intn(len(categories))]
		product := catalogDomain.Product{
			RetailerID: retailers[rng.Intn(len(retailers))].ID,
			Name:       name,
			Category:   &category,
		}
		if err := productRepository.CreateProduct(ctx, &product); err != nil {
			logger.Fatal("Seeder: failed to create product", err)
		}
		productIDs = append(productIDs, product.ID)

		batch := catalogDomain.ProductBatch{
			ProductID:       product.ID,
			ManufactureDate: startDate,
			ExpiryDate:      startDate.AddDate(0, 0, 30+rng.Intn(61)),
			BasePrice:       float64(200+rng.Intn(801)) / 100, // 2.00 .. 10.00
			StockedQuantity: 50 + rng.Intn(151),
		}
		if err := batchRepository.CreateBatch(ctx, &batch); err != nil {
			logger.Fatal("Seeder: failed to create batch", err)
		}

		prev := batch.BasePrice
		for day := 0; day < historyDays; day++ {
			date := startDate.AddDate(0, 0, day)
			price := batch.BasePrice
			if day > 0 {
				price = walk.PriceFor(pricingDomain.PriceInput{
					ProductName: name,
					BasePrice:   batch.BasePrice,
					ExpiryDate:  batch.ExpiryDate,
					ForDate:     date,
					PrevPrice:   &prev,
				})
			}
			point := pricingDomain.PricePoint{BatchID: batch.ID, Date: date, DiscountedPrice: price}
			if err := priceRepository.CreatePricePoint(ctx, &point); err != nil {
				logger.Fatal("Seeder: failed to create price point", err)
			}
			prev = price
		}
	}

	// Historical orders go through the order service so batch deductions and
	// charged prices line up with the seeded price history.
	priceService := pricingService.NewPriceService(priceRepository, batchRepository, productRepository, walk)
	allocator := orderService.NewBatchAllocator(batchRepository, priceService)
	ordService := orderService.NewOrderService(orderRepo.NewPostgresOrderRepository(db), allocator)

	ordersPlaced := 0
	for i := 0; i < orderCount; i++ {
		orderDate := startDate.AddDate(0, 0, rng.Intn(historyDays))
		items := make([]orderDomain.CreateOrderItemRequest, 0, 3)
		for j := 0; j < 1+rng.Intn(3); j++ {
			items = append(items, orderDomain.CreateOrderItemRequest{
				ProductID: productIDs[rng.Intn(len(productIDs))],
				Quantity:  1 + rng.Intn(5),
			})
		}
		req := orderDomain.CreateOrderRequest{
			UserID: userIDs[rng.Intn(len(userIDs))],
			Date:   &orderDate,
			Items:  items,
		}
		if _, err := ordService.CreateOrder(ctx, req); err != nil {
			if errors.Is(err, orderService.ErrInsufficientStock) {
				continue
			}
			logger.Fatal("Seeder: failed to create order", err)
		}
		ordersPlaced++
	}

	logger.Info("Seeded %d retailers, %d users, %d products with %d days of prices and %d orders",
		len(retailers), userCount, productCount, historyDays, ordersPlaced)
}
