package service

import (
	"context"
	"errors"
	"time"

	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/forecast/domain"
	orderRepo "github.com/tarikuzuma/ShelfSmart/internal/order/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
)

// lookbackDays is the sales window the heuristic reads. Matches the seeded
// history depth; tens of days is all the arithmetic needs.
const lookbackDays = 28

type ForecastService interface {
	ForecastProduct(ctx context.Context, productID int64, targetDate time.Time) (*domain.Forecast, error)
}

type forecastServiceImpl struct {
	orders   orderRepo.OrderRepository
	batches  catalogRepo.BatchRepository
	products catalogRepo.ProductRepository
}

func NewForecastService(orders orderRepo.OrderRepository, batches catalogRepo.BatchRepository,
	products catalogRepo.ProductRepository) ForecastService {
	return &forecastServiceImpl{orders: orders, batches: batches, products: products}
}

func (s *forecastServiceImpl) ForecastProduct(ctx context.Context, productID int64, targetDate time.Time) (*domain.Forecast, error) {
	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	targetDate = jobdate.Truncate(targetDate)
	from := targetDate.AddDate(0, 0, -lookbackDays)
	to := targetDate.AddDate(0, 0, -1)

	sales, err := s.orders.ListDailySales(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}

	// Fill gaps with zero-sale days so averages reflect the full window.
	history := make([]domain.DailySales, 0, lookbackDays)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		history = append(history, domain.DailySales{Date: day, Quantity: sales[day]})
	}

	daysToExpiry := lookbackDays // low risk when no expiring stock exists
	expiry, err := s.batches.SoonestExpiry(ctx, productID, targetDate)
	if err == nil {
		daysToExpiry = int(expiry.Sub(targetDate).Hours() / 24)
	} else if !errors.Is(err, catalogRepo.ErrBatchNotFound) {
		return nil, err
	}

	forecast := domain.Demand(productID, history, targetDate, daysToExpiry)
	return &forecast, nil
}
