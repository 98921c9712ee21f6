package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	catalogDomain "github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/config"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
)

var ErrUnknownPolicy = errors.New("unknown price policy")

type PriceService interface {
	// RunForDate is the daily price job: one new price row per batch for the
	// target date, skipping batches already priced for that day.
	RunForDate(ctx context.Context, targetDate time.Time) (*domain.PriceRunSummary, error)

	// EffectiveBatchPrice is the price charged for a batch on a date: the
	// stored price row if present, otherwise the batch's base price.
	EffectiveBatchPrice(ctx context.Context, batchID int64, date time.Time) (float64, error)

	CreatePricePoint(ctx context.Context, req domain.CreatePricePointRequest) (*domain.PricePoint, error)
	ListPrices(ctx context.Context, query domain.PriceQuery) ([]domain.PricePoint, error)
}

type priceServiceImpl struct {
	prices   repository.PriceRepository
	batches  catalogRepo.BatchRepository
	products catalogRepo.ProductRepository
	policy   PricePolicy
}

func NewPriceService(prices repository.PriceRepository, batches catalogRepo.BatchRepository,
	products catalogRepo.ProductRepository, policy PricePolicy) PriceService {
	return &priceServiceImpl{
		prices:   prices,
		batches:  batches,
		products: products,
		policy:   policy,
	}
}

// NewPolicyFromConfig builds the configured policy. A zero seed means the
// walk is seeded from the clock; tests pass a fixed seed.
func NewPolicyFromConfig(cfg config.PricingConfig) (PricePolicy, error) {
	switch cfg.Policy {
	case PolicyTiered:
		return NewTieredPolicy(), nil
	case PolicyRandomWalk:
		seed := cfg.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandomWalkPolicy(nil, rand.New(rand.NewSource(seed))), nil
	default:
		return nil, ErrUnknownPolicy
	}
}

func (s *priceServiceImpl) RunForDate(ctx context.Context, targetDate time.Time) (*domain.PriceRunSummary, error) {
	targetDate = jobdate.Truncate(targetDate)

	batches, err := s.batches.ListAllBatches(ctx)
	if err != nil {
		logger.Error("RunForDate: failed to list batches", err)
		return nil, err
	}
	products, err := s.products.ListProducts(ctx, catalogDomain.ProductFilter{})
	if err != nil {
		logger.Error("RunForDate: failed to list products", err)
		return nil, err
	}
	namesByID := make(map[int64]string, len(products))
	for _, p := range products {
		namesByID[p.ID] = p.Name
	}

	summary := &domain.PriceRunSummary{Date: targetDate}
	for _, batch := range batches {
		exists, err := s.prices.HasPriceForDate(ctx, batch.ID, targetDate)
		if err != nil {
			return nil, err
		}
		if exists {
			summary.Skipped++
			continue
		}

		var prevPrice *float64
		prev, err := s.prices.GetLatestPriceBefore(ctx, batch.ID, targetDate)
		if err != nil && !errors.Is(err, repository.ErrPriceNotFound) {
			return nil, err
		}
		if prev != nil {
			prevPrice = &prev.DiscountedPrice
		}

		price := s.policy.PriceFor(domain.PriceInput{
			ProductName: namesByID[batch.ProductID],
			BasePrice:   batch.BasePrice,
			ExpiryDate:  batch.ExpiryDate,
			ForDate:     targetDate,
			PrevPrice:   prevPrice,
		})

		point := &domain.PricePoint{BatchID: batch.ID, Date: targetDate, DiscountedPrice: price}
		if err := s.prices.CreatePricePoint(ctx, point); err != nil {
			// A concurrent run beat us to this batch; that row wins.
			if errors.Is(err, repository.ErrDuplicatePrice) {
				summary.Skipped++
				continue
			}
			return nil, err
		}
		summary.Updated++
	}

	logger.Info("Price job for %s: %d updated, %d skipped (policy %s)",
		targetDate.Format("2006-01-02"), summary.Updated, summary.Skipped, s.policy.Name())
	return summary, nil
}

func (s *priceServiceImpl) EffectiveBatchPrice(ctx context.Context, batchID int64, date time.Time) (float64, error) {
	point, err := s.prices.GetPriceForDate(ctx, batchID, jobdate.Truncate(date))
	if err == nil {
		return point.DiscountedPrice, nil
	}
	if !errors.Is(err, repository.ErrPriceNotFound) {
		return 0, err
	}
	batch, err := s.batches.GetBatchByID(ctx, batchID)
	if err != nil {
		return 0, err
	}
	return batch.BasePrice, nil
}

func (s *priceServiceImpl) CreatePricePoint(ctx context.Context, req domain.CreatePricePointRequest) (*domain.PricePoint, error) {
	if _, err := s.batches.GetBatchByID(ctx, req.BatchID); err != nil {
		return nil, err
	}
	point := &domain.PricePoint{
		BatchID:         req.BatchID,
		Date:            jobdate.Truncate(req.Date),
		DiscountedPrice: req.DiscountedPrice,
	}
	if err := s.prices.CreatePricePoint(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *priceServiceImpl) ListPrices(ctx context.Context, query domain.PriceQuery) ([]domain.PricePoint, error) {
	return s.prices.ListPrices(ctx, query)
}
