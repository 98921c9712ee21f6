package service

import (
	"context"
	"errors"
	"time"

	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/order/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	pricingRepo "github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
)

// BatchPriceSource resolves the unit price charged for a batch on a date.
// Implemented by the pricing service: the stored price row when the daily job
// has run, the batch's base price otherwise.
type BatchPriceSource interface {
	EffectiveBatchPrice(ctx context.Context, batchID int64, date time.Time) (float64, error)
}

// Allocator spreads a requested quantity across a product's batches.
type Allocator interface {
	Allocate(ctx context.Context, dbops catalogRepo.DBTX, productID int64, requestedQty int, orderDate time.Time) (*domain.AllocationResult, error)
}

// batchAllocator deducts from the cheapest non-expired batch first, spilling
// over to the next until the request is covered or stock runs out. Candidate
// rows stay locked until the surrounding transaction ends.
type batchAllocator struct {
	batches catalogRepo.BatchRepository
	prices  BatchPriceSource
}

func NewBatchAllocator(batches catalogRepo.BatchRepository, prices BatchPriceSource) Allocator {
	return &batchAllocator{batches: batches, prices: prices}
}

func (a *batchAllocator) Allocate(ctx context.Context, dbops catalogRepo.DBTX, productID int64, requestedQty int, orderDate time.Time) (*domain.AllocationResult, error) {
	if requestedQty <= 0 {
		return nil, errors.New("requested quantity must be positive")
	}

	candidates, err := a.batches.ListAllocatableBatches(ctx, dbops, productID, orderDate)
	if err != nil {
		logger.Error("Allocate: failed to list allocatable batches", err)
		return nil, err
	}

	result := &domain.AllocationResult{}
	outstanding := requestedQty
	for _, batch := range candidates {
		if outstanding <= 0 {
			break
		}
		take := outstanding
		if batch.RemainingQuantity < take {
			take = batch.RemainingQuantity
		}
		if take <= 0 {
			continue
		}

		if err := a.batches.DeductRemainingQuantity(ctx, dbops, batch.ID, take); err != nil {
			logger.Error("Allocate: failed to deduct batch quantity", err)
			return nil, err
		}
		unitPrice, err := a.prices.EffectiveBatchPrice(ctx, batch.ID, orderDate)
		if err != nil {
			if errors.Is(err, pricingRepo.ErrPriceNotFound) {
				unitPrice = batch.BasePrice
			} else {
				return nil, err
			}
		}

		result.Allocations = append(result.Allocations, domain.BatchAllocation{
			BatchID:   batch.ID,
			Quantity:  take,
			UnitPrice: unitPrice,
		})
		result.AllocatedQty += take
		outstanding -= take
	}
	result.Shortfall = outstanding

	return result, nil
}
