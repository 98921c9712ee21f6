package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	catalogDomain "github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	catalogMocks "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository/mocks"
	"github.com/tarikuzuma/ShelfSmart/internal/order/service/mocks"
	pricingRepo "github.com/tarikuzuma/ShelfSmart/internal/pricing/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBatchAllocator_Allocate(t *testing.T) {
	ctx := context.TODO()
	orderDate := day(2026, time.March, 1)
	productID := int64(10)

	// Cheapest first, the order the repository returns them in.
	candidates := []catalogDomain.ProductBatch{
		{ID: 1, ProductID: productID, BasePrice: 2.00, RemainingQuantity: 10},
		{ID: 2, ProductID: productID, BasePrice: 3.00, RemainingQuantity: 20},
	}

	t.Run("single batch covers the request", func(t *testing.T) {
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockPrices := new(mocks.MockBatchPriceSource)
		mockTx := new(catalogMocks.MockDBTX)
		allocator := NewBatchAllocator(mockBatches, mockPrices)

		mockBatches.On("ListAllocatableBatches", ctx, mockTx, productID, orderDate).Return(candidates, nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(1), 8).Return(nil).Once()
		mockPrices.On("EffectiveBatchPrice", ctx, int64(1), orderDate).Return(2.00, nil).Once()

		result, err := allocator.Allocate(ctx, mockTx, productID, 8, orderDate)
		assert.NoError(t, err)
		assert.Equal(t, 8, result.AllocatedQty)
		assert.Equal(t, 0, result.Shortfall)
		assert.Len(t, result.Allocations, 1)
		assert.Equal(t, int64(1), result.Allocations[0].BatchID)
		mockBatches.AssertExpectations(t)
	})

	t.Run("spills over to the next cheapest batch", func(t *testing.T) {
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockPrices := new(mocks.MockBatchPriceSource)
		mockTx := new(catalogMocks.MockDBTX)
		allocator := NewBatchAllocator(mockBatches, mockPrices)

		mockBatches.On("ListAllocatableBatches", ctx, mockTx, productID, orderDate).Return(candidates, nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(1), 10).Return(nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(2), 5).Return(nil).Once()
		mockPrices.On("EffectiveBatchPrice", ctx, int64(1), orderDate).Return(2.00, nil).Once()
		mockPrices.On("EffectiveBatchPrice", ctx, int64(2), orderDate).Return(3.00, nil).Once()

		result, err := allocator.Allocate(ctx, mockTx, productID, 15, orderDate)
		assert.NoError(t, err)
		assert.Equal(t, 15, result.AllocatedQty)
		assert.Equal(t, 0, result.Shortfall)
		assert.Len(t, result.Allocations, 2)
		assert.Equal(t, 10, result.Allocations[0].Quantity)
		assert.Equal(t, 2.00, result.Allocations[0].UnitPrice)
		assert.Equal(t, 5, result.Allocations[1].Quantity)
		assert.Equal(t, 3.00, result.Allocations[1].UnitPrice)
		mockBatches.AssertExpectations(t)
	})

	t.Run("reports shortfall when stock runs out", func(t *testing.T) {
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockPrices := new(mocks.MockBatchPriceSource)
		mockTx := new(catalogMocks.MockDBTX)
		allocator := NewBatchAllocator(mockBatches, mockPrices)

		mockBatches.On("ListAllocatableBatches", ctx, mockTx, productID, orderDate).Return(candidates, nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(1), 10).Return(nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(2), 20).Return(nil).Once()
		mockPrices.On("EffectiveBatchPrice", ctx, mock.Anything, orderDate).Return(2.00, nil).Twice()

		result, err := allocator.Allocate(ctx, mockTx, productID, 45, orderDate)
		assert.NoError(t, err)
		assert.Equal(t, 30, result.AllocatedQty)
		assert.Equal(t, 15, result.Shortfall)
	})

	t.Run("no allocatable batches means full shortfall", func(t *testing.T) {
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockPrices := new(mocks.MockBatchPriceSource)
		mockTx := new(catalogMocks.MockDBTX)
		allocator := NewBatchAllocator(mockBatches, mockPrices)

		mockBatches.On("ListAllocatableBatches", ctx, mockTx, productID, orderDate).
			Return([]catalogDomain.ProductBatch{}, nil).Once()

		result, err := allocator.Allocate(ctx, mockTx, productID, 5, orderDate)
		assert.NoError(t, err)
		assert.Equal(t, 0, result.AllocatedQty)
		assert.Equal(t, 5, result.Shortfall)
		assert.Empty(t, result.Allocations)
	})

	t.Run("missing price row falls back to batch base price", func(t *testing.T) {
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockPrices := new(mocks.MockBatchPriceSource)
		mockTx := new(catalogMocks.MockDBTX)
		allocator := NewBatchAllocator(mockBatches, mockPrices)

		mockBatches.On("ListAllocatableBatches", ctx, mockTx, productID, orderDate).Return(candidates[:1], nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(1), 4).Return(nil).Once()
		mockPrices.On("EffectiveBatchPrice", ctx, int64(1), orderDate).Return(0.0, pricingRepo.ErrPriceNotFound).Once()

		result, err := allocator.Allocate(ctx, mockTx, productID, 4, orderDate)
		assert.NoError(t, err)
		assert.Equal(t, 2.00, result.Allocations[0].UnitPrice)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		allocator := NewBatchAllocator(new(catalogMocks.MockBatchRepository), new(mocks.MockBatchPriceSource))
		_, err := allocator.Allocate(ctx, new(catalogMocks.MockDBTX), productID, 0, orderDate)
		assert.Error(t, err)
	})

	t.Run("deduct failure propagates", func(t *testing.T) {
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockPrices := new(mocks.MockBatchPriceSource)
		mockTx := new(catalogMocks.MockDBTX)
		allocator := NewBatchAllocator(mockBatches, mockPrices)

		dbErr := errors.New("deadlock detected")
		mockBatches.On("ListAllocatableBatches", ctx, mockTx, productID, orderDate).Return(candidates, nil).Once()
		mockBatches.On("DeductRemainingQuantity", ctx, mockTx, int64(1), 5).Return(dbErr).Once()

		_, err := allocator.Allocate(ctx, mockTx, productID, 5, orderDate)
		assert.ErrorIs(t, err, dbErr)
	})
}
