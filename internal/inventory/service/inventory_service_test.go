package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/repository/mocks"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInventoryService_SnapshotFor(t *testing.T) {
	ctx := context.TODO()
	date := day(2026, time.March, 1)

	t.Run("stocked minus sold", func(t *testing.T) {
		mockRepo := new(mocks.MockSnapshotRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("CumulativeStockedQuantity", ctx, int64(10), date).Return(100, nil).Once()
		mockRepo.On("CumulativeSoldQuantity", ctx, int64(10), date).Return(30, nil).Once()

		qty, err := svc.SnapshotFor(ctx, 10, date)
		assert.NoError(t, err)
		assert.Equal(t, 70, qty)
	})

	t.Run("oversold history clamps to zero", func(t *testing.T) {
		mockRepo := new(mocks.MockSnapshotRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("CumulativeStockedQuantity", ctx, int64(10), date).Return(20, nil).Once()
		mockRepo.On("CumulativeSoldQuantity", ctx, int64(10), date).Return(25, nil).Once()

		qty, err := svc.SnapshotFor(ctx, 10, date)
		assert.NoError(t, err)
		assert.Equal(t, 0, qty)
	})
}

func TestInventoryService_RunForDate(t *testing.T) {
	ctx := context.TODO()
	targetDate := day(2026, time.March, 1)

	t.Run("writes one snapshot per product", func(t *testing.T) {
		mockRepo := new(mocks.MockSnapshotRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("ListProductIDs", ctx).Return([]int64{10, 11}, nil).Once()
		mockRepo.On("HasSnapshotForDate", ctx, int64(10), targetDate).Return(false, nil).Once()
		mockRepo.On("HasSnapshotForDate", ctx, int64(11), targetDate).Return(false, nil).Once()
		mockRepo.On("CumulativeStockedQuantity", ctx, int64(10), targetDate).Return(100, nil).Once()
		mockRepo.On("CumulativeSoldQuantity", ctx, int64(10), targetDate).Return(30, nil).Once()
		mockRepo.On("CumulativeStockedQuantity", ctx, int64(11), targetDate).Return(50, nil).Once()
		mockRepo.On("CumulativeSoldQuantity", ctx, int64(11), targetDate).Return(0, nil).Once()
		mockRepo.On("CreateSnapshot", ctx, mock.MatchedBy(func(s *domain.InventorySnapshot) bool {
			return s.ProductID == 10 && s.Quantity == 70 && s.Date.Equal(targetDate)
		})).Return(nil).Once()
		mockRepo.On("CreateSnapshot", ctx, mock.MatchedBy(func(s *domain.InventorySnapshot) bool {
			return s.ProductID == 11 && s.Quantity == 50
		})).Return(nil).Once()

		summary, err := svc.RunForDate(ctx, targetDate)
		assert.NoError(t, err)
		assert.Equal(t, 2, summary.Written)
		assert.Equal(t, 0, summary.Skipped)
		mockRepo.AssertExpectations(t)
	})

	t.Run("skips products already reconciled", func(t *testing.T) {
		mockRepo := new(mocks.MockSnapshotRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("ListProductIDs", ctx).Return([]int64{10}, nil).Once()
		mockRepo.On("HasSnapshotForDate", ctx, int64(10), targetDate).Return(true, nil).Once()

		summary, err := svc.RunForDate(ctx, targetDate)
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Written)
		assert.Equal(t, 1, summary.Skipped)
		mockRepo.AssertNotCalled(t, "CreateSnapshot", mock.Anything, mock.Anything)
	})

	t.Run("duplicate insert from a concurrent run counts as skipped", func(t *testing.T) {
		mockRepo := new(mocks.MockSnapshotRepository)
		svc := NewInventoryService(mockRepo)

		mockRepo.On("ListProductIDs", ctx).Return([]int64{10}, nil).Once()
		mockRepo.On("HasSnapshotForDate", ctx, int64(10), targetDate).Return(false, nil).Once()
		mockRepo.On("CumulativeStockedQuantity", ctx, int64(10), targetDate).Return(100, nil).Once()
		mockRepo.On("CumulativeSoldQuantity", ctx, int64(10), targetDate).Return(30, nil).Once()
		mockRepo.On("CreateSnapshot", ctx, mock.Anything).Return(repository.ErrDuplicateSnapshot).Once()

		summary, err := svc.RunForDate(ctx, targetDate)
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Written)
		assert.Equal(t, 1, summary.Skipped)
	})
}
