package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	catalogMocks "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository/mocks"
	"github.com/tarikuzuma/ShelfSmart/internal/order/domain"
	repoMocks "github.com/tarikuzuma/ShelfSmart/internal/order/repository/mocks"
	"github.com/tarikuzuma/ShelfSmart/internal/order/service/mocks"
)

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.TODO()
	orderDate := day(2026, time.March, 1)
	req := domain.CreateOrderRequest{
		UserID: 7,
		Date:   &orderDate,
		Items:  []domain.CreateOrderItemRequest{{ProductID: 10, Quantity: 15}},
	}

	t.Run("allocates, prices and commits in one transaction", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockAllocator := new(mocks.MockAllocator)
		mockTx := new(catalogMocks.MockDBTX)
		svc := NewOrderService(mockRepo, mockAllocator)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockAllocator.On("Allocate", ctx, mockTx, int64(10), 15, orderDate).Return(&domain.AllocationResult{
			Allocations: []domain.BatchAllocation{
				{BatchID: 1, Quantity: 10, UnitPrice: 2.00},
				{BatchID: 2, Quantity: 5, UnitPrice: 3.00},
			},
			AllocatedQty: 15,
		}, nil).Once()
		mockRepo.On("CreateOrderWithItems", ctx, mockTx, mock.MatchedBy(func(o *domain.Order) bool {
			return o.UserID == 7 && o.TotalPrice == 35.00 && o.Date.Equal(orderDate)
		}), mock.MatchedBy(func(items []domain.OrderItem) bool {
			return len(items) == 2 && items[0].BatchID == 1 && items[1].BatchID == 2
		})).Return(nil).Once()
		mockTx.On("Commit").Return(nil).Once()
		mockTx.On("Rollback").Return(nil).Maybe()

		resp, err := svc.CreateOrder(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, 35.00, resp.TotalPrice)
		assert.Len(t, resp.Items, 2)
		mockRepo.AssertExpectations(t)
		mockAllocator.AssertExpectations(t)
		mockTx.AssertExpectations(t)
	})

	t.Run("fresh batch sells at base price", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockAllocator := new(mocks.MockAllocator)
		mockTx := new(catalogMocks.MockDBTX)
		svc := NewOrderService(mockRepo, mockAllocator)

		freshReq := domain.CreateOrderRequest{
			UserID: 7,
			Date:   &orderDate,
			Items:  []domain.CreateOrderItemRequest{{ProductID: 10, Quantity: 30}},
		}
		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockAllocator.On("Allocate", ctx, mockTx, int64(10), 30, orderDate).Return(&domain.AllocationResult{
			Allocations:  []domain.BatchAllocation{{BatchID: 1, Quantity: 30, UnitPrice: 4.00}},
			AllocatedQty: 30,
		}, nil).Once()
		mockRepo.On("CreateOrderWithItems", ctx, mockTx, mock.Anything, mock.Anything).Return(nil).Once()
		mockTx.On("Commit").Return(nil).Once()
		mockTx.On("Rollback").Return(nil).Maybe()

		resp, err := svc.CreateOrder(ctx, freshReq)
		assert.NoError(t, err)
		assert.Equal(t, 120.00, resp.TotalPrice)
	})

	t.Run("shortfall aborts the order", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockAllocator := new(mocks.MockAllocator)
		mockTx := new(catalogMocks.MockDBTX)
		svc := NewOrderService(mockRepo, mockAllocator)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockAllocator.On("Allocate", ctx, mockTx, int64(10), 15, orderDate).Return(&domain.AllocationResult{
			Allocations:  []domain.BatchAllocation{{BatchID: 1, Quantity: 10, UnitPrice: 2.00}},
			AllocatedQty: 10,
			Shortfall:    5,
		}, nil).Once()
		mockTx.On("Rollback").Return(nil).Once()

		_, err := svc.CreateOrder(ctx, req)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		mockRepo.AssertNotCalled(t, "CreateOrderWithItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockTx.AssertNotCalled(t, "Commit")
	})

	t.Run("save failure rolls back", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockAllocator := new(mocks.MockAllocator)
		mockTx := new(catalogMocks.MockDBTX)
		svc := NewOrderService(mockRepo, mockAllocator)

		mockRepo.On("BeginTx", ctx).Return(mockTx, nil).Once()
		mockAllocator.On("Allocate", ctx, mockTx, int64(10), 15, orderDate).Return(&domain.AllocationResult{
			Allocations:  []domain.BatchAllocation{{BatchID: 1, Quantity: 15, UnitPrice: 2.00}},
			AllocatedQty: 15,
		}, nil).Once()
		mockRepo.On("CreateOrderWithItems", ctx, mockTx, mock.Anything, mock.Anything).
			Return(assert.AnError).Once()
		mockTx.On("Rollback").Return(nil).Once()

		_, err := svc.CreateOrder(ctx, req)
		assert.ErrorIs(t, err, ErrOrderCreationFailed)
		mockTx.AssertNotCalled(t, "Commit")
	})

	t.Run("empty item list is rejected", func(t *testing.T) {
		svc := NewOrderService(new(repoMocks.MockOrderRepository), new(mocks.MockAllocator))
		_, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{UserID: 7})
		assert.Error(t, err)
	})
}
