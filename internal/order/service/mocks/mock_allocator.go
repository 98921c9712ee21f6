package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/order/domain"
)

type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Allocate(ctx context.Context, dbops catalogRepo.DBTX, productID int64, requestedQty int, orderDate time.Time) (*domain.AllocationResult, error) {
	args := m.Called(ctx, dbops, productID, requestedQty, orderDate)
	if res := args.Get(0); res != nil {
		return res.(*domain.AllocationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockBatchPriceSource struct {
	mock.Mock
}

func (m *MockBatchPriceSource) EffectiveBatchPrice(ctx context.Context, batchID int64, date time.Time) (float64, error) {
	args := m.Called(ctx, batchID, date)
	return args.Get(0).(float64), args.Error(1)
}
