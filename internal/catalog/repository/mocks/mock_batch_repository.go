package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
)

type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) CreateBatch(ctx context.Context, batch *domain.ProductBatch) error {
	args := m.Called(ctx, batch)
	if batch != nil && args.Error(0) == nil && batch.ID == 0 {
		batch.ID = 1
	}
	return args.Error(0)
}

func (m *MockBatchRepository) GetBatchByID(ctx context.Context, id int64) (*domain.ProductBatch, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.ProductBatch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) ListBatchesByProduct(ctx context.Context, productID int64) ([]domain.ProductBatch, error) {
	args := m.Called(ctx, productID)
	if batches := args.Get(0); batches != nil {
		return batches.([]domain.ProductBatch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) ListAllBatches(ctx context.Context) ([]domain.ProductBatch, error) {
	args := m.Called(ctx)
	if batches := args.Get(0); batches != nil {
		return batches.([]domain.ProductBatch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) GetCheapestBatch(ctx context.Context, productID int64) (*domain.ProductBatch, error) {
	args := m.Called(ctx, productID)
	if b := args.Get(0); b != nil {
		return b.(*domain.ProductBatch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) SoonestExpiry(ctx context.Context, productID int64, onOrAfter time.Time) (time.Time, error) {
	args := m.Called(ctx, productID, onOrAfter)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockBatchRepository) ListAllocatableBatches(ctx context.Context, dbops repository.DBTX, productID int64, orderDate time.Time) ([]domain.ProductBatch, error) {
	args := m.Called(ctx, dbops, productID, orderDate)
	if batches := args.Get(0); batches != nil {
		return batches.([]domain.ProductBatch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) DeductRemainingQuantity(ctx context.Context, dbops repository.DBTX, batchID int64, amount int) error {
	args := m.Called(ctx, dbops, batchID, amount)
	return args.Error(0)
}

func (m *MockBatchRepository) BeginTx(ctx context.Context) (repository.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}
