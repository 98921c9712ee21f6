package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/domain"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) CreateSnapshot(ctx context.Context, snapshot *domain.InventorySnapshot) error {
	args := m.Called(ctx, snapshot)
	if snapshot != nil && args.Error(0) == nil && snapshot.ID == 0 {
		snapshot.ID = 1
	}
	return args.Error(0)
}

func (m *MockSnapshotRepository) HasSnapshotForDate(ctx context.Context, productID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, productID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshots(ctx context.Context, query domain.SnapshotQuery) ([]domain.InventorySnapshot, error) {
	args := m.Called(ctx, query)
	if snapshots := args.Get(0); snapshots != nil {
		return snapshots.([]domain.InventorySnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSnapshotRepository) ListProductIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSnapshotRepository) CumulativeStockedQuantity(ctx context.Context, productID int64, date time.Time) (int, error) {
	args := m.Called(ctx, productID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockSnapshotRepository) CumulativeSoldQuantity(ctx context.Context, productID int64, date time.Time) (int, error) {
	args := m.Called(ctx, productID, date)
	return args.Int(0), args.Error(1)
}
