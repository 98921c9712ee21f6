package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
)

type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) CreatePricePoint(ctx context.Context, price *domain.PricePoint) error {
	args := m.Called(ctx, price)
	if price != nil && args.Error(0) == nil && price.ID == 0 {
		price.ID = 1
	}
	return args.Error(0)
}

func (m *MockPriceRepository) HasPriceForDate(ctx context.Context, batchID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, batchID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockPriceRepository) GetPriceForDate(ctx context.Context, batchID int64, date time.Time) (*domain.PricePoint, error) {
	args := m.Called(ctx, batchID, date)
	if p := args.Get(0); p != nil {
		return p.(*domain.PricePoint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPriceRepository) GetLatestPriceBefore(ctx context.Context, batchID int64, date time.Time) (*domain.PricePoint, error) {
	args := m.Called(ctx, batchID, date)
	if p := args.Get(0); p != nil {
		return p.(*domain.PricePoint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPriceRepository) ListPrices(ctx context.Context, query domain.PriceQuery) ([]domain.PricePoint, error) {
	args := m.Called(ctx, query)
	if prices := args.Get(0); prices != nil {
		return prices.([]domain.PricePoint), args.Error(1)
	}
	return nil, args.Error(1)
}
