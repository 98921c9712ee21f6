package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/order/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/order/repository"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (repository.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrderWithItems(ctx context.Context, dbops repository.DBTX, order *domain.Order, items []domain.OrderItem) error {
	args := m.Called(ctx, dbops, order, items)
	if order != nil && args.Error(0) == nil && order.ID == 0 {
		order.ID = 1
		order.Items = items
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, query domain.OrderQuery) ([]domain.Order, error) {
	args := m.Called(ctx, query)
	if orders := args.Get(0); orders != nil {
		return orders.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if items := args.Get(0); items != nil {
		return items.([]domain.OrderItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListDailySales(ctx context.Context, productID int64, from, to time.Time) (map[time.Time]int, error) {
	args := m.Called(ctx, productID, from, to)
	if sales := args.Get(0); sales != nil {
		return sales.(map[time.Time]int), args.Error(1)
	}
	return nil, args.Error(1)
}
