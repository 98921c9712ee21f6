package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	catalogDomain "github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	catalogMocks "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository/mocks"
	"github.com/tarikuzuma/ShelfSmart/internal/forecast/domain"
	orderMocks "github.com/tarikuzuma/ShelfSmart/internal/order/repository/mocks"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestForecastService_ForecastProduct(t *testing.T) {
	ctx := context.TODO()
	productID := int64(10)
	targetDate := day(2026, time.March, 17) // Tuesday
	from := targetDate.AddDate(0, 0, -lookbackDays)
	to := targetDate.AddDate(0, 0, -1)

	t.Run("steady sales, near expiry", func(t *testing.T) {
		mockOrders := new(orderMocks.MockOrderRepository)
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockProducts := new(catalogMocks.MockProductRepository)
		svc := NewForecastService(mockOrders, mockBatches, mockProducts)

		sales := map[time.Time]int{}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			sales[d] = 6
		}
		mockProducts.On("GetProductByID", ctx, productID).Return(&catalogDomain.Product{ID: productID}, nil).Once()
		mockOrders.On("ListDailySales", ctx, productID, from, to).Return(sales, nil).Once()
		mockBatches.On("SoonestExpiry", ctx, productID, targetDate).Return(targetDate.AddDate(0, 0, 2), nil).Once()

		f, err := svc.ForecastProduct(ctx, productID, targetDate)
		assert.NoError(t, err)
		assert.Equal(t, 6.0, f.AverageDaily)
		assert.Equal(t, 6, f.PredictedQuantity)
		assert.Equal(t, domain.RiskHigh, f.Risk)
	})

	t.Run("gap days count as zero sales", func(t *testing.T) {
		mockOrders := new(orderMocks.MockOrderRepository)
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockProducts := new(catalogMocks.MockProductRepository)
		svc := NewForecastService(mockOrders, mockBatches, mockProducts)

		// Sales on half the window only; the average still divides by 28.
		sales := map[time.Time]int{}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 2) {
			sales[d] = 8
		}
		mockProducts.On("GetProductByID", ctx, productID).Return(&catalogDomain.Product{ID: productID}, nil).Once()
		mockOrders.On("ListDailySales", ctx, productID, from, to).Return(sales, nil).Once()
		mockBatches.On("SoonestExpiry", ctx, productID, targetDate).Return(targetDate.AddDate(0, 0, 30), nil).Once()

		f, err := svc.ForecastProduct(ctx, productID, targetDate)
		assert.NoError(t, err)
		assert.Equal(t, 4.0, f.AverageDaily)
		assert.Equal(t, domain.RiskLow, f.Risk)
	})

	t.Run("no expiring stock defaults to low risk", func(t *testing.T) {
		mockOrders := new(orderMocks.MockOrderRepository)
		mockBatches := new(catalogMocks.MockBatchRepository)
		mockProducts := new(catalogMocks.MockProductRepository)
		svc := NewForecastService(mockOrders, mockBatches, mockProducts)

		mockProducts.On("GetProductByID", ctx, productID).Return(&catalogDomain.Product{ID: productID}, nil).Once()
		mockOrders.On("ListDailySales", ctx, productID, from, to).Return(map[time.Time]int{}, nil).Once()
		mockBatches.On("SoonestExpiry", ctx, productID, targetDate).Return(time.Time{}, catalogRepo.ErrBatchNotFound).Once()

		f, err := svc.ForecastProduct(ctx, productID, targetDate)
		assert.NoError(t, err)
		assert.Equal(t, domain.RiskLow, f.Risk)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		mockProducts := new(catalogMocks.MockProductRepository)
		svc := NewForecastService(new(orderMocks.MockOrderRepository), new(catalogMocks.MockBatchRepository), mockProducts)

		mockProducts.On("GetProductByID", ctx, productID).Return(nil, catalogRepo.ErrProductNotFound).Once()

		_, err := svc.ForecastProduct(ctx, productID, targetDate)
		assert.ErrorIs(t, err, catalogRepo.ErrProductNotFound)
	})
}
