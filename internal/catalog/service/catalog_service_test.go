package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/repository/mocks"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService() (CatalogService, *mocks.MockProductRepository, *mocks.MockBatchRepository,
	*mocks.MockRetailerRepository, *mocks.MockUserRepository) {
	products := new(mocks.MockProductRepository)
	batches := new(mocks.MockBatchRepository)
	retailers := new(mocks.MockRetailerRepository)
	users := new(mocks.MockUserRepository)
	return NewCatalogService(products, batches, retailers, users), products, batches, retailers, users
}

func TestCatalogService_CreateProduct(t *testing.T) {
	ctx := context.TODO()

	t.Run("successful creation", func(t *testing.T) {
		svc, products, _, retailers, _ := newTestService()
		retailers.On("GetRetailerByID", ctx, int64(1)).Return(&domain.Retailer{ID: 1}, nil).Once()
		products.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == "Apple" && p.RetailerID == 1
		})).Return(nil).Once()

		product, err := svc.CreateProduct(ctx, domain.CreateProductRequest{RetailerID: 1, Name: "Apple"})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), product.ID)
		products.AssertExpectations(t)
	})

	t.Run("unknown retailer is rejected", func(t *testing.T) {
		svc, products, _, retailers, _ := newTestService()
		retailers.On("GetRetailerByID", ctx, int64(99)).Return(nil, repository.ErrRetailerNotFound).Once()

		_, err := svc.CreateProduct(ctx, domain.CreateProductRequest{RetailerID: 99, Name: "Apple"})
		assert.ErrorIs(t, err, repository.ErrRetailerNotFound)
		products.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_CreateBatch(t *testing.T) {
	ctx := context.TODO()
	req := domain.CreateBatchRequest{
		ProductID:       10,
		ManufactureDate: day(2026, time.March, 1),
		ExpiryDate:      day(2026, time.April, 1),
		BasePrice:       4.00,
		Quantity:        100,
	}

	t.Run("successful creation seeds remaining quantity", func(t *testing.T) {
		svc, products, batches, _, _ := newTestService()
		products.On("GetProductByID", ctx, int64(10)).Return(&domain.Product{ID: 10}, nil).Once()
		batches.On("CreateBatch", ctx, mock.MatchedBy(func(b *domain.ProductBatch) bool {
			return b.ProductID == 10 && b.StockedQuantity == 100
		})).Return(nil).Once()

		batch, err := svc.CreateBatch(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, 100, batch.StockedQuantity)
		batches.AssertExpectations(t)
	})

	t.Run("expiry before manufacture is rejected", func(t *testing.T) {
		svc, _, batches, _, _ := newTestService()
		bad := req
		bad.ExpiryDate = day(2026, time.February, 1)

		_, err := svc.CreateBatch(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidBatchDates)
		batches.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("expiry equal to manufacture is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		bad := req
		bad.ExpiryDate = bad.ManufactureDate

		_, err := svc.CreateBatch(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidBatchDates)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		svc, products, _, _, _ := newTestService()
		products.On("GetProductByID", ctx, int64(10)).Return(nil, repository.ErrProductNotFound).Once()

		_, err := svc.CreateBatch(ctx, req)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})
}

func TestCatalogService_ListBatches(t *testing.T) {
	ctx := context.TODO()

	t.Run("zero product id lists everything", func(t *testing.T) {
		svc, _, batches, _, _ := newTestService()
		batches.On("ListAllBatches", ctx).Return([]domain.ProductBatch{{ID: 1}, {ID: 2}}, nil).Once()

		got, err := svc.ListBatches(ctx, 0)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		batches.AssertNotCalled(t, "ListBatchesByProduct", mock.Anything, mock.Anything)
	})

	t.Run("product id filters", func(t *testing.T) {
		svc, _, batches, _, _ := newTestService()
		batches.On("ListBatchesByProduct", ctx, int64(10)).Return([]domain.ProductBatch{{ID: 1}}, nil).Once()

		got, err := svc.ListBatches(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
