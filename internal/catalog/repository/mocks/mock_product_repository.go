package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil && product.ID == 0 {
		product.ID = 1
	}
	return args.Error(0)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if products := args.Get(0); products != nil {
		return products.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRetailerRepository struct {
	mock.Mock
}

func (m *MockRetailerRepository) CreateRetailer(ctx context.Context, retailer *domain.Retailer) error {
	args := m.Called(ctx, retailer)
	return args.Error(0)
}

func (m *MockRetailerRepository) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	args := m.Called(ctx)
	if retailers := args.Get(0); retailers != nil {
		return retailers.([]domain.Retailer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRetailerRepository) GetRetailerByID(ctx context.Context, id int64) (*domain.Retailer, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Retailer), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
