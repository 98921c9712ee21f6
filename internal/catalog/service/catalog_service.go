package service

import (
	"context"
	"errors"

	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

var ErrInvalidBatchDates = errors.New("expiry date must be after manufacture date")

type CatalogService interface {
	CreateRetailer(ctx context.Context, req domain.CreateRetailerRequest) (*domain.Retailer, error)
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)

	CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	CreateBatch(ctx context.Context, req domain.CreateBatchRequest) (*domain.ProductBatch, error)
	GetBatch(ctx context.Context, id int64) (*domain.ProductBatch, error)
	ListBatches(ctx context.Context, productID int64) ([]domain.ProductBatch, error)
	GetCheapestBatch(ctx context.Context, productID int64) (*domain.ProductBatch, error)
}

type catalogServiceImpl struct {
	products  repository.ProductRepository
	batches   repository.BatchRepository
	retailers repository.RetailerRepository
	users     repository.UserRepository
}

func NewCatalogService(products repository.ProductRepository, batches repository.BatchRepository,
	retailers repository.RetailerRepository, users repository.UserRepository) CatalogService {
	return &catalogServiceImpl{
		products:  products,
		batches:   batches,
		retailers: retailers,
		users:     users,
	}
}

func (s *catalogServiceImpl) CreateRetailer(ctx context.Context, req domain.CreateRetailerRequest) (*domain.Retailer, error) {
	retailer := &domain.Retailer{Name: req.Name, Location: req.Location}
	if err := s.retailers.CreateRetailer(ctx, retailer); err != nil {
		logger.Error("Svc.CreateRetailer: repo error", err)
		return nil, err
	}
	return retailer, nil
}

func (s *catalogServiceImpl) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	return s.retailers.ListRetailers(ctx)
}

func (s *catalogServiceImpl) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{Name: req.Name, ShippingAddress: req.ShippingAddress}
	if err := s.users.CreateUser(ctx, user); err != nil {
		logger.Error("Svc.CreateUser: repo error", err)
		return nil, err
	}
	return user, nil
}

func (s *catalogServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.retailers.GetRetailerByID(ctx, req.RetailerID); err != nil {
		return nil, err
	}
	product := &domain.Product{
		RetailerID: req.RetailerID,
		Name:       req.Name,
		Category:   req.Category,
	}
	if err := s.products.CreateProduct(ctx, product); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.ListProducts(ctx, filter)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetProductByID(ctx, id)
}

func (s *catalogServiceImpl) CreateBatch(ctx context.Context, req domain.CreateBatchRequest) (*domain.ProductBatch, error) {
	if !req.ExpiryDate.After(req.ManufactureDate) {
		return nil, ErrInvalidBatchDates
	}
	if _, err := s.products.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	batch := &domain.ProductBatch{
		ProductID:       req.ProductID,
		ManufactureDate: req.ManufactureDate,
		ExpiryDate:      req.ExpiryDate,
		BasePrice:       req.BasePrice,
		StockedQuantity: req.Quantity,
	}
	if err := s.batches.CreateBatch(ctx, batch); err != nil {
		logger.Error("Svc.CreateBatch: repo error", err)
		return nil, err
	}
	return batch, nil
}

func (s *catalogServiceImpl) GetBatch(ctx context.Context, id int64) (*domain.ProductBatch, error) {
	return s.batches.GetBatchByID(ctx, id)
}

func (s *catalogServiceImpl) ListBatches(ctx context.Context, productID int64) ([]domain.ProductBatch, error) {
	if productID == 0 {
		return s.batches.ListAllBatches(ctx)
	}
	return s.batches.ListBatchesByProduct(ctx, productID)
}

func (s *catalogServiceImpl) GetCheapestBatch(ctx context.Context, productID int64) (*domain.ProductBatch, error) {
	return s.batches.GetCheapestBatch(ctx, productID)
}
