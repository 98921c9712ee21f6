package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tarikuzuma/ShelfSmart/internal/order/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/order/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/jobdate"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

var (
	ErrInsufficientStock   = errors.New("insufficient stock for requested quantity")
	ErrOrderCreationFailed = errors.New("order creation failed")
)

type OrderService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.CreateOrderResponse, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, query domain.OrderQuery) ([]domain.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	allocator Allocator
}

func NewOrderService(orderRepo repository.OrderRepository, allocator Allocator) OrderService {
	return &orderServiceImpl{orderRepo: orderRepo, allocator: allocator}
}

// CreateOrder allocates stock and records the order in one transaction. Any
// shortfall aborts the whole order: batch deductions and item rows commit
// together or not at all.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}

	orderDate := jobdate.Truncate(time.Now())
	if req.Date != nil {
		orderDate = jobdate.Truncate(*req.Date)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("CreateOrder: begin tx failed", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	defer tx.Rollback()

	var orderItems []domain.OrderItem
	var totalPrice float64
	for _, itemReq := range req.Items {
		result, err := s.allocator.Allocate(ctx, tx, itemReq.ProductID, itemReq.Quantity, orderDate)
		if err != nil {
			logger.Error(fmt.Sprintf("CreateOrder: allocation failed for product %d", itemReq.ProductID), err)
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
		if result.Shortfall > 0 {
			return nil, fmt.Errorf("%w: product %d short by %d", ErrInsufficientStock, itemReq.ProductID, result.Shortfall)
		}
		for _, alloc := range result.Allocations {
			orderItems = append(orderItems, domain.OrderItem{
				ProductID: itemReq.ProductID,
				BatchID:   alloc.BatchID,
				Quantity:  alloc.Quantity,
				UnitPrice: alloc.UnitPrice,
			})
			totalPrice += float64(alloc.Quantity) * alloc.UnitPrice
		}
	}

	newOrder := &domain.Order{
		UserID:     req.UserID,
		Date:       orderDate,
		TotalPrice: math.Round(totalPrice*100) / 100,
	}
	if err := s.orderRepo.CreateOrderWithItems(ctx, tx, newOrder, orderItems); err != nil {
		logger.Error("CreateOrder: failed to save order", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("CreateOrder: commit tx failed", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	return &domain.CreateOrderResponse{Order: *newOrder}, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, id)
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, query domain.OrderQuery) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx, query)
}
