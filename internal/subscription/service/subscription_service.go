package service

import (
	"context"

	catalogRepo "github.com/tarikuzuma/ShelfSmart/internal/catalog/repository"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	"github.com/tarikuzuma/ShelfSmart/internal/subscription/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/subscription/repository"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, req domain.CreateSubscriptionRequest) (*domain.Subscription, error)
	Unsubscribe(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
	ListForProduct(ctx context.Context, productID int64) ([]domain.Subscription, error)
}

type subscriptionServiceImpl struct {
	subs     repository.SubscriptionRepository
	products catalogRepo.ProductRepository
	users    catalogRepo.UserRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository,
	products catalogRepo.ProductRepository, users catalogRepo.UserRepository) SubscriptionService {
	return &subscriptionServiceImpl{subs: subs, products: products, users: users}
}

func (s *subscriptionServiceImpl) Subscribe(ctx context.Context, req domain.CreateSubscriptionRequest) (*domain.Subscription, error) {
	if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	sub := &domain.Subscription{UserID: req.UserID, ProductID: req.ProductID}
	if err := s.subs.CreateSubscription(ctx, sub); err != nil {
		logger.Error("Svc.Subscribe: repo error", err)
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionServiceImpl) Unsubscribe(ctx context.Context, id int64) error {
	return s.subs.DeleteSubscription(ctx, id)
}

func (s *subscriptionServiceImpl) ListForUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	return s.subs.ListByUser(ctx, userID)
}

func (s *subscriptionServiceImpl) ListForProduct(ctx context.Context, productID int64) ([]domain.Subscription, error) {
	return s.subs.ListByProduct(ctx, productID)
}
