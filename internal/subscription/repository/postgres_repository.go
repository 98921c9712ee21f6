package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	"github.com/tarikuzuma/ShelfSmart/internal/subscription/domain"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("user is already subscribed to this product")
)

type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error
	DeleteSubscription(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Subscription, error)
}

type postgresSubscriptionRepository struct {
	db *sql.DB
}

func NewPostgresSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &postgresSubscriptionRepository{db: db}
}

func (r *postgresSubscriptionRepository) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	query := `INSERT INTO subscriptions (user_id, product_id, created_at)
              VALUES ($1, $2, $3) RETURNING id`
	sub.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx, query, sub.UserID, sub.ProductID, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return ErrAlreadySubscribed
		}
		logger.Error("CreateSubscription: failed to insert subscription", err)
		return err
	}
	return nil
}

func (r *postgresSubscriptionRepository) DeleteSubscription(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteSubscription: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *postgresSubscriptionRepository) list(ctx context.Context, query string, arg int64) ([]domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		logger.Error("ListSubscriptions: query failed", err)
		return nil, err
	}
	defer rows.Close()

	subs := []domain.Subscription{}
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProductID, &s.CreatedAt); err != nil {
			logger.Error("ListSubscriptions: scan failed", err)
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *postgresSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	query := `SELECT id, user_id, product_id, created_at FROM subscriptions WHERE user_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, userID)
}

func (r *postgresSubscriptionRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Subscription, error) {
	query := `SELECT id, user_id, product_id, created_at FROM subscriptions WHERE product_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, productID)
}
