package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
	"github.com/tarikuzuma/ShelfSmart/internal/pricing/domain"
)

var (
	ErrPriceNotFound  = errors.New("price point not found")
	ErrDuplicatePrice = errors.New("price point already exists for this batch and date")
)

type PriceRepository interface {
	CreatePricePoint(ctx context.Context, price *domain.PricePoint) error
	HasPriceForDate(ctx context.Context, batchID int64, date time.Time) (bool, error)
	GetPriceForDate(ctx context.Context, batchID int64, date time.Time) (*domain.PricePoint, error)
	GetLatestPriceBefore(ctx context.Context, batchID int64, date time.Time) (*domain.PricePoint, error)
	ListPrices(ctx context.Context, query domain.PriceQuery) ([]domain.PricePoint, error)
}

type postgresPriceRepository struct {
	db *sql.DB
}

func NewPostgresPriceRepository(db *sql.DB) PriceRepository {
	return &postgresPriceRepository{db: db}
}

func (r *postgresPriceRepository) CreatePricePoint(ctx context.Context, price *domain.PricePoint) error {
	query := `INSERT INTO product_prices (product_batch_id, date, discounted_price)
              VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, price.BatchID, price.Date, price.DiscountedPrice).Scan(&price.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return ErrDuplicatePrice
		}
		logger.Error("CreatePricePoint: failed to insert price", err)
		return err
	}
	return nil
}

func (r *postgresPriceRepository) HasPriceForDate(ctx context.Context, batchID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM product_prices WHERE product_batch_id = $1 AND date = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, batchID, date).Scan(&exists); err != nil {
		logger.Error("HasPriceForDate: query failed", err)
		return false, err
	}
	return exists, nil
}

func (r *postgresPriceRepository) GetPriceForDate(ctx context.Context, batchID int64, date time.Time) (*domain.PricePoint, error) {
	query := `SELECT id, product_batch_id, date, discounted_price FROM product_prices
              WHERE product_batch_id = $1 AND date = $2`
	var p domain.PricePoint
	err := r.db.QueryRowContext(ctx, query, batchID, date).Scan(&p.ID, &p.BatchID, &p.Date, &p.DiscountedPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPriceNotFound
		}
		logger.Error("GetPriceForDate: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresPriceRepository) GetLatestPriceBefore(ctx context.Context, batchID int64, date time.Time) (*domain.PricePoint, error) {
	query := `SELECT id, product_batch_id, date, discounted_price FROM product_prices
              WHERE product_batch_id = $1 AND date < $2 ORDER BY date DESC LIMIT 1`
	var p domain.PricePoint
	err := r.db.QueryRowContext(ctx, query, batchID, date).Scan(&p.ID, &p.BatchID, &p.Date, &p.DiscountedPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPriceNotFound
		}
		logger.Error("GetLatestPriceBefore: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresPriceRepository) ListPrices(ctx context.Context, q domain.PriceQuery) ([]domain.PricePoint, error) {
	query := `SELECT id, product_batch_id, date, discounted_price FROM product_prices
              WHERE ($1 = 0 OR product_batch_id = $1)
                AND ($2::date IS NULL OR date >= $2)
                AND ($3::date IS NULL OR date <= $3)
              ORDER BY date ASC, product_batch_id ASC`
	var from, to interface{}
	if !q.DateFrom.IsZero() {
		from = q.DateFrom
	}
	if !q.DateTo.IsZero() {
		to = q.DateTo
	}
	rows, err := r.db.QueryContext(ctx, query, q.BatchID, from, to)
	if err != nil {
		logger.Error("ListPrices: query failed", err)
		return nil, err
	}
	defer rows.Close()

	prices := []domain.PricePoint{}
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.ID, &p.BatchID, &p.Date, &p.DiscountedPrice); err != nil {
			logger.Error("ListPrices: scan failed", err)
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
