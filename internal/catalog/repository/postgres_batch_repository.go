package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

const batchColumns = `id, product_id, manufacture_date, expiry_date, base_price, stocked_quantity, remaining_quantity, created_at`

type postgresBatchRepository struct {
	db *sql.DB
}

func NewPostgresBatchRepository(db *sql.DB) BatchRepository {
	return &postgresBatchRepository{db: db}
}

func (r *postgresBatchRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

func (r *postgresBatchRepository) CreateBatch(ctx context.Context, batch *domain.ProductBatch) error {
	query := `INSERT INTO product_batches
              (product_id, manufacture_date, expiry_date, base_price, stocked_quantity, remaining_quantity, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	batch.CreatedAt = time.Now()
	batch.RemainingQuantity = batch.StockedQuantity

	err := r.db.QueryRowContext(ctx, query,
		batch.ProductID, batch.ManufactureDate, batch.ExpiryDate, batch.BasePrice,
		batch.StockedQuantity, batch.RemainingQuantity, batch.CreatedAt,
	).Scan(&batch.ID, &batch.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("product does not exist: %w", ErrProductNotFound)
		}
		logger.Error("CreateBatch: failed to insert batch", err)
		return err
	}
	return nil
}

func scanBatch(row interface{ Scan(...interface{}) error }, b *domain.ProductBatch) error {
	return row.Scan(&b.ID, &b.ProductID, &b.ManufactureDate, &b.ExpiryDate,
		&b.BasePrice, &b.StockedQuantity, &b.RemainingQuantity, &b.CreatedAt)
}

func (r *postgresBatchRepository) GetBatchByID(ctx context.Context, id int64) (*domain.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE id = $1`
	var b domain.ProductBatch
	if err := scanBatch(r.db.QueryRowContext(ctx, query, id), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		logger.Error("GetBatchByID: query failed", err)
		return nil, err
	}
	return &b, nil
}

func (r *postgresBatchRepository) listBatches(ctx context.Context, query string, args ...interface{}) ([]domain.ProductBatch, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("listBatches: query failed", err)
		return nil, err
	}
	defer rows.Close()

	batches := []domain.ProductBatch{}
	for rows.Next() {
		var b domain.ProductBatch
		if err := scanBatch(rows, &b); err != nil {
			logger.Error("listBatches: scan failed", err)
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (r *postgresBatchRepository) ListBatchesByProduct(ctx context.Context, productID int64) ([]domain.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE product_id = $1 ORDER BY expiry_date ASC`
	return r.listBatches(ctx, query, productID)
}

func (r *postgresBatchRepository) ListAllBatches(ctx context.Context) ([]domain.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches ORDER BY id ASC`
	return r.listBatches(ctx, query)
}

func (r *postgresBatchRepository) GetCheapestBatch(ctx context.Context, productID int64) (*domain.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches
              WHERE product_id = $1 ORDER BY base_price ASC LIMIT 1`
	var b domain.ProductBatch
	if err := scanBatch(r.db.QueryRowContext(ctx, query, productID), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		logger.Error("GetCheapestBatch: query failed", err)
		return nil, err
	}
	return &b, nil
}

func (r *postgresBatchRepository) SoonestExpiry(ctx context.Context, productID int64, onOrAfter time.Time) (time.Time, error) {
	query := `SELECT MIN(expiry_date) FROM product_batches
              WHERE product_id = $1 AND expiry_date >= $2 AND remaining_quantity > 0`
	var expiry sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, productID, onOrAfter).Scan(&expiry); err != nil {
		logger.Error("SoonestExpiry: query failed", err)
		return time.Time{}, err
	}
	if !expiry.Valid {
		return time.Time{}, ErrBatchNotFound
	}
	return expiry.Time, nil
}

// ListAllocatableBatches locks the candidate rows for the duration of the
// order transaction so concurrent orders cannot over-allocate the same batch.
// Cheapest batch first: markdown stock sells before costlier lots.
func (r *postgresBatchRepository) ListAllocatableBatches(ctx context.Context, dbops DBTX, productID int64, orderDate time.Time) ([]domain.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches
              WHERE product_id = $1 AND expiry_date >= $2 AND remaining_quantity > 0
              ORDER BY base_price ASC
              FOR UPDATE`
	rows, err := dbops.QueryContext(ctx, query, productID, orderDate)
	if err != nil {
		logger.Error("ListAllocatableBatches: query failed", err)
		return nil, err
	}
	defer rows.Close()

	batches := []domain.ProductBatch{}
	for rows.Next() {
		var b domain.ProductBatch
		if err := scanBatch(rows, &b); err != nil {
			logger.Error("ListAllocatableBatches: scan failed", err)
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (r *postgresBatchRepository) DeductRemainingQuantity(ctx context.Context, dbops DBTX, batchID int64, amount int) error {
	query := `UPDATE product_batches SET remaining_quantity = remaining_quantity - $1
              WHERE id = $2 AND remaining_quantity - $1 >= 0`
	res, err := dbops.ExecContext(ctx, query, amount, batchID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation
			return ErrDeductOutOfBounds
		}
		logger.Error("DeductRemainingQuantity: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrDeductOutOfBounds
	}
	return nil
}
