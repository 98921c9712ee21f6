package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/tarikuzuma/ShelfSmart/internal/inventory/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

var ErrDuplicateSnapshot = errors.New("inventory snapshot already exists for this product and date")

type SnapshotRepository interface {
	CreateSnapshot(ctx context.Context, snapshot *domain.InventorySnapshot) error
	HasSnapshotForDate(ctx context.Context, productID int64, date time.Time) (bool, error)
	ListSnapshots(ctx context.Context, query domain.SnapshotQuery) ([]domain.InventorySnapshot, error)
	ListProductIDs(ctx context.Context) ([]int64, error)

	// Cumulative sums the reconciler derives snapshots from. Both scan the
	// full history up to the date, so the result does not depend on the order
	// rows were inserted in.
	CumulativeStockedQuantity(ctx context.Context, productID int64, date time.Time) (int, error)
	CumulativeSoldQuantity(ctx context.Context, productID int64, date time.Time) (int, error)
}

type postgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

func (r *postgresSnapshotRepository) CreateSnapshot(ctx context.Context, snapshot *domain.InventorySnapshot) error {
	query := `INSERT INTO inventory_snapshots (product_id, date, quantity)
              VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, snapshot.ProductID, snapshot.Date, snapshot.Quantity).Scan(&snapshot.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return ErrDuplicateSnapshot
		}
		logger.Error("CreateSnapshot: failed to insert snapshot", err)
		return err
	}
	return nil
}

func (r *postgresSnapshotRepository) HasSnapshotForDate(ctx context.Context, productID int64, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM inventory_snapshots WHERE product_id = $1 AND date = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, productID, date).Scan(&exists); err != nil {
		logger.Error("HasSnapshotForDate: query failed", err)
		return false, err
	}
	return exists, nil
}

func (r *postgresSnapshotRepository) ListSnapshots(ctx context.Context, q domain.SnapshotQuery) ([]domain.InventorySnapshot, error) {
	query := `SELECT id, product_id, date, quantity FROM inventory_snapshots
              WHERE ($1 = 0 OR product_id = $1)
                AND ($2::date IS NULL OR date >= $2)
                AND ($3::date IS NULL OR date <= $3)
              ORDER BY date ASC, product_id ASC`
	var from, to interface{}
	if !q.DateFrom.IsZero() {
		from = q.DateFrom
	}
	if !q.DateTo.IsZero() {
		to = q.DateTo
	}
	rows, err := r.db.QueryContext(ctx, query, q.ProductID, from, to)
	if err != nil {
		logger.Error("ListSnapshots: query failed", err)
		return nil, err
	}
	defer rows.Close()

	snapshots := []domain.InventorySnapshot{}
	for rows.Next() {
		var s domain.InventorySnapshot
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Date, &s.Quantity); err != nil {
			logger.Error("ListSnapshots: scan failed", err)
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func (r *postgresSnapshotRepository) ListProductIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM products ORDER BY id ASC`)
	if err != nil {
		logger.Error("ListProductIDs: query failed", err)
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Error("ListProductIDs: scan failed", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresSnapshotRepository) CumulativeStockedQuantity(ctx context.Context, productID int64, date time.Time) (int, error) {
	query := `SELECT COALESCE(SUM(stocked_quantity), 0) FROM product_batches
              WHERE product_id = $1 AND manufacture_date <= $2`
	var total int
	if err := r.db.QueryRowContext(ctx, query, productID, date).Scan(&total); err != nil {
		logger.Error("CumulativeStockedQuantity: query failed", err)
		return 0, err
	}
	return total, nil
}

func (r *postgresSnapshotRepository) CumulativeSoldQuantity(ctx context.Context, productID int64, date time.Time) (int, error) {
	query := `SELECT COALESCE(SUM(oi.quantity), 0) FROM order_items oi
              JOIN orders o ON oi.order_id = o.id
              WHERE oi.product_id = $1 AND o.date <= $2`
	var total int
	if err := r.db.QueryRowContext(ctx, query, productID, date).Scan(&total); err != nil {
		logger.Error("CumulativeSoldQuantity: query failed", err)
		return 0, err
	}
	return total, nil
}
