package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tarikuzuma/ShelfSmart/internal/order/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

var ErrOrderNotFound = errors.New("order not found")

// DBTX can be a *sql.DB or a *sql.Tx. Order rows are always written inside
// the allocation transaction the service opens.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type OrderRepository interface {
	BeginTx(ctx context.Context) (DBTX, error)
	CreateOrderWithItems(ctx context.Context, dbops DBTX, order *domain.Order, items []domain.OrderItem) error
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, query domain.OrderQuery) ([]domain.Order, error)
	GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error)

	// ListDailySales aggregates sold quantities per day, feeding the demand
	// forecast heuristic.
	ListDailySales(ctx context.Context, productID int64, from, to time.Time) (map[time.Time]int, error)
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

// CreateOrderWithItems writes the order and its items through the supplied
// transaction so they commit or roll back together with the batch deductions.
func (r *postgresOrderRepository) CreateOrderWithItems(ctx context.Context, dbops DBTX, order *domain.Order, items []domain.OrderItem) error {
	orderQuery := `INSERT INTO orders (user_id, date, total_price, created_at)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	order.CreatedAt = time.Now()

	err := dbops.QueryRowContext(ctx, orderQuery, order.UserID, order.Date, order.TotalPrice, order.CreatedAt).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to insert order", err)
		return err
	}

	itemStmt, err := dbops.PrepareContext(ctx, `INSERT INTO order_items
        (order_id, product_id, product_batch_id, quantity, unit_price, created_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range items {
		items[i].OrderID = order.ID
		items[i].CreatedAt = order.CreatedAt
		err = itemStmt.QueryRowContext(ctx, items[i].OrderID, items[i].ProductID, items[i].BatchID,
			items[i].Quantity, items[i].UnitPrice, items[i].CreatedAt).
			Scan(&items[i].ID, &items[i].CreatedAt)
		if err != nil {
			logger.Error("CreateOrderWithItems: failed to insert order item", err)
			return err
		}
	}
	order.Items = items

	return nil
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT id, user_id, date, total_price, created_at FROM orders WHERE id = $1`
	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.UserID, &o.Date, &o.TotalPrice, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		logger.Error("GetOrderByID: query failed", err)
		return nil, err
	}
	items, err := r.GetOrderItemsByOrderID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context, q domain.OrderQuery) ([]domain.Order, error) {
	query := `SELECT id, user_id, date, total_price, created_at FROM orders
              WHERE ($1::date IS NULL OR date >= $1)
                AND ($2::date IS NULL OR date <= $2)
              ORDER BY date ASC, id ASC`
	var from, to interface{}
	if !q.DateFrom.IsZero() {
		from = q.DateFrom
	}
	if !q.DateTo.IsZero() {
		to = q.DateTo
	}
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		logger.Error("ListOrders: query failed", err)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Date, &o.TotalPrice, &o.CreatedAt); err != nil {
			logger.Error("ListOrders: scan failed", err)
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.GetOrderItemsByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *postgresOrderRepository) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_batch_id, quantity, unit_price, created_at
              FROM order_items WHERE order_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		logger.Error("GetOrderItemsByOrderID: query failed", err)
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var i domain.OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.BatchID, &i.Quantity, &i.UnitPrice, &i.CreatedAt); err != nil {
			logger.Error("GetOrderItemsByOrderID: scan failed", err)
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *postgresOrderRepository) ListDailySales(ctx context.Context, productID int64, from, to time.Time) (map[time.Time]int, error) {
	query := `SELECT o.date, SUM(oi.quantity) FROM order_items oi
              JOIN orders o ON oi.order_id = o.id
              WHERE oi.product_id = $1 AND o.date >= $2 AND o.date <= $3
              GROUP BY o.date`
	rows, err := r.db.QueryContext(ctx, query, productID, from, to)
	if err != nil {
		logger.Error("ListDailySales: query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := map[time.Time]int{}
	for rows.Next() {
		var day time.Time
		var qty int
		if err := rows.Scan(&day, &qty); err != nil {
			logger.Error("ListDailySales: scan failed", err)
			return nil, err
		}
		sales[day] = qty
	}
	return sales, rows.Err()
}
