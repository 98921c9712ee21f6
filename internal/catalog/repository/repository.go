package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBatchNotFound     = errors.New("product batch not found")
	ErrRetailerNotFound  = errors.New("retailer not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDeductOutOfBounds = errors.New("deduction would drive remaining quantity negative")
)

// DBTX can be a *sql.DB or a *sql.Tx. Repository methods that must run inside
// the caller's transaction take one explicitly.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *domain.ProductBatch) error
	GetBatchByID(ctx context.Context, id int64) (*domain.ProductBatch, error)
	ListBatchesByProduct(ctx context.Context, productID int64) ([]domain.ProductBatch, error)
	ListAllBatches(ctx context.Context) ([]domain.ProductBatch, error)
	GetCheapestBatch(ctx context.Context, productID int64) (*domain.ProductBatch, error)
	SoonestExpiry(ctx context.Context, productID int64, onOrAfter time.Time) (time.Time, error)

	// Allocation methods run against the order transaction.
	ListAllocatableBatches(ctx context.Context, dbops DBTX, productID int64, orderDate time.Time) ([]domain.ProductBatch, error)
	DeductRemainingQuantity(ctx context.Context, dbops DBTX, batchID int64, amount int) error

	BeginTx(ctx context.Context) (DBTX, error)
}

type RetailerRepository interface {
	CreateRetailer(ctx context.Context, retailer *domain.Retailer) error
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)
	GetRetailerByID(ctx context.Context, id int64) (*domain.Retailer, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}
