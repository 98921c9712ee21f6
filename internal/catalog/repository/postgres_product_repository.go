package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (retailer_id, name, category, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	product.CreatedAt = time.Now()

	var category sql.NullString
	if product.Category != nil {
		category = sql.NullString{String: *product.Category, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, product.RetailerID, product.Name, category, product.CreatedAt).
		Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT id, retailer_id, name, category, created_at FROM products
              WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
                AND ($2 = '' OR category = $2)
              ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, filter.Name, filter.Category)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var category sql.NullString
		if err := rows.Scan(&p.ID, &p.RetailerID, &p.Name, &category, &p.CreatedAt); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		if category.Valid {
			p.Category = &category.String
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, retailer_id, name, category, created_at FROM products WHERE id = $1`
	var p domain.Product
	var category sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RetailerID, &p.Name, &category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	if category.Valid {
		p.Category = &category.String
	}
	return &p, nil
}
