package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tarikuzuma/ShelfSmart/internal/catalog/domain"
	"github.com/tarikuzuma/ShelfSmart/internal/platform/logger"
)

type postgresRetailerRepository struct {
	db *sql.DB
}

func NewPostgresRetailerRepository(db *sql.DB) RetailerRepository {
	return &postgresRetailerRepository{db: db}
}

func (r *postgresRetailerRepository) CreateRetailer(ctx context.Context, retailer *domain.Retailer) error {
	query := `INSERT INTO retailers (name, location) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, retailer.Name, retailer.Location).Scan(&retailer.ID)
	if err != nil {
		logger.Error("CreateRetailer: failed to insert retailer", err)
		return err
	}
	return nil
}

func (r *postgresRetailerRepository) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	query := `SELECT id, name, location FROM retailers ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListRetailers: query failed", err)
		return nil, err
	}
	defer rows.Close()

	retailers := []domain.Retailer{}
	for rows.Next() {
		var rt domain.Retailer
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Location); err != nil {
			logger.Error("ListRetailers: scan failed", err)
			return nil, err
		}
		retailers = append(retailers, rt)
	}
	return retailers, rows.Err()
}

func (r *postgresRetailerRepository) GetRetailerByID(ctx context.Context, id int64) (*domain.Retailer, error) {
	query := `SELECT id, name, location FROM retailers WHERE id = $1`
	var rt domain.Retailer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.Name, &rt.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRetailerNotFound
		}
		logger.Error("GetRetailerByID: query failed", err)
		return nil, err
	}
	return &rt, nil
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, shipping_address) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, user.Name, user.ShippingAddress).Scan(&user.ID)
	if err != nil {
		logger.Error("CreateUser: failed to insert user", err)
		return err
	}
	return nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, shipping_address FROM users ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListUsers: query failed", err)
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.ShippingAddress); err != nil {
			logger.Error("ListUsers: scan failed", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, shipping_address FROM users WHERE id = $1`
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.ShippingAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByID: query failed", err)
		return nil, err
	}
	return &u, nil
}
