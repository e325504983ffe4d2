package pricing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository loads price list and package data
type Repository interface {
	GetServiceRate(ctx context.Context, id uuid.UUID) (*ServiceRate, error)
	GetCustomerPackage(ctx context.Context, id uuid.UUID) (*CustomerPackage, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates pricing repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetServiceRate(ctx context.Context, id uuid.UUID) (*ServiceRate, error) {
	var svc ServiceRate
	err := r.db.GetContext(ctx, &svc, `
		SELECT id, name, COALESCE(hourly_rate, 0)::float8 AS hourly_rate, COALESCE(currency, '') AS currency
		FROM services
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) GetCustomerPackage(ctx context.Context, id uuid.UUID) (*CustomerPackage, error) {
	var pkg CustomerPackage
	err := r.db.GetContext(ctx, &pkg, `
		SELECT id, customer_id, package_name, remaining_hours::float8 AS remaining_hours, status, expires_at
		FROM customer_packages
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}
