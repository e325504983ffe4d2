package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NewPostgres opens the booking database pool.
// Returns nil if databaseURL is empty: slots then come from the backend and quotes use
// request values only.
func NewPostgres(databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		log.Warn().Msg("DATABASE_URL not configured, running without PostgreSQL")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	// Read-only lookups, one or two queries per request
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

// PingPostgres reports whether the pool can reach the server. A nil pool is healthy.
func PingPostgres(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return nil
	}
	return db.PingContext(ctx)
}

// ClosePostgres closes the database connection
func ClosePostgres(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing PostgreSQL connection")
		return
	}
	log.Info().Msg("PostgreSQL connection closed")
}
