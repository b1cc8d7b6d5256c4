// Package postgres reads storefront orders from PostgreSQL through sqlx and
// the pgx stdlib driver.
package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"storefront/internal/config"
)

const (
	connectTimeout  = 10 * time.Second
	connMaxLifetime = 30 * time.Minute
)

// NewDB opens a connection pool and verifies it with a ping bounded by
// connectTimeout.
func NewDB(ctx context.Context, cfg *config.DBConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}
