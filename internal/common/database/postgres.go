// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hauler-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient is the read pool behind hauler account lookups.
type PostgresClient struct {
	DB   *sql.DB
	name string
}

// NewPostgres opens a pool against cfg. sql.Open does not dial; call Ping to
// verify the connection.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres %s@%s/%s: %w", cfg.User, cfg.Host, cfg.Database, err)
	}

	lifetime := config.GetDuration(cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(lifetime)
	db.SetConnMaxIdleTime(lifetime)

	return &PostgresClient{DB: db, name: cfg.Database}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// Collector exports the pool statistics (open, in use, idle, waits) labelled
// with the database name.
func (c *PostgresClient) Collector() prometheus.Collector {
	return collectors.NewDBStatsCollector(c.DB, c.name)
}

func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
