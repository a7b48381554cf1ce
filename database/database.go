// Package database opens the optional backing services the application can
// be pointed at and exposes them as health probes.
package database

import (
	"context"
	"errors"
	"fmt"

	"backend-service/config"
	"backend-service/domain"
	"backend-service/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/go-clickhouse/ch"
)

// Connections holds the backing services that were configured.
// Unconfigured services stay nil.
type Connections struct {
	Postgres   *pgxpool.Pool
	ClickHouse *ch.DB
	Redis      *redis.Client
}

// Connect opens every configured backing service. If any of them fails the
// ones already opened are closed again and the first error is returned.
func Connect(ctx context.Context, cfg *config.Config) (*Connections, error) {
	conns := &Connections{}
	utils.LogDebug("Connecting backing services",
		"postgres", cfg.Postgres.Enabled(),
		"clickhouse", cfg.ClickHouse.Enabled(),
		"redis", cfg.Redis.Enabled(),
	)

	if cfg.Postgres.Enabled() {
		pool, err := InitPostgres(ctx, &cfg.Postgres)
		if err != nil {
			return nil, errors.Join(err, conns.Close())
		}
		conns.Postgres = pool
	}

	if cfg.ClickHouse.Enabled() {
		db, err := InitClickHouse(ctx, &cfg.ClickHouse)
		if err != nil {
			return nil, errors.Join(err, conns.Close())
		}
		conns.ClickHouse = db
	}

	if cfg.Redis.Enabled() {
		client, err := InitRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, errors.Join(err, conns.Close())
		}
		conns.Redis = client
	}

	return conns, nil
}

// Checks returns one health probe per open connection
func (c *Connections) Checks() []domain.DependencyCheck {
	if c == nil {
		return nil
	}

	var checks []domain.DependencyCheck
	if c.Postgres != nil {
		checks = append(checks, domain.DependencyCheck{Name: "postgres", Check: PostgresHealthCheck(c.Postgres)})
	}
	if c.ClickHouse != nil {
		checks = append(checks, domain.DependencyCheck{Name: "clickhouse", Check: ClickHouseHealthCheck(c.ClickHouse)})
	}
	if c.Redis != nil {
		checks = append(checks, domain.DependencyCheck{Name: "redis", Check: RedisHealthCheck(c.Redis)})
	}
	return checks
}

// Close closes all open connections and returns the combined errors
func (c *Connections) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Postgres != nil {
		c.Postgres.Close()
		c.Postgres = nil
		utils.LogInfo("PostgreSQL connection closed")
	}
	if c.ClickHouse != nil {
		if err := c.ClickHouse.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close ClickHouse connection: %w", err))
		} else {
			utils.LogInfo("ClickHouse connection closed")
		}
		c.ClickHouse = nil
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis connection: %w", err))
		} else {
			utils.LogInfo("Redis connection closed")
		}
		c.Redis = nil
	}
	return errors.Join(errs...)
}
