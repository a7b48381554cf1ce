package database

import (
	"context"
	"fmt"

	"backend-service/config"
	"backend-service/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPostgres opens a pgx connection pool and verifies it with a ping
func InitPostgres(ctx context.Context, cfg *config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	// Health probing only; keep the footprint small
	poolCfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	utils.LogInfo("PostgreSQL connection established successfully", "host", poolCfg.ConnConfig.Host)
	return pool, nil
}

// PostgresHealthCheck verifies that the PostgreSQL pool can reach the server
func PostgresHealthCheck(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if pool == nil {
			return fmt.Errorf("PostgreSQL connection is not initialized")
		}
		return pool.Ping(ctx)
	}
}
