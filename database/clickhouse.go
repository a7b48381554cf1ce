package database

import (
	"context"
	"fmt"

	"backend-service/config"
	"backend-service/utils"

	"github.com/uptrace/go-clickhouse/ch"
)

// InitClickHouse opens a ClickHouse connection and verifies it with a ping
func InitClickHouse(ctx context.Context, cfg *config.ClickHouseConfig) (*ch.DB, error) {
	// Native protocol, no TLS
	db := ch.Connect(
		ch.WithDSN(cfg.GetClickHouseDSN()),
		ch.WithInsecure(true),
	)

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	utils.LogInfo("ClickHouse connection established successfully")
	return db, nil
}

// ClickHouseHealthCheck verifies that the ClickHouse connection is alive
func ClickHouseHealthCheck(db *ch.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if db == nil {
			return fmt.Errorf("ClickHouse connection is not initialized")
		}
		return db.Ping(ctx)
	}
}
