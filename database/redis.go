package database

import (
	"context"
	"fmt"

	"backend-service/config"
	"backend-service/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis opens a Redis client and verifies the connection
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Password,
		DB:       0, // default DB
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	utils.LogInfo("Redis connection established successfully", "addr", cfg.GetRedisAddr())
	return client, nil
}

// RedisHealthCheck verifies that the Redis connection is alive
func RedisHealthCheck(client *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("Redis connection is not initialized")
		}
		return client.Ping(ctx).Err()
	}
}
