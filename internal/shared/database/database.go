package database

import (
	"context"
	"fmt"
	"time"

	"railbook/internal/shared/config"
	"railbook/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// DB holds the process's external connections. The booking ledger itself is
// in-memory; Redis only backs the catalog cache and the rate limiter.
type DB struct {
	Redis *redis.Client
}

// InitDB initializes the configured connections. A disabled or unreachable
// Redis yields a DB without a client rather than an error: every consumer
// degrades to running uncached.
func InitDB(cfg *config.Config) *DB {
	db := &DB{}
	if !cfg.Redis.Enabled {
		return db
	}

	rdb, err := initRedis(cfg)
	if err != nil {
		logger.GetDefault().Warn("Redis unavailable, continuing without cache", "error", err)
		return db
	}
	db.Redis = rdb
	return db
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,

		// Connection pool settings
		PoolSize:     10,
		MinIdleConns: 2,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GetDefault().Info("✅ Redis connected successfully", "addr", cfg.Redis.Addr)
	return rdb, nil
}

// Close closes all connections
func (db *DB) Close() error {
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

// HealthCheck performs health checks on all configured connections
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.Redis != nil {
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	return nil
}

// GetRedis returns the Redis client, nil when running uncached
func (db *DB) GetRedis() *redis.Client {
	return db.Redis
}
