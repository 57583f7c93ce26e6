// Package redis provides the Redis-backed cache repository
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/forkcast/v2/internal/infrastructure/config"
	"github.com/forkcast/v2/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheRepository implements the cache repository on a Redis client
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewClient creates a Redis client from configuration and verifies
// connectivity
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewCacheRepository creates a new Redis cache repository
func NewCacheRepository(client *redis.Client, logger *zap.Logger) outbound.CacheRepository {
	return &CacheRepository{
		client: client,
		logger: logger.Named("redis-cache"),
	}
}

// Get retrieves a value. A cache miss returns nil bytes and no error.
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with a TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a single key
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// DeletePattern removes every key matching a glob pattern. Keys are
// discovered with SCAN so the server is never blocked by a KEYS call.
func (r *CacheRepository) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Cache pattern delete failed",
			zap.String("pattern", pattern),
			zap.Int("keys", len(keys)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Exists checks whether a key is present
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
