package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/genelingua/pgs-server/internal/domain"
)

// RedisCache is the warm tier: reports shared across server instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(url string, ttl time.Duration, logger *logrus.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{client: client, ttl: ttl, log: logger}, nil
}

// Get returns the cached report for the key. Corrupted entries are removed
// and treated as misses.
func (r *RedisCache) Get(ctx context.Context, key string) (*domain.Report, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		r.log.WithError(err).Warn("Redis cache read failed")
		return nil, false
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		r.client.Del(ctx, key)
		return nil, false
	}
	return &report, true
}

// Set stores a report under the key with the configured TTL. Failures are
// logged and swallowed; caching is best-effort.
func (r *RedisCache) Set(ctx context.Context, key string, report *domain.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		r.log.WithError(err).Warn("Failed to marshal report for cache")
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.WithError(err).Warn("Redis cache write failed")
	}
}

// Close closes the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
