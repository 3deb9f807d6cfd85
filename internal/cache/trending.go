package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// TrendingCacheInterface caches the trending hashtag list per day.
// This enables better testability by allowing mock implementations.
type TrendingCacheInterface interface {
	// Get returns the cached trending list for a day, with a hit flag.
	Get(ctx context.Context, date time.Time) ([]models.HashtagStats, bool, error)

	// Set stores the trending list for a day with a TTL.
	Set(ctx context.Context, date time.Time, stats []models.HashtagStats, ttl time.Duration) error

	// Invalidate drops the cached list for a day.
	Invalidate(ctx context.Context, date time.Time) error
}

// TrendingCache is a Redis-backed cache for trending hashtag lists.
// Entries are JSON-encoded and keyed per UTC day, so an ingest or reset
// job only invalidates the day it touched.
type TrendingCache struct {
	client *redis.Client
}

// NewTrendingCache connects to Redis and verifies the connection.
func NewTrendingCache(redisURL string) (*TrendingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &TrendingCache{client: client}, nil
}

// NewTrendingCacheWithClient wraps an existing Redis client. The client can be
// shared with the rate limiter, which keeps a single connection pool per process.
func NewTrendingCacheWithClient(client *redis.Client) *TrendingCache {
	return &TrendingCache{client: client}
}

// Client exposes the underlying Redis client for sharing with other components.
func (c *TrendingCache) Client() *redis.Client {
	return c.client
}

// Ping checks if Redis is reachable
func (c *TrendingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *TrendingCache) Close() error {
	return c.client.Close()
}

func trendingKey(date time.Time) string {
	return fmt.Sprintf("trending:%s", models.DayOf(date).Format("2006-01-02"))
}

// Get returns the cached trending list for a day. A cache miss is not an
// error; callers fall back to the repository.
func (c *TrendingCache) Get(ctx context.Context, date time.Time) ([]models.HashtagStats, bool, error) {
	data, err := c.client.Get(ctx, trendingKey(date)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read trending cache: %w", err)
	}

	var stats []models.HashtagStats
	if err := json.Unmarshal(data, &stats); err != nil {
		// Corrupt entry: drop it and treat as a miss
		_ = c.client.Del(ctx, trendingKey(date)).Err()
		return nil, false, nil
	}
	return stats, true, nil
}

// Set stores the trending list for a day with a TTL.
func (c *TrendingCache) Set(ctx context.Context, date time.Time, stats []models.HashtagStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal trending list: %w", err)
	}
	if err := c.client.Set(ctx, trendingKey(date), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write trending cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached list for a day.
func (c *TrendingCache) Invalidate(ctx context.Context, date time.Time) error {
	if err := c.client.Del(ctx, trendingKey(date)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate trending cache: %w", err)
	}
	return nil
}

// Ensure TrendingCache implements the interface
var _ TrendingCacheInterface = (*TrendingCache)(nil)
