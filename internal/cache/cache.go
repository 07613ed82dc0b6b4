package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/models"
	"github.com/veritasmainapp/VERITAS-AI/pkg/utils"
)

// Cache key formats
const (
	verdictKeyFormat = "veritas:verdict:%s"
)

// Cache keeps recent verdicts in Redis so repeat scans of the same link
// skip both vendor calls. A nil *Cache is valid and means caching is off.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// New connects to Redis when a URL is configured. Without one it returns
// (nil, nil) and the service runs uncached.
func New(cfg *config.Config, logger *logrus.Logger) (*Cache, error) {
	if cfg.Cache.RedisURL == "" {
		logger.Info("No Redis URL configured, verdict cache disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = 20
	opts.MinIdleConns = 5
	opts.MaxConnAge = time.Hour
	opts.IdleTimeout = 30 * time.Minute

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithField("ttl", cfg.Cache.TTL.String()).Info("Verdict cache connected")
	return &Cache{
		client: client,
		ttl:    cfg.Cache.TTL,
		logger: logger,
	}, nil
}

func verdictKey(url string) string {
	return fmt.Sprintf(verdictKeyFormat, utils.MD5Hash(url))
}

// GetVerdict returns the cached entry for a URL, if any.
func (c *Cache) GetVerdict(ctx context.Context, url string) (*models.HistoryEntry, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, verdictKey(url)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("Verdict cache read failed")
		}
		return nil, false
	}

	var entry models.HistoryEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		c.logger.WithError(err).Warn("Cached verdict undecodable, treating as miss")
		return nil, false
	}
	return &entry, true
}

// SetVerdict stores a finished entry under its URL for the configured TTL.
func (c *Cache) SetVerdict(ctx context.Context, url string, entry models.HistoryEntry) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	return c.client.Set(ctx, verdictKey(url), data, c.ttl).Err()
}

// Ping reports whether Redis is reachable. A disabled cache is healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Enabled reports whether a Redis connection is active.
func (c *Cache) Enabled() bool {
	return c != nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
