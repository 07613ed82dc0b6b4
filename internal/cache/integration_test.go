//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// Run with: go test -tags=integration ./internal/cache/
// Requires REDIS_URL pointing at a reachable Redis instance.
func TestCache_RoundTrip(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}

	cfg := &config.Config{}
	cfg.Cache.RedisURL = redisURL
	cfg.Cache.TTL = time.Minute

	c, err := New(cfg, testLogger())
	require.NoError(t, err)
	require.True(t, c.Enabled())
	defer c.Close()

	ctx := context.Background()
	url := "https://shop.test/integration-" + uuid.NewString()
	entry := models.HistoryEntry{
		ID:          "integration-test-entry",
		Timestamp:   "2025-01-01 12:00",
		URL:         url,
		ProductName: "Integration Widget",
		Score:       64,
		Verdict:     "BUY IT",
	}

	_, ok := c.GetVerdict(ctx, url)
	assert.False(t, ok)

	require.NoError(t, c.SetVerdict(ctx, url, entry))

	cached, ok := c.GetVerdict(ctx, url)
	require.True(t, ok)
	assert.Equal(t, entry.ID, cached.ID)
	assert.Equal(t, entry.Score, cached.Score)
}
