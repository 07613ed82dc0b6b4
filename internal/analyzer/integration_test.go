//go:build integration

package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritasmainapp/VERITAS-AI/internal/cache"
	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/llm"
)

// Run with: go test -tags=integration ./internal/analyzer/
// Requires REDIS_URL pointing at a reachable Redis instance.
func TestService_CacheHitSkipsVendors(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}

	cfg := &config.Config{}
	cfg.Cache.RedisURL = redisURL
	cfg.Cache.TTL = time.Minute

	verdictCache, err := cache.New(cfg, testLogger())
	require.NoError(t, err)
	defer verdictCache.Close()

	fetcher := &fakeFetcher{text: "Mini Projector, 4.8 stars, ships from overseas"}
	stub := llm.NewStub()
	stub.Reply = verdictJSON("Mini Projector", 30)

	store := history.NewFileStore(filepath.Join(t.TempDir(), "scan_history.json"), testLogger())
	svc := NewService(fetcher, stub, store, verdictCache, testLogger())

	ctx := context.Background()
	url := "https://shop.test/cached-" + uuid.NewString()

	first, cached, err := svc.Analyze(ctx, url)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := svc.Analyze(ctx, url)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Score, second.Score)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, stub.Calls)

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
