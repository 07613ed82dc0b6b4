package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/firecrawl"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "shorter than limit", input: "abc", limit: 10, want: "abc"},
		{name: "exactly at limit", input: "abcde", limit: 5, want: "abcde"},
		{name: "cut", input: "abcdef", limit: 3, want: "abc"},
		{name: "multibyte safe", input: "日本語テキスト", limit: 3, want: "日本語"},
		{name: "zero limit", input: "abc", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.limit))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses spaces", input: "a   b\tc", want: "a b c"},
		{name: "caps blank lines", input: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "trims line edges", input: "  a  \n  b  ", want: "a\nb"},
		{name: "trims whole text", input: "\n\n a \n\n", want: "a"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestFirecrawlFetcher_TruncatesLongPages(t *testing.T) {
	longPage := strings.Repeat("x", MaxPageChars+3000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		success := true
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(firecrawl.ScrapeResponse{
			Success: &success,
			Data:    &firecrawl.ScrapeDocument{Markdown: longPage},
		})
	}))
	defer server.Close()

	client := firecrawl.NewClient(server.URL, "test-key", 10*time.Second, logrus.New())
	fetcher := NewFirecrawlFetcher(client, logrus.New())

	text, err := fetcher.Fetch(context.Background(), "https://example.com/p/123")
	require.NoError(t, err)
	assert.Len(t, []rune(text), MaxPageChars)
}

func TestFirecrawlFetcher_PropagatesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := firecrawl.NewClient(server.URL, "test-key", 10*time.Second, logrus.New())
	fetcher := NewFirecrawlFetcher(client, logrus.New())

	_, err := fetcher.Fetch(context.Background(), "https://example.com")
	assert.Error(t, err)
}

func TestDirectFetcher_ExtractsText(t *testing.T) {
	page := `<html><head><title>Great Widget</title></head><body>
		<article><h1>Great Widget</h1>
		<p>` + strings.Repeat("A wonderful product that solves everything. ", 10) + `</p>
		</article></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	fetcher := NewDirectFetcher(10*time.Second, logrus.New())

	text, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "wonderful product")
	assert.LessOrEqual(t, len([]rune(text)), MaxPageChars)
}

func TestDirectFetcher_ErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewDirectFetcher(10*time.Second, logrus.New())

	_, err := fetcher.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestNew_SelectsBackend(t *testing.T) {
	logger := logrus.New()

	cfg := &config.Config{}
	cfg.Fetch.Provider = "firecrawl"
	cfg.Firecrawl.BaseURL = "https://api.firecrawl.dev"

	f, err := New(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "firecrawl", f.Source())

	cfg.Fetch.Provider = "direct"
	f, err = New(cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "direct", f.Source())

	cfg.Fetch.Provider = "carrier-pigeon"
	_, err = New(cfg, logger)
	assert.Error(t, err)
}
