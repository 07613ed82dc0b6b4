// Package fetch retrieves the rendered text of product pages.
package fetch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/config"
	"github.com/veritasmainapp/VERITAS-AI/internal/firecrawl"
)

// MaxPageChars caps the page text handed to the verdict model.
// Longer pages are cut at this many characters.
const MaxPageChars = 9000

// Fetcher returns page text for a URL, truncated to MaxPageChars.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Source() string
	Configured() bool
}

// New builds the fetch backend named by the configuration.
func New(cfg *config.Config, logger *logrus.Logger) (Fetcher, error) {
	switch cfg.Fetch.Provider {
	case "firecrawl":
		client := firecrawl.NewClient(cfg.Firecrawl.BaseURL, cfg.Firecrawl.APIKey, cfg.Fetch.Timeout, logger)
		return NewFirecrawlFetcher(client, logger), nil
	case "direct":
		return NewDirectFetcher(cfg.Fetch.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown fetch provider: %s", cfg.Fetch.Provider)
	}
}

// Truncate returns at most limit characters of s, counted in runes so a
// multibyte character is never split.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// FirecrawlFetcher fetches pages through the scraping service.
type FirecrawlFetcher struct {
	client *firecrawl.Client
	logger *logrus.Logger
}

func NewFirecrawlFetcher(client *firecrawl.Client, logger *logrus.Logger) *FirecrawlFetcher {
	return &FirecrawlFetcher{client: client, logger: logger}
}

func (f *FirecrawlFetcher) Fetch(ctx context.Context, url string) (string, error) {
	content, err := f.client.Scrape(ctx, url)
	if err != nil {
		return "", err
	}

	truncated := Truncate(content, MaxPageChars)
	if len(truncated) < len(content) {
		f.logger.WithFields(logrus.Fields{
			"url":            url,
			"original_chars": len([]rune(content)),
		}).Debug("Truncated page text")
	}

	return truncated, nil
}

func (f *FirecrawlFetcher) Source() string { return "firecrawl" }

func (f *FirecrawlFetcher) Configured() bool { return f.client.Configured() }
