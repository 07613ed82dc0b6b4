package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

const directUserAgent = "Mozilla/5.0 (compatible; veritas/1.0; +https://github.com/veritasmainapp/VERITAS-AI)"

// DirectFetcher downloads the page itself and extracts readable text.
// It sees only server-rendered HTML, so script-heavy listings come back
// thinner than through the scraping service.
type DirectFetcher struct {
	timeout time.Duration
	logger  *logrus.Logger
}

func NewDirectFetcher(timeout time.Duration, logger *logrus.Logger) *DirectFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DirectFetcher{timeout: timeout, logger: logger}
}

func (f *DirectFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	collector := colly.NewCollector(
		colly.UserAgent(directUserAgent),
	)
	collector.SetRequestTimeout(f.timeout)

	var (
		body     []byte
		fetchErr error
	)

	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(pageURL); err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	if fetchErr != nil {
		return "", fmt.Errorf("fetch failed: %w", fetchErr)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty response from %s", pageURL)
	}

	f.logger.WithFields(logrus.Fields{
		"url":           pageURL,
		"response_size": len(body),
	}).Debug("Fetched page directly")

	article, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		// Unreadable markup; hand the raw document to the model instead
		return Truncate(string(body), MaxPageChars), nil
	}

	text := CleanText(article.TextContent)
	if article.Title != "" {
		text = article.Title + "\n\n" + text
	}

	return Truncate(text, MaxPageChars), nil
}

func (f *DirectFetcher) Source() string { return "direct" }

func (f *DirectFetcher) Configured() bool { return true }
