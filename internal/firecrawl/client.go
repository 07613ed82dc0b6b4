package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const scrapeEndpoint = "/v2/scrape"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Scrape asks the service for a markdown rendering of url and returns the
// extracted text. Vendor errors are returned as-is: no retry here, the
// caller owns failure handling.
func (c *Client) Scrape(ctx context.Context, url string) (string, error) {
	payload := ScrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := c.baseURL + scrapeEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithFields(logrus.Fields{
		"url":          endpoint,
		"target":       url,
		"payload_size": len(jsonData),
	}).Debug("Making Firecrawl scrape request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"target":        url,
		"response_size": len(responseBody),
	}).Debug("Firecrawl response received")

	if len(responseBody) < 500 || resp.StatusCode >= 400 {
		c.logger.WithFields(logrus.Fields{
			"status_code":   resp.StatusCode,
			"response_body": string(responseBody),
		}).Debug("Response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("scrape request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	var scrape ScrapeResponse
	if err := json.Unmarshal(responseBody, &scrape); err != nil {
		// Not a shape we know; hand back the raw body text
		return string(responseBody), nil
	}

	if scrape.Success != nil && !*scrape.Success {
		return "", fmt.Errorf("scrape rejected by service: %s", scrape.Error)
	}

	if content, ok := scrape.Content(); ok {
		return content, nil
	}

	return string(responseBody), nil
}

// Configured reports whether the client has credentials to work with.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}
