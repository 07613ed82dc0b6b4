package health

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/cache"
	"github.com/veritasmainapp/VERITAS-AI/internal/fetch"
	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/llm"
)

const checkTimeout = 5 * time.Second

// Checker reports the health of everything an analysis depends on.
type Checker struct {
	store    history.Store
	cache    *cache.Cache
	fetcher  fetch.Fetcher
	provider llm.Provider
	logger   *logrus.Logger
}

func NewChecker(store history.Store, verdictCache *cache.Cache, fetcher fetch.Fetcher, provider llm.Provider, logger *logrus.Logger) *Checker {
	return &Checker{
		store:    store,
		cache:    verdictCache,
		fetcher:  fetcher,
		provider: provider,
		logger:   logger,
	}
}

// ServiceHealth represents the health status of one dependency.
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the whole system's health.
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckHistory pings the history backend.
func (h *Checker) CheckHistory(ctx context.Context) ServiceHealth {
	start := time.Now()

	pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	err := h.store.Ping(pingCtx)

	responseTime := int(time.Since(start).Milliseconds())
	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("History health check failed")
	}

	return ServiceHealth{
		Name:         "history",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckCache pings Redis. A cache that was never configured reports
// disabled, which does not count against overall health.
func (h *Checker) CheckCache(ctx context.Context) ServiceHealth {
	now := time.Now().Format(time.RFC3339)
	if !h.cache.Enabled() {
		return ServiceHealth{
			Name:        "verdict_cache",
			Status:      "disabled",
			LastChecked: now,
		}
	}

	start := time.Now()
	pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	err := h.cache.Ping(pingCtx)

	responseTime := int(time.Since(start).Milliseconds())
	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Cache health check failed")
	}

	return ServiceHealth{
		Name:         "verdict_cache",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  now,
	}
}

// CheckScraper reports whether the page fetcher is ready. There is no free
// probe endpoint for the scraping vendor, so this checks configuration
// rather than making a paid call.
func (h *Checker) CheckScraper() ServiceHealth {
	status := "healthy"
	errorMsg := ""
	if !h.fetcher.Configured() {
		status = "degraded"
		errorMsg = "api key not configured"
	}

	return ServiceHealth{
		Name:        "scraper:" + h.fetcher.Source(),
		Status:      status,
		Error:       errorMsg,
		LastChecked: time.Now().Format(time.RFC3339),
	}
}

// CheckModel reports whether the verdict provider is ready. Same rule as
// the scraper: configuration only, no paid probe.
func (h *Checker) CheckModel() ServiceHealth {
	status := "healthy"
	errorMsg := ""
	if !h.provider.Configured() {
		status = "degraded"
		errorMsg = "api key not configured"
	}

	return ServiceHealth{
		Name:        "model:" + h.provider.Source(),
		Status:      status,
		Error:       errorMsg,
		LastChecked: time.Now().Format(time.RFC3339),
	}
}

// CheckAll runs every check and folds them into one status. Any unhealthy
// dependency makes the system unhealthy; any degraded one makes it
// degraded; disabled services are ignored.
func (h *Checker) CheckAll(ctx context.Context) OverallHealth {
	services := []ServiceHealth{
		h.CheckHistory(ctx),
		h.CheckCache(ctx),
		h.CheckScraper(),
		h.CheckModel(),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
		if service.Status == "degraded" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   h.getUptime(),
	}
}

var startTime = time.Now()

func (h *Checker) getUptime() string {
	return time.Since(startTime).String()
}
