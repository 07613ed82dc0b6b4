package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/veritasmainapp/VERITAS-AI/internal/cache"
	"github.com/veritasmainapp/VERITAS-AI/internal/fetch"
	"github.com/veritasmainapp/VERITAS-AI/internal/history"
	"github.com/veritasmainapp/VERITAS-AI/internal/llm"
	"github.com/veritasmainapp/VERITAS-AI/internal/metrics"
	"github.com/veritasmainapp/VERITAS-AI/internal/models"
)

// Service runs the scan pipeline: fetch a product page, ask the model for
// a verdict, record the result.
type Service struct {
	fetcher  fetch.Fetcher
	provider llm.Provider
	store    history.Store
	cache    *cache.Cache
	logger   *logrus.Logger
}

// NewService wires the pipeline together. verdictCache may be nil.
func NewService(fetcher fetch.Fetcher, provider llm.Provider, store history.Store, verdictCache *cache.Cache, logger *logrus.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		provider: provider,
		store:    store,
		cache:    verdictCache,
		logger:   logger,
	}
}

// Analyze runs the full pipeline for one URL and returns the stored entry.
// Nothing is persisted when any step fails. Vendor failures come back as
// *ExternalCallError, unusable model output as *MalformedResponseError.
// The bool reports whether the verdict was served from the cache.
func (s *Service) Analyze(ctx context.Context, url string) (*models.HistoryEntry, bool, error) {
	start := time.Now()
	log := s.logger.WithField("url", url)
	log.Info("Starting analysis")

	if entry, ok := s.cache.GetVerdict(ctx, url); ok {
		metrics.RecordCacheHit()
		log.WithField("score", entry.Score).Info("Verdict served from cache")
		return entry, true, nil
	}

	pageText, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		metrics.RecordAnalysis("fetch_error", 0)
		log.WithError(err).Error("Page fetch failed")
		return nil, false, &ExternalCallError{Service: s.fetcher.Source(), Err: err}
	}

	// Fetchers truncate already; the clamp here keeps the prompt bound
	// independent of which Fetcher is plugged in.
	pageText = fetch.Truncate(pageText, fetch.MaxPageChars)
	chars := len([]rune(pageText))
	metrics.ObservePageSize(chars)
	log.WithField("page_chars", chars).Debug("Page text ready")

	reply, err := s.provider.Generate(ctx, BuildPrompt(url, pageText))
	if err != nil {
		metrics.RecordAnalysis("llm_error", 0)
		log.WithError(err).Error("Verdict generation failed")
		return nil, false, &ExternalCallError{Service: s.provider.Source(), Err: err}
	}

	result, err := ParseVerdict(reply)
	if err != nil {
		metrics.RecordAnalysis("parse_error", 0)
		log.WithError(err).Error("Verdict reply unusable")
		return nil, false, err
	}

	entry, err := s.store.Append(ctx, *result, url)
	if err != nil {
		metrics.RecordAnalysis("store_error", 0)
		log.WithError(err).Error("Failed to record analysis")
		return nil, false, fmt.Errorf("failed to record analysis: %w", err)
	}

	if err := s.cache.SetVerdict(ctx, url, entry); err != nil {
		log.WithError(err).Warn("Failed to cache verdict")
	}

	elapsed := time.Since(start)
	metrics.RecordAnalysis("ok", elapsed.Seconds())
	log.WithFields(logrus.Fields{
		"product":     entry.ProductName,
		"score":       entry.Score,
		"duration_ms": elapsed.Milliseconds(),
	}).Info("Analysis complete")

	return &entry, false, nil
}

// History returns all recorded scans, newest first.
func (s *Service) History(ctx context.Context) ([]models.HistoryEntry, error) {
	return s.store.Load(ctx)
}

// Entry returns one recorded scan by id.
func (s *Service) Entry(ctx context.Context, id string) (*models.HistoryEntry, error) {
	return s.store.Get(ctx, id)
}
