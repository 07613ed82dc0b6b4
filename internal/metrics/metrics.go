package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veritas",
			Subsystem: "analyzer",
			Name:      "analyses_total",
			Help:      "Analyses run, by outcome.",
		},
		[]string{"status"},
	)

	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "veritas",
			Subsystem: "analyzer",
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end time for one analysis, scrape through persistence.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	pageCharacters = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "veritas",
			Subsystem: "analyzer",
			Name:      "page_characters",
			Help:      "Characters of page text handed to the model, after truncation.",
			Buckets:   []float64{500, 1000, 2500, 5000, 7500, 9000},
		},
	)

	cacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "veritas",
			Subsystem: "analyzer",
			Name:      "cache_hits_total",
			Help:      "Analyses answered from the verdict cache.",
		},
	)
)

// Register adds all collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			analysesTotal,
			analysisDuration,
			pageCharacters,
			cacheHitsTotal,
		)
	})
}

// RecordAnalysis counts a finished analysis and, for successful ones, its
// duration.
func RecordAnalysis(status string, seconds float64) {
	analysesTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		analysisDuration.Observe(seconds)
	}
}

// ObservePageSize records how much page text survived truncation.
func ObservePageSize(chars int) {
	pageCharacters.Observe(float64(chars))
}

// RecordCacheHit counts an analysis served from cache.
func RecordCacheHit() {
	cacheHitsTotal.Inc()
}
