package metrics

import (
	"time"

	"sift-hq/sift/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to rule parsing.
//
// Metrics:
//   - sift_engine_parses_total: Total parse attempts by status
//   - sift_engine_parse_duration_seconds: Tokenize-and-parse duration
type ParseMetrics struct {
	// Total parse attempts
	parsesTotal *prometheus.CounterVec

	// Parse duration histogram
	parseDuration prometheus.Histogram
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of rule parse attempts",
			},
			[]string{"status"},
		),

		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of rule tokenizing and parsing in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
	)

	return pm
}

// RecordParse records one parse attempt with its outcome and duration.
func (pm *ParseMetrics) RecordParse(status string, duration time.Duration) {
	pm.parsesTotal.WithLabelValues(status).Inc()
	pm.parseDuration.Observe(duration.Seconds())
}
