package metrics

import (
	"sift-hq/sift/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RuleSetMetrics tracks metrics related to rule set loading.
//
// Metrics:
//   - sift_engine_reloads_total: Rule set reload attempts by status
//   - sift_engine_rule_sets_loaded: Currently loaded rule sets
//   - sift_engine_rules_loaded: Currently loaded rules across all sets
type RuleSetMetrics struct {
	reloadsTotal *prometheus.CounterVec

	ruleSetsLoaded prometheus.Gauge
	rulesLoaded    prometheus.Gauge
}

// NewRuleSetMetrics creates and registers rule set metrics with the provided
// registry.
func NewRuleSetMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RuleSetMetrics {
	rm := &RuleSetMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of rule set reload attempts",
			},
			[]string{"status"},
		),

		ruleSetsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_sets_loaded",
				Help:      "Number of currently loaded rule sets",
			},
		),

		rulesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rules_loaded",
				Help:      "Number of currently loaded rules across all rule sets",
			},
		),
	}

	registry.MustRegister(
		rm.reloadsTotal,
		rm.ruleSetsLoaded,
		rm.rulesLoaded,
	)

	return rm
}

// RecordReload records one reload attempt with its outcome.
func (rm *RuleSetMetrics) RecordReload(status string) {
	rm.reloadsTotal.WithLabelValues(status).Inc()
}

// UpdateLoaded sets the loaded rule set and rule gauges.
func (rm *RuleSetMetrics) UpdateLoaded(ruleSets, rules int) {
	rm.ruleSetsLoaded.Set(float64(ruleSets))
	rm.rulesLoaded.Set(float64(rules))
}
