package metrics

import (
	"time"

	"sift-hq/sift/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// EvaluationMetrics tracks metrics related to record evaluation.
//
// Metrics:
//   - sift_engine_evaluations_total: Total evaluations by rule set and verdict
//   - sift_engine_evaluation_duration_seconds: Tree walk duration by rule set
//   - sift_engine_evaluation_errors_total: Failed evaluations by rule set and error type
type EvaluationMetrics struct {
	// Total evaluations
	evaluationsTotal *prometheus.CounterVec

	// Evaluation duration histogram
	evaluationDuration *prometheus.HistogramVec

	// Evaluation errors (missing attributes, type mismatches)
	errorsTotal *prometheus.CounterVec
}

// NewEvaluationMetrics creates and registers evaluation metrics with the
// provided registry.
func NewEvaluationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvaluationMetrics {
	em := &EvaluationMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of record evaluations",
			},
			[]string{"rule_set", "verdict"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of record evaluation in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"rule_set"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_errors_total",
				Help:      "Total number of failed record evaluations",
			},
			[]string{"rule_set", "error_type"},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.errorsTotal,
	)

	return em
}

// RecordEvaluation records one evaluation with its verdict and duration.
func (em *EvaluationMetrics) RecordEvaluation(ruleSet, verdict string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(ruleSet, verdict).Inc()
	em.evaluationDuration.WithLabelValues(ruleSet).Observe(duration.Seconds())
}

// RecordError records one failed evaluation by error type.
func (em *EvaluationMetrics) RecordError(ruleSet, errorType string) {
	em.errorsTotal.WithLabelValues(ruleSet, errorType).Inc()
}
