package metrics

import (
	"sync"
	"time"

	"sift-hq/sift/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in Sift.
// It manages metric registration and provides a unified interface for
// recording metrics across all components.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Parse metrics
	parseMetrics *ParseMetrics

	// Evaluation metrics
	evaluationMetrics *EvaluationMetrics

	// Rule set metrics
	ruleSetMetrics *RuleSetMetrics

	// Cardinality tracking for the rule set label
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "sift"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "engine"
	}
	if len(cfg.DurationBuckets) == 0 {
		// Parsing and evaluation are in-memory tree walks (1µs - 16ms).
		cfg.DurationBuckets = prometheus.ExponentialBuckets(0.000001, 2, 15)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.evaluationMetrics = NewEvaluationMetrics(cfg, registry)
	c.ruleSetMetrics = NewRuleSetMetrics(cfg, registry)

	return c
}

// RecordParse records one parse attempt.
//
// Parameters:
//   - status: Parse outcome ("ok" or "error")
//   - duration: Time taken to tokenize and parse the rule
func (c *Collector) RecordParse(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordParse(status, duration)
}

// RecordEvaluation records one record evaluation against a rule set.
//
// Parameters:
//   - ruleSet: Rule set name
//   - verdict: Evaluation outcome ("true", "false", or "error")
//   - duration: Time taken to walk the tree
func (c *Collector) RecordEvaluation(ruleSet, verdict string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	ruleSet = c.boundRuleSet(ruleSet)
	c.evaluationMetrics.RecordEvaluation(ruleSet, verdict, duration)
}

// RecordEvaluationError records a failed evaluation by error type
// (e.g. "attribute_not_found", "non_numeric_literal", "type_mismatch").
func (c *Collector) RecordEvaluationError(ruleSet, errorType string) {
	if !c.config.Enabled {
		return
	}

	ruleSet = c.boundRuleSet(ruleSet)
	c.evaluationMetrics.RecordError(ruleSet, errorType)
}

// RecordReload records one rule set reload attempt.
//
// Parameters:
//   - status: Reload outcome ("ok" or "error")
func (c *Collector) RecordReload(status string) {
	if !c.config.Enabled {
		return
	}

	c.ruleSetMetrics.RecordReload(status)
}

// UpdateLoaded updates the gauges for currently loaded rule sets and rules.
func (c *Collector) UpdateLoaded(ruleSets, rules int) {
	if !c.config.Enabled {
		return
	}

	c.ruleSetMetrics.UpdateLoaded(ruleSets, rules)
}

// boundRuleSet applies the cardinality limit to the rule set label,
// aggregating overflow into "other".
func (c *Collector) boundRuleSet(ruleSet string) string {
	if !c.cardinalityLimiter.Allow(ruleSet) {
		return "other"
	}
	return ruleSet
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if the cardinality limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[label]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
