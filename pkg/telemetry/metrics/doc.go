// Package metrics provides Prometheus metrics collection for Sift.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring rule
// parsing, rule set reloads, and record evaluation. All metrics hang off a
// single Collector that owns the registry and enforces a cardinality limit
// on the rule set label.
//
// # Metrics Categories
//
//   - Parse Metrics: Parse count by status and parse duration
//   - Evaluation Metrics: Evaluation count by rule set and verdict,
//     evaluation duration, and evaluation errors by type
//   - Rule Set Metrics: Reload count by status and loaded rule/set gauges
//
// # Usage
//
//	collector := metrics.NewCollector(cfg, nil)
//
//	collector.RecordParse("ok", 12*time.Microsecond)
//	collector.RecordEvaluation("seniors", "true", 3*time.Microsecond)
//	collector.RecordEvaluationError("seniors", "attribute_not_found")
//	collector.RecordReload("ok")
//
//	http.Handle("/metrics", collector.Handler())
//
// # Cardinality Management
//
// The rule set label is bounded by a cardinality limiter; once the limit is
// reached, new rule set names are aggregated into "other" instead of minting
// new label sets.
package metrics
