// Package config provides configuration loading, validation, and access for
// Sift.
//
// # Overview
//
// Configuration is loaded from a YAML file, filled in with defaults, then
// optionally overridden by environment variables, and finally validated.
// Environment variables follow the naming convention SIFT_SECTION_FIELD
// (e.g. SIFT_RULES_PATH, SIFT_AUDIT_SQLITE_PATH) and always take precedence
// over file-based configuration.
//
// # Sections
//
//   - rules: Where rule set files live and whether to watch them
//   - engine: Parser limits
//   - audit: Evaluation audit trail storage, recorder, and retention
//   - telemetry: Logging and metrics
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("sift.yaml")
//	if err != nil {
//		return err
//	}
//
// A process-wide singleton is available for code paths that cannot take a
// Config by injection:
//
//	if err := config.Initialize("sift.yaml"); err != nil {
//		return err
//	}
//	cfg := config.GetConfig()
package config
