package config

import "time"

// Config is the root configuration for Sift.
type Config struct {
	// Rules configures where rule sets are loaded from.
	Rules RulesConfig `yaml:"rules"`

	// Engine configures parsing and evaluation limits.
	Engine EngineConfig `yaml:"engine"`

	// Audit configures the evaluation audit trail.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RulesConfig configures rule set loading.
type RulesConfig struct {
	// Path is a rule set YAML file or a directory of them.
	Path string `yaml:"path"`

	// Watch enables hot reloading when rule files change. Unset defaults
	// to enabled; an explicit false in the file is honored.
	Watch *bool `yaml:"watch"`

	// DebounceInterval is how long to wait after a file event before
	// reloading, so editor write bursts trigger one reload.
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions are the file extensions treated as rule sets.
	Extensions []string `yaml:"extensions"`
}

// EngineConfig configures the rule parser and evaluator.
type EngineConfig struct {
	// MaxNestingDepth bounds parenthesized group nesting in rules.
	MaxNestingDepth int `yaml:"max_nesting_depth"`
}

// AuditConfig configures the evaluation audit trail.
type AuditConfig struct {
	// Enabled enables audit recording.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend ("sqlite" or "memory").
	Backend string `yaml:"backend"`

	// SQLite configures the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Recorder configures the async recorder.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention configures record retention and pruning.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig configures the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging. Unset defaults to enabled; an
	// explicit false in the file is honored.
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait when the database is locked.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig configures the async audit recorder.
type RecorderConfig struct {
	// AsyncBuffer is the size of the async write channel buffer.
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the timeout for writing one record to storage.
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RetentionConfig configures audit record retention.
type RetentionConfig struct {
	// Days is how many days of audit records to keep. 0 keeps forever.
	Days int `yaml:"days"`

	// MaxRecords caps the total number of records. 0 means unlimited.
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Empty disables the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`

	// AddSource includes file and line number in logs.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled enables metric collection.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace prefix.
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem prefix.
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `yaml:"path"`

	// ListenAddress is the address of the metrics HTTP server in watch
	// mode. Empty disables the endpoint.
	ListenAddress string `yaml:"listen_address"`

	// DurationBuckets are the histogram buckets for parse and evaluation
	// durations, in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
