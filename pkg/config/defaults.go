package config

import "time"

// Default values for configuration fields.
const (
	// Rules defaults
	DefaultRulesPath             = "./rules"
	DefaultRulesWatch            = true
	DefaultRulesDebounceInterval = 100 * time.Millisecond

	// Engine defaults
	DefaultMaxNestingDepth = 200

	// Audit defaults
	DefaultAuditBackend             = "sqlite"
	DefaultAuditSQLitePath          = "data/audit.db"
	DefaultAuditSQLiteWALMode       = true
	DefaultAuditSQLiteMaxOpenConns  = 10
	DefaultAuditSQLiteMaxIdleConns  = 5
	DefaultAuditSQLiteBusyTimeout   = 5 * time.Second
	DefaultAuditRecorderAsyncBuffer = 1000
	DefaultAuditRecorderWriteTO     = 5 * time.Second
	DefaultAuditRetentionDays       = 90
	DefaultAuditRetentionSchedule   = "0 3 * * *"
	DefaultAuditRetentionMaxRecords = int64(0)

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultPrometheusPath = "/metrics"
)

// DefaultRulesExtensions are the file extensions treated as rule sets.
var DefaultRulesExtensions = []string{".yaml", ".yml"}

// ApplyDefaults fills in default values for any configuration fields left at
// their zero value. This function is idempotent and safe to call multiple
// times.
func ApplyDefaults(cfg *Config) {
	// Rules defaults
	if cfg.Rules.Path == "" {
		cfg.Rules.Path = DefaultRulesPath
	}
	if cfg.Rules.Watch == nil {
		watch := DefaultRulesWatch
		cfg.Rules.Watch = &watch
	}
	if cfg.Rules.DebounceInterval == 0 {
		cfg.Rules.DebounceInterval = DefaultRulesDebounceInterval
	}
	if len(cfg.Rules.Extensions) == 0 {
		cfg.Rules.Extensions = append([]string(nil), DefaultRulesExtensions...)
	}

	// Engine defaults
	if cfg.Engine.MaxNestingDepth == 0 {
		cfg.Engine.MaxNestingDepth = DefaultMaxNestingDepth
	}

	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.Audit.SQLite.MaxOpenConns == 0 {
		cfg.Audit.SQLite.MaxOpenConns = DefaultAuditSQLiteMaxOpenConns
	}
	if cfg.Audit.SQLite.MaxIdleConns == 0 {
		cfg.Audit.SQLite.MaxIdleConns = DefaultAuditSQLiteMaxIdleConns
	}
	if cfg.Audit.SQLite.WALMode == nil {
		wal := DefaultAuditSQLiteWALMode
		cfg.Audit.SQLite.WALMode = &wal
	}
	if cfg.Audit.SQLite.BusyTimeout == 0 {
		cfg.Audit.SQLite.BusyTimeout = DefaultAuditSQLiteBusyTimeout
	}
	if cfg.Audit.Recorder.AsyncBuffer == 0 {
		cfg.Audit.Recorder.AsyncBuffer = DefaultAuditRecorderAsyncBuffer
	}
	if cfg.Audit.Recorder.WriteTimeout == 0 {
		cfg.Audit.Recorder.WriteTimeout = DefaultAuditRecorderWriteTO
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultAuditRetentionDays
	}
	if cfg.Audit.Retention.PruneSchedule == "" {
		cfg.Audit.Retention.PruneSchedule = DefaultAuditRetentionSchedule
	}
	if cfg.Audit.Retention.MaxRecords == 0 {
		cfg.Audit.Retention.MaxRecords = DefaultAuditRetentionMaxRecords
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
}
