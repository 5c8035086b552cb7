package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// schema is the audit table layout. Durations are stored as microseconds.
const schema = `
CREATE TABLE IF NOT EXISTS audit (
	id           TEXT PRIMARY KEY,
	rule_set     TEXT NOT NULL,
	rule_hash    TEXT NOT NULL,
	attributes   TEXT NOT NULL,
	verdict      INTEGER NOT NULL,
	error        TEXT,
	duration_us  INTEGER NOT NULL,
	evaluated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_evaluated_at ON audit(evaluated_at);
CREATE INDEX IF NOT EXISTS idx_audit_rule_set ON audit(rule_set);
`

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies pragmas, and creates the
// schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{db: db, config: config, logger: logger}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize applies pragmas and creates the schema.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	return nil
}

// Store persists one audit record.
func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	const query = `
		INSERT INTO audit (
			id, rule_set, rule_hash, attributes, verdict, error, duration_us, evaluated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorVal any
	if record.Error != "" {
		errorVal = record.Error
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.RuleSet, record.RuleHash, record.Attributes,
		record.Verdict, errorVal, record.Duration.Microseconds(), record.EvaluatedAt,
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves audit records matching the filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT id, rule_set, rule_hash, attributes, verdict, error, duration_us, evaluated_at FROM audit"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	order := "DESC"
	if query.Ascending {
		order = "ASC"
	}
	sqlQuery += " ORDER BY evaluated_at " + order

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of audit records matching the filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM audit"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes audit records matching the filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	where, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM audit"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite audit storage closed")
	return nil
}

// buildWhereClause builds a WHERE clause (without the keyword) and its
// arguments from the query filters.
func buildWhereClause(query *Query) (string, []any) {
	var conditions []string
	var args []any

	if query.Since != nil {
		conditions = append(conditions, "evaluated_at >= ?")
		args = append(args, *query.Since)
	}
	if query.Until != nil {
		conditions = append(conditions, "evaluated_at <= ?")
		args = append(args, *query.Until)
	}
	if query.RuleSet != "" {
		conditions = append(conditions, "rule_set = ?")
		args = append(args, query.RuleSet)
	}
	if query.Verdict != nil {
		conditions = append(conditions, "verdict = ?")
		args = append(args, *query.Verdict)
	}

	where := ""
	for i, condition := range conditions {
		if i > 0 {
			where += " AND "
		}
		where += condition
	}

	return where, args
}

// scanRow scans one database row into a Record.
func scanRow(rows *sql.Rows) (*Record, error) {
	var record Record
	var errorVal sql.NullString
	var durationUs int64

	err := rows.Scan(
		&record.ID, &record.RuleSet, &record.RuleHash, &record.Attributes,
		&record.Verdict, &errorVal, &durationUs, &record.EvaluatedAt,
	)
	if err != nil {
		return nil, err
	}

	if errorVal.Valid {
		record.Error = errorVal.String
	}
	record.Duration = time.Duration(durationUs) * time.Microsecond

	return &record, nil
}
