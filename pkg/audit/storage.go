package audit

import "context"

// Storage persists audit records.
type Storage interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the filters.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and returns how many.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}
