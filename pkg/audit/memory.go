package audit

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage implements Storage with an in-memory slice. Intended for
// tests and the CLI's one-shot mode; not for long-running daemons.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemoryStorage creates an in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists one record.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to keep callers from mutating stored state.
	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

// Query retrieves records matching the filters.
func (s *MemoryStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Record
	for _, record := range s.records {
		if matchesQuery(record, query) {
			cp := *record
			results = append(results, &cp)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if query.Ascending {
			return results[i].EvaluatedAt.Before(results[j].EvaluatedAt)
		}
		return results[i].EvaluatedAt.After(results[j].EvaluatedAt)
	})

	start := query.Offset
	if start > len(results) {
		return []*Record{}, nil
	}
	results = results[start:]

	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of records matching the filters.
func (s *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes records matching the filters and returns how many.
func (s *MemoryStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*Record
	var deleted int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	s.records = kept
	return deleted, nil
}

// Close releases backend resources.
func (s *MemoryStorage) Close() error {
	return nil
}

func matchesQuery(record *Record, query *Query) bool {
	if query == nil {
		return true
	}
	if query.Since != nil && record.EvaluatedAt.Before(*query.Since) {
		return false
	}
	if query.Until != nil && record.EvaluatedAt.After(*query.Until) {
		return false
	}
	if query.RuleSet != "" && record.RuleSet != query.RuleSet {
		return false
	}
	if query.Verdict != nil && record.Verdict != *query.Verdict {
		return false
	}
	return true
}
