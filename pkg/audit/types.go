package audit

import "time"

// Record is one evaluation audit entry.
type Record struct {
	// ID is a UUID assigned by the recorder.
	ID string

	// RuleSet is the name of the rule set that was evaluated.
	RuleSet string

	// RuleHash is the SHA-256 hash of the rule text that produced the
	// verdict, tying the entry to an exact rule revision.
	RuleHash string

	// Attributes is a JSON snapshot of the attribute record.
	Attributes string

	// Verdict is the boolean result. False when Error is set.
	Verdict bool

	// Error is the evaluation error message, empty on success.
	Error string

	// Duration is the evaluation wall time.
	Duration time.Duration

	// EvaluatedAt is when the evaluation ran.
	EvaluatedAt time.Time
}

// Query filters audit records.
type Query struct {
	// Since and Until bound EvaluatedAt inclusively. Nil means unbounded.
	Since *time.Time
	Until *time.Time

	// RuleSet filters by rule set name. Empty matches all.
	RuleSet string

	// Verdict filters by verdict. Nil matches both.
	Verdict *bool

	// Ascending orders by EvaluatedAt oldest-first when true; default is
	// newest-first.
	Ascending bool

	// Limit and Offset paginate. Limit 0 applies the backend default.
	Limit  int
	Offset int
}
