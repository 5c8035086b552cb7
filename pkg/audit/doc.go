// Package audit records rule evaluations for later inspection.
//
// Each evaluation produces a Record: which rule set ran, a hash of its rule
// text, a JSON snapshot of the attribute record, the verdict or error, and
// timing. Records are written asynchronously by a Recorder so evaluation
// latency never blocks on storage.
//
// Two Storage backends are provided: Memory (testing) and SQLite
// (modernc.org/sqlite, pure Go). The Pruner enforces retention by age and by
// record cap, optionally on a cron schedule via Scheduler.
//
// Rules themselves are never persisted here; only the evaluation trail is.
package audit
