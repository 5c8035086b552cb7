package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecorderConfig contains configuration for the audit recorder.
type RecorderConfig struct {
	// Enabled enables audit recording. A disabled recorder drops
	// everything cheaply.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing one record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes evaluation audit records asynchronously so evaluation
// latency never blocks on storage. When the buffer is full records are
// dropped and counted, not blocked on.
type Recorder struct {
	storage    Storage
	config     *RecorderConfig
	recordChan chan *Record
	done       chan struct{}
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewRecorder creates an audit recorder and starts its background worker.
func NewRecorder(storage Storage, config *RecorderConfig) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// RecordEvaluation enqueues one evaluation for async persistence. evalErr
// may be nil. The attribute record is snapshotted as JSON at enqueue time.
func (r *Recorder) RecordEvaluation(ruleSet string, ruleHash string, attributes map[string]any, verdict bool, evalErr error, duration time.Duration) {
	if !r.config.Enabled {
		return
	}

	snapshot, err := json.Marshal(attributes)
	if err != nil {
		r.logger.Error("failed to snapshot attributes", "error", err)
		snapshot = []byte("{}")
	}

	record := &Record{
		ID:          uuid.NewString(),
		RuleSet:     ruleSet,
		RuleHash:    ruleHash,
		Attributes:  string(snapshot),
		Verdict:     verdict,
		Duration:    duration,
		EvaluatedAt: time.Now(),
	}
	if evalErr != nil {
		record.Error = evalErr.Error()
	}

	select {
	case r.recordChan <- record:
	default:
		r.logger.Warn("audit buffer full, dropping record",
			"rule_set", ruleSet,
			"record_id", record.ID,
		)
	}
}

// worker drains the channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case <-r.done:
			// Drain what is already buffered before exiting.
			for {
				select {
				case record := <-r.recordChan:
					r.store(record)
				default:
					return
				}
			}
		case record := <-r.recordChan:
			r.store(record)
		}
	}
}

func (r *Recorder) store(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store audit record",
			"record_id", record.ID,
			"error", err,
		)
	}
}

// Close stops the worker after flushing buffered records. The storage
// backend is not closed; the caller owns it.
func (r *Recorder) Close() error {
	close(r.done)
	r.wg.Wait()
	return nil
}
