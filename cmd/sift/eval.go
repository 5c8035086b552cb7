package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sift-hq/sift/pkg/audit"
	"sift-hq/sift/pkg/cli"
	"sift-hq/sift/pkg/config"
	"sift-hq/sift/pkg/engine"
	"sift-hq/sift/pkg/ruleset"
	"sift-hq/sift/pkg/rql/parser"
	"sift-hq/sift/pkg/telemetry/logging"
	"sift-hq/sift/pkg/telemetry/metrics"
)

var evalFlags struct {
	rulesPath  string
	record     string
	recordFile string
	output     string
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a record against the configured rule sets",
	Long: `Evaluate one attribute record against every configured rule set.

The record is a JSON object of attribute names to values. Each rule set
evaluates as the conjunction of its rules; the verdict per set is printed
along with any evaluation error (e.g. a missing attribute).

Examples:
  # Evaluate an inline record
  sift eval --record '{"age": 35, "department": "Sales"}'

  # Evaluate a record from a file against a specific rule set file
  sift eval --rules ./rules/seniors.yaml --record-file record.json

  # JSON output
  sift eval --record '{"age": 35}' --output json`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.rulesPath, "rules", "r", "", "rule set file or directory (overrides config)")
	evalCmd.Flags().StringVar(&evalFlags.record, "record", "", "record as a JSON object")
	evalCmd.Flags().StringVar(&evalFlags.recordFile, "record-file", "", "path to a JSON record file")
	evalCmd.Flags().StringVarP(&evalFlags.output, "output", "o", "text", "output format (text, json)")
}

// evalResult is the verdict of one rule set for one record.
type evalResult struct {
	RuleSet string `json:"rule_set"`
	Verdict bool   `json:"verdict"`
	Error   string `json:"error,omitempty"`
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if evalFlags.rulesPath != "" {
		cfg.Rules.Path = evalFlags.rulesPath
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	rec, err := loadRecord()
	if err != nil {
		return cli.NewCommandError("eval", err)
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	p := &parser.Parser{MaxNestingDepth: cfg.Engine.MaxNestingDepth}
	source := ruleset.NewFileSource(cfg.Rules.Path, p, logger).WithMetrics(collector)
	sets, err := source.Load()
	if err != nil {
		return cli.NewCommandError("eval", err)
	}
	if len(sets) == 0 {
		return cli.NewCommandError("eval", fmt.Errorf("no rule sets found at %q", cfg.Rules.Path))
	}

	recorder, cleanup, err := setupAudit(cfg)
	if err != nil {
		return cli.NewCommandError("eval", err)
	}
	defer cleanup()

	evaluator := engine.NewEvaluator(logger)

	results := make([]evalResult, 0, len(sets))
	for _, set := range sets {
		start := time.Now()
		verdict, evalErr := evaluator.Evaluate(set.Tree(), rec)
		elapsed := time.Since(start)

		result := evalResult{RuleSet: set.Name, Verdict: verdict}
		if evalErr != nil {
			result.Error = evalErr.Error()
		}
		results = append(results, result)

		collector.RecordEvaluation(set.Name, verdictLabel(verdict, evalErr), elapsed)
		if evalErr != nil {
			collector.RecordEvaluationError(set.Name, evalErrorType(evalErr))
		}

		if recorder != nil {
			recorder.RecordEvaluation(set.Name, audit.HashRules(set.Rules), rec, verdict, evalErr, elapsed)
		}
	}

	if err := printEvalResults(cmd, results); err != nil {
		return cli.NewCommandError("eval", err)
	}

	for _, result := range results {
		if result.Error != "" {
			return cli.NewCommandError("eval", errors.New("one or more rule sets failed to evaluate"))
		}
	}
	return nil
}

// verdictLabel is the verdict metric label for one evaluation.
func verdictLabel(verdict bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case verdict:
		return "true"
	default:
		return "false"
	}
}

// evalErrorType is the error_type metric label for one evaluation error.
func evalErrorType(err error) string {
	var notFound *engine.AttributeNotFoundError
	var nonNumeric *engine.NonNumericLiteralError
	var mismatch *engine.TypeMismatchError
	switch {
	case errors.As(err, &notFound):
		return "attribute_not_found"
	case errors.As(err, &nonNumeric):
		return "non_numeric_literal"
	case errors.As(err, &mismatch):
		return "type_mismatch"
	default:
		return "other"
	}
}

func printEvalResults(cmd *cobra.Command, results []evalResult) error {
	if cli.OutputFormat(evalFlags.output) == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), results)
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		if result.Error != "" {
			fmt.Fprintf(out, "%s: error: %s\n", result.RuleSet, result.Error)
			continue
		}
		fmt.Fprintf(out, "%s: %t\n", result.RuleSet, result.Verdict)
	}
	return nil
}

// loadRecord reads the record from --record or --record-file.
func loadRecord() (engine.Record, error) {
	var data []byte
	switch {
	case evalFlags.record != "" && evalFlags.recordFile != "":
		return nil, errors.New("--record and --record-file are mutually exclusive")
	case evalFlags.record != "":
		data = []byte(evalFlags.record)
	case evalFlags.recordFile != "":
		var err error
		data, err = os.ReadFile(evalFlags.recordFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read record file: %w", err)
		}
	default:
		return nil, errors.New("either --record or --record-file is required")
	}

	var rec engine.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid record JSON: %w", err)
	}
	return rec, nil
}

// loadConfig initializes the configuration singleton on first use, tolerating
// a missing config file by falling back to defaults. It returns a copy so
// per-command flag overrides don't leak into the singleton.
func loadConfig() (*config.Config, error) {
	if config.GetConfig() == nil {
		if err := config.Initialize(cfgFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
			}
			fallback := &config.Config{}
			config.ApplyDefaults(fallback)
			config.SetConfig(fallback)
		}
	}

	loaded := config.GetConfig()
	if loaded == nil {
		return nil, cli.NewConfigError("", "configuration failed to initialize")
	}
	cfg := *loaded
	return &cfg, nil
}

// setupLogging builds the logger from config, honoring --verbose, and
// installs it as the slog default.
func setupLogging(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}

	l, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	logging.SetDefault(l)
	return l, nil
}

// setupAudit builds the audit recorder per config. It returns a nil recorder
// when auditing is disabled. The cleanup func flushes and closes everything.
func setupAudit(cfg *config.Config) (*audit.Recorder, func(), error) {
	if !cfg.Audit.Enabled {
		return nil, func() {}, nil
	}

	storage, err := buildAuditStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	recorder := audit.NewRecorder(storage, &audit.RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  cfg.Audit.Recorder.AsyncBuffer,
		WriteTimeout: cfg.Audit.Recorder.WriteTimeout,
	})

	cleanup := func() {
		recorder.Close()
		storage.Close()
	}
	return recorder, cleanup, nil
}

func buildAuditStorage(cfg *config.Config) (audit.Storage, error) {
	switch cfg.Audit.Backend {
	case "memory":
		return audit.NewMemoryStorage(), nil
	case "sqlite":
		return audit.NewSQLiteStorage(&audit.SQLiteConfig{
			Path:         cfg.Audit.SQLite.Path,
			MaxOpenConns: cfg.Audit.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Audit.SQLite.MaxIdleConns,
			WALMode:      *cfg.Audit.SQLite.WALMode,
			BusyTimeout:  cfg.Audit.SQLite.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Audit.Backend)
	}
}
