package main

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sift-hq/sift/pkg/config"
	"sift-hq/sift/pkg/engine"
	"sift-hq/sift/pkg/telemetry/metrics"
)

func writeRuleSet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seniors.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write rule set: %v", err)
	}
	return path
}

// TestEvalCommand verifies a matching record yields a true verdict.
func TestEvalCommand(t *testing.T) {
	path := writeRuleSet(t, `
name: seniors
rules:
  - "(age > 30 AND department = 'Sales')"
`)

	out, err := executeCommand(t, "eval",
		"--rules", path,
		"--record", `{"age": 35, "department": "Sales"}`,
	)
	if err != nil {
		t.Fatalf("eval command failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "seniors: true") {
		t.Errorf("output = %q, want seniors: true", out)
	}
}

// TestEvalCommand_False verifies a non-matching record yields false.
func TestEvalCommand_False(t *testing.T) {
	path := writeRuleSet(t, `
name: seniors
rules:
  - "age > 30"
`)

	out, err := executeCommand(t, "eval",
		"--rules", path,
		"--record", `{"age": 22}`,
	)
	if err != nil {
		t.Fatalf("eval command failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "seniors: false") {
		t.Errorf("output = %q, want seniors: false", out)
	}
}

// TestEvalCommand_MissingAttribute verifies evaluation errors fail the command.
func TestEvalCommand_MissingAttribute(t *testing.T) {
	path := writeRuleSet(t, `
name: seniors
rules:
  - "age > 30"
`)

	out, err := executeCommand(t, "eval",
		"--rules", path,
		"--record", `{"department": "Sales"}`,
	)
	if err == nil {
		t.Fatal("expected eval command to fail on missing attribute")
	}
	if !strings.Contains(out, "attribute") {
		t.Errorf("output = %q, want attribute error", out)
	}
}

// TestEvalCommand_JSONOutput verifies the JSON output shape.
func TestEvalCommand_JSONOutput(t *testing.T) {
	path := writeRuleSet(t, `
name: seniors
rules:
  - "age > 30"
`)

	out, err := executeCommand(t, "eval",
		"--rules", path,
		"--record", `{"age": 35}`,
		"--output", "json",
	)
	if err != nil {
		t.Fatalf("eval command failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, `"rule_set": "seniors"`) || !strings.Contains(out, `"verdict": true`) {
		t.Errorf("output = %q, want JSON verdict", out)
	}
}

// TestLoadConfig_MissingFileFallsBack verifies a missing config file yields
// defaults, seeds the singleton, and later calls return copies of it.
func TestLoadConfig_MissingFileFallsBack(t *testing.T) {
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Rules.Path != config.DefaultRulesPath {
		t.Errorf("rules.path = %q, want default %q", cfg.Rules.Path, config.DefaultRulesPath)
	}
	if config.GetConfig() == nil {
		t.Fatal("singleton not seeded by loadConfig")
	}

	// Flag overrides mutate the copy, not the singleton.
	cfg.Rules.Path = "/overridden"
	if got := config.GetConfig().Rules.Path; got != config.DefaultRulesPath {
		t.Errorf("singleton rules.path = %q, want untouched default", got)
	}

	again, err := loadConfig()
	if err != nil {
		t.Fatalf("second loadConfig failed: %v", err)
	}
	if again.Rules.Path != config.DefaultRulesPath {
		t.Errorf("second load rules.path = %q, want default", again.Rules.Path)
	}
}

// TestVerdictLabel covers the verdict metric label mapping.
func TestVerdictLabel(t *testing.T) {
	tests := []struct {
		name    string
		verdict bool
		err     error
		want    string
	}{
		{"true verdict", true, nil, "true"},
		{"false verdict", false, nil, "false"},
		{"error wins over verdict", true, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verdictLabel(tt.verdict, tt.err); got != tt.want {
				t.Errorf("verdictLabel(%t, %v) = %q, want %q", tt.verdict, tt.err, got, tt.want)
			}
		})
	}
}

// TestEvalErrorType covers the error_type metric label mapping.
func TestEvalErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing attribute", &engine.AttributeNotFoundError{Attribute: "age"}, "attribute_not_found"},
		{"non-numeric literal", &engine.NonNumericLiteralError{Attribute: "age", Literal: "old"}, "non_numeric_literal"},
		{"type mismatch", &engine.TypeMismatchError{Attribute: "age", Expected: "number", Actual: "string"}, "type_mismatch"},
		{"unknown error", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalErrorType(tt.err); got != tt.want {
				t.Errorf("evalErrorType(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

// TestEvalMetricsRecorded verifies evaluation verdicts and errors reach the
// collector with the labels the eval path produces.
func TestEvalMetricsRecorded(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Telemetry.Metrics.Enabled = true
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	evalErr := &engine.AttributeNotFoundError{Attribute: "age"}
	collector.RecordEvaluation("seniors", verdictLabel(false, evalErr), time.Millisecond)
	collector.RecordEvaluationError("seniors", evalErrorType(evalErr))
	collector.RecordEvaluation("juniors", verdictLabel(true, nil), time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		`rule_set="seniors",verdict="error"`,
		`error_type="attribute_not_found",rule_set="seniors"`,
		`rule_set="juniors",verdict="true"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics exposition missing %s\nbody:\n%s", want, body)
		}
	}
}

// TestLoadRecord covers the record flag combinations.
func TestLoadRecord(t *testing.T) {
	evalFlags.record = `{"age": 35}`
	evalFlags.recordFile = ""
	rec, err := loadRecord()
	if err != nil {
		t.Fatalf("loadRecord failed: %v", err)
	}
	if rec["age"] != float64(35) {
		t.Errorf("age = %v, want 35", rec["age"])
	}

	evalFlags.record = ""
	if _, err := loadRecord(); err == nil {
		t.Error("expected error when no record is given")
	}

	evalFlags.record = "not json"
	if _, err := loadRecord(); err == nil {
		t.Error("expected error for invalid JSON")
	}

	evalFlags.record = "{}"
	evalFlags.recordFile = "also-set.json"
	if _, err := loadRecord(); err == nil {
		t.Error("expected error when both flags are set")
	}

	evalFlags.record = ""
	evalFlags.recordFile = ""
}
