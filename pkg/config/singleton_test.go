package config

import (
	"strings"
	"testing"
)

// TestInitialize exercises the singleton lifecycle: the first Initialize
// wins, later calls are ignored, and ReloadConfig replaces the instance.
func TestInitialize(t *testing.T) {
	first := writeConfigFile(t, "rules:\n  path: /first/rules\n")
	second := writeConfigFile(t, "rules:\n  path: /second/rules\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig returned nil after Initialize")
	}
	if cfg.Rules.Path != "/first/rules" {
		t.Errorf("rules.path = %q, want /first/rules", cfg.Rules.Path)
	}

	// A second Initialize is a no-op.
	if err := Initialize(second); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if got := GetConfig().Rules.Path; got != "/first/rules" {
		t.Errorf("rules.path after second Initialize = %q, want /first/rules", got)
	}

	// ReloadConfig replaces the instance.
	if err := ReloadConfig(second); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	if got := GetConfig().Rules.Path; got != "/second/rules" {
		t.Errorf("rules.path after ReloadConfig = %q, want /second/rules", got)
	}
}

// TestReloadConfig_FailureKeepsCurrent verifies a failed reload leaves the
// current configuration in place.
func TestReloadConfig_FailureKeepsCurrent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Rules.Path = "/kept/rules"
	SetConfig(cfg)

	err := ReloadConfig("/nonexistent/sift.yaml")
	if err == nil {
		t.Fatal("expected error reloading a missing file")
	}
	if !strings.Contains(err.Error(), "failed to reload configuration") {
		t.Errorf("unexpected error: %v", err)
	}

	if got := GetConfig().Rules.Path; got != "/kept/rules" {
		t.Errorf("rules.path after failed reload = %q, want /kept/rules", got)
	}
}

// TestSetConfig verifies SetConfig replaces the global instance directly.
func TestSetConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Rules.Path = "/injected/rules"

	SetConfig(cfg)

	if GetConfig() != cfg {
		t.Error("GetConfig did not return the injected instance")
	}
}
