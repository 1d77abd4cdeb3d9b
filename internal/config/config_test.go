package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ReportSize != 1000 {
		t.Errorf("ReportSize = %d, want 1000", cfg.ReportSize)
	}
	if cfg.ErrorsLimit != 0.05 {
		t.Errorf("ErrorsLimit = %v, want 0.05", cfg.ErrorsLimit)
	}
	if cfg.LogDir != "./log" || cfg.ReportDir != "./reports" {
		t.Errorf("dirs = %q, %q", cfg.LogDir, cfg.ReportDir)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"REPORT_SIZE": 50, "LOG_DIR": "/var/log/ui", "ERRORS_LIMIT": 0.1}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ReportSize != 50 {
		t.Errorf("ReportSize = %d, want 50", cfg.ReportSize)
	}
	if cfg.LogDir != "/var/log/ui" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.ErrorsLimit != 0.1 {
		t.Errorf("ErrorsLimit = %v, want 0.1", cfg.ErrorsLimit)
	}
	// Untouched keys keep their defaults.
	if cfg.ReportDir != "./reports" {
		t.Errorf("ReportDir = %q, want default", cfg.ReportDir)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"REPORT_SIZE": 50}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REPORT_SIZE", "25")
	t.Setenv("CHART", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ReportSize != 25 {
		t.Errorf("ReportSize = %d, want env value 25", cfg.ReportSize)
	}
	if cfg.Chart {
		t.Error("Chart = true, want env value false")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing file) error = nil, want error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(bad json) error = nil, want error")
	}
}
