package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/RackGen/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultAllowableRatio = 0.9
	cfg.AnalysisMaxWait = 5 * time.Minute
	cfg.BridgeAddress = "127.0.0.1:7070"
	cfg.RecentProjects = []string{"/tmp/rack1.json", "/tmp/rack2.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultAllowableRatio != 0.9 {
		t.Errorf("expected DefaultAllowableRatio=0.9, got %f", loaded.DefaultAllowableRatio)
	}
	if loaded.AnalysisMaxWait != 5*time.Minute {
		t.Errorf("expected AnalysisMaxWait=5m, got %s", loaded.AnalysisMaxWait)
	}
	if loaded.BridgeAddress != "127.0.0.1:7070" {
		t.Errorf("expected BridgeAddress=127.0.0.1:7070, got %s", loaded.BridgeAddress)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultAllowableRatio != defaults.DefaultAllowableRatio {
		t.Errorf("expected default allowable ratio %f, got %f", defaults.DefaultAllowableRatio, cfg.DefaultAllowableRatio)
	}
	if cfg.BridgeNetwork != "unix" {
		t.Errorf("expected bridge network=unix, got %s", cfg.BridgeNetwork)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.BridgeMaxRetries != 3 {
		t.Errorf("expected default bridge retries 3, got %d", cfg.BridgeMaxRetries)
	}
	if cfg.RecentProjects == nil {
		t.Error("expected RecentProjects to be non-nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestLoadAppConfigResetsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	data := `{"default_allowable_ratio":-1,"ratio_band_step":0,"bridge_network":"pipe","bridge_max_retries":0}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	d := model.DefaultAppConfig()
	if cfg.DefaultAllowableRatio != d.DefaultAllowableRatio {
		t.Errorf("expected allowable ratio reset to %f, got %f", d.DefaultAllowableRatio, cfg.DefaultAllowableRatio)
	}
	if cfg.RatioBandStep != d.RatioBandStep {
		t.Errorf("expected band step reset to %f, got %f", d.RatioBandStep, cfg.RatioBandStep)
	}
	if cfg.BridgeNetwork != "unix" {
		t.Errorf("expected bridge network reset to unix, got %s", cfg.BridgeNetwork)
	}
	if cfg.BridgeMaxRetries != d.BridgeMaxRetries {
		t.Errorf("expected bridge retries reset to %d, got %d", d.BridgeMaxRetries, cfg.BridgeMaxRetries)
	}
}
