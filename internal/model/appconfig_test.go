package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultAllowableRatio != 1.0 {
		t.Errorf("expected allowable ratio 1.0, got %f", cfg.DefaultAllowableRatio)
	}
	if len(cfg.DefaultProfiles) == 0 {
		t.Error("expected default candidate profiles")
	}
	if cfg.DefaultProfiles[0] != "ISMB 200" {
		t.Errorf("expected lightest ISMB first, got %s", cfg.DefaultProfiles[0])
	}
	if cfg.BridgeMaxRetries != 3 {
		t.Errorf("expected 3 bridge retries, got %d", cfg.BridgeMaxRetries)
	}
	if cfg.AnalysisMaxWait <= cfg.AnalysisPollInterval {
		t.Error("max wait should exceed the poll interval")
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 3)
	cfg.AddRecentProject("b.json", 3)
	cfg.AddRecentProject("c.json", 3)
	cfg.AddRecentProject("a.json", 3)
	cfg.AddRecentProject("d.json", 3)

	want := []string{"d.json", "a.json", "c.json"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], cfg.RecentProjects[i])
		}
	}
}
