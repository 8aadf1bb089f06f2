package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackGen/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	tmpl := model.NewPiperackTemplate("Main rack", "Six tier, 7 portals", model.DefaultPiperackConfig())
	store.Add(tmpl)

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	got := loaded.Templates[0]
	if got.Name != "Main rack" {
		t.Errorf("expected 'Main rack', got %q", got.Name)
	}
	if len(got.Config.Tiers) != 6 {
		t.Errorf("expected 6 tiers, got %d", len(got.Config.Tiers))
	}
	if got.Config.Tiers[5].Type != model.TierFlare {
		t.Errorf("expected top tier to be flare, got %s", got.Config.Tiers[5].Type)
	}
	if len(got.Config.PortalOffsets) != 7 {
		t.Errorf("expected 7 portal offsets, got %d", len(got.Config.PortalOffsets))
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplates_Multiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	store.Add(model.NewPiperackTemplate("T1", "First", model.PiperackConfig{}))
	store.Add(model.NewPiperackTemplate("T2", "Second", model.PiperackConfig{}))
	store.Add(model.NewPiperackTemplate("T3", "Third", model.PiperackConfig{}))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
}

func TestSaveTemplate_ReplacesByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	cfg := model.DefaultPiperackConfig()

	first, replaced, err := SaveTemplate(path, "Main rack", "v1", cfg)
	if err != nil {
		t.Fatalf("SaveTemplate error: %v", err)
	}
	if replaced {
		t.Error("expected first save to add a template")
	}

	cfg.PedestalHeight = 1.5
	second, replaced, err := SaveTemplate(path, "Main rack", "v2", cfg)
	if err != nil {
		t.Fatalf("SaveTemplate error: %v", err)
	}
	if !replaced {
		t.Error("expected second save to replace the template")
	}
	if second.ID != first.ID || second.CreatedAt != first.CreatedAt {
		t.Errorf("expected ID and creation time kept, got %s/%s", second.ID, second.CreatedAt)
	}

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(store.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(store.Templates))
	}
	if store.Templates[0].Description != "v2" || store.Templates[0].Config.PedestalHeight != 1.5 {
		t.Errorf("expected updated template, got %+v", store.Templates[0])
	}
}

func TestSaveTemplate_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	if _, _, err := SaveTemplate(path, "Empty", "", model.PiperackConfig{}); err == nil {
		t.Fatal("expected error for a configuration without offsets")
	}
	if _, _, err := SaveTemplate(path, "", "", model.DefaultPiperackConfig()); err == nil {
		t.Fatal("expected error for a missing name")
	}
}
