package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackGen/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path, err := DefaultInventoryPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "sections.json" {
		t.Errorf("expected filename sections.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".rackgen" {
		t.Errorf("expected parent dir .rackgen, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_sections.json")

	inv := model.SectionInventory{
		Sections: []model.SteelSection{
			{SlNo: 1, Name: "HEA 300", WeightPerMeter: 88.3, Class: "PLASTIC"},
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(loaded.Sections))
	}
	if loaded.Sections[0].WeightPerMeter != 88.3 {
		t.Errorf("expected weight 88.3, got %f", loaded.Sections[0].WeightPerMeter)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "sections.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Sections) != len(model.SteelSections) {
		t.Errorf("expected %d default sections, got %d", len(model.SteelSections), len(inv.Sections))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default inventory to be written: %v", err)
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "import.json")

	imported := model.SectionInventory{
		Sections: []model.SteelSection{
			{Name: "ISMB 200", WeightPerMeter: 99}, // duplicate, skipped
			{Name: "HEA 300", WeightPerMeter: 88.3},
			{Name: "HEB 300", WeightPerMeter: 117},
		},
	}
	data, err := json.Marshal(imported)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	existing := model.DefaultSectionInventory()
	merged, added, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 sections added, got %d", added)
	}
	if len(merged.Sections) != len(model.SteelSections)+2 {
		t.Errorf("expected %d sections, got %d", len(model.SteelSections)+2, len(merged.Sections))
	}
	if s := merged.Find("ISMB 200"); s == nil || s.WeightPerMeter != 24.17 {
		t.Error("expected existing ISMB 200 to be kept")
	}
	if len(existing.Sections) != len(model.SteelSections) {
		t.Error("import must not modify the existing inventory")
	}
}

func TestImportInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{bad"), 0644); err != nil {
		t.Fatal(err)
	}
	existing := model.DefaultSectionInventory()
	merged, added, err := ImportInventory(path, existing)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if added != 0 || len(merged.Sections) != len(existing.Sections) {
		t.Error("expected the existing inventory back unchanged")
	}
}

func TestExportInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportInventory(path, model.DefaultSectionInventory()); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}
	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if loaded.Find("SHS 100X100X6") == nil {
		t.Error("expected SHS 100X100X6 in exported inventory")
	}
}
