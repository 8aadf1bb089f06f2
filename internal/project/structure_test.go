package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackGen/internal/backend"
	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

func classifiedRack(t *testing.T) (model.PiperackConfig, *model.PiperackStructure) {
	t.Helper()
	cfg := model.PiperackConfig{
		Name:           "small",
		PortalOffsets:  []float64{0, 8, 16},
		ColumnOffsets:  []float64{0, 6},
		Tiers:          []model.TierConfig{{Elevation: 3}, {Elevation: 6}},
		PedestalHeight: 2,
	}
	res, err := engine.NewGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	snap, err := backend.Materialize(context.Background(), backend.NewMemory(), nil, res.Members())
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	return res.Config, engine.Classify(snap.Beams, res.ClassifyInput())
}

func TestSaveAndLoadStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rack.json")
	cfg, s := classifiedRack(t)

	if err := s.Tiers[0].AddLoad(model.NewUniformLoad(model.LoadCaseOperatingLoad).WithForce(-0.4)); err != nil {
		t.Fatal(err)
	}

	groups := engine.NewGroups()
	groups.Add(&engine.MemberGroup{
		ID:             "cols",
		Members:        s.IDs(model.CategoryMainColumn),
		Profiles:       []string{"ISMB 200", "ISMB 250"},
		Preference:     "ISMB 200",
		AllowableRatio: 1,
		Results: map[int]engine.GroupResult{
			0: {Profile: "ISMB 200", Average: 0.7, Ratios: map[int]float64{1: 0.7}},
		},
	})

	f := NewStructureFile(cfg, s, groups)
	if f.ID == "" || f.ID != s.ID {
		t.Fatalf("expected structure ID to be assigned, got %q", f.ID)
	}
	if err := SaveStructure(path, f); err != nil {
		t.Fatalf("SaveStructure failed: %v", err)
	}

	loaded, err := LoadStructure(path)
	if err != nil {
		t.Fatalf("LoadStructure failed: %v", err)
	}
	if loaded.ID != f.ID {
		t.Errorf("expected ID %s, got %s", f.ID, loaded.ID)
	}
	if loaded.SavedAt == "" {
		t.Error("expected SavedAt to be stamped")
	}
	if loaded.Config.Name != "small" {
		t.Errorf("expected config name small, got %s", loaded.Config.Name)
	}

	want := s.Summary()
	got := loaded.Structure.Summary()
	for _, c := range model.Categories {
		if want[c] != got[c] {
			t.Errorf("category %s: expected %d, got %d", c, want[c], got[c])
		}
	}
	if len(loaded.Structure.PortalTierBeams) != 3 {
		t.Errorf("expected 3 portals in PortalTierBeams, got %d", len(loaded.Structure.PortalTierBeams))
	}
	if len(loaded.Structure.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(loaded.Structure.Tiers))
	}
	if n := loaded.Structure.Tiers[0].TotalLoad(model.LoadCaseOperatingLoad); n != 0.4 {
		t.Errorf("expected tier operating load 0.4, got %f", n)
	}

	g, ok := loaded.Groups.ByID("cols")
	if !ok {
		t.Fatal("expected group cols")
	}
	if len(g.Members) != 6 {
		t.Errorf("expected 6 group members, got %d", len(g.Members))
	}
	if g.Results[0].Average != 0.7 {
		t.Errorf("expected stored average 0.7, got %f", g.Results[0].Average)
	}
}

func TestLoadStructureRejectsOtherMajorVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rack.json")
	if err := os.WriteFile(path, []byte(`{"version":"2.1.0","id":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadStructure(path)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoadStructureFillsMissingParts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rack.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.2.0","id":"abc"}`), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadStructure(path)
	if err != nil {
		t.Fatalf("LoadStructure failed: %v", err)
	}
	if f.Structure == nil || f.Groups == nil {
		t.Fatal("expected structure and groups to be allocated")
	}
	if f.Groups.Len() != 0 {
		t.Errorf("expected no groups, got %d", f.Groups.Len())
	}
}

func TestLoadStructureErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadStructure(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStructure(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}

	noVersion := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(noVersion, []byte(`{"id":"abc"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStructure(noVersion); err == nil {
		t.Error("expected error for missing version")
	}
}
