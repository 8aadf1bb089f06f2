package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

const rackYAML = `name: unit 12
base: {x: 0, y: 0, z: 0}
column_offsets: [8, 0]
portal_offsets: [0, 6, 12, 6]
pedestal_height: 1.5
brace_pattern: V
brace_placement: [true, false, true]
tiers:
  - elevation: 6
    type: ElectricalInstrumentation
  - elevation: 3
    type: Piping
    operating_load: -0.4
    wind_load_pos: 1.42
    wind_load_neg: -1.42
    bracket_provision: true
bracket_size: 1.5
`

func TestLoadPiperackConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rack.yaml")
	if err := os.WriteFile(path, []byte(rackYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPiperackConfig(path)
	if err != nil {
		t.Fatalf("LoadPiperackConfig failed: %v", err)
	}

	if cfg.Name != "unit 12" {
		t.Errorf("expected name 'unit 12', got %q", cfg.Name)
	}
	if len(cfg.PortalOffsets) != 3 || cfg.PortalOffsets[2] != 12 {
		t.Errorf("expected sorted unique portal offsets, got %v", cfg.PortalOffsets)
	}
	if cfg.ColumnOffsets[0] != 0 || cfg.ColumnOffsets[1] != 8 {
		t.Errorf("expected sorted column offsets, got %v", cfg.ColumnOffsets)
	}
	if cfg.Tiers[0].Elevation != 3 || cfg.Tiers[0].Type != model.TierPiping {
		t.Errorf("expected the 3 m piping tier first, got %+v", cfg.Tiers[0])
	}
	if cfg.Tiers[1].Type != model.TierElectricalInstrumentation {
		t.Errorf("expected electrical tier on top, got %s", cfg.Tiers[1].Type)
	}
	if !cfg.Tiers[0].BracketProvision || cfg.Tiers[0].OperatingLoad != -0.4 {
		t.Errorf("expected tier flags and loads to be read, got %+v", cfg.Tiers[0])
	}
	if cfg.BracePattern != model.BraceV {
		t.Errorf("expected V bracing, got %s", cfg.BracePattern)
	}
	if len(cfg.BracePlacement) != 2 {
		t.Errorf("expected brace flags truncated to 2 bays, got %v", cfg.BracePlacement)
	}
}

func TestSaveAndLoadPiperackConfig(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"rack.yml", "rack.json"} {
		path := filepath.Join(dir, name)
		want := model.DefaultPiperackConfig()

		if err := SavePiperackConfig(path, want); err != nil {
			t.Fatalf("%s: SavePiperackConfig failed: %v", name, err)
		}
		got, err := LoadPiperackConfig(path)
		if err != nil {
			t.Fatalf("%s: LoadPiperackConfig failed: %v", name, err)
		}
		if len(got.Tiers) != len(want.Tiers) {
			t.Errorf("%s: expected %d tiers, got %d", name, len(want.Tiers), len(got.Tiers))
		}
		if got.Tiers[5].Type != model.TierFlare {
			t.Errorf("%s: expected flare tier, got %s", name, got.Tiers[5].Type)
		}
		if got.MaxExpansionBay != want.MaxExpansionBay {
			t.Errorf("%s: expected max expansion bay %f, got %f", name, want.MaxExpansionBay, got.MaxExpansionBay)
		}
		if len(got.Walkways) != 2 {
			t.Errorf("%s: expected 2 walkways, got %d", name, len(got.Walkways))
		}
	}
}

func TestLoadPiperackConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	noColumns := filepath.Join(dir, "nocols.yaml")
	if err := os.WriteFile(noColumns, []byte("portal_offsets: [0, 6]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadPiperackConfig(noColumns)
	if !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	badTier := filepath.Join(dir, "badtier.yaml")
	if err := os.WriteFile(badTier, []byte("column_offsets: [0]\nportal_offsets: [0]\ntiers:\n  - elevation: 3\n    type: Ladder\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPiperackConfig(badTier); err == nil {
		t.Error("expected error for unknown tier type")
	}

	if _, err := LoadPiperackConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidatePiperackConfigDucts(t *testing.T) {
	cfg := model.DefaultPiperackConfig()
	cfg.Ducts = []model.InstrumentationDuct{{Position: 1}}
	if _, err := ValidatePiperackConfig(cfg); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for duct without width, got %v", err)
	}
}
