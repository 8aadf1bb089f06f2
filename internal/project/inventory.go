package project

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/RackGen/internal/model"
)

// DefaultInventoryPath is sections.json in the config directory.
func DefaultInventoryPath() (string, error) {
	return filepath.Join(DefaultConfigDir(), "sections.json"), nil
}

func SaveInventory(path string, inv model.SectionInventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the section inventory at path. The first load seeds
// the file with the built-in catalog.
func LoadInventory(path string) (model.SectionInventory, error) {
	var inv model.SectionInventory
	found, err := readJSON(path, &inv)
	if err != nil {
		return model.SectionInventory{}, err
	}
	if !found {
		inv = model.DefaultSectionInventory()
		return inv, SaveInventory(path, inv)
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path and
// returns the path it used.
func LoadOrCreateInventory() (model.SectionInventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultSectionInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory writes inv to a file for sharing.
func ExportInventory(path string, inv model.SectionInventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory merges the sections stored at path into existing. Names
// already present are skipped. The merged inventory and the number of
// sections added are returned; existing is not modified.
func ImportInventory(path string, existing model.SectionInventory) (model.SectionInventory, int, error) {
	var imported model.SectionInventory
	found, err := readJSON(path, &imported)
	if err != nil {
		return existing, 0, err
	}
	if !found {
		return existing, 0, fmt.Errorf("section file %s not found", path)
	}

	merged := model.SectionInventory{Sections: append([]model.SteelSection{}, existing.Sections...)}
	added := 0
	for _, s := range imported.Sections {
		if merged.Add(s) {
			added++
		}
	}
	return merged, added, nil
}
