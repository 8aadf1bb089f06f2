package project

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/RackGen/internal/model"
)

// DefaultProfilesPath is profile_sets.json in the config directory. Only
// custom sets are stored there.
func DefaultProfilesPath() (string, error) {
	return filepath.Join(DefaultConfigDir(), "profile_sets.json"), nil
}

func SaveProfileSets(path string, sets []model.ProfileSet) error {
	return writeJSON(path, sets)
}

// LoadProfileSets reads the custom sets at path. A missing file has none.
func LoadProfileSets(path string) ([]model.ProfileSet, error) {
	sets := []model.ProfileSet{}
	if _, err := readJSON(path, &sets); err != nil {
		return nil, err
	}
	return markCustom(sets), nil
}

// AddProfileSet validates set and stores it at path, replacing a custom
// set of the same name. Built-in names cannot be overridden.
func AddProfileSet(path string, set model.ProfileSet) (bool, error) {
	set.IsBuiltIn = false
	if err := set.Validate(); err != nil {
		return false, err
	}
	if _, ok := model.FindProfileSet(model.BuiltInProfileSets(), set.Name); ok {
		return false, fmt.Errorf("profile set %q is built in", set.Name)
	}

	sets, err := LoadProfileSets(path)
	if err != nil {
		return false, err
	}
	replaced := false
	for i := range sets {
		if sets[i].Name == set.Name {
			sets[i], replaced = set, true
		}
	}
	if !replaced {
		sets = append(sets, set)
	}
	return replaced, SaveProfileSets(path, sets)
}

// AllProfileSets lists the built-in sets first, then the custom sets at path.
func AllProfileSets(path string) ([]model.ProfileSet, error) {
	custom, err := LoadProfileSets(path)
	if err != nil {
		return model.BuiltInProfileSets(), err
	}
	return append(model.BuiltInProfileSets(), custom...), nil
}

// ExportProfileSet writes one set to a file for sharing.
func ExportProfileSet(path string, set model.ProfileSet) error {
	set.IsBuiltIn = false
	return writeJSON(path, set)
}

// ImportProfileSet reads and validates a shared set.
func ImportProfileSet(path string) (model.ProfileSet, error) {
	var set model.ProfileSet
	found, err := readJSON(path, &set)
	if err != nil {
		return model.ProfileSet{}, err
	}
	if !found {
		return model.ProfileSet{}, fmt.Errorf("profile set file %s not found", path)
	}
	set.IsBuiltIn = false
	if err := set.Validate(); err != nil {
		return model.ProfileSet{}, err
	}
	return set, nil
}

func markCustom(sets []model.ProfileSet) []model.ProfileSet {
	for i := range sets {
		sets[i].IsBuiltIn = false
	}
	return sets
}
