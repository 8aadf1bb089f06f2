package model

import (
	"errors"
	"fmt"
)

// ProfileSet is a named list of candidate profiles for a member-group
// search, ordered lightest first.
type ProfileSet struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Profiles       []string `json:"profiles"`
	AllowableRatio float64  `json:"allowable_ratio"` // 0 means use the app default
	IsBuiltIn      bool     `json:"is_built_in"`
}

// builtInFamilies are the catalog families offered as ready-made sets.
var builtInFamilies = []struct {
	family, description string
}{
	{"ISMB", "Medium weight beams"},
	{"ISNPB", "Narrow parallel flange beams"},
	{"ISWPB", "Wide parallel flange beams"},
	{"ISMC", "Medium weight channels"},
	{"SHS", "Square hollow sections"},
	{"RHS", "Rectangular hollow sections"},
	{"ISA", "Equal angles"},
}

// BuiltInProfileSets returns one set per catalog family.
func BuiltInProfileSets() []ProfileSet {
	sets := make([]ProfileSet, 0, len(builtInFamilies))
	for _, f := range builtInFamilies {
		sets = append(sets, ProfileSet{
			Name:        f.family,
			Description: f.description,
			Profiles:    SectionNames(SectionsByFamily(f.family)),
			IsBuiltIn:   true,
		})
	}
	return sets
}

// FindProfileSet returns the set called name from sets.
func FindProfileSet(sets []ProfileSet, name string) (ProfileSet, bool) {
	for _, s := range sets {
		if s.Name == name {
			return s, true
		}
	}
	return ProfileSet{}, false
}

// Validate checks that the set can drive a search.
func (s ProfileSet) Validate() error {
	if s.Name == "" {
		return errors.New("profile set has no name")
	}
	if len(s.Profiles) == 0 {
		return fmt.Errorf("profile set %q has no profiles", s.Name)
	}
	if s.AllowableRatio < 0 {
		return fmt.Errorf("profile set %q: allowable ratio %g is negative", s.Name, s.AllowableRatio)
	}
	return nil
}

// Allowable returns the set's allowable ratio, or fallback when unset.
func (s ProfileSet) Allowable(fallback float64) float64 {
	if s.AllowableRatio > 0 {
		return s.AllowableRatio
	}
	return fallback
}
