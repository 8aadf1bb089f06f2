package model

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog table numbers passed to the backend when a profile is created
// from the section database.
const (
	CountryIndian      = 10
	CountryHollowTable = 35
)

// SteelSection is one entry of the section catalog.
type SteelSection struct {
	SlNo           int     `json:"sl_no"`
	Name           string  `json:"name"`
	WeightPerMeter float64 `json:"weight_per_meter"` // kg/m
	Class          string  `json:"class"`            // PLASTIC, COMPACT, SEMI-COMPACT, SLENDER
	IntendedUse    string  `json:"intended_use"`
}

// Family returns the leading designation, e.g. "ISMB" or "SHS".
func (s SteelSection) Family() string {
	name := strings.TrimSpace(s.Name)
	if i := strings.IndexAny(name, " 0123456789"); i > 0 {
		return name[:i]
	}
	return name
}

// SteelSections is the built-in section catalog.
var SteelSections = []SteelSection{
	{SlNo: 1, Name: "ISMB 200", WeightPerMeter: 24.17, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 2, Name: "ISMB 250", WeightPerMeter: 37.3, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 3, Name: "ISMB 300", WeightPerMeter: 46.02, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 4, Name: "ISMB 400", WeightPerMeter: 61.55, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 5, Name: "ISMB 450", WeightPerMeter: 72.38, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 6, Name: "ISMB 500", WeightPerMeter: 86.88, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 7, Name: "ISMB 600", WeightPerMeter: 121, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 8, Name: "ISNPB 200X100X25.09", WeightPerMeter: 25.09, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 9, Name: "ISNPB 250X150X39.78", WeightPerMeter: 39.78, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 10, Name: "ISNPB 300X150X49.32", WeightPerMeter: 49.32, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 11, Name: "ISNPB 400X180X66.31", WeightPerMeter: 66.31, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 12, Name: "ISNPB 450X190X77.58", WeightPerMeter: 77.58, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 13, Name: "ISNPB 500X200X90.69", WeightPerMeter: 90.69, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 14, Name: "ISNPB 600X220X122.45", WeightPerMeter: 122.45, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 15, Name: "ISWPB 200X200X42.26", WeightPerMeter: 42.26, Class: "SEMI-COMPACT", IntendedUse: "STRUT/TIE"},
	{SlNo: 16, Name: "ISWPB 250X250X73.15", WeightPerMeter: 73.15, Class: "PLASTIC", IntendedUse: "STRUT/TIE/BRACING"},
	{SlNo: 17, Name: "ISWPB 300X300X100.85", WeightPerMeter: 100.85, Class: "SEMI-COMPACT", IntendedUse: "SECONDARY BEAMS / GRAVITY COLUMNS/STRUT/TIE"},
	{SlNo: 18, Name: "ISWPB 300X300X117.03", WeightPerMeter: 117.03, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS / BRACING/ STRUT/TIE"},
	{SlNo: 19, Name: "ISWPB 360X300X125.81", WeightPerMeter: 125.81, Class: "COMPACT", IntendedUse: "BEAMS / COLUMNS / BRACING"},
	{SlNo: 20, Name: "ISWPB 600X300X128.79", WeightPerMeter: 128.79, Class: "SEMI-COMPACT", IntendedUse: "SECONDARY BEAMS / GRAVITY COLUMNS"},
	{SlNo: 21, Name: "ISWPB 600X300X177.78", WeightPerMeter: 177.78, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 22, Name: "ISWPB 600X300X285.48", WeightPerMeter: 285.48, Class: "PLASTIC", IntendedUse: "LIFT /COKE DRUM STR."},
	{SlNo: 23, Name: "ISWPB 700X300X149.89", WeightPerMeter: 149.89, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 24, Name: "ISWPB 700X300X204.48", WeightPerMeter: 204.48, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 25, Name: "ISWPB 700X300X240.51", WeightPerMeter: 240.51, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 26, Name: "ISWPB 800X300X262.34", WeightPerMeter: 262.34, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 27, Name: "ISWPB 900X300X291.46", WeightPerMeter: 291.46, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 28, Name: "WPB900X300X333.00 (HE 900 M)", WeightPerMeter: 333, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 29, Name: "SHS 75X75X4.9", WeightPerMeter: 9.55, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS/ELECTRICAL TREE"},
	{SlNo: 30, Name: "SHS 40X40X4", WeightPerMeter: 4.2, Class: "PLASTIC", IntendedUse: "KNEE BRACING"},
	{SlNo: 31, Name: "SHS 45X45X4.5", WeightPerMeter: 5.31, Class: "PLASTIC", IntendedUse: "KNEE BRACING"},
	{SlNo: 32, Name: "SHS 100X100X6", WeightPerMeter: 16.98, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS, ELECTRICAL TREE & SUPPORTS"},
	{SlNo: 33, Name: "SHS 132X132X5.4", WeightPerMeter: 20.88, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 34, Name: "SHS 150X150X6", WeightPerMeter: 26.4, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 35, Name: "SHS 150X150X8", WeightPerMeter: 34.38, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 36, Name: "SHS 180X180X8", WeightPerMeter: 42.5, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 37, Name: "SHS 220X220X8", WeightPerMeter: 51.96, Class: "COMPACT", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 38, Name: "SHS 220X220X10", WeightPerMeter: 63.92, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 39, Name: "SHS 250X250X10", WeightPerMeter: 73.34, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 40, Name: "SHS 300X300X12", WeightPerMeter: 105.61, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 41, Name: "SHS 350X350X12", WeightPerMeter: 124.45, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 42, Name: "SHS 400X400X12", WeightPerMeter: 143.29, Class: "PLASTIC", IntendedUse: "BRACINGS, MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 43, Name: "RHS 200X100X6", WeightPerMeter: 26.4, Class: "PLASTIC", IntendedUse: "ELECTRICAL TREE"},
	{SlNo: 44, Name: "RHS 220X140X8", WeightPerMeter: 41.91, Class: "PLASTIC", IntendedUse: "MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 45, Name: "RHS 260X180X10", WeightPerMeter: 63.92, Class: "PLASTIC", IntendedUse: "MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 46, Name: "RHS 300X200X10", WeightPerMeter: 73.34, Class: "PLASTIC", IntendedUse: "MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 47, Name: "RHS 400X200X12", WeightPerMeter: 105.61, Class: "PLASTIC", IntendedUse: "MISC. PIPE SUPPORTS / T SUPPORTS"},
	{SlNo: 48, Name: "ISMC 100", WeightPerMeter: 9.56, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS/LADDERS"},
	{SlNo: 49, Name: "ISMC 125", WeightPerMeter: 13.1, Class: "PLASTIC", IntendedUse: "CIRCULAR & HORIZONTAL EQPT.PLTF."},
	{SlNo: 50, Name: "ISMC 150", WeightPerMeter: 16.8, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 51, Name: "ISMC 200", WeightPerMeter: 22.3, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 52, Name: "ISMC 250", WeightPerMeter: 30.6, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 53, Name: "ISMC 300", WeightPerMeter: 36.3, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 54, Name: "ISMC 400", WeightPerMeter: 50.1, Class: "PLASTIC", IntendedUse: "BEAMS / COLUMNS"},
	{SlNo: 55, Name: "ISA 50X50X6", WeightPerMeter: 4.49, Class: "PLASTIC", IntendedUse: "BRACINGS"},
	{SlNo: 56, Name: "ISA 65X65X6", WeightPerMeter: 5.91, Class: "SLENDER", IntendedUse: "BRACINGS"},
	{SlNo: 57, Name: "ISA 65X65X8", WeightPerMeter: 7.73, Class: "SEMI-COMPACT", IntendedUse: "ELECTRICAL TREE"},
	{SlNo: 58, Name: "ISA 75X75X6", WeightPerMeter: 6.86, Class: "SLENDER", IntendedUse: "ELECTRICAL TREE"},
	{SlNo: 59, Name: "ISA 75X75X8", WeightPerMeter: 9, Class: "PLASTIC", IntendedUse: "BRACINGS"},
	{SlNo: 60, Name: "ISA 90X90X8", WeightPerMeter: 10.92, Class: "SLENDER", IntendedUse: "BRACINGS"},
	{SlNo: 61, Name: "ISA 100X100X8", WeightPerMeter: 12.18, Class: "SEMI-COMPACT", IntendedUse: "CIRCULAR & HORIZONTAL EQPT.PLTF"},
	{SlNo: 62, Name: "ISA 100X100X10", WeightPerMeter: 15.04, Class: "PLASTIC", IntendedUse: "BRACINGS"},
	{SlNo: 63, Name: "ISA 110X110X10", WeightPerMeter: 16.58, Class: "SLENDER", IntendedUse: "BRACINGS"},
	{SlNo: 64, Name: "ISA 110X110X12", WeightPerMeter: 19.68, Class: "PLASTIC", IntendedUse: "BRACINGS"},
	{SlNo: 65, Name: "ISA 130X130X12", WeightPerMeter: 23.45, Class: "SLENDER", IntendedUse: "BRACINGS"},
	{SlNo: 66, Name: "ISA 150X150X16", WeightPerMeter: 35.84, Class: "PLASTIC", IntendedUse: "BRACINGS"},
	{SlNo: 67, Name: "ISA 200X200X20", WeightPerMeter: 59.96, Class: "PLASTIC", IntendedUse: "BRACINGS"},
}

// CountryFor returns the catalog table a profile name is looked up in.
// Square and rectangular hollow sections live in their own table.
func CountryFor(name string) int {
	upper := strings.ToUpper(name)
	if strings.Contains(upper, "SHS") || strings.Contains(upper, "RHS") {
		return CountryHollowTable
	}
	return CountryIndian
}

// normalizeSection folds case and spacing so "ISMB200" matches "ISMB 200".
func normalizeSection(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), ""))
}

// FindSection returns the catalog entry for name.
func FindSection(name string) (SteelSection, bool) {
	key := normalizeSection(name)
	for _, s := range SteelSections {
		if normalizeSection(s.Name) == key {
			return s, true
		}
	}
	return SteelSection{}, false
}

// SectionWeight returns the unit weight of a named section in kg/m.
func SectionWeight(name string) (float64, error) {
	s, ok := FindSection(name)
	if !ok {
		return 0, fmt.Errorf("section %q not in catalog", name)
	}
	return s.WeightPerMeter, nil
}

// SectionsByFamily returns the catalog entries of one family ordered by
// unit weight, lightest first. This is the natural candidate list for a
// profile search.
func SectionsByFamily(family string) []SteelSection {
	var out []SteelSection
	for _, s := range SteelSections {
		if strings.EqualFold(s.Family(), family) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightPerMeter < out[j].WeightPerMeter
	})
	return out
}

// SectionNames returns the names of the given sections.
func SectionNames(sections []SteelSection) []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

// SectionInventory is the editable section catalog: the built-in tables
// plus any sections the user added.
type SectionInventory struct {
	Sections []SteelSection `json:"sections"`
}

// DefaultSectionInventory returns a copy of the built-in catalog.
func DefaultSectionInventory() SectionInventory {
	return SectionInventory{Sections: append([]SteelSection{}, SteelSections...)}
}

// Find returns the section called name, ignoring case and spacing.
func (inv *SectionInventory) Find(name string) *SteelSection {
	key := normalizeSection(name)
	for i := range inv.Sections {
		if normalizeSection(inv.Sections[i].Name) == key {
			return &inv.Sections[i]
		}
	}
	return nil
}

// Add appends s unless a section with the same name exists. The serial
// number continues the current sequence. Returns false for duplicates.
func (inv *SectionInventory) Add(s SteelSection) bool {
	if inv.Find(s.Name) != nil {
		return false
	}
	next := 0
	for _, e := range inv.Sections {
		if e.SlNo > next {
			next = e.SlNo
		}
	}
	s.SlNo = next + 1
	inv.Sections = append(inv.Sections, s)
	return true
}

// Missing returns the names from profiles that are not in the inventory.
func (inv *SectionInventory) Missing(profiles []string) []string {
	var out []string
	for _, p := range profiles {
		if inv.Find(p) == nil {
			out = append(out, p)
		}
	}
	return out
}

func (inv *SectionInventory) Names() []string {
	return SectionNames(inv.Sections)
}
