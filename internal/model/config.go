package model

import "sort"

// BracePattern selects the vertical bracing layout in braced bays.
type BracePattern string

const (
	BraceX BracePattern = "X" // two crossing diagonals
	BraceV BracePattern = "V" // two diagonals meeting at mid-bay on the upper level
)

// TierConfig describes one tier of the rack.
type TierConfig struct {
	Elevation                  float64  `json:"elevation" yaml:"elevation"` // m above base
	Type                       TierType `json:"type" yaml:"type"`
	OperatingLoad              float64  `json:"operating_load" yaml:"operating_load"` // t/m, negative is downward
	WindLoadPos                float64  `json:"wind_load_pos" yaml:"wind_load_pos"`   // t, windward
	WindLoadNeg                float64  `json:"wind_load_neg" yaml:"wind_load_neg"`   // t, leeward
	IntermediateTransverseBeam bool     `json:"intermediate_transverse_beam" yaml:"intermediate_transverse_beam"`
	BracketProvision           bool     `json:"bracket_provision" yaml:"bracket_provision"`
}

// PiperackConfig is the parametric description the generator works from.
// Offsets and elevations are relative to Base.
type PiperackConfig struct {
	Name               string       `json:"name" yaml:"name"`
	Base               Point3D      `json:"base" yaml:"base"`
	Width              float64      `json:"width" yaml:"width"`                   // m, informational when ColumnOffsets is set
	PortalOffsets      []float64    `json:"portal_offsets" yaml:"portal_offsets"` // z
	ColumnOffsets      []float64    `json:"column_offsets" yaml:"column_offsets"` // x
	Tiers              []TierConfig `json:"tiers" yaml:"tiers"`
	LongBeamElevations []float64    `json:"long_beam_elevations,omitempty" yaml:"long_beam_elevations,omitempty"`
	PedestalHeight     float64      `json:"pedestal_height" yaml:"pedestal_height"`
	FoundationDepth    float64      `json:"foundation_depth" yaml:"foundation_depth"`
	BracePattern       BracePattern `json:"brace_pattern" yaml:"brace_pattern"`
	BracePlacement     []bool       `json:"brace_placement" yaml:"brace_placement"` // one flag per bay
	MaxExpansionBay    float64      `json:"max_expansion_bay" yaml:"max_expansion_bay"`
	BracketSize        float64      `json:"bracket_size" yaml:"bracket_size"`

	Walkways []Walkway             `json:"walkways,omitempty" yaml:"walkways,omitempty"`
	Ducts    []InstrumentationDuct `json:"ducts,omitempty" yaml:"ducts,omitempty"`
}

// DefaultTierConfigs returns the standard six-tier layout.
func DefaultTierConfigs() []TierConfig {
	return []TierConfig{
		{Elevation: 3, Type: TierPiping, OperatingLoad: -0.4, WindLoadPos: 1.42, WindLoadNeg: -1.42},
		{Elevation: 6, Type: TierPiping, OperatingLoad: -0.4, WindLoadPos: 1.316, WindLoadNeg: -1.316},
		{Elevation: 9.5, Type: TierPiping, OperatingLoad: -0.35, WindLoadPos: 1.014, WindLoadNeg: -1.014, IntermediateTransverseBeam: true, BracketProvision: true},
		{Elevation: 12, Type: TierPiping, OperatingLoad: -0.3, WindLoadPos: 1.118, WindLoadNeg: -1.118, IntermediateTransverseBeam: true, BracketProvision: true},
		{Elevation: 14.5, Type: TierElectricalInstrumentation, WindLoadPos: 1.635, WindLoadNeg: -1.635},
		{Elevation: 17.5, Type: TierFlare, WindLoadPos: 2.549, WindLoadNeg: -2.549},
	}
}

// DefaultPiperackConfig returns a 7-portal, 8 m wide rack with six tiers.
func DefaultPiperackConfig() PiperackConfig {
	return PiperackConfig{
		Name:            "Piperack",
		Width:           8,
		PortalOffsets:   []float64{0, 8, 16, 24, 32, 40, 48},
		ColumnOffsets:   []float64{0, 8},
		Tiers:           DefaultTierConfigs(),
		PedestalHeight:  2,
		FoundationDepth: 1,
		BracePattern:    BraceX,
		BracePlacement:  []bool{false, true, false, false, true, false},
		MaxExpansionBay: 8,
		BracketSize:     2,
		Walkways:        []Walkway{NewWalkway(1), NewWalkway(4.5)},
		Ducts:           []InstrumentationDuct{NewInstrumentationDuct(1.2, 0.4, 6)},
	}
}

// TierElevations returns the tier elevations sorted ascending.
func (c PiperackConfig) TierElevations() []float64 {
	out := make([]float64, len(c.Tiers))
	for i, t := range c.Tiers {
		out[i] = t.Elevation
	}
	sort.Float64s(out)
	return out
}

// EffectiveLongBeamElevations returns LongBeamElevations, or every tier
// elevation when none are given.
func (c PiperackConfig) EffectiveLongBeamElevations() []float64 {
	if len(c.LongBeamElevations) > 0 {
		return c.LongBeamElevations
	}
	return c.TierElevations()
}

// TierConfigAt returns the tier configured at elevation y.
func (c PiperackConfig) TierConfigAt(y float64) (TierConfig, bool) {
	for _, t := range c.Tiers {
		if Round(t.Elevation) == Round(y) {
			return t, true
		}
	}
	return TierConfig{}, false
}

// BayBraced reports whether bay i carries vertical and plan bracing.
func (c PiperackConfig) BayBraced(i int) bool {
	return i >= 0 && i < len(c.BracePlacement) && c.BracePlacement[i]
}
