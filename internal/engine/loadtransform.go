package engine

import (
	"github.com/piwi3910/RackGen/internal/model"
)

// TransformLoadCase derives loads of one case from loads of another:
// matching loads are copied into Destination with their force scaled by
// Factor and, when Direction is set, re-oriented.
type TransformLoadCase struct {
	Source      model.LoadCase        `json:"source" yaml:"source"`
	Destination model.LoadCase        `json:"destination" yaml:"destination"`
	Factor      float64               `json:"factor" yaml:"factor"`
	Direction   model.MemberDirection `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// DefaultLoadTransforms derives the empty and thermal cases from the
// operating load.
func DefaultLoadTransforms() []TransformLoadCase {
	return []TransformLoadCase{
		{Source: model.LoadCaseOperatingLoad, Destination: model.LoadCaseEmptyLoad, Factor: 0.4},
		{Source: model.LoadCaseOperatingLoad, Destination: model.LoadCaseThermalGravityGX, Factor: -0.025, Direction: model.DirectionGX},
		{Source: model.LoadCaseOperatingLoad, Destination: model.LoadCaseThermalGravityGZ, Factor: -0.125, Direction: model.DirectionGZ},
		{Source: model.LoadCaseOperatingLoad, Destination: model.LoadCaseThermalLateralGX, Factor: -0.05, Direction: model.DirectionGX},
		{Source: model.LoadCaseOperatingLoad, Destination: model.LoadCaseThermalLateralGZ, Factor: -0.05, Direction: model.DirectionGZ},
	}
}

// Apply returns the derived load, or false when l is not in the source
// case or is a wind band, which has no scalar force to scale.
func (t TransformLoadCase) Apply(l model.Load) (model.Load, bool) {
	if l == nil || model.CaseOf(l) != t.Source {
		return nil, false
	}
	switch v := l.(type) {
	case model.UniformLoad:
		v = v.WithCase(t.Destination).Factor(t.Factor)
		if t.Direction != 0 {
			v = v.WithDirection(t.Direction)
		}
		return v, true
	case model.ConcentratedLoad:
		v = v.WithCase(t.Destination).Factor(t.Factor)
		if t.Direction != 0 {
			v = v.WithDirection(t.Direction)
		}
		return v, true
	case model.ConcentratedMoment:
		v = v.WithCase(t.Destination).Factor(t.Factor)
		if t.Direction != 0 {
			v.Direction = t.Direction
		}
		return v, true
	case model.NodalLoad:
		f := t.Factor
		return model.NodalLoad{
			Case: t.Destination,
			FX:   v.FX * f, FY: v.FY * f, FZ: v.FZ * f,
			MX: v.MX * f, MY: v.MY * f, MZ: v.MZ * f,
		}, true
	}
	return nil, false
}

// TransformLoads applies every transform to every load and returns the
// derived loads, grouped by transform.
func TransformLoads(loads []model.Load, transforms []TransformLoadCase) []model.Load {
	var out []model.Load
	for _, t := range transforms {
		for _, l := range loads {
			if d, ok := t.Apply(l); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

// TransformTier adds the derived loads of a tier's own loads to it.
func TransformTier(tier *model.Tier, transforms []TransformLoadCase) (int, error) {
	derived := TransformLoads(tier.AllLoads(), transforms)
	if err := tier.AddLoads(derived...); err != nil {
		return 0, err
	}
	return len(derived), nil
}
