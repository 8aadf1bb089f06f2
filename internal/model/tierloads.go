package model

// DefaultTierLoads builds the preset loads for one configured tier: the
// operating line load on its beams and the tier wind pair acting along GX.
// Derived cases (empty, thermal) are produced later by load transforms.
func DefaultTierLoads(tc TierConfig) []Load {
	var loads []Load
	if tc.OperatingLoad != 0 {
		loads = append(loads, NewUniformLoad(LoadCaseOperatingLoad).WithForce(tc.OperatingLoad))
	}
	if tc.WindLoadPos != 0 {
		loads = append(loads, NodalLoad{Case: LoadCaseWindTierGX}.WithFX(tc.WindLoadPos))
	}
	if tc.WindLoadNeg != 0 {
		loads = append(loads, NodalLoad{Case: LoadCaseWindTierGXOpposite}.WithFX(tc.WindLoadNeg))
	}
	return loads
}

// ComponentLoads returns the self-weight line loads of the components a
// tier carries: walkways on the top tier and instrumentation ducts on
// electrical tiers. Each component loads the full length of the tier beams.
func (c PiperackConfig) ComponentLoads(tc TierConfig) []Load {
	var loads []Load
	if elevs := c.TierElevations(); len(elevs) > 0 && Round(tc.Elevation) == Round(elevs[len(elevs)-1]) {
		for _, w := range c.Walkways {
			loads = append(loads, w.UniformLoad())
		}
	}
	if tc.Type == TierElectricalInstrumentation {
		for _, d := range c.Ducts {
			loads = append(loads, d.UniformLoad())
		}
	}
	return loads
}

// HasTierType reports whether any configured tier carries service t.
func (c PiperackConfig) HasTierType(t TierType) bool {
	for _, tc := range c.Tiers {
		if tc.Type == t {
			return true
		}
	}
	return false
}

// Preset loads with unit magnitude, ready for WithForce.
var (
	UniformOperatingLoad = NewUniformLoad(LoadCaseOperatingLoad)
	UniformEmptyLoad     = NewUniformLoad(LoadCaseEmptyLoad)
	UniformTGGX          = NewUniformLoad(LoadCaseThermalGravityGX).WithDirection(DirectionGX)
	UniformTGGZ          = NewUniformLoad(LoadCaseThermalGravityGZ).WithDirection(DirectionGZ)
	UniformTLGX          = NewUniformLoad(LoadCaseThermalLateralGX).WithDirection(DirectionGX)
	UniformTLGZ          = NewUniformLoad(LoadCaseThermalLateralGZ).WithDirection(DirectionGZ)
	UniformCLTGY         = NewUniformLoad(LoadCaseContingencyLoadTransverse).WithDirection(DirectionGY)
	UniformCLTGZ         = NewUniformLoad(LoadCaseContingencyLoadTransverse).WithDirection(DirectionGZ)

	ConcOperatingLoad = NewConcentratedLoad(LoadCaseOperatingLoad)
	ConcEmptyLoad     = NewConcentratedLoad(LoadCaseEmptyLoad)
	ConcTGGX          = NewConcentratedLoad(LoadCaseThermalGravityGX).WithDirection(DirectionGX)
	ConcTGGZ          = NewConcentratedLoad(LoadCaseThermalGravityGZ).WithDirection(DirectionGZ)
	ConcTLGX          = NewConcentratedLoad(LoadCaseThermalLateralGX).WithDirection(DirectionGX)
	ConcTLGZ          = NewConcentratedLoad(LoadCaseThermalLateralGZ).WithDirection(DirectionGZ)

	WindTierGX         = NodalLoad{Case: LoadCaseWindTierGX}
	WindTierGXOpposite = NodalLoad{Case: LoadCaseWindTierGXOpposite}
)
