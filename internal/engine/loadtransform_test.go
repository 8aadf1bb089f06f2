package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackGen/internal/model"
)

func TestTransformLoadCase_Apply(t *testing.T) {
	op := model.NewUniformLoad(model.LoadCaseOperatingLoad).WithForce(-0.4).WithPosition(1, 5)
	tgx := TransformLoadCase{
		Source:      model.LoadCaseOperatingLoad,
		Destination: model.LoadCaseThermalGravityGX,
		Factor:      -0.025,
		Direction:   model.DirectionGX,
	}

	d, ok := tgx.Apply(op)
	require.True(t, ok)
	u := d.(model.UniformLoad)
	assert.Equal(t, model.LoadCaseThermalGravityGX, u.Case)
	assert.Equal(t, model.DirectionGX, u.Direction)
	assert.InDelta(t, 0.01, u.Force, 1e-12)
	assert.Equal(t, op.D1, u.D1)
	assert.Equal(t, op.D2, u.D2)

	// the source is a value and stays untouched
	assert.Equal(t, -0.4, op.Force)

	_, ok = tgx.Apply(model.NewUniformLoad(model.LoadCaseEmptyLoad))
	assert.False(t, ok)
	_, ok = tgx.Apply(nil)
	assert.False(t, ok)
}

func TestTransformLoadCase_KeepsDirectionWhenUnset(t *testing.T) {
	empty := TransformLoadCase{Source: model.LoadCaseOperatingLoad, Destination: model.LoadCaseEmptyLoad, Factor: 0.4}

	d, ok := empty.Apply(model.NewConcentratedLoad(model.LoadCaseOperatingLoad).WithForce(-5))
	require.True(t, ok)
	c := d.(model.ConcentratedLoad)
	assert.Equal(t, model.DirectionGY, c.Direction)
	assert.InDelta(t, -2.0, c.Force, 1e-12)

	d, ok = empty.Apply(model.NodalLoad{Case: model.LoadCaseOperatingLoad, FY: -10, MZ: 5})
	require.True(t, ok)
	n := d.(model.NodalLoad)
	assert.Equal(t, model.LoadCaseEmptyLoad, n.Case)
	assert.InDelta(t, -4.0, n.FY, 1e-12)
	assert.InDelta(t, 2.0, n.MZ, 1e-12)
}

func TestTransformTier_DefaultSet(t *testing.T) {
	tier := model.NewTier(model.Point3D{Y: 3}, model.TierPiping)
	require.NoError(t, tier.AddLoads(model.DefaultTierLoads(model.TierConfig{
		Elevation:     3,
		OperatingLoad: -0.4,
		WindLoadPos:   1.42,
		WindLoadNeg:   -1.42,
	})...))

	n, err := TransformTier(tier, DefaultLoadTransforms())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.InDelta(t, 0.16, tier.TotalLoad(model.LoadCaseEmptyLoad), 1e-12)
	assert.InDelta(t, 0.05, tier.TotalLoad(model.LoadCaseThermalGravityGZ), 1e-12)
	// wind loads are not derived
	assert.Len(t, tier.WindLoads, 2)
}
