package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSteelTakeoff_Basic(t *testing.T) {
	members := []Beam3D{
		NewBeam3D(Point3D{}, Point3D{X: 10}).WithProfile("ISMB 200"),
		NewBeam3D(Point3D{}, Point3D{X: 10}).WithProfile("ISMB 200"),
		NewColumn(Point3D{}, 5).WithProfile("ISMB 400"),
	}
	est := CalculateSteelTakeoff(members, 10, 1000)

	require.Len(t, est.Lines, 2)
	assert.Equal(t, "ISMB 200", est.Lines[0].Profile)
	assert.Equal(t, 2, est.Lines[0].Members)
	assert.InDelta(t, 20.0, est.Lines[0].TotalLength, 1e-9)
	assert.InDelta(t, 483.4, est.Lines[0].Weight, 1e-9)

	// 483.4 + 5 x 61.55 = 791.15 kg
	assert.InDelta(t, 791.15, est.TotalWeight, 1e-9)
	assert.InDelta(t, 0.79115, est.TonnesExact, 1e-12)
	// 0.870265 t with waste, rounded up to 0.9 t
	assert.InDelta(t, 0.9, est.TonnesToOrder, 1e-9)
	assert.InDelta(t, 900.0, est.EstimatedCost, 1e-9)
	assert.Empty(t, est.Unpriced)
}

func TestCalculateSteelTakeoff_UnknownAndUnassigned(t *testing.T) {
	members := []Beam3D{
		NewBeam3D(Point3D{}, Point3D{X: 1}).WithProfile("W12X26"),
		NewBeam3D(Point3D{}, Point3D{X: 1}),
	}
	est := CalculateSteelTakeoff(members, 0, 0)

	assert.Equal(t, []string{"W12X26"}, est.Unpriced)
	assert.Equal(t, 1, est.Unassigned)
	assert.Equal(t, 0.0, est.TotalWeight)
}

func TestCalculateSteelTakeoff_MemberWeightWins(t *testing.T) {
	b := NewBeam3D(Point3D{}, Point3D{X: 2}).WithProfile("ISMB 200")
	b.WeightPerMeter = 30
	est := CalculateSteelTakeoff([]Beam3D{b}, 0, 0)

	assert.InDelta(t, 60.0, est.TotalWeight, 1e-9)
}
