package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStructure() *PiperackStructure {
	s := NewPiperackStructure()
	col := NewColumn(Point3D{}, 6)
	col.ID = 1
	s.MainColumns = append(s.MainColumns, col)

	beam := NewBeam3D(Point3D{Y: 3}, Point3D{X: 6, Y: 3})
	beam.ID = 5
	s.PortalBeams[5] = beam

	pedestal := NewBeam3D(Point3D{Y: -2}, Point3D{})
	pedestal.ID = 9
	s.Concrete = append(s.Concrete, pedestal)

	t := NewTier(Point3D{Y: 3}, TierPiping)
	t.AddBeam(beam)
	s.Tiers = append(s.Tiers, t)
	return s
}

func TestPiperackStructure_Queries(t *testing.T) {
	s := testStructure()

	summary := s.Summary()
	assert.Equal(t, 1, summary[CategoryMainColumn])
	assert.Equal(t, 1, summary[CategoryPortalBeam])
	assert.Equal(t, 0, summary[CategoryBracket])

	c, ok := s.CategoryOf(5)
	require.True(t, ok)
	assert.Equal(t, CategoryPortalBeam, c)
	_, ok = s.CategoryOf(42)
	assert.False(t, ok)

	assert.Len(t, s.Steel(), 2)
	assert.NotNil(t, s.TierAt(3.0004))
	assert.Nil(t, s.TierAt(6))
}

func TestPiperackStructure_SetProfiles(t *testing.T) {
	s := testStructure()

	n := s.SetProfiles(map[int]string{1: "ISMB 300", 5: "ISMB 200", 77: "ISMB 100"})
	assert.Equal(t, 2, n)
	assert.Equal(t, "ISMB 300", s.MainColumns[0].Profile)
	assert.Equal(t, "ISMB 200", s.PortalBeams[5].Profile)
	assert.Equal(t, "ISMB 200", s.Tiers[0].Beams[0].Profile)
	assert.Empty(t, s.Concrete[0].Profile)
}
