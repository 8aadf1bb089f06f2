package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkway_Loads(t *testing.T) {
	w := NewWalkway(1)
	_, err := w.LoadPerUnitArea()
	assert.Error(t, err)

	w.Length, w.LoadCapacity = 8, 800
	per, err := w.LoadPerUnitArea()
	require.NoError(t, err)
	assert.Equal(t, 100.0, per)

	l := w.UniformLoad()
	assert.Equal(t, LoadCaseLiveLoad, l.Case)
	assert.Equal(t, -WalkwayLiveLoad, l.Force)
}

func TestInstrumentationDuct_WeightLookup(t *testing.T) {
	assert.Equal(t, 0.20, NewInstrumentationDuct(1.2, 0.4, 6).WeightPerMeter())
	assert.Equal(t, 0.10, NewInstrumentationDuct(0.45, 0.3, 6).WeightPerMeter())
	assert.InDelta(t, 0.5, NewInstrumentationDuct(3, 0.4, 6).WeightPerMeter(), 1e-12)

	l := NewInstrumentationDuct(1.2, 0.4, 6).UniformLoad()
	assert.Equal(t, LoadCaseDeadLoadElecIns, l.Case)
	assert.Equal(t, -0.2, l.Force)
}

func TestInstrumentationDuct_Overcrowded(t *testing.T) {
	d := NewInstrumentationDuct(0.3, 0.1, 0)
	d2 := d.AddCable(Cable{Name: "A", Diameter: 60}).AddCable(Cable{Name: "B", Diameter: 50})

	assert.Empty(t, d.Cables)
	assert.Equal(t, 110.0, d2.TotalCableDiameter())
	assert.True(t, d2.IsOvercrowded())
	assert.False(t, d.IsOvercrowded())
}

func TestPipe_Validation(t *testing.T) {
	seg := []Line3D{{End: Point3D{Z: 10}}}

	_, err := NewPipe("p", nil, 0.5, 0.01)
	assert.Error(t, err)
	_, err = NewPipe("p", seg, 0, 0.01)
	assert.Error(t, err)
	_, err = NewPipe("p", seg, 0.5, 0.3)
	assert.Error(t, err)

	p, err := NewPipe("p", seg, 0.5, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*(0.0625-0.0576), p.CrossSectionalArea(), 1e-12)
}

func TestPipe_TotalLoad(t *testing.T) {
	p, err := NewPipe("p", []Line3D{{End: Point3D{Z: 6}}, {Start: Point3D{Z: 6}, End: Point3D{Z: 10}}}, 0.5, 0.01)
	require.NoError(t, err)

	p, err = p.AddLoad(NewConcentratedLoad(LoadCaseOperatingLoad).WithForce(-2))
	require.NoError(t, err)
	p, err = p.AddLoad(NewUniformLoad(LoadCaseOperatingLoad).WithForce(-0.5).WithPosition(0, 4))
	require.NoError(t, err)
	_, err = p.AddLoad(NodalLoad{})
	assert.Error(t, err)

	// 2 + 0.5*4 + design 1.0 t/m * 10 m
	assert.InDelta(t, 14.0, p.TotalLoad(LoadCaseOperatingLoad), 1e-9)
	assert.InDelta(t, 10.0, p.TotalLoad(LoadCaseEmptyLoad), 1e-9)
}

func TestFlare_Defaults(t *testing.T) {
	f, err := NewFlare("FL-1", []Line3D{{End: Point3D{Z: 48}}}, 4, 0.6, true)
	require.NoError(t, err)
	assert.Equal(t, 0.6, f.DesignLoad)
	assert.Equal(t, -0.6, f.UniformLoad().Force)
	assert.True(t, f.SupportMember)

	_, err = NewFlare("FL-2", []Line3D{{End: Point3D{Z: 48}}}, 4, -1, false)
	assert.Error(t, err)
}

func TestTreeSupport_Loads(t *testing.T) {
	_, err := NewTreeSupport(Line3D{End: Point3D{Z: 8}}, -1, DefaultTreeLoad)
	assert.Error(t, err)

	s, err := NewTreeSupport(Line3D{End: Point3D{Z: 8}}, DefaultMaxTreeDistance, DefaultTreeLoad)
	require.NoError(t, err)

	pl := s.PointLoad()
	assert.Equal(t, LoadCaseDeadLoadElecIns, pl.Case)
	assert.Equal(t, -2.8, pl.Force)

	loads := s.TreeLoads()
	require.Len(t, loads, 3)
	assert.Equal(t, []float64{0, 3, 6}, []float64{loads[0].D1, loads[1].D1, loads[2].D1})

	_, err = s.WithTreeLoad(-1)
	assert.Error(t, err)
	s2, err := s.WithDistance(4)
	require.NoError(t, err)
	assert.Len(t, s2.TreeLoads(), 3)
}

func TestElectricalTree(t *testing.T) {
	tree := ElectricalTree{BaseWidth: 2, LoadCapacity: 900}
	assert.Equal(t, 4.0, tree.BaseArea())
	_, err := tree.LoadPerBranch()
	assert.Error(t, err)

	tree.Branches = 3
	per, err := tree.LoadPerBranch()
	require.NoError(t, err)
	assert.Equal(t, 300.0, per)
}
