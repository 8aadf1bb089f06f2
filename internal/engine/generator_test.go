package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackGen/internal/backend"
	"github.com/piwi3910/RackGen/internal/model"
)

func smallRackConfig() model.PiperackConfig {
	return model.PiperackConfig{
		Name:               "small",
		PortalOffsets:      []float64{0, 8, 16},
		ColumnOffsets:      []float64{0, 6},
		Tiers:              []model.TierConfig{{Elevation: 3}, {Elevation: 6}},
		LongBeamElevations: []float64{6},
		PedestalHeight:     2,
	}
}

func generate(t *testing.T, cfg model.PiperackConfig) *Result {
	t.Helper()
	res, err := NewGenerator(cfg).Generate()
	require.NoError(t, err)
	return res
}

// materializeAndClassify pushes the generated members through the memory
// backend and classifies what comes back.
func materializeAndClassify(t *testing.T, res *Result) *model.PiperackStructure {
	t.Helper()
	snap, err := backend.Materialize(context.Background(), backend.NewMemory(), nil, res.Members())
	require.NoError(t, err)
	require.Zero(t, snap.Skipped)
	return Classify(snap.Beams, res.ClassifyInput())
}

func TestGenerate_SmallRack(t *testing.T) {
	res := generate(t, smallRackConfig())

	require.Len(t, res.Portals, 3)
	for _, p := range res.Portals {
		assert.Len(t, p.Columns, 2)
		assert.Len(t, p.Pedestals, 2)
		assert.Len(t, p.Beams, 2)
	}
	assert.Len(t, res.LongBeams, 4)
	assert.Empty(t, res.Braces())
	assert.Empty(t, res.Brackets)
	assert.Empty(t, res.IntTransverseBeams)
	assert.Len(t, res.Members(), 22)
	assert.Len(t, res.Nodes(), 24)
	assert.Equal(t, 8.0, res.MaxPortalSpacing)

	third := res.Portals[2]
	assert.Equal(t, model.Point3D{X: 6, Y: 6, Z: 16}, third.Columns[1].End)
	assert.Equal(t, model.Point3D{X: 0, Y: -2, Z: 16}, third.Pedestals[0].Start)
}

func TestGenerate_NodesAreUniqueAndSupportsAtPedestals(t *testing.T) {
	res := generate(t, smallRackConfig())

	seen := map[model.PointKey]bool{}
	supports := 0
	for _, n := range res.Nodes() {
		assert.False(t, seen[n.Point.Key()], "duplicate node %s", n.Point)
		seen[n.Point.Key()] = true
		if n.Support {
			supports++
			assert.Equal(t, -2.0, n.Point.Y)
		}
	}
	assert.Equal(t, 6, supports)
}

func TestGenerate_ClassificationRoundTrip(t *testing.T) {
	res := generate(t, smallRackConfig())
	s := materializeAndClassify(t, res)

	assert.Len(t, s.MainColumns, 6)
	assert.Len(t, s.PortalBeams, 6)
	assert.Len(t, s.LongBeams, 4)
	assert.Len(t, s.Concrete, 6)
	assert.Empty(t, s.StubColumns)
	assert.Empty(t, s.Unclassified)

	require.Len(t, s.Tiers, 2)
	assert.Equal(t, 3.0, s.Tiers[0].Elevation())
	assert.Len(t, s.Tiers[0].Beams, 3)
	assert.Len(t, s.Tiers[1].Beams, 3)

	assert.Len(t, s.PortalBeamDict[model.CoordOf(8)], 2)
	assert.Len(t, s.PortalTierBeams[model.CoordOf(8)][model.CoordOf(3)], 1)
}

func TestGenerate_CentrelineOffsets(t *testing.T) {
	cfg := smallRackConfig()
	cfg.ColumnOffsets = []float64{3, -3}
	cfg.PortalOffsets = []float64{-8, 0, 8}
	res := generate(t, cfg)

	assert.Equal(t, []float64{-3, 3}, res.Config.ColumnOffsets)
	assert.Equal(t, model.Point3D{X: -3, Y: -2, Z: -8}, res.Portals[0].Pedestals[0].Start)

	s := materializeAndClassify(t, res)
	assert.Len(t, s.MainColumns, 6)
	assert.Len(t, s.PortalBeams, 6)
	assert.Len(t, s.LongBeams, 4)
	assert.Empty(t, s.Unclassified)
}

func TestGenerate_BaseOffsetIsGlobalised(t *testing.T) {
	cfg := smallRackConfig()
	cfg.Base = model.Point3D{X: 10, Y: 100, Z: 5}
	res := generate(t, cfg)

	assert.Equal(t, model.Point3D{X: 10, Y: 98, Z: 5}, res.Portals[0].Pedestals[0].Start)
	assert.Equal(t, model.Point3D{X: 16, Y: 106, Z: 21}, res.Portals[2].Columns[1].End)

	s := materializeAndClassify(t, res)
	assert.Len(t, s.MainColumns, 6)
	assert.Len(t, s.PortalBeams, 6)
	assert.Len(t, s.LongBeams, 4)
	assert.Len(t, s.Concrete, 6)
	assert.Empty(t, s.Unclassified)
	assert.NotNil(t, s.TierAt(103))
}

func TestGenerate_DefaultRackEveryCategory(t *testing.T) {
	res := generate(t, model.DefaultPiperackConfig())

	assert.Len(t, res.Portals, 7)
	assert.Len(t, res.LongBeams, 72)
	assert.Len(t, res.VerticalBraces, 48)
	assert.Len(t, res.PlanBraces, 2)
	assert.Len(t, res.Brackets, 28)
	assert.Len(t, res.IntTransverseBeams, 12)
	assert.False(t, res.ExceedsExpansionBay())

	s := materializeAndClassify(t, res)
	summary := s.Summary()
	assert.Equal(t, 14, summary[model.CategoryMainColumn])
	assert.Equal(t, 42, summary[model.CategoryPortalBeam])
	assert.Equal(t, 72, summary[model.CategoryLongBeam])
	assert.Equal(t, 48, summary[model.CategoryVerticalBrace])
	assert.Equal(t, 2, summary[model.CategoryPlanBrace])
	assert.Equal(t, 28, summary[model.CategoryBracket])
	assert.Equal(t, 12, summary[model.CategoryIntTransverse])
	assert.Equal(t, 14, summary[model.CategoryConcrete])
	assert.Zero(t, summary[model.CategoryUnclassified])

	tier := s.TierAt(9.5)
	require.NotNil(t, tier)
	assert.True(t, tier.BracketProvision)
	assert.Len(t, tier.Brackets, 14)
	assert.Len(t, tier.IntBeams, 6)
	assert.Equal(t, model.TierFlare, s.TierAt(17.5).Type)
}

func TestGenerate_VBracing(t *testing.T) {
	res := generate(t, model.PiperackConfig{
		PortalOffsets:  []float64{0, 8},
		ColumnOffsets:  []float64{0},
		Tiers:          []model.TierConfig{{Elevation: 3}},
		BracePattern:   model.BraceV,
		BracePlacement: []bool{true},
	})

	require.Len(t, res.VerticalBraces, 2)
	assert.Equal(t, model.Point3D{Y: 3, Z: 4}, res.VerticalBraces[0].End)
	assert.Equal(t, model.Point3D{Y: 3, Z: 4}, res.VerticalBraces[1].End)
	assert.Equal(t, model.Point3D{Z: 8}, res.VerticalBraces[1].Start)
	// a single column line has no plan diagonal
	assert.Empty(t, res.PlanBraces)
}

func TestGenerate_ExpansionBay(t *testing.T) {
	cfg := smallRackConfig()
	cfg.PortalOffsets = []float64{0, 8, 20}
	cfg.MaxExpansionBay = 8

	res := generate(t, cfg)
	assert.Equal(t, 12.0, res.MaxPortalSpacing)
	assert.True(t, res.ExceedsExpansionBay())

	cfg.MaxExpansionBay = 0
	assert.False(t, generate(t, cfg).ExceedsExpansionBay())
}

func TestGenerate_NormalisesInputs(t *testing.T) {
	cfg := smallRackConfig()
	cfg.PortalOffsets = []float64{16, 0, 8, 8.0000001}
	cfg.Tiers = []model.TierConfig{{Elevation: 6}, {Elevation: 3, Type: model.TierFlare}, {Elevation: 3}}

	res := generate(t, cfg)
	assert.Equal(t, []float64{0, 8, 16}, res.Config.PortalOffsets)
	require.Len(t, res.Config.Tiers, 2)
	assert.Equal(t, model.TierFlare, res.Config.Tiers[0].Type)
	assert.Equal(t, model.BraceX, res.Config.BracePattern)
}

func TestGenerate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.PiperackConfig)
	}{
		{"no columns", func(c *model.PiperackConfig) { c.ColumnOffsets = nil }},
		{"no portals", func(c *model.PiperackConfig) { c.PortalOffsets = nil }},
		{"negative long beam elevation", func(c *model.PiperackConfig) { c.LongBeamElevations = []float64{-1} }},
		{"negative pedestal", func(c *model.PiperackConfig) { c.PedestalHeight = -1 }},
		{"tier at base", func(c *model.PiperackConfig) { c.Tiers = []model.TierConfig{{Elevation: 0}} }},
		{"unknown brace pattern", func(c *model.PiperackConfig) { c.BracePattern = "K" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallRackConfig()
			tt.mutate(&cfg)
			_, err := NewGenerator(cfg).Generate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGenerate_SharedTemplateIsNotAliased(t *testing.T) {
	res := generate(t, smallRackConfig())
	res.Portals[0].Columns[0].End.Y = 99

	assert.Equal(t, 6.0, res.Portals[1].Columns[0].End.Y)
	assert.Equal(t, 6.0, res.Portals[2].Columns[0].End.Y)
}
