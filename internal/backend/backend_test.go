package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackGen/internal/model"
)

func portalMembers() []model.Beam3D {
	return []model.Beam3D{
		model.NewColumn(model.Point3D{}, 6).WithProfile("ISMB 300"),
		model.NewColumn(model.Point3D{X: 6}, 6).WithProfile("ISMB 300"),
		model.NewBeam3D(model.Point3D{Y: 6}, model.Point3D{X: 6, Y: 6}).WithProfile("ISMB 200"),
		// start rounds onto (0, 3, 0)
		model.NewBeam3D(model.Point3D{Y: 3.0000004}, model.Point3D{X: 6, Y: 3}),
	}
}

func TestMaterialize_MergesNodesAndAssignsProfiles(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	cache := NewProfileCache(mem)

	snap, err := Materialize(ctx, mem, cache, portalMembers())
	require.NoError(t, err)

	assert.Len(t, snap.Beams, 4)
	assert.Len(t, snap.Nodes, 6)
	assert.Zero(t, snap.Skipped)
	assert.Equal(t, 2, cache.Len())

	id, ok := snap.NodeID(model.Point3D{X: 6, Y: 6})
	require.True(t, ok)
	assert.Equal(t, model.Point3D{X: 6, Y: 6}, snap.Nodes[id])

	name, err := mem.ProfileName(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "ISMB 200", name)

	_, err = mem.ProfileName(ctx, 4)
	assert.Error(t, err)
}

func TestMaterialize_SkipsFailedMembers(t *testing.T) {
	mem := NewMemory()
	members := []model.Beam3D{
		model.NewColumn(model.Point3D{}, 3),
		model.NewBeam3D(model.Point3D{X: 1}, model.Point3D{X: 1}),
	}

	snap, err := Materialize(context.Background(), mem, nil, members)
	require.NoError(t, err)
	assert.Len(t, snap.Beams, 1)
	assert.Equal(t, 1, snap.Skipped)
}

func TestMaterialize_ListFailureAborts(t *testing.T) {
	mem := NewMemory()
	mem.FailOps["BeamList"] = errors.New("busy")

	_, err := Materialize(context.Background(), mem, nil, portalMembers())
	require.Error(t, err)

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "BeamList", be.Op)
}

func TestProfileCache_CreatesOnce(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	cache := NewProfileCache(mem)

	a, err := cache.Get(ctx, "ISMB 200")
	require.NoError(t, err)
	b, err := cache.Get(ctx, "ISMB 200")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, cache.Len())

	_, err = cache.Get(ctx, "NOPE 1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, cache.Len())
}

func TestBackendError_Message(t *testing.T) {
	err := opError("SteelDesignResult", 12, ErrNoResults)
	assert.Equal(t, "backend SteelDesignResult 12: no design results available", err.Error())
	assert.ErrorIs(t, err, ErrNoResults)

	err = opError("NodeList", model.UnassignedID, errors.New("down"))
	assert.Equal(t, "backend NodeList: down", err.Error())
}

func TestDesignResult_Failed(t *testing.T) {
	assert.True(t, DesignResult{CriticalRatio: 1.0, AllowableRatio: 1.0}.Failed())
	assert.False(t, DesignResult{CriticalRatio: 0.99, AllowableRatio: 1.0}.Failed())
	assert.False(t, DesignResult{CriticalRatio: 2}.Failed())
}

func tierWithBeams(t *testing.T, snap *Snapshot) *model.Tier {
	t.Helper()
	tier := model.NewTier(model.Point3D{Y: 6}, model.TierPiping)
	for _, b := range snap.Beams {
		if b.Start.EqY(b.End) && b.Start.Y == 6 {
			tier.AddBeam(b)
		}
	}
	require.Len(t, tier.Beams, 1)
	return tier
}

func TestApplyTierLoads_DispatchesEveryVariant(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	snap, err := Materialize(ctx, mem, nil, portalMembers())
	require.NoError(t, err)
	tier := tierWithBeams(t, snap)

	wind := model.NewWindLoad()
	wind.Windward, wind.Leeward = 1.2, -0.8
	require.NoError(t, tier.AddLoads(
		model.NewUniformLoad(model.LoadCaseOperatingLoad).WithForce(-0.4),
		model.NewConcentratedLoad(model.LoadCaseEmptyLoad).WithForce(-2),
		model.ConcentratedMoment{Case: model.LoadCaseOperatingLoad, Direction: model.DirectionGZ, Moment: 1},
		model.NodalLoad{Case: model.LoadCaseWindTierGX}.WithFX(1.42),
		wind,
	))

	n, err := ApplyTierLoads(ctx, mem, snap, tier)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	applied := mem.AppliedLoads()
	// wind band splits into windward and leeward calls
	require.Len(t, applied, 6)

	start, _ := snap.NodeID(model.Point3D{Y: 6})
	end, _ := snap.NodeID(model.Point3D{X: 6, Y: 6})
	var nodal, windward, leeward bool
	for _, a := range applied {
		nl, ok := a.Load.(model.NodalLoad)
		if !ok {
			assert.Equal(t, []int{tier.Beams[0].ID}, a.Targets)
			continue
		}
		switch {
		case nl.FX == 1.42:
			nodal = true
			assert.Equal(t, []int{start, end}, a.Targets)
		case nl.FX == 1.2:
			windward = true
			assert.Equal(t, []int{start}, a.Targets)
		case nl.FX == -0.8:
			leeward = true
			assert.Equal(t, []int{end}, a.Targets)
		}
	}
	assert.True(t, nodal)
	assert.True(t, windward)
	assert.True(t, leeward)
}

func TestApplyTierLoads_ContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	snap, err := Materialize(ctx, mem, nil, portalMembers())
	require.NoError(t, err)
	tier := tierWithBeams(t, snap)
	require.NoError(t, tier.AddLoads(
		model.NewUniformLoad(model.LoadCaseOperatingLoad).WithForce(-0.4),
		model.NewConcentratedLoad(model.LoadCaseOperatingLoad).WithForce(-2),
	))
	mem.FailOps["AddMemberUniformForce"] = errors.New("rejected")

	n, err := ApplyTierLoads(ctx, mem, snap, tier)
	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, mem.AppliedLoads(), 1)
}

func TestWaitForAnalysis(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.AnalysisPolls = 3

	require.NoError(t, Analyze(ctx, mem, time.Millisecond, time.Second))
	ok, err := mem.IsAnalysisAvailable(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWaitForAnalysis_Timeout(t *testing.T) {
	mem := NewMemory()
	mem.AnalysisPolls = 1000
	require.NoError(t, mem.RunAnalysis(context.Background()))

	err := WaitForAnalysis(context.Background(), mem, 5*time.Millisecond, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrAnalysisTimeout)
}

func TestWaitForAnalysis_Cancelled(t *testing.T) {
	mem := NewMemory()
	mem.AnalysisPolls = 1000
	require.NoError(t, mem.RunAnalysis(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WaitForAnalysis(ctx, mem, time.Second, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDesigner(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.Ratio = SpanRatio(10)
	_, err := Materialize(ctx, mem, nil, portalMembers())
	require.NoError(t, err)

	d := NewDesigner(mem)
	require.NoError(t, d.AssignProfileByName(ctx, []int{1, 2}, "ISMB 200"))
	require.NoError(t, d.RunAnalysis(time.Millisecond, time.Second)(ctx))

	r, err := d.CriticalRatio(ctx, 1)
	require.NoError(t, err)
	// 10 * 6 m / 24.17 kg/m
	assert.InDelta(t, 60/24.17, r, 1e-9)

	err = d.AssignProfileByName(ctx, []int{1, 99}, "ISMB 200")
	assert.ErrorIs(t, err, ErrNotFound)

	mem.FailDesign[2] = true
	_, err = d.CriticalRatio(ctx, 2)
	assert.ErrorIs(t, err, ErrNoResults)
}
