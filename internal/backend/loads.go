package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/piwi3910/RackGen/internal/model"
)

// ApplyTierLoads pushes every load attached to a tier. Member loads go to
// the tier's portal and intermediate beams, nodal loads to every distinct
// node of its portal beams, and wind loads to the windward start and
// leeward end nodes of each portal beam. Failed calls are logged and
// collected; the remaining loads are still applied.
func ApplyTierLoads(ctx context.Context, b Loads, snap *Snapshot, tier *model.Tier) (int, error) {
	members := append(model.BeamIDs(tier.Beams), model.BeamIDs(tier.IntBeams)...)
	allNodes, startNodes, endNodes := tierNodes(snap, tier.Beams)

	applied := 0
	var errs []error
	for _, l := range tier.AllLoads() {
		c := model.CaseOf(l)
		if err := b.SetActiveLoadCase(ctx, c); err != nil {
			errs = append(errs, err)
			slog.Warn("backend: load case not activated", "case", c.String(), "error", err)
			continue
		}

		var err error
		switch v := l.(type) {
		case model.UniformLoad:
			err = b.AddMemberUniformForce(ctx, members, v)
		case model.ConcentratedLoad:
			err = b.AddMemberConcentratedForce(ctx, members, v)
		case model.ConcentratedMoment:
			err = b.AddMemberConcentratedMoment(ctx, members, v)
		case model.NodalLoad:
			err = b.AddNodalLoad(ctx, allNodes, v)
		case model.WindLoad:
			err = applyWind(ctx, b, v, startNodes, endNodes)
		default:
			panic(fmt.Sprintf("backend: unhandled load type %T", l))
		}
		if err != nil {
			errs = append(errs, err)
			slog.Warn("backend: load not applied", "case", c.String(), "kind", l.Kind().String(), "error", err)
			continue
		}
		applied++
	}
	return applied, errors.Join(errs...)
}

func applyWind(ctx context.Context, b Loads, w model.WindLoad, startNodes, endNodes []int) error {
	windward := model.NodalLoad{Case: w.Case}
	leeward := model.NodalLoad{Case: w.Case}
	if w.Case.AlongZ() {
		windward, leeward = windward.WithFZ(w.Windward), leeward.WithFZ(w.Leeward)
	} else {
		windward, leeward = windward.WithFX(w.Windward), leeward.WithFX(w.Leeward)
	}

	var errs []error
	if w.Windward != 0 && len(startNodes) > 0 {
		errs = append(errs, b.AddNodalLoad(ctx, startNodes, windward))
	}
	if w.Leeward != 0 && len(endNodes) > 0 {
		errs = append(errs, b.AddNodalLoad(ctx, endNodes, leeward))
	}
	return errors.Join(errs...)
}

func tierNodes(snap *Snapshot, beams []model.Beam3D) (all, starts, ends []int) {
	seenAll, seenStart, seenEnd := map[int]bool{}, map[int]bool{}, map[int]bool{}
	add := func(list *[]int, seen map[int]bool, id int) {
		if !seen[id] {
			seen[id] = true
			*list = append(*list, id)
		}
	}
	for _, beam := range beams {
		s, okS := snap.NodeID(beam.Start)
		e, okE := snap.NodeID(beam.End)
		if okS {
			add(&all, seenAll, s)
			add(&starts, seenStart, s)
		}
		if okE {
			add(&all, seenAll, e)
			add(&ends, seenEnd, e)
		}
	}
	sort.Ints(all)
	sort.Ints(starts)
	sort.Ints(ends)
	return all, starts, ends
}
