package engine

import (
	"log/slog"
	"math"
	"sort"

	"github.com/piwi3910/RackGen/internal/model"
)

// ClassifyInput carries the parametric sets a snapshot is classified
// against. Offsets and elevations are relative to Base.
type ClassifyInput struct {
	Base               model.Point3D
	ColumnOffsets      []float64 // x
	TierElevations     []float64 // y
	LongBeamElevations []float64 // y
	PortalOffsets      []float64 // z

	// Tiers optionally supplies type and flags for the tier elevations.
	Tiers []model.TierConfig
}

type coordSet map[float64]bool

func newCoordSet(base float64, offsets []float64) coordSet {
	s := coordSet{}
	for _, v := range offsets {
		s[model.Round(base+v)] = true
	}
	return s
}

func (s coordSet) has(v float64) bool { return s[model.Round(v)] }

// Classify sorts a snapshot of materialized members into structural
// buckets. Coordinates are compared after rounding to point precision and
// members are visited in ascending ID order, so the result is stable for a
// given snapshot.
func Classify(beams map[int]model.Beam3D, in ClassifyInput) *model.PiperackStructure {
	s := model.NewPiperackStructure()

	base := in.Base.Round()
	columnX := newCoordSet(base.X, in.ColumnOffsets)
	tierY := newCoordSet(base.Y, in.TierElevations)
	longY := newCoordSet(base.Y, in.LongBeamElevations)
	portalZ := newCoordSet(base.Z, in.PortalOffsets)

	minX, maxX := span(base.X, in.ColumnOffsets)
	minZ, maxZ := span(base.Z, in.PortalOffsets)

	elevations := append([]float64(nil), in.TierElevations...)
	sort.Float64s(elevations)
	for _, e := range elevations {
		y := model.Round(base.Y + e)
		if s.TierAt(y) != nil {
			continue
		}
		t := model.NewTier(model.Point3D{X: base.X, Y: y, Z: base.Z}, model.TierPiping)
		for _, tc := range in.Tiers {
			if model.Round(tc.Elevation) == model.Round(e) {
				t.Type = tc.Type
				t.IntermediateTransverseBeam = tc.IntermediateTransverseBeam
				t.BracketProvision = tc.BracketProvision
				break
			}
		}
		s.Tiers = append(s.Tiers, t)
	}

	ids := make([]int, 0, len(beams))
	for id := range beams {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		b := beams[id].Rounded()
		b.ID = id
		st, en := b.Start, b.End

		if math.Min(st.Y, en.Y) < base.Y {
			s.Concrete = append(s.Concrete, b)
			continue
		}

		eqX, eqY, eqZ := st.EqX(en), st.EqY(en), st.EqZ(en)
		switch {
		case !eqY && eqX && eqZ:
			if portalZ.has(st.Z) {
				s.MainColumns = append(s.MainColumns, b)
			} else {
				s.StubColumns = append(s.StubColumns, b)
			}

		case !eqY && eqX && !eqZ:
			s.VerticalBraces = append(s.VerticalBraces, b)

		case eqY && !eqX && !eqZ:
			s.PlanBraces = append(s.PlanBraces, b)

		case eqY && eqX && !eqZ:
			switch {
			case longY.has(st.Y) && columnX.has(st.X):
				s.LongBeams = append(s.LongBeams, b)
			case tierY.has(st.Y) && !columnX.has(st.X):
				s.IntLongBeams = append(s.IntLongBeams, b)
			default:
				unclassified(s, b, "longitudinal member off the beam grid")
			}

		case eqY && eqZ && !eqX:
			classifyTransverse(s, b, tierY, portalZ, minX, maxX, minZ, maxZ)

		default:
			unclassified(s, b, "no axis-aligned orientation")
		}
	}
	return s
}

func classifyTransverse(s *model.PiperackStructure, b model.Beam3D, tierY, portalZ coordSet, minX, maxX, minZ, maxZ float64) {
	y, z := b.Start.Y, b.Start.Z
	if z < minZ || z > maxZ || !tierY.has(y) {
		unclassified(s, b, "transverse member off the tier grid")
		return
	}
	tier := s.TierAt(y)

	if !portalZ.has(z) {
		s.IntTransverseBeams[b.ID] = b
		tier.AddIntBeam(b)
		return
	}

	if math.Min(b.Start.X, b.End.X) < minX || math.Max(b.Start.X, b.End.X) > maxX {
		s.Brackets = append(s.Brackets, b)
		tier.AddBracket(b)
		return
	}

	s.PortalBeams[b.ID] = b
	zc, yc := model.CoordOf(z), model.CoordOf(y)
	s.PortalBeamDict[zc] = append(s.PortalBeamDict[zc], b.ID)
	if s.PortalTierBeams[zc] == nil {
		s.PortalTierBeams[zc] = map[model.Coord][]int{}
	}
	s.PortalTierBeams[zc][yc] = append(s.PortalTierBeams[zc][yc], b.ID)
	tier.AddBeam(b)
}

func unclassified(s *model.PiperackStructure, b model.Beam3D, reason string) {
	slog.Debug("classify: member left unclassified", "id", b.ID, "reason", reason,
		"start", b.Start.String(), "end", b.End.String())
	s.Unclassified = append(s.Unclassified, b)
}

func span(base float64, offsets []float64) (lo, hi float64) {
	if len(offsets) == 0 {
		return model.Round(base), model.Round(base)
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range offsets {
		g := model.Round(base + v)
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
	}
	return lo, hi
}

// GroupBeamsByY buckets beams by the rounded elevation of their start point.
func GroupBeamsByY(beams []model.Beam3D) map[model.Coord][]model.Beam3D {
	out := map[model.Coord][]model.Beam3D{}
	for _, b := range beams {
		k := model.CoordOf(b.Start.Y)
		out[k] = append(out[k], b)
	}
	return out
}

// GroupBeamsByZ buckets beams by the rounded z of their start point.
func GroupBeamsByZ(beams []model.Beam3D) map[model.Coord][]model.Beam3D {
	out := map[model.Coord][]model.Beam3D{}
	for _, b := range beams {
		k := model.CoordOf(b.Start.Z)
		out[k] = append(out[k], b)
	}
	return out
}
