package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/RackGen/internal/model"
)

// Junction is a point where members meet away from a shared end node.
type Junction struct {
	Point model.Point3D
	// Hosts are the members the point lies strictly inside.
	Hosts []model.Beam3D
}

// Junctions lists the points where a member end lands part-way along another
// member, or where two members cross inside both of them. The generator does
// not split hosts at these points; a backend that only connects members at
// shared nodes has to intersect them itself.
func (r *Result) Junctions() []Junction {
	return Junctions(r.Members())
}

// Junctions finds the mid-member connections between members. Parallel pairs
// are ignored.
func Junctions(members []model.Beam3D) []Junction {
	byKey := map[model.PointKey]*Junction{}
	hosted := map[model.PointKey]map[int]bool{}
	var order []model.PointKey

	addHost := func(p model.Point3D, i int) {
		k := p.Key()
		j, ok := byKey[k]
		if !ok {
			j = &Junction{Point: p}
			byKey[k] = j
			hosted[k] = map[int]bool{}
			order = append(order, k)
		}
		if !hosted[k][i] {
			hosted[k][i] = true
			j.Hosts = append(j.Hosts, members[i])
		}
	}

	for i := range members {
		for j := i + 1; j < len(members); j++ {
			s, t, ok := closestParams(members[i], members[j])
			if !ok {
				continue
			}
			p := members[i].Start.Add(members[i].DirectionVector().Scale(s)).Round()
			q := members[j].Start.Add(members[j].DirectionVector().Scale(t)).Round()
			if !p.Equal(q) {
				continue
			}
			inI := interior(p, members[i])
			inJ := interior(p, members[j])
			if inI {
				addHost(p, i)
			}
			if inJ {
				addHost(p, j)
			}
		}
	}

	out := make([]Junction, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	sort.SliceStable(out, func(a, b int) bool {
		pa, pb := out[a].Point, out[b].Point
		if pa.Z != pb.Z {
			return pa.Z < pb.Z
		}
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})
	return out
}

func interior(p model.Point3D, b model.Beam3D) bool {
	return !p.Equal(b.Start.Round()) && !p.Equal(b.End.Round())
}

// closestParams returns the parameters along a and b of their closest points,
// each clamped to the segment.
func closestParams(a, b model.Beam3D) (s, t float64, ok bool) {
	d1, d2 := a.DirectionVector(), b.DirectionVector()
	r := a.Start.Sub(b.Start)
	aa, ee := dot(d1, d1), dot(d2, d2)
	if aa == 0 || ee == 0 {
		return 0, 0, false
	}
	bb, c, f := dot(d1, d2), dot(d1, r), dot(d2, r)
	denom := aa*ee - bb*bb
	if denom <= 1e-12*aa*ee {
		return 0, 0, false
	}
	s = clamp01((bb*f - c*ee) / denom)
	t = (bb*s + f) / ee
	switch {
	case t < 0:
		t = 0
		s = clamp01(-c / aa)
	case t > 1:
		t = 1
		s = clamp01((bb - c) / aa)
	}
	return s, t, true
}

func dot(a, b model.Point3D) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
