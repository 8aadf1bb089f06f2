package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piwi3910/RackGen/internal/model"
)

// Snapshot is the backend's authoritative view of the model, with
// coordinates rounded on ingress.
type Snapshot struct {
	Beams map[int]model.Beam3D
	Nodes map[int]model.Point3D

	nodeIDs map[model.PointKey]int
	// Skipped counts members that could not be pushed or read back.
	Skipped int
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Beams:   map[int]model.Beam3D{},
		Nodes:   map[int]model.Point3D{},
		nodeIDs: map[model.PointKey]int{},
	}
}

// NodeID returns the node at p.
func (s *Snapshot) NodeID(p model.Point3D) (int, bool) {
	id, ok := s.nodeIDs[p.Key()]
	return id, ok
}

// Materialize pushes members into the backend and reads the resulting
// model back. Members that fail to push are logged and skipped. When cache
// is non-nil, members carrying a profile name get it assigned.
func Materialize(ctx context.Context, b Backend, cache *ProfileCache, members []model.Beam3D) (*Snapshot, error) {
	nodes := map[model.PointKey]int{}
	nodeFor := func(p model.Point3D) (int, error) {
		k := p.Key()
		if id, ok := nodes[k]; ok {
			return id, nil
		}
		id, err := b.AddNode(ctx, k.Point())
		if err != nil {
			return 0, err
		}
		nodes[k] = id
		return id, nil
	}

	skipped := 0
	for i, m := range members {
		s, err := nodeFor(m.Start)
		if err == nil {
			var e int
			if e, err = nodeFor(m.End); err == nil {
				var id int
				if id, err = b.AddBeam(ctx, s, e); err == nil && cache != nil && m.Profile != "" {
					err = assignByName(ctx, b, cache, id, m.Profile)
				}
			}
		}
		if err != nil {
			skipped++
			slog.Warn("backend: member not materialized", "index", i, "start", m.Start.String(), "end", m.End.String(), "error", err)
		}
	}

	snap, err := ReadSnapshot(ctx, b)
	if err != nil {
		return nil, err
	}
	snap.Skipped += skipped
	slog.Debug("backend: materialized", "members", len(members), "beams", len(snap.Beams), "nodes", len(snap.Nodes), "skipped", snap.Skipped)
	return snap, nil
}

func assignByName(ctx context.Context, b Property, cache *ProfileCache, beamID int, name string) error {
	ref, err := cache.Get(ctx, name)
	if err != nil {
		return err
	}
	return b.AssignProfile(ctx, beamID, ref)
}

// ReadSnapshot reads every node and beam from the backend. A failing list
// query aborts; a failing per-entity query skips that entity.
func ReadSnapshot(ctx context.Context, b Geometry) (*Snapshot, error) {
	snap := newSnapshot()

	nodeIDs, err := b.NodeList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	for _, id := range nodeIDs {
		p, err := b.NodeIncidence(ctx, id)
		if err != nil {
			slog.Warn("backend: skipping node", "id", id, "error", err)
			continue
		}
		p = p.Round()
		snap.Nodes[id] = p
		if _, dup := snap.nodeIDs[p.Key()]; !dup {
			snap.nodeIDs[p.Key()] = id
		}
	}

	beamIDs, err := b.BeamList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list beams: %w", err)
	}
	for _, id := range beamIDs {
		s, e, err := b.BeamIncidence(ctx, id)
		if err != nil {
			slog.Warn("backend: skipping beam", "id", id, "error", err)
			snap.Skipped++
			continue
		}
		sp, okS := snap.Nodes[s]
		ep, okE := snap.Nodes[e]
		if !okS || !okE {
			slog.Warn("backend: beam references unknown node", "id", id, "start", s, "end", e)
			snap.Skipped++
			continue
		}
		beam := model.NewBeam3D(sp, ep)
		beam.ID = id
		snap.Beams[id] = beam
	}
	return snap, nil
}
