package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/piwi3910/RackGen/internal/model"
)

// RatioFunc computes a member's critical ratio for a profile.
type RatioFunc func(b model.Beam3D, profile string) float64

// SpanRatio returns a RatioFunc proportional to span over section weight,
// so heavier profiles give lower ratios. Unknown profiles rate at zero.
func SpanRatio(k float64) RatioFunc {
	return func(b model.Beam3D, profile string) float64 {
		w, err := model.SectionWeight(profile)
		if err != nil || w == 0 {
			return 0
		}
		return k * b.Length() / w
	}
}

// AppliedLoad is one load call recorded by the memory backend.
type AppliedLoad struct {
	Case    model.LoadCase
	Targets []int
	Load    model.Load
}

// Memory is an in-process Backend. Nodes are merged on their rounded key,
// design ratios come from Ratio, and failures can be injected per
// operation or per beam.
type Memory struct {
	mu sync.Mutex

	nodes     map[int]model.Point3D
	nodeByKey map[model.PointKey]int
	beams     map[int][2]int
	nextNode  int
	nextBeam  int

	profiles    map[int]string
	nextProfile int
	assigned    map[int]int

	activeCase model.LoadCase
	applied    []AppliedLoad

	// Ratio supplies design ratios. Nil means no results are available.
	Ratio          RatioFunc
	AllowableRatio float64
	// AnalysisPolls is how many IsAnalyzing calls report true after
	// RunAnalysis.
	AnalysisPolls int
	// FailOps makes every call of the named operation fail.
	FailOps map[string]error
	// FailDesign makes SteelDesignResult fail for the listed beams.
	FailDesign map[int]bool

	pending  int
	analyzed bool
	runs     int
}

func NewMemory() *Memory {
	return &Memory{
		nodes:          map[int]model.Point3D{},
		nodeByKey:      map[model.PointKey]int{},
		beams:          map[int][2]int{},
		nextNode:       1,
		nextBeam:       1,
		profiles:       map[int]string{},
		nextProfile:    1,
		assigned:       map[int]int{},
		AllowableRatio: 1.0,
		FailOps:        map[string]error{},
		FailDesign:     map[int]bool{},
	}
}

func (m *Memory) fail(op string, id int) error {
	if err, ok := m.FailOps[op]; ok {
		return opError(op, id, err)
	}
	return nil
}

func (m *Memory) AddNode(_ context.Context, p model.Point3D) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddNode", model.UnassignedID); err != nil {
		return 0, err
	}
	k := p.Key()
	if id, ok := m.nodeByKey[k]; ok {
		return id, nil
	}
	id := m.nextNode
	m.nextNode++
	m.nodes[id] = k.Point()
	m.nodeByKey[k] = id
	return id, nil
}

func (m *Memory) AddBeam(_ context.Context, startNode, endNode int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddBeam", model.UnassignedID); err != nil {
		return 0, err
	}
	for _, n := range []int{startNode, endNode} {
		if _, ok := m.nodes[n]; !ok {
			return 0, opError("AddBeam", n, fmt.Errorf("node %w", ErrNotFound))
		}
	}
	if startNode == endNode {
		return 0, opError("AddBeam", startNode, model.ErrDegenerateLine)
	}
	id := m.nextBeam
	m.nextBeam++
	m.beams[id] = [2]int{startNode, endNode}
	return id, nil
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *Memory) NodeList(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("NodeList", model.UnassignedID); err != nil {
		return nil, err
	}
	return sortedKeys(m.nodes), nil
}

func (m *Memory) BeamList(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("BeamList", model.UnassignedID); err != nil {
		return nil, err
	}
	return sortedKeys(m.beams), nil
}

func (m *Memory) BeamIncidence(_ context.Context, beamID int) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("BeamIncidence", beamID); err != nil {
		return 0, 0, err
	}
	inc, ok := m.beams[beamID]
	if !ok {
		return 0, 0, opError("BeamIncidence", beamID, ErrNotFound)
	}
	return inc[0], inc[1], nil
}

func (m *Memory) NodeIncidence(_ context.Context, nodeID int) (model.Point3D, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("NodeIncidence", nodeID); err != nil {
		return model.Point3D{}, err
	}
	p, ok := m.nodes[nodeID]
	if !ok {
		return model.Point3D{}, opError("NodeIncidence", nodeID, ErrNotFound)
	}
	return p, nil
}

func (m *Memory) CreateProfileFromCatalog(_ context.Context, country int, name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateProfileFromCatalog", model.UnassignedID); err != nil {
		return 0, err
	}
	if _, ok := model.FindSection(name); !ok {
		return 0, opError("CreateProfileFromCatalog", country, fmt.Errorf("section %q: %w", name, ErrNotFound))
	}
	ref := m.nextProfile
	m.nextProfile++
	m.profiles[ref] = name
	return ref, nil
}

func (m *Memory) AssignProfile(_ context.Context, beamID, profileRef int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AssignProfile", beamID); err != nil {
		return err
	}
	if _, ok := m.beams[beamID]; !ok {
		return opError("AssignProfile", beamID, ErrNotFound)
	}
	if _, ok := m.profiles[profileRef]; !ok {
		return opError("AssignProfile", beamID, fmt.Errorf("profile %d: %w", profileRef, ErrNotFound))
	}
	m.assigned[beamID] = profileRef
	return nil
}

func (m *Memory) ProfileName(_ context.Context, beamID int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ProfileName", beamID); err != nil {
		return "", err
	}
	ref, ok := m.assigned[beamID]
	if !ok {
		return "", opError("ProfileName", beamID, errors.New("no profile assigned"))
	}
	return m.profiles[ref], nil
}

func (m *Memory) SetActiveLoadCase(_ context.Context, c model.LoadCase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetActiveLoadCase", int(c)); err != nil {
		return err
	}
	m.activeCase = c
	return nil
}

func (m *Memory) record(op string, targets []int, l model.Load) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(op, model.UnassignedID); err != nil {
		return err
	}
	if m.activeCase == 0 {
		return opError(op, model.UnassignedID, errors.New("no active load case"))
	}
	m.applied = append(m.applied, AppliedLoad{
		Case:    m.activeCase,
		Targets: append([]int(nil), targets...),
		Load:    l,
	})
	return nil
}

func (m *Memory) AddNodalLoad(_ context.Context, nodeIDs []int, l model.NodalLoad) error {
	return m.record("AddNodalLoad", nodeIDs, l)
}

func (m *Memory) AddMemberConcentratedForce(_ context.Context, beamIDs []int, l model.ConcentratedLoad) error {
	return m.record("AddMemberConcentratedForce", beamIDs, l)
}

func (m *Memory) AddMemberUniformForce(_ context.Context, beamIDs []int, l model.UniformLoad) error {
	return m.record("AddMemberUniformForce", beamIDs, l)
}

func (m *Memory) AddMemberConcentratedMoment(_ context.Context, beamIDs []int, l model.ConcentratedMoment) error {
	return m.record("AddMemberConcentratedMoment", beamIDs, l)
}

// AppliedLoads returns a copy of every recorded load call.
func (m *Memory) AppliedLoads() []AppliedLoad {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AppliedLoad(nil), m.applied...)
}

func (m *Memory) IsAnalysisAvailable(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("IsAnalysisAvailable", model.UnassignedID); err != nil {
		return false, err
	}
	return m.analyzed && m.pending == 0, nil
}

func (m *Memory) IsAnalyzing(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("IsAnalyzing", model.UnassignedID); err != nil {
		return false, err
	}
	if m.pending > 0 {
		m.pending--
		return true, nil
	}
	return false, nil
}

// RunAnalysis starts an analysis. It completes after AnalysisPolls
// IsAnalyzing calls.
func (m *Memory) RunAnalysis(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("RunAnalysis", model.UnassignedID); err != nil {
		return err
	}
	m.pending = m.AnalysisPolls
	m.analyzed = true
	m.runs++
	return nil
}

// Runs returns how many analyses were started.
func (m *Memory) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

func (m *Memory) SteelDesignResult(_ context.Context, beamID int) (DesignResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SteelDesignResult", beamID); err != nil {
		return DesignResult{}, err
	}
	if m.FailDesign[beamID] {
		return DesignResult{}, opError("SteelDesignResult", beamID, ErrNoResults)
	}
	if !m.analyzed || m.pending > 0 || m.Ratio == nil {
		return DesignResult{}, opError("SteelDesignResult", beamID, ErrNoResults)
	}
	inc, ok := m.beams[beamID]
	if !ok {
		return DesignResult{}, opError("SteelDesignResult", beamID, ErrNotFound)
	}
	ref, ok := m.assigned[beamID]
	if !ok {
		return DesignResult{}, opError("SteelDesignResult", beamID, errors.New("no profile assigned"))
	}
	b := model.NewBeam3D(m.nodes[inc[0]], m.nodes[inc[1]])
	b.ID = beamID
	return DesignResult{
		CriticalRatio:   m.Ratio(b, m.profiles[ref]),
		AllowableRatio:  m.AllowableRatio,
		GoverningClause: "memory",
	}, nil
}
