// Package backend defines the structural-analysis collaborator the rack
// tooling drives, with an in-memory implementation and the round-trip
// helpers built on top of it.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/piwi3910/RackGen/internal/model"
)

var (
	// ErrAnalysisTimeout is returned when an analysis run outlasts the wait
	// ceiling.
	ErrAnalysisTimeout = errors.New("analysis did not finish before the wait ceiling")
	// ErrNotFound is wrapped by backends for unknown node, beam or profile IDs.
	ErrNotFound = errors.New("not found")
	// ErrNoResults is wrapped when design results are requested before an
	// analysis has completed.
	ErrNoResults = errors.New("no design results available")
)

// Geometry creates and reads back nodes and beams.
type Geometry interface {
	AddNode(ctx context.Context, p model.Point3D) (int, error)
	AddBeam(ctx context.Context, startNode, endNode int) (int, error)
	NodeList(ctx context.Context) ([]int, error)
	BeamList(ctx context.Context) ([]int, error)
	BeamIncidence(ctx context.Context, beamID int) (startNode, endNode int, err error)
	NodeIncidence(ctx context.Context, nodeID int) (model.Point3D, error)
}

// Property manages section profiles.
type Property interface {
	CreateProfileFromCatalog(ctx context.Context, country int, name string) (int, error)
	AssignProfile(ctx context.Context, beamID, profileRef int) error
	ProfileName(ctx context.Context, beamID int) (string, error)
}

// Loads applies loads to the active load case.
type Loads interface {
	SetActiveLoadCase(ctx context.Context, c model.LoadCase) error
	AddNodalLoad(ctx context.Context, nodeIDs []int, l model.NodalLoad) error
	AddMemberConcentratedForce(ctx context.Context, beamIDs []int, l model.ConcentratedLoad) error
	AddMemberUniformForce(ctx context.Context, beamIDs []int, l model.UniformLoad) error
	AddMemberConcentratedMoment(ctx context.Context, beamIDs []int, l model.ConcentratedMoment) error
}

// Output runs the analysis and returns steel design results.
type Output interface {
	IsAnalysisAvailable(ctx context.Context) (bool, error)
	IsAnalyzing(ctx context.Context) (bool, error)
	RunAnalysis(ctx context.Context) error
	SteelDesignResult(ctx context.Context, beamID int) (DesignResult, error)
}

// Backend is the full structural model surface.
type Backend interface {
	Geometry
	Property
	Loads
	Output
}

// DesignResult is the steel design check for one member.
type DesignResult struct {
	CriticalRatio   float64   `json:"critical_ratio"`
	AllowableRatio  float64   `json:"allowable_ratio"`
	DesignForces    []float64 `json:"design_forces,omitempty"`
	KLByR           float64   `json:"kl_by_r,omitempty"`
	GoverningClause string    `json:"governing_clause,omitempty"`
}

// Failed reports whether the critical ratio reaches the allowable ratio.
func (r DesignResult) Failed() bool {
	return r.AllowableRatio > 0 && r.CriticalRatio >= r.AllowableRatio
}

// BackendError records which backend call failed and for which entity.
type BackendError struct {
	Op  string
	ID  int
	Err error
}

func (e *BackendError) Error() string {
	if e.ID == model.UnassignedID {
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("backend %s %d: %v", e.Op, e.ID, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func opError(op string, id int, err error) error {
	return &BackendError{Op: op, ID: id, Err: err}
}
