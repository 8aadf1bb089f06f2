package model

import (
	"errors"
	"fmt"
	"strings"
)

// UnassignedID marks a member or node the backend has not materialized yet.
const UnassignedID = -1

// DefaultYoungsModulus is the modulus of structural steel in Pa.
const DefaultYoungsModulus = 210e9

// Material identifies the structural material of a member.
type Material int

const (
	MaterialSteel Material = iota + 1
	MaterialConcrete
	MaterialAluminum
	MaterialTimber
)

func (m Material) String() string {
	switch m {
	case MaterialSteel:
		return "Steel"
	case MaterialConcrete:
		return "Concrete"
	case MaterialAluminum:
		return "Aluminum"
	case MaterialTimber:
		return "Timber"
	default:
		return "Unknown"
	}
}

// ParseMaterial converts a case-insensitive name to a Material.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "steel":
		return MaterialSteel, nil
	case "concrete":
		return MaterialConcrete, nil
	case "aluminum", "aluminium":
		return MaterialAluminum, nil
	case "timber":
		return MaterialTimber, nil
	}
	return 0, fmt.Errorf("invalid material name %q", s)
}

// Beam3D is a structural member between two points. It is a value type:
// Shift returns a translated copy and never touches the receiver.
type Beam3D struct {
	ID             int      `json:"id"`
	Start          Point3D  `json:"start"`
	End            Point3D  `json:"end"`
	Profile        string   `json:"profile,omitempty"`
	Material       Material `json:"material,omitempty"`
	Area           float64  `json:"area,omitempty"`             // m²
	YoungsModulus  float64  `json:"youngs_modulus,omitempty"`   // Pa
	WeightPerMeter float64  `json:"weight_per_meter,omitempty"` // kg/m
}

// NewBeam3D creates an unmaterialized steel beam between two points.
func NewBeam3D(start, end Point3D) Beam3D {
	return Beam3D{
		ID:            UnassignedID,
		Start:         start,
		End:           end,
		Material:      MaterialSteel,
		YoungsModulus: DefaultYoungsModulus,
	}
}

// NewColumn creates a vertical member rising height metres from base.
func NewColumn(base Point3D, height float64) Beam3D {
	return NewBeam3D(base, base.Add(Point3D{Y: height}))
}

// Line returns the geometric identity of the beam.
func (b Beam3D) Line() Line3D {
	return Line3D{Start: b.Start, End: b.End}
}

func (b Beam3D) Length() float64 {
	return b.Start.DistanceTo(b.End)
}

func (b Beam3D) DirectionVector() Point3D {
	return b.End.Sub(b.Start)
}

// Shift returns a copy translated by p.
func (b Beam3D) Shift(p Point3D) Beam3D {
	b.Start = b.Start.Add(p)
	b.End = b.End.Add(p)
	return b
}

// WithProfile returns a copy carrying the given profile name.
func (b Beam3D) WithProfile(profile string) Beam3D {
	b.Profile = profile
	return b
}

// Rounded returns a copy with both endpoints rounded to PointPrecision.
func (b Beam3D) Rounded() Beam3D {
	b.Start = b.Start.Round()
	b.End = b.End.Round()
	return b
}

// IsVertical reports whether the member is a column-like vertical.
func (b Beam3D) IsVertical() bool {
	return b.Start.EqX(b.End) && b.Start.EqZ(b.End) && !b.Start.EqY(b.End)
}

// Weight returns the self weight in kg.
func (b Beam3D) Weight() float64 {
	return b.WeightPerMeter * b.Length()
}

// Stress returns the axial stress under force. A zero area is an error.
func (b Beam3D) Stress(force float64) (float64, error) {
	if b.Area == 0 {
		return 0, errors.New("cross-sectional area cannot be zero")
	}
	return force / b.Area, nil
}

// Strain returns stress divided by the Young's modulus.
func (b Beam3D) Strain(force float64) (float64, error) {
	s, err := b.Stress(force)
	if err != nil {
		return 0, err
	}
	if b.YoungsModulus == 0 {
		return 0, errors.New("young's modulus cannot be zero")
	}
	return s / b.YoungsModulus, nil
}

func (b Beam3D) String() string {
	if b.Profile == "" {
		return fmt.Sprintf("Beam %d %s-%s", b.ID, b.Start, b.End)
	}
	return fmt.Sprintf("Beam %d %s-%s [%s]", b.ID, b.Start, b.End, b.Profile)
}

// Node is a backend-numbered joint.
type Node struct {
	ID      int     `json:"id"`
	Point   Point3D `json:"point"`
	Support bool    `json:"support,omitempty"`
}

// NewNode creates an unmaterialized node at p.
func NewNode(p Point3D) Node {
	return Node{ID: UnassignedID, Point: p.Round()}
}
