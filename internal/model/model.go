package model

import (
	"errors"
	"fmt"
	"math"
)

// PointPrecision is the number of decimals every coordinate is rounded to
// before it is compared, used as a map key or sent to the backend.
const PointPrecision = 3

// DefaultTolerance is the containment tolerance used when callers have no
// better value.
const DefaultTolerance = 1e-6

// ErrDegenerateLine is returned when a line with no length is used where a
// direction is required.
var ErrDegenerateLine = errors.New("degenerate line: start and end coincide")

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // normalise -0
	}
	return r
}

// Round rounds v to PointPrecision decimals.
func Round(v float64) float64 {
	return RoundTo(v, PointPrecision)
}

// Point2D represents a 2D coordinate in metres.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DistanceTo returns the Euclidean distance between two 2D points.
func (p Point2D) DistanceTo(o Point2D) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Line2D is a segment in the plane.
type Line2D struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

func (l Line2D) Length() float64 {
	return l.Start.DistanceTo(l.End)
}

// Slope returns dy/dx. ok is false for vertical lines.
func (l Line2D) Slope() (slope float64, ok bool) {
	dx := l.End.X - l.Start.X
	if dx == 0 {
		return 0, false
	}
	return (l.End.Y - l.Start.Y) / dx, true
}

// AngleWithHorizontal returns the unsigned angle to the X axis in degrees,
// 0 to 90 whichever way the line points. Zero-length lines give 0.
func (l Line2D) AngleWithHorizontal() float64 {
	length := l.Length()
	if length == 0 {
		return 0
	}
	cos := math.Min(1, math.Abs(l.End.X-l.Start.X)/length)
	return math.Acos(cos) * 180 / math.Pi
}

// Point3D is an immutable 3D coordinate in metres. Y is the vertical axis
// (elevation), X runs across the rack and Z along it.
type Point3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// PointKey is the rounded coordinate triple used to identify a location.
type PointKey [3]float64

// NewPoint3D returns a point with every coordinate rounded to PointPrecision.
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}.Round()
}

// Round returns a copy rounded to PointPrecision decimals.
func (p Point3D) Round() Point3D {
	return Point3D{X: Round(p.X), Y: Round(p.Y), Z: Round(p.Z)}
}

func (p Point3D) Add(o Point3D) Point3D {
	return Point3D{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

func (p Point3D) Sub(o Point3D) Point3D {
	return Point3D{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Scale multiplies every coordinate by f.
func (p Point3D) Scale(f float64) Point3D {
	return Point3D{X: p.X * f, Y: p.Y * f, Z: p.Z * f}
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point3D) DistanceTo(o Point3D) float64 {
	d := o.Sub(p)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// EqX reports whether both points share the same X at PointPrecision.
func (p Point3D) EqX(o Point3D) bool { return Round(p.X) == Round(o.X) }

// EqY reports whether both points share the same Y at PointPrecision.
func (p Point3D) EqY(o Point3D) bool { return Round(p.Y) == Round(o.Y) }

// EqZ reports whether both points share the same Z at PointPrecision.
func (p Point3D) EqZ(o Point3D) bool { return Round(p.Z) == Round(o.Z) }

// Equal reports whether the points coincide at PointPrecision.
func (p Point3D) Equal(o Point3D) bool {
	return p.EqX(o) && p.EqY(o) && p.EqZ(o)
}

func (p Point3D) Key() PointKey {
	r := p.Round()
	return PointKey{r.X, r.Y, r.Z}
}

// Point converts a key back to a point.
func (k PointKey) Point() Point3D {
	return Point3D{X: k[0], Y: k[1], Z: k[2]}
}

func (p Point3D) String() string {
	r := p.Round()
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", r.X, r.Y, r.Z)
}

// Line3D is an ordered segment between two points.
type Line3D struct {
	Start Point3D `json:"start"`
	End   Point3D `json:"end"`
}

// NewLine3D builds a line and rejects segments shorter than tol.
func NewLine3D(start, end Point3D, tol float64) (Line3D, error) {
	l := Line3D{Start: start, End: end}
	if l.Length() <= tol {
		return Line3D{}, fmt.Errorf("line %s-%s: %w", start, end, ErrDegenerateLine)
	}
	return l, nil
}

func (l Line3D) Length() float64 {
	return l.Start.DistanceTo(l.End)
}

// DirectionVector returns end minus start.
func (l Line3D) DirectionVector() Point3D {
	return l.End.Sub(l.Start)
}

// UnitVector returns the normalised direction, or ErrDegenerateLine.
func (l Line3D) UnitVector() (Point3D, error) {
	n := l.Length()
	if n == 0 {
		return Point3D{}, ErrDegenerateLine
	}
	return l.DirectionVector().Scale(1 / n), nil
}

// AngleWithXYPlane returns the inclination of the line against the XY
// plane in degrees.
func (l Line3D) AngleWithXYPlane() float64 {
	d := l.DirectionVector()
	n := l.Length()
	if n == 0 {
		return 0
	}
	return math.Asin(math.Abs(d.Z)/n) * 180 / math.Pi
}

// Midpoint returns the point halfway along the line.
func (l Line3D) Midpoint() Point3D {
	return l.Start.Add(l.DirectionVector().Scale(0.5))
}

// parameter returns the shared parametric position of p on the line.
// ok is false when p is off the line.
func (l Line3D) parameter(p Point3D, tol float64) (t float64, ok bool) {
	if l.Length() <= tol {
		return 0, p.DistanceTo(l.Start) <= tol
	}
	d := l.DirectionVector()
	s := [3]float64{l.Start.X, l.Start.Y, l.Start.Z}
	dv := [3]float64{d.X, d.Y, d.Z}
	pv := [3]float64{p.X, p.Y, p.Z}

	found := false
	for i := 0; i < 3; i++ {
		if math.Abs(dv[i]) < tol {
			if math.Abs(pv[i]-s[i]) > tol {
				return 0, false
			}
			continue
		}
		ti := (pv[i] - s[i]) / dv[i]
		if !found {
			t, found = ti, true
			continue
		}
		if math.Abs(ti-t) > tol {
			return 0, false
		}
	}
	return t, found
}

// ContainsPoint reports whether p lies on the segment within tol. A
// degenerate segment only contains its own coincident point.
func (l Line3D) ContainsPoint(p Point3D, tol float64) bool {
	t, ok := l.parameter(p, tol)
	if !ok {
		return false
	}
	return t >= -tol && t <= 1+tol
}

// DistanceAlong returns the distance from Start to p measured along the
// line, used to place concentrated loads. It fails when p is not on the
// segment.
func (l Line3D) DistanceAlong(p Point3D, tol float64) (float64, error) {
	if !l.ContainsPoint(p, tol) {
		return 0, fmt.Errorf("point %s is not on line %s-%s", p, l.Start, l.End)
	}
	t, _ := l.parameter(p, tol)
	return t * l.Length(), nil
}
