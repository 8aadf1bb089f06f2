package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound_NormalisesPrecisionAndNegativeZero(t *testing.T) {
	assert.Equal(t, 1.235, Round(1.23456))
	assert.Equal(t, 0.0, Round(-0.0001))
	assert.False(t, math.Signbit(Round(-0.0001)))
}

func TestPoint3D_AxisEqualityUsesRounding(t *testing.T) {
	a := Point3D{X: 1.0001, Y: 2, Z: 3}
	b := Point3D{X: 1.0004, Y: 2.01, Z: 3}

	assert.True(t, a.EqX(b))
	assert.False(t, a.EqY(b))
	assert.True(t, a.EqZ(b))
	assert.False(t, a.Equal(b))
	assert.Equal(t, a.Key(), Point3D{X: 1, Y: 2, Z: 3}.Key())
}

func TestPoint3D_AddSubDistance(t *testing.T) {
	a := Point3D{X: 1, Y: 2, Z: 3}
	b := Point3D{X: 4, Y: 6, Z: 3}

	assert.Equal(t, Point3D{X: 5, Y: 8, Z: 6}, a.Add(b))
	assert.Equal(t, Point3D{X: 3, Y: 4, Z: 0}, b.Sub(a))
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-12)
}

func TestLine3D_ContainsPoint(t *testing.T) {
	line := Line3D{Start: Point3D{}, End: Point3D{X: 10}}

	tests := []struct {
		name string
		p    Point3D
		want bool
	}{
		{"midpoint", Point3D{X: 5}, true},
		{"start", Point3D{}, true},
		{"end", Point3D{X: 10}, true},
		{"beyond end", Point3D{X: 11}, false},
		{"before start", Point3D{X: -1}, false},
		{"off axis", Point3D{X: 5, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, line.ContainsPoint(tt.p, DefaultTolerance))
		})
	}
}

func TestLine3D_ContainsPoint_Diagonal(t *testing.T) {
	line := Line3D{Start: Point3D{}, End: Point3D{X: 4, Y: 4, Z: 4}}

	assert.True(t, line.ContainsPoint(Point3D{X: 1, Y: 1, Z: 1}, DefaultTolerance))
	assert.False(t, line.ContainsPoint(Point3D{X: 1, Y: 2, Z: 1}, DefaultTolerance))
	assert.False(t, line.ContainsPoint(Point3D{X: 5, Y: 5, Z: 5}, DefaultTolerance))
}

func TestLine3D_ContainsPoint_Degenerate(t *testing.T) {
	line := Line3D{}

	assert.True(t, line.ContainsPoint(Point3D{}, DefaultTolerance))
	assert.False(t, line.ContainsPoint(Point3D{X: 0.1}, DefaultTolerance))
}

func TestLine3D_DistanceAlong(t *testing.T) {
	line := Line3D{Start: Point3D{X: 2, Y: 3}, End: Point3D{X: 8, Y: 3}}

	d, err := line.DistanceAlong(Point3D{X: 5, Y: 3}, DefaultTolerance)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-9)

	_, err = line.DistanceAlong(Point3D{X: 5, Y: 4}, DefaultTolerance)
	assert.Error(t, err)
}

func TestNewLine3D_RejectsDegenerate(t *testing.T) {
	_, err := NewLine3D(Point3D{X: 1}, Point3D{X: 1}, DefaultTolerance)
	assert.ErrorIs(t, err, ErrDegenerateLine)

	l, err := NewLine3D(Point3D{}, Point3D{Y: 2}, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, 2.0, l.Length())
}

func TestLine3D_UnitVectorAndAngle(t *testing.T) {
	l := Line3D{End: Point3D{Z: 3}}
	u, err := l.UnitVector()
	require.NoError(t, err)
	assert.Equal(t, Point3D{Z: 1}, u)
	assert.InDelta(t, 90.0, l.AngleWithXYPlane(), 1e-9)

	flat := Line3D{End: Point3D{X: 3}}
	assert.InDelta(t, 0.0, flat.AngleWithXYPlane(), 1e-9)

	_, err = Line3D{}.UnitVector()
	assert.ErrorIs(t, err, ErrDegenerateLine)
}

func TestLine2D_SlopeAndAngle(t *testing.T) {
	l := Line2D{Start: Point2D{}, End: Point2D{X: 2, Y: 2}}
	s, ok := l.Slope()
	assert.True(t, ok)
	assert.Equal(t, 1.0, s)
	assert.InDelta(t, 45.0, l.AngleWithHorizontal(), 1e-9)

	_, ok = Line2D{End: Point2D{Y: 1}}.Slope()
	assert.False(t, ok)
}

func TestLine2D_AngleWithHorizontalIsUnsigned(t *testing.T) {
	tests := []struct {
		end  Point2D
		want float64
	}{
		{Point2D{X: 3}, 0},
		{Point2D{X: -3}, 0},
		{Point2D{X: -2, Y: 2}, 45},
		{Point2D{X: 2, Y: -2}, 45},
		{Point2D{Y: -5}, 90},
		{Point2D{}, 0},
	}
	for _, tt := range tests {
		got := Line2D{End: tt.end}.AngleWithHorizontal()
		assert.InDelta(t, tt.want, got, 1e-9, "end %+v", tt.end)
	}
}
