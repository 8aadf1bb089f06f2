package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// LoadKind enumerates the Load variants.
type LoadKind int

const (
	LoadKindUniform LoadKind = iota
	LoadKindConcentrated
	LoadKindMoment
	LoadKindNodal
	LoadKindWind
)

var loadKindNames = [...]string{"uniform", "concentrated", "moment", "nodal", "wind"}

func (k LoadKind) String() string {
	if k < 0 || int(k) >= len(loadKindNames) {
		return fmt.Sprintf("LoadKind(%d)", int(k))
	}
	return loadKindNames[k]
}

// Load is a closed set of load variants. Only the types in this package
// implement it; switch on the concrete type to dispatch.
//
// Every setter on the variants has a value receiver and returns a modified
// copy, so a load shared between tiers can be adjusted without affecting
// the other holders.
type Load interface {
	Kind() LoadKind
	isLoad()
}

// UniformLoad is a distributed force per metre along a member.
type UniformLoad struct {
	Case      LoadCase        `json:"case"`
	Direction MemberDirection `json:"direction"`
	Force     float64         `json:"force"` // t/m
	D1        float64         `json:"d1"`
	D2        float64         `json:"d2"`
	D3        float64         `json:"d3"`
}

// NewUniformLoad returns a unit downward load in the given case.
func NewUniformLoad(c LoadCase) UniformLoad {
	return UniformLoad{Case: c, Direction: DirectionGY, Force: -1}
}

func (UniformLoad) Kind() LoadKind { return LoadKindUniform }
func (UniformLoad) isLoad()        {}

func (l UniformLoad) WithForce(f float64) UniformLoad { l.Force = f; return l }
func (l UniformLoad) Factor(f float64) UniformLoad { l.Force *= f; return l }
func (l UniformLoad) WithDirection(d MemberDirection) UniformLoad { l.Direction = d; return l }
func (l UniformLoad) WithCase(c LoadCase) UniformLoad { l.Case = c; return l }

// WithPosition sets the start and end distances of a partial span load.
func (l UniformLoad) WithPosition(d1, d2 float64) UniformLoad {
	l.D1, l.D2 = d1, d2
	return l
}

// ConcentratedLoad is a point force on a member D1 from its start.
type ConcentratedLoad struct {
	Case      LoadCase        `json:"case"`
	Direction MemberDirection `json:"direction"`
	Force     float64         `json:"force"` // t
	D1        float64         `json:"d1"`
	D2        float64         `json:"d2"`
}

// NewConcentratedLoad returns a unit downward point load.
func NewConcentratedLoad(c LoadCase) ConcentratedLoad {
	return ConcentratedLoad{Case: c, Direction: DirectionGY, Force: -1}
}

func (ConcentratedLoad) Kind() LoadKind { return LoadKindConcentrated }
func (ConcentratedLoad) isLoad()        {}

func (l ConcentratedLoad) WithForce(f float64) ConcentratedLoad { l.Force = f; return l }
func (l ConcentratedLoad) Factor(f float64) ConcentratedLoad { l.Force *= f; return l }
func (l ConcentratedLoad) WithDirection(d MemberDirection) ConcentratedLoad { l.Direction = d; return l }
func (l ConcentratedLoad) WithCase(c LoadCase) ConcentratedLoad { l.Case = c; return l }

func (l ConcentratedLoad) WithPosition(d1, d2 float64) ConcentratedLoad {
	l.D1, l.D2 = d1, d2
	return l
}

// AtPoint places the load at the projection of p on line. p must lie on
// the member.
func (l ConcentratedLoad) AtPoint(line Line3D, p Point3D, tol float64) (ConcentratedLoad, error) {
	d, err := line.DistanceAlong(p, tol)
	if err != nil {
		return l, err
	}
	l.D1 = d
	return l, nil
}

// ConcentratedMoment is a point moment on a member.
type ConcentratedMoment struct {
	Case      LoadCase        `json:"case"`
	Direction MemberDirection `json:"direction"`
	Moment    float64         `json:"moment"` // t·m
	D1        float64         `json:"d1"`
	D2        float64         `json:"d2"`
}

func (ConcentratedMoment) Kind() LoadKind { return LoadKindMoment }
func (ConcentratedMoment) isLoad()        {}

func (l ConcentratedMoment) WithMoment(m float64) ConcentratedMoment { l.Moment = m; return l }
func (l ConcentratedMoment) Factor(f float64) ConcentratedMoment { l.Moment *= f; return l }
func (l ConcentratedMoment) WithCase(c LoadCase) ConcentratedMoment { l.Case = c; return l }

// NodalLoad is a force and moment vector applied at a joint.
type NodalLoad struct {
	Case LoadCase `json:"case"`
	FX   float64  `json:"fx"`
	FY   float64  `json:"fy"`
	FZ   float64  `json:"fz"`
	MX   float64  `json:"mx"`
	MY   float64  `json:"my"`
	MZ   float64  `json:"mz"`
}

func (NodalLoad) Kind() LoadKind { return LoadKindNodal }
func (NodalLoad) isLoad()        {}

func (l NodalLoad) WithFX(v float64) NodalLoad { l.FX = v; return l }
func (l NodalLoad) WithFY(v float64) NodalLoad { l.FY = v; return l }
func (l NodalLoad) WithFZ(v float64) NodalLoad { l.FZ = v; return l }
func (l NodalLoad) WithMX(v float64) NodalLoad { l.MX = v; return l }
func (l NodalLoad) WithMY(v float64) NodalLoad { l.MY = v; return l }
func (l NodalLoad) WithMZ(v float64) NodalLoad { l.MZ = v; return l }
func (l NodalLoad) WithCase(c LoadCase) NodalLoad { l.Case = c; return l }

// Magnitude returns the resultant force, ignoring moments.
func (l NodalLoad) Magnitude() float64 {
	return math.Sqrt(l.FX*l.FX + l.FY*l.FY + l.FZ*l.FZ)
}

// WindLoad is a wind pressure band between two elevations. Windward acts
// on the upwind column line and Leeward on the downwind one.
type WindLoad struct {
	Case           LoadCase `json:"case"`
	StartElevation float64  `json:"start_elevation"`
	EndElevation   float64  `json:"end_elevation"`
	Windward       float64  `json:"windward"`
	Leeward        float64  `json:"leeward"`
}

// NewWindLoad returns a band from 0 to 10 m in the tier wind case.
func NewWindLoad() WindLoad {
	return WindLoad{Case: LoadCaseWindTierGX, EndElevation: 10}
}

func (WindLoad) Kind() LoadKind { return LoadKindWind }
func (WindLoad) isLoad()        {}

func (l WindLoad) WithCase(c LoadCase) WindLoad { l.Case = c; return l }

// AddElevation moves the band up by e.
func (l WindLoad) AddElevation(e float64) WindLoad {
	l.StartElevation += e
	l.EndElevation += e
	return l
}

// Covers reports whether y falls inside the band.
func (l WindLoad) Covers(y float64) bool {
	return y >= l.StartElevation && y <= l.EndElevation
}

// CaseOf returns the load case of any load.
func CaseOf(l Load) LoadCase {
	switch v := l.(type) {
	case UniformLoad:
		return v.Case
	case ConcentratedLoad:
		return v.Case
	case ConcentratedMoment:
		return v.Case
	case NodalLoad:
		return v.Case
	case WindLoad:
		return v.Case
	}
	panic(fmt.Sprintf("model: unhandled load %T", l))
}

// Magnitude returns the absolute intensity of a load.
func Magnitude(l Load) float64 {
	switch v := l.(type) {
	case UniformLoad:
		return math.Abs(v.Force)
	case ConcentratedLoad:
		return math.Abs(v.Force)
	case ConcentratedMoment:
		return math.Abs(v.Moment)
	case NodalLoad:
		return v.Magnitude()
	case WindLoad:
		return math.Abs(v.Windward) + math.Abs(v.Leeward)
	}
	panic(fmt.Sprintf("model: unhandled load %T", l))
}

// LoadList is a slice of loads that round-trips through JSON with a kind
// tag per entry.
type LoadList []Load

type loadEnvelope struct {
	Kind string          `json:"kind"`
	Load json.RawMessage `json:"load"`
}

func (ll LoadList) MarshalJSON() ([]byte, error) {
	out := make([]loadEnvelope, 0, len(ll))
	for _, l := range ll {
		raw, err := json.Marshal(l)
		if err != nil {
			return nil, err
		}
		out = append(out, loadEnvelope{Kind: l.Kind().String(), Load: raw})
	}
	return json.Marshal(out)
}

func (ll *LoadList) UnmarshalJSON(data []byte) error {
	var envs []loadEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	list := make(LoadList, 0, len(envs))
	for i, env := range envs {
		l, err := decodeLoad(env)
		if err != nil {
			return fmt.Errorf("load %d: %w", i, err)
		}
		list = append(list, l)
	}
	*ll = list
	return nil
}

func decodeLoad(env loadEnvelope) (Load, error) {
	var l Load
	var err error
	switch env.Kind {
	case "uniform":
		var v UniformLoad
		err = json.Unmarshal(env.Load, &v)
		l = v
	case "concentrated":
		var v ConcentratedLoad
		err = json.Unmarshal(env.Load, &v)
		l = v
	case "moment":
		var v ConcentratedMoment
		err = json.Unmarshal(env.Load, &v)
		l = v
	case "nodal":
		var v NodalLoad
		err = json.Unmarshal(env.Load, &v)
		l = v
	case "wind":
		var v WindLoad
		err = json.Unmarshal(env.Load, &v)
		l = v
	default:
		return nil, fmt.Errorf("unknown load kind %q", env.Kind)
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}
