package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilLoad is returned when a nil load is attached to a tier.
var ErrNilLoad = errors.New("load is nil")

// TierType is the service a tier carries.
type TierType int

const (
	TierPiping TierType = iota
	TierElectricalInstrumentation
	TierFlare
)

func (t TierType) String() string {
	switch t {
	case TierElectricalInstrumentation:
		return "ElectricalInstrumentation"
	case TierFlare:
		return "Flare"
	default:
		return "Piping"
	}
}

// ParseTierType accepts the names used in tier tables. "Standard" is an
// alias for piping.
func ParseTierType(s string) (TierType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "piping", "standard":
		return TierPiping, nil
	case "electricalinstrumentation", "electricalintrumentation", "electrical", "e&i":
		return TierElectricalInstrumentation, nil
	case "flare":
		return TierFlare, nil
	}
	return TierPiping, fmt.Errorf("unknown tier type %q", s)
}

func (t TierType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TierType) UnmarshalText(b []byte) error {
	v, err := ParseTierType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Tier is one elevation level of the rack. Base.Y is the elevation. The
// beams attached to a tier are expected to lie at that elevation; the
// classifier is the only code that populates them.
type Tier struct {
	Base     Point3D  `json:"base"`
	Type     TierType `json:"type"`
	Beams    []Beam3D `json:"beams"`
	IntBeams []Beam3D `json:"int_beams"`
	Brackets []Beam3D `json:"brackets"`

	Loads     LoadList `json:"loads"`
	WindLoads LoadList `json:"wind_loads"`
	CLTLoads  LoadList `json:"clt_loads"` // contingency load transverse

	IntermediateTransverseBeam bool `json:"intermediate_transverse_beam"`
	BracketProvision           bool `json:"bracket_provision"`
}

// NewTier returns an empty tier at base.
func NewTier(base Point3D, t TierType) *Tier {
	return &Tier{
		Base:      base,
		Type:      t,
		Beams:     []Beam3D{},
		IntBeams:  []Beam3D{},
		Brackets:  []Beam3D{},
		Loads:     LoadList{},
		WindLoads: LoadList{},
		CLTLoads:  LoadList{},
	}
}

// Elevation returns the tier level.
func (t *Tier) Elevation() float64 {
	return t.Base.Y
}

func (t *Tier) AddBeam(b Beam3D)    { t.Beams = append(t.Beams, b) }
func (t *Tier) AddIntBeam(b Beam3D) { t.IntBeams = append(t.IntBeams, b) }
func (t *Tier) AddBracket(b Beam3D) { t.Brackets = append(t.Brackets, b) }

// RemoveBeam deletes the portal beam with the given ID.
func (t *Tier) RemoveBeam(id int) error {
	for i, b := range t.Beams {
		if b.ID == id {
			t.Beams = append(t.Beams[:i], t.Beams[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("beam %d not found on tier at %.3f", id, t.Elevation())
}

// AddLoad routes a load into the standard, wind or contingency list by its
// case.
func (t *Tier) AddLoad(l Load) error {
	if l == nil {
		return ErrNilLoad
	}
	switch c := CaseOf(l); {
	case c.IsWind():
		t.WindLoads = append(t.WindLoads, l)
	case c == LoadCaseContingencyLoadTransverse:
		t.CLTLoads = append(t.CLTLoads, l)
	default:
		t.Loads = append(t.Loads, l)
	}
	return nil
}

// AddLoads attaches each load in order and stops at the first failure.
func (t *Tier) AddLoads(loads ...Load) error {
	for _, l := range loads {
		if err := t.AddLoad(l); err != nil {
			return err
		}
	}
	return nil
}

// RemoveLoad deletes the load at index i of the list holding case c.
func (t *Tier) RemoveLoad(c LoadCase, i int) error {
	list := t.listFor(c)
	if i < 0 || i >= len(*list) {
		return fmt.Errorf("load index %d out of range for case %s", i, c)
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return nil
}

func (t *Tier) listFor(c LoadCase) *LoadList {
	switch {
	case c.IsWind():
		return &t.WindLoads
	case c == LoadCaseContingencyLoadTransverse:
		return &t.CLTLoads
	}
	return &t.Loads
}

// AllLoads returns standard, wind and contingency loads in that order.
func (t *Tier) AllLoads() []Load {
	out := make([]Load, 0, t.LoadCount())
	out = append(out, t.Loads...)
	out = append(out, t.WindLoads...)
	return append(out, t.CLTLoads...)
}

func (t *Tier) BeamCount() int {
	return len(t.Beams) + len(t.IntBeams) + len(t.Brackets)
}

func (t *Tier) LoadCount() int {
	return len(t.Loads) + len(t.WindLoads) + len(t.CLTLoads)
}

// TotalLoad sums the magnitude of every load in case c.
func (t *Tier) TotalLoad(c LoadCase) float64 {
	var total float64
	for _, l := range t.AllLoads() {
		if CaseOf(l) == c {
			total += Magnitude(l)
		}
	}
	return total
}

// Shift returns a copy of the tier moved by p. Loads are values and are
// shared as-is.
func (t *Tier) Shift(p Point3D) *Tier {
	out := *t
	out.Base = t.Base.Add(p)
	out.Beams = shiftAll(t.Beams, p)
	out.IntBeams = shiftAll(t.IntBeams, p)
	out.Brackets = shiftAll(t.Brackets, p)
	out.Loads = append(LoadList{}, t.Loads...)
	out.WindLoads = append(LoadList{}, t.WindLoads...)
	out.CLTLoads = append(LoadList{}, t.CLTLoads...)
	return &out
}
