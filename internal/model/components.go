package model

import (
	"errors"
	"fmt"
	"math"
)

// WalkwayLiveLoad is the live load on walkway grating in t/m².
const WalkwayLiveLoad = 0.5

// Walkway is a steel grating walkway carried by a tier.
type Walkway struct {
	Position     float64 `json:"position" yaml:"position"`           // m from the first column line
	Width        float64 `json:"width" yaml:"width"`                 // m
	Length       float64 `json:"length" yaml:"length"`               // m
	Thickness    float64 `json:"thickness" yaml:"thickness"`         // mm
	Material     string  `json:"material" yaml:"material"`
	LoadCapacity float64 `json:"load_capacity" yaml:"load_capacity"` // kg
}

// NewWalkway returns a 1 m wide walkway at position.
func NewWalkway(position float64) Walkway {
	return Walkway{Position: position, Width: 1, Thickness: 5, Material: "Carbon Steel"}
}

func (w Walkway) Area() float64 {
	return w.Length * w.Width
}

// LoadPerUnitArea returns the rated capacity in kg/m².
func (w Walkway) LoadPerUnitArea() (float64, error) {
	a := w.Area()
	if a == 0 {
		return 0, errors.New("walkway area cannot be zero")
	}
	return w.LoadCapacity / a, nil
}

// UniformLoad returns the live line load the walkway puts on its support.
func (w Walkway) UniformLoad() UniformLoad {
	return NewUniformLoad(LoadCaseLiveLoad).WithForce(-WalkwayLiveLoad * w.Width)
}

// Cable is one cable routed through a duct.
type Cable struct {
	Name     string  `json:"name"`
	Diameter float64 `json:"diameter"` // mm
	Length   float64 `json:"length"`   // m
}

func (c Cable) String() string {
	return fmt.Sprintf("Cable(name=%s, diameter=%gmm, length=%gm)", c.Name, c.Diameter, c.Length)
}

// ductWeights maps a duct width in metres to its loaded weight in t/m.
var ductWeights = []struct {
	width  float64
	weight float64
}{
	{0.3, 0.05},
	{0.6, 0.10},
	{0.9, 0.15},
	{1.2, 0.20},
	{1.5, 0.25},
}

// InstrumentationDuct is a cable duct laid on an electrical tier.
type InstrumentationDuct struct {
	Width    float64 `json:"width" yaml:"width"`   // m
	Height   float64 `json:"height" yaml:"height"` // m
	Length   float64 `json:"length" yaml:"length"` // m
	Position float64 `json:"position" yaml:"position"`
	Material string  `json:"material" yaml:"material"`
	Cables   []Cable `json:"cables" yaml:"-"`
}

// NewInstrumentationDuct returns a steel duct with no cables.
func NewInstrumentationDuct(width, height, position float64) InstrumentationDuct {
	return InstrumentationDuct{
		Width:    width,
		Height:   height,
		Position: position,
		Material: "steel",
		Cables:   []Cable{},
	}
}

// AddCable returns a copy of the duct with c added.
func (d InstrumentationDuct) AddCable(c Cable) InstrumentationDuct {
	d.Cables = append(append([]Cable{}, d.Cables...), c)
	return d
}

// TotalCableDiameter sums the cable diameters in mm.
func (d InstrumentationDuct) TotalCableDiameter() float64 {
	var total float64
	for _, c := range d.Cables {
		total += c.Diameter
	}
	return total
}

// IsOvercrowded reports whether the cables no longer fit the duct section.
func (d InstrumentationDuct) IsOvercrowded() bool {
	total := d.TotalCableDiameter()
	return total > d.Width*1000 || total > d.Height*1000
}

// WeightPerMeter looks up the loaded duct weight for the smallest listed
// width that fits the duct. Wider ducts scale linearly from the last row.
func (d InstrumentationDuct) WeightPerMeter() float64 {
	for _, row := range ductWeights {
		if d.Width <= row.width+1e-9 {
			return row.weight
		}
	}
	last := ductWeights[len(ductWeights)-1]
	return last.weight * d.Width / last.width
}

// UniformLoad returns the dead load of the duct on its support.
func (d InstrumentationDuct) UniformLoad() UniformLoad {
	return NewUniformLoad(LoadCaseDeadLoadElecIns).WithForce(-d.WeightPerMeter())
}

// Pipe is a run of pipe segments resting on the rack.
type Pipe struct {
	Name            string   `json:"name"`
	Lines           []Line3D `json:"lines"`
	Diameter        float64  `json:"diameter"`         // m
	Thickness       float64  `json:"thickness"`        // m
	DesignLoad      float64  `json:"design_load"`      // t/m
	MaterialDensity float64  `json:"material_density"` // kg/m³
	Loads           LoadList `json:"loads"`
}

// NewPipe validates the geometry and returns a steel pipe.
func NewPipe(name string, lines []Line3D, diameter, thickness float64) (Pipe, error) {
	if len(lines) == 0 {
		return Pipe{}, errors.New("pipe must contain at least one segment")
	}
	if diameter <= 0 {
		return Pipe{}, errors.New("diameter must be positive")
	}
	if thickness <= 0 || thickness > diameter/2 {
		return Pipe{}, errors.New("thickness must be positive and at most half the diameter")
	}
	return Pipe{
		Name:            name,
		Lines:           lines,
		Diameter:        diameter,
		Thickness:       thickness,
		DesignLoad:      1.0,
		MaterialDensity: 7850,
		Loads:           LoadList{},
	}, nil
}

// CrossSectionalArea returns the steel area of the wall in m².
func (p Pipe) CrossSectionalArea() float64 {
	outer := p.Diameter / 2
	inner := outer - p.Thickness
	return math.Pi * (outer*outer - inner*inner)
}

// WeightPerUnitLength returns the empty pipe weight in N/m.
func (p Pipe) WeightPerUnitLength() float64 {
	return p.CrossSectionalArea() * p.MaterialDensity * 9.81
}

// Length sums the segment lengths.
func (p Pipe) Length() float64 {
	var total float64
	for _, l := range p.Lines {
		total += l.Length()
	}
	return total
}

// AddLoad returns a copy of the pipe with l attached. Only member loads
// can sit on a pipe.
func (p Pipe) AddLoad(l Load) (Pipe, error) {
	switch l.(type) {
	case UniformLoad, ConcentratedLoad:
	case nil:
		return p, ErrNilLoad
	default:
		return p, fmt.Errorf("pipe cannot carry a %s load", l.Kind())
	}
	p.Loads = append(append(LoadList{}, p.Loads...), l)
	return p, nil
}

// WithDesignLoad returns a copy with a new design load in t/m.
func (p Pipe) WithDesignLoad(load float64) (Pipe, error) {
	if load < 0 {
		return p, errors.New("design load cannot be negative")
	}
	p.DesignLoad = load
	return p, nil
}

// TotalLoad sums the attached loads of case c plus the design load over
// the pipe length, in t. Uniform loads without a span use the full length.
func (p Pipe) TotalLoad(c LoadCase) float64 {
	var total float64
	for _, l := range p.Loads {
		switch v := l.(type) {
		case ConcentratedLoad:
			if v.Case == c {
				total += math.Abs(v.Force)
			}
		case UniformLoad:
			if v.Case == c {
				span := math.Abs(v.D2 - v.D1)
				if span == 0 {
					span = p.Length()
				}
				total += math.Abs(v.Force) * span
			}
		}
	}
	return total + p.DesignLoad*p.Length()
}

// Flare is a flare header carried on the flare tier.
type Flare struct {
	Pipe
	Position      float64 `json:"position"`
	SupportMember bool    `json:"support_member"`
}

// NewFlare returns a 500 mm flare header.
func NewFlare(name string, lines []Line3D, position, designLoad float64, supportMember bool) (Flare, error) {
	p, err := NewPipe(name, lines, 0.5, 0.01)
	if err != nil {
		return Flare{}, err
	}
	if p, err = p.WithDesignLoad(designLoad); err != nil {
		return Flare{}, err
	}
	return Flare{Pipe: p, Position: position, SupportMember: supportMember}, nil
}

// UniformLoad returns the operating load of the flare on its support.
func (f Flare) UniformLoad() UniformLoad {
	return NewUniformLoad(LoadCaseOperatingLoad).WithForce(-f.DesignLoad)
}

// ElectricalTree is a steel support tree for cable trays.
type ElectricalTree struct {
	Position     float64 `json:"position"`
	Height       float64 `json:"height"`     // m
	BaseWidth    float64 `json:"base_width"` // m
	Branches     int     `json:"branches"`
	Material     string  `json:"material"`
	LoadCapacity float64 `json:"load_capacity"` // kg
}

// BaseArea assumes a square base.
func (t ElectricalTree) BaseArea() float64 {
	return t.BaseWidth * t.BaseWidth
}

// LoadPerBranch returns the capacity of each branch in kg.
func (t ElectricalTree) LoadPerBranch() (float64, error) {
	if t.Branches == 0 {
		return 0, errors.New("number of branches cannot be zero")
	}
	return t.LoadCapacity / float64(t.Branches), nil
}

// Tree support defaults.
const (
	DefaultMaxTreeDistance = 3.0 // m
	DefaultTreeLoad        = 2.8 // t
)

// TreeSupport is a member that carries electrical trees at a fixed pitch.
type TreeSupport struct {
	Line            Line3D   `json:"line"`
	SupportMember   bool     `json:"support_member"`
	MaxTreeDistance float64  `json:"max_tree_distance"` // m
	TreeLoad        float64  `json:"tree_load"`         // t per tree
	Members         []Beam3D `json:"members"`
}

// NewTreeSupport validates the inputs and returns a support member.
func NewTreeSupport(line Line3D, maxDistance, load float64) (TreeSupport, error) {
	if maxDistance < 0 {
		return TreeSupport{}, errors.New("tree to tree distance cannot be negative")
	}
	if load < 0 {
		return TreeSupport{}, errors.New("tree load cannot be negative")
	}
	return TreeSupport{
		Line:            line,
		SupportMember:   true,
		MaxTreeDistance: maxDistance,
		TreeLoad:        load,
		Members:         []Beam3D{},
	}, nil
}

func (s TreeSupport) Length() float64 {
	return s.Line.Length()
}

// WithTreeLoad returns a copy with a new per-tree load.
func (s TreeSupport) WithTreeLoad(load float64) (TreeSupport, error) {
	if load < 0 {
		return s, errors.New("tree load cannot be negative")
	}
	s.TreeLoad = load
	return s, nil
}

// WithDistance returns a copy with a new tree pitch.
func (s TreeSupport) WithDistance(d float64) (TreeSupport, error) {
	if d < 0 {
		return s, errors.New("tree to tree distance cannot be negative")
	}
	s.MaxTreeDistance = d
	return s, nil
}

// AddMembers returns a copy with the given members appended.
func (s TreeSupport) AddMembers(members ...Beam3D) TreeSupport {
	s.Members = append(append([]Beam3D{}, s.Members...), members...)
	return s
}

// PointLoad returns the downward point load of one tree.
func (s TreeSupport) PointLoad() ConcentratedLoad {
	return NewConcentratedLoad(LoadCaseDeadLoadElecIns).WithForce(-s.TreeLoad)
}

// TreeLoads places one tree at each pitch along the support, starting at
// zero and including the far end when the pitch divides the length.
func (s TreeSupport) TreeLoads() []ConcentratedLoad {
	length := s.Length()
	if s.MaxTreeDistance <= 0 || length == 0 {
		return []ConcentratedLoad{s.PointLoad()}
	}
	n := int(math.Floor(length/s.MaxTreeDistance + 1e-9))
	out := make([]ConcentratedLoad, 0, n+1)
	for i := 0; i <= n; i++ {
		d := Round(float64(i) * s.MaxTreeDistance)
		out = append(out, s.PointLoad().WithPosition(d, 0))
	}
	return out
}
