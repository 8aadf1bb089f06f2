package model

// PiperackPortal is one transverse frame. Members are passed in template
// coordinates and stored in global coordinates relative to Base.
type PiperackPortal struct {
	Base      Point3D  `json:"base"`
	Beams     []Beam3D `json:"beams"`
	Columns   []Beam3D `json:"columns"`
	Pedestals []Beam3D `json:"pedestals"`
}

// NewPiperackPortal returns an empty portal at base.
func NewPiperackPortal(base Point3D) *PiperackPortal {
	return &PiperackPortal{
		Base:      base,
		Beams:     []Beam3D{},
		Columns:   []Beam3D{},
		Pedestals: []Beam3D{},
	}
}

func (p *PiperackPortal) AddBeam(b Beam3D) {
	p.Beams = append(p.Beams, b.Shift(p.Base))
}

func (p *PiperackPortal) AddColumn(c Beam3D) {
	p.Columns = append(p.Columns, c.Shift(p.Base))
}

func (p *PiperackPortal) AddPedestal(c Beam3D) {
	p.Pedestals = append(p.Pedestals, c.Shift(p.Base))
}

// Shift returns a new portal moved by offset. Every member slice is freshly
// allocated so the copy shares no storage with the receiver.
func (p *PiperackPortal) Shift(offset Point3D) *PiperackPortal {
	return &PiperackPortal{
		Base:      p.Base.Add(offset),
		Beams:     shiftAll(p.Beams, offset),
		Columns:   shiftAll(p.Columns, offset),
		Pedestals: shiftAll(p.Pedestals, offset),
	}
}

// Members returns pedestals, columns then beams.
func (p *PiperackPortal) Members() []Beam3D {
	out := make([]Beam3D, 0, len(p.Pedestals)+len(p.Columns)+len(p.Beams))
	out = append(out, p.Pedestals...)
	out = append(out, p.Columns...)
	return append(out, p.Beams...)
}

// TotalMemberLength sums the lengths of all members in metres.
func (p *PiperackPortal) TotalMemberLength() float64 {
	var total float64
	for _, m := range p.Members() {
		total += m.Length()
	}
	return total
}

func shiftAll(members []Beam3D, offset Point3D) []Beam3D {
	out := make([]Beam3D, len(members))
	for i, m := range members {
		out[i] = m.Shift(offset)
	}
	return out
}
