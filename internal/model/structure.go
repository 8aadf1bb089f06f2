package model

import (
	"sort"
	"strconv"
)

// Coord is a rounded coordinate used as a map key. It encodes as a decimal
// string so coordinate-keyed maps survive JSON.
type Coord float64

// CoordOf rounds v to PointPrecision.
func CoordOf(v float64) Coord {
	return Coord(Round(v))
}

func (c Coord) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(c), 'f', -1, 64)), nil
}

func (c *Coord) UnmarshalText(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*c = CoordOf(v)
	return nil
}

// Category names one classification bucket.
type Category string

const (
	CategoryMainColumn    Category = "main_column"
	CategoryStubColumn    Category = "stub_column"
	CategoryVerticalBrace Category = "vertical_brace"
	CategoryPlanBrace     Category = "plan_brace"
	CategoryLongBeam      Category = "long_beam"
	CategoryIntLongBeam   Category = "int_long_beam"
	CategoryPortalBeam    Category = "portal_beam"
	CategoryIntTransverse Category = "int_transverse_beam"
	CategoryBracket       Category = "bracket"
	CategoryConcrete      Category = "concrete"
	CategoryUnclassified  Category = "unclassified"
)

// Categories lists every bucket in report order.
var Categories = []Category{
	CategoryMainColumn,
	CategoryStubColumn,
	CategoryVerticalBrace,
	CategoryPlanBrace,
	CategoryLongBeam,
	CategoryIntLongBeam,
	CategoryPortalBeam,
	CategoryIntTransverse,
	CategoryBracket,
	CategoryConcrete,
	CategoryUnclassified,
}

// PiperackStructure is the output of one classification pass. It is built
// once from a backend snapshot and never updated incrementally.
type PiperackStructure struct {
	ID string `json:"id"`

	MainColumns    []Beam3D `json:"main_columns"`
	StubColumns    []Beam3D `json:"stub_columns"`
	VerticalBraces []Beam3D `json:"vertical_braces"`
	PlanBraces     []Beam3D `json:"plan_braces"`
	LongBeams      []Beam3D `json:"long_beams"`
	IntLongBeams   []Beam3D `json:"int_long_beams"`
	Brackets       []Beam3D `json:"brackets"`
	Concrete       []Beam3D `json:"concrete"`
	Unclassified   []Beam3D `json:"unclassified"`

	PortalBeams        map[int]Beam3D `json:"portal_beams"`
	IntTransverseBeams map[int]Beam3D `json:"int_transverse_beams"`

	// PortalBeamDict maps portal z to the IDs of its transverse beams.
	PortalBeamDict map[Coord][]int `json:"portal_beam_dict"`
	// PortalTierBeams maps portal z then tier y to beam IDs.
	PortalTierBeams map[Coord]map[Coord][]int `json:"portal_tier_beams"`

	Tiers []*Tier `json:"tiers"`
}

// NewPiperackStructure returns a structure with every collection allocated.
func NewPiperackStructure() *PiperackStructure {
	return &PiperackStructure{
		MainColumns:        []Beam3D{},
		StubColumns:        []Beam3D{},
		VerticalBraces:     []Beam3D{},
		PlanBraces:         []Beam3D{},
		LongBeams:          []Beam3D{},
		IntLongBeams:       []Beam3D{},
		Brackets:           []Beam3D{},
		Concrete:           []Beam3D{},
		Unclassified:       []Beam3D{},
		PortalBeams:        map[int]Beam3D{},
		IntTransverseBeams: map[int]Beam3D{},
		PortalBeamDict:     map[Coord][]int{},
		PortalTierBeams:    map[Coord]map[Coord][]int{},
		Tiers:              []*Tier{},
	}
}

// TierAt returns the tier at elevation y, or nil.
func (s *PiperackStructure) TierAt(y float64) *Tier {
	for _, t := range s.Tiers {
		if Round(t.Elevation()) == Round(y) {
			return t
		}
	}
	return nil
}

// ByCategory returns the members of one bucket. Map-backed buckets are
// returned in ascending ID order.
func (s *PiperackStructure) ByCategory(c Category) []Beam3D {
	switch c {
	case CategoryMainColumn:
		return s.MainColumns
	case CategoryStubColumn:
		return s.StubColumns
	case CategoryVerticalBrace:
		return s.VerticalBraces
	case CategoryPlanBrace:
		return s.PlanBraces
	case CategoryLongBeam:
		return s.LongBeams
	case CategoryIntLongBeam:
		return s.IntLongBeams
	case CategoryPortalBeam:
		return sortedBeams(s.PortalBeams)
	case CategoryIntTransverse:
		return sortedBeams(s.IntTransverseBeams)
	case CategoryBracket:
		return s.Brackets
	case CategoryConcrete:
		return s.Concrete
	case CategoryUnclassified:
		return s.Unclassified
	}
	return nil
}

// CategoryOf returns the bucket a member ID was placed in.
func (s *PiperackStructure) CategoryOf(id int) (Category, bool) {
	for _, c := range Categories {
		for _, b := range s.ByCategory(c) {
			if b.ID == id {
				return c, true
			}
		}
	}
	return "", false
}

// Summary returns the member count per bucket.
func (s *PiperackStructure) Summary() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = len(s.ByCategory(c))
	}
	return out
}

// IDs returns the sorted IDs of a bucket.
func (s *PiperackStructure) IDs(c Category) []int {
	beams := s.ByCategory(c)
	ids := make([]int, len(beams))
	for i, b := range beams {
		ids[i] = b.ID
	}
	sort.Ints(ids)
	return ids
}

// Steel returns every classified steel member.
func (s *PiperackStructure) Steel() []Beam3D {
	var out []Beam3D
	for _, c := range Categories {
		if c == CategoryConcrete || c == CategoryUnclassified {
			continue
		}
		out = append(out, s.ByCategory(c)...)
	}
	return out
}

func sortedBeams(m map[int]Beam3D) []Beam3D {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Beam3D, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

// SetProfiles writes profile names onto the members with the given IDs,
// tier copies included, and returns how many bucket members changed.
func (s *PiperackStructure) SetProfiles(profiles map[int]string) int {
	set := func(beams []Beam3D) int {
		n := 0
		for i, b := range beams {
			if p, ok := profiles[b.ID]; ok {
				beams[i].Profile = p
				n++
			}
		}
		return n
	}
	setMap := func(m map[int]Beam3D) int {
		n := 0
		for id, b := range m {
			if p, ok := profiles[id]; ok {
				m[id] = b.WithProfile(p)
				n++
			}
		}
		return n
	}

	n := 0
	for _, beams := range [][]Beam3D{
		s.MainColumns, s.StubColumns, s.VerticalBraces, s.PlanBraces,
		s.LongBeams, s.IntLongBeams, s.Brackets, s.Concrete, s.Unclassified,
	} {
		n += set(beams)
	}
	n += setMap(s.PortalBeams)
	n += setMap(s.IntTransverseBeams)

	for _, t := range s.Tiers {
		set(t.Beams)
		set(t.IntBeams)
		set(t.Brackets)
	}
	return n
}
