package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/piwi3910/RackGen/internal/model"
)

// ErrInvalidConfig is returned for rack configurations that cannot be
// generated.
var ErrInvalidConfig = errors.New("invalid piperack configuration")

// Generator derives the full rack topology from a PiperackConfig.
type Generator struct {
	Config model.PiperackConfig
}

func NewGenerator(cfg model.PiperackConfig) *Generator {
	return &Generator{Config: cfg}
}

// Result holds every member produced by one generation pass, in
// global coordinates.
type Result struct {
	// Config is the normalised configuration the members were built from.
	Config model.PiperackConfig

	Portals            []*model.PiperackPortal
	LongBeams          []model.Beam3D
	VerticalBraces     []model.Beam3D
	PlanBraces         []model.Beam3D
	Brackets           []model.Beam3D
	IntTransverseBeams []model.Beam3D

	MaxPortalSpacing float64
}

// ExceedsExpansionBay reports whether any portal spacing is longer than the
// configured maximum expansion bay. A zero maximum disables the check.
func (r *Result) ExceedsExpansionBay() bool {
	return r.Config.MaxExpansionBay > 0 && model.Round(r.MaxPortalSpacing) > model.Round(r.Config.MaxExpansionBay)
}

// Braces returns vertical then plan braces.
func (r *Result) Braces() []model.Beam3D {
	out := make([]model.Beam3D, 0, len(r.VerticalBraces)+len(r.PlanBraces))
	out = append(out, r.VerticalBraces...)
	return append(out, r.PlanBraces...)
}

// Members returns every member in generation order: portals first, then
// longitudinal beams, braces, brackets and intermediate transverse beams.
func (r *Result) Members() []model.Beam3D {
	var out []model.Beam3D
	for _, p := range r.Portals {
		out = append(out, p.Members()...)
	}
	out = append(out, r.LongBeams...)
	out = append(out, r.VerticalBraces...)
	out = append(out, r.PlanBraces...)
	out = append(out, r.Brackets...)
	return append(out, r.IntTransverseBeams...)
}

// Nodes returns the distinct member endpoints in first-seen order.
func (r *Result) Nodes() []model.Node {
	seen := map[model.PointKey]bool{}
	var out []model.Node
	for _, m := range r.Members() {
		for _, p := range []model.Point3D{m.Start, m.End} {
			k := p.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			n := model.NewNode(p)
			n.Support = model.Round(p.Y) < model.Round(r.Config.Base.Y) ||
				(r.Config.PedestalHeight == 0 && model.Round(p.Y) == model.Round(r.Config.Base.Y))
			out = append(out, n)
		}
	}
	return out
}

// ClassifyInput returns the parametric sets the classifier needs to
// re-derive categories for this result.
func (r *Result) ClassifyInput() ClassifyInput {
	return ClassifyInput{
		Base:               r.Config.Base,
		ColumnOffsets:      r.Config.ColumnOffsets,
		TierElevations:     r.Config.TierElevations(),
		LongBeamElevations: r.Config.EffectiveLongBeamElevations(),
		PortalOffsets:      r.Config.PortalOffsets,
		Tiers:              r.Config.Tiers,
	}
}

// Generate validates the configuration and builds the rack.
func (g *Generator) Generate() (*Result, error) {
	cfg, err := Normalize(g.Config)
	if err != nil {
		return nil, err
	}

	res := &Result{Config: cfg}
	elevations := cfg.TierElevations()
	top := 0.0
	if len(elevations) > 0 {
		top = elevations[len(elevations)-1]
	}

	tmpl := templatePortal(cfg.ColumnOffsets, elevations, top, cfg.PedestalHeight)
	for _, z := range cfg.PortalOffsets {
		res.Portals = append(res.Portals, tmpl.Shift(model.Point3D{Z: z}).Shift(cfg.Base))
	}

	for i := 1; i < len(cfg.PortalOffsets); i++ {
		spacing := cfg.PortalOffsets[i] - cfg.PortalOffsets[i-1]
		if spacing > res.MaxPortalSpacing {
			res.MaxPortalSpacing = spacing
		}
	}

	res.LongBeams = longBeams(cfg)
	res.VerticalBraces, res.PlanBraces = braces(cfg, elevations, top)
	res.Brackets = brackets(cfg)
	res.IntTransverseBeams = intTransverseBeams(cfg)

	if res.ExceedsExpansionBay() {
		slog.Warn("generator: portal spacing exceeds expansion bay",
			"max_spacing", res.MaxPortalSpacing, "max_expansion_bay", cfg.MaxExpansionBay)
	}
	slog.Debug("generator: rack generated",
		"portals", len(res.Portals),
		"long_beams", len(res.LongBeams),
		"braces", len(res.VerticalBraces)+len(res.PlanBraces),
		"brackets", len(res.Brackets),
		"int_transverse", len(res.IntTransverseBeams))
	return res, nil
}

// Normalize de-duplicates and sorts offsets and elevations at point
// precision and checks the inputs the generator relies on.
func Normalize(cfg model.PiperackConfig) (model.PiperackConfig, error) {
	if len(cfg.ColumnOffsets) == 0 {
		return cfg, fmt.Errorf("%w: no column offsets", ErrInvalidConfig)
	}
	if len(cfg.PortalOffsets) == 0 {
		return cfg, fmt.Errorf("%w: no portal offsets", ErrInvalidConfig)
	}
	if cfg.PedestalHeight < 0 {
		return cfg, fmt.Errorf("%w: negative pedestal height %.3f", ErrInvalidConfig, cfg.PedestalHeight)
	}
	if cfg.BracketSize < 0 {
		return cfg, fmt.Errorf("%w: negative bracket size %.3f", ErrInvalidConfig, cfg.BracketSize)
	}

	var err error
	if cfg.ColumnOffsets, err = uniqueSorted("column offset", cfg.ColumnOffsets, true); err != nil {
		return cfg, err
	}
	if cfg.PortalOffsets, err = uniqueSorted("portal offset", cfg.PortalOffsets, true); err != nil {
		return cfg, err
	}
	if len(cfg.LongBeamElevations) > 0 {
		if cfg.LongBeamElevations, err = uniqueSorted("long beam elevation", cfg.LongBeamElevations, false); err != nil {
			return cfg, err
		}
	}

	seen := map[float64]bool{}
	tiers := make([]model.TierConfig, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		y := model.Round(t.Elevation)
		if y <= 0 {
			return cfg, fmt.Errorf("%w: tier elevation %.3f must be above the base", ErrInvalidConfig, t.Elevation)
		}
		if seen[y] {
			slog.Debug("generator: dropping duplicate tier", "elevation", y)
			continue
		}
		seen[y] = true
		t.Elevation = y
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Elevation < tiers[j].Elevation })
	cfg.Tiers = tiers

	switch cfg.BracePattern {
	case "":
		cfg.BracePattern = model.BraceX
	case model.BraceX, model.BraceV:
	default:
		return cfg, fmt.Errorf("%w: unknown brace pattern %q", ErrInvalidConfig, cfg.BracePattern)
	}
	if bays := len(cfg.PortalOffsets) - 1; len(cfg.BracePlacement) > bays && bays >= 0 {
		slog.Debug("generator: ignoring extra brace flags", "flags", len(cfg.BracePlacement), "bays", bays)
		cfg.BracePlacement = cfg.BracePlacement[:bays]
	}
	return cfg, nil
}

// uniqueSorted rounds, de-duplicates and sorts values. Offsets may be
// signed so a rack can be laid out about its centreline; elevations may not.
func uniqueSorted(what string, values []float64, signed bool) ([]float64, error) {
	seen := map[float64]bool{}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		r := model.Round(v)
		if r < 0 && !signed {
			return nil, fmt.Errorf("%w: negative %s %.3f", ErrInvalidConfig, what, v)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Float64s(out)
	return out, nil
}

// templatePortal builds the portal at the origin: a pedestal and a main
// column per column line and one transverse beam per adjacent column pair
// at every tier.
func templatePortal(columns, elevations []float64, top, pedestal float64) *model.PiperackPortal {
	p := model.NewPiperackPortal(model.Point3D{})
	for _, x := range columns {
		if pedestal > 0 {
			p.AddPedestal(model.NewColumn(model.Point3D{X: x, Y: -pedestal}, pedestal))
		}
		if top > 0 {
			p.AddColumn(model.NewColumn(model.Point3D{X: x}, top))
		}
	}
	for _, y := range elevations {
		for i := 1; i < len(columns); i++ {
			p.AddBeam(model.NewBeam3D(
				model.Point3D{X: columns[i-1], Y: y},
				model.Point3D{X: columns[i], Y: y},
			))
		}
	}
	return p
}

func longBeams(cfg model.PiperackConfig) []model.Beam3D {
	var out []model.Beam3D
	elevations := cfg.EffectiveLongBeamElevations()
	for i := 1; i < len(cfg.PortalOffsets); i++ {
		z0, z1 := cfg.PortalOffsets[i-1], cfg.PortalOffsets[i]
		for _, x := range cfg.ColumnOffsets {
			for _, y := range elevations {
				out = append(out, model.NewBeam3D(
					model.Point3D{X: x, Y: y, Z: z0},
					model.Point3D{X: x, Y: y, Z: z1},
				).Shift(cfg.Base))
			}
		}
	}
	return out
}

// braces returns vertical braces on every column line of each braced bay,
// one panel per storey from the base up to the top tier, and plan braces
// on the top tier of the same bays.
func braces(cfg model.PiperackConfig, elevations []float64, top float64) (vertical, plan []model.Beam3D) {
	if len(elevations) == 0 {
		return nil, nil
	}
	levels := append([]float64{0}, elevations...)
	for bay := 0; bay+1 < len(cfg.PortalOffsets); bay++ {
		if !cfg.BayBraced(bay) {
			continue
		}
		z0, z1 := cfg.PortalOffsets[bay], cfg.PortalOffsets[bay+1]
		mid := model.Round((z0 + z1) / 2)
		for _, x := range cfg.ColumnOffsets {
			for l := 1; l < len(levels); l++ {
				lo, hi := levels[l-1], levels[l]
				switch cfg.BracePattern {
				case model.BraceV:
					vertical = append(vertical,
						model.NewBeam3D(model.Point3D{X: x, Y: lo, Z: z0}, model.Point3D{X: x, Y: hi, Z: mid}).Shift(cfg.Base),
						model.NewBeam3D(model.Point3D{X: x, Y: lo, Z: z1}, model.Point3D{X: x, Y: hi, Z: mid}).Shift(cfg.Base),
					)
				default:
					vertical = append(vertical,
						model.NewBeam3D(model.Point3D{X: x, Y: lo, Z: z0}, model.Point3D{X: x, Y: hi, Z: z1}).Shift(cfg.Base),
						model.NewBeam3D(model.Point3D{X: x, Y: lo, Z: z1}, model.Point3D{X: x, Y: hi, Z: z0}).Shift(cfg.Base),
					)
				}
			}
		}
		for i := 1; i < len(cfg.ColumnOffsets); i++ {
			plan = append(plan, model.NewBeam3D(
				model.Point3D{X: cfg.ColumnOffsets[i-1], Y: top, Z: z0},
				model.Point3D{X: cfg.ColumnOffsets[i], Y: top, Z: z1},
			).Shift(cfg.Base))
		}
	}
	return vertical, plan
}

// brackets adds a cantilever outside each outer column line on every tier
// with bracket provision, at every portal.
func brackets(cfg model.PiperackConfig) []model.Beam3D {
	if cfg.BracketSize <= 0 {
		return nil
	}
	xMin := cfg.ColumnOffsets[0]
	xMax := cfg.ColumnOffsets[len(cfg.ColumnOffsets)-1]
	var out []model.Beam3D
	for _, t := range cfg.Tiers {
		if !t.BracketProvision {
			continue
		}
		for _, z := range cfg.PortalOffsets {
			out = append(out,
				model.NewBeam3D(model.Point3D{X: xMin, Y: t.Elevation, Z: z}, model.Point3D{X: xMin - cfg.BracketSize, Y: t.Elevation, Z: z}).Shift(cfg.Base),
				model.NewBeam3D(model.Point3D{X: xMax, Y: t.Elevation, Z: z}, model.Point3D{X: xMax + cfg.BracketSize, Y: t.Elevation, Z: z}).Shift(cfg.Base),
			)
		}
	}
	return out
}

// intTransverseBeams adds a transverse beam at mid-bay on every tier that
// asks for one.
func intTransverseBeams(cfg model.PiperackConfig) []model.Beam3D {
	var out []model.Beam3D
	for _, t := range cfg.Tiers {
		if !t.IntermediateTransverseBeam {
			continue
		}
		for bay := 0; bay+1 < len(cfg.PortalOffsets); bay++ {
			mid := model.Round((cfg.PortalOffsets[bay] + cfg.PortalOffsets[bay+1]) / 2)
			for i := 1; i < len(cfg.ColumnOffsets); i++ {
				out = append(out, model.NewBeam3D(
					model.Point3D{X: cfg.ColumnOffsets[i-1], Y: t.Elevation, Z: mid},
					model.Point3D{X: cfg.ColumnOffsets[i], Y: t.Elevation, Z: mid},
				).Shift(cfg.Base))
			}
		}
	}
	return out
}
