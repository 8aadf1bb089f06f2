package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RackGen/internal/model"
)

// BeamImportResult holds the members read from a wireframe drawing.
type BeamImportResult struct {
	Beams    []model.Beam3D
	Errors   []string
	Warnings []string
}

// FromDXF converts drawing coordinates (Z up) to rack coordinates (Y up).
// Drawing X is across the rack, drawing Y along it.
func FromDXF(v []float64) model.Point3D {
	var p [3]float64
	copy(p[:], v)
	return model.Point3D{X: p[0], Y: p[2], Z: p[1]}.Round()
}

// ToDXF is the inverse of FromDXF.
func ToDXF(p model.Point3D) (x, y, z float64) {
	return p.X, p.Z, p.Y
}

// ImportDXFBeams imports members from a DXF wireframe. Every LINE entity
// becomes one unassigned Beam3D. Zero-length and duplicate lines are
// skipped with a warning; other entity types are counted and ignored.
func ImportDXFBeams(path string) BeamImportResult {
	result := BeamImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	seen := map[[2]model.PointKey]bool{}
	skipped := 0
	for _, ent := range entities {
		line, ok := ent.(*entity.Line)
		if !ok {
			skipped++
			continue
		}

		start, end := FromDXF(line.Start), FromDXF(line.End)
		if start.Equal(end) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped zero-length line at %s", start))
			continue
		}

		key := [2]model.PointKey{start.Key(), end.Key()}
		rev := [2]model.PointKey{end.Key(), start.Key()}
		if seen[key] || seen[rev] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped duplicate line %s -> %s", start, end))
			continue
		}
		seen[key] = true

		result.Beams = append(result.Beams, model.NewBeam3D(start, end))
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Ignored %d non-line entities", skipped))
	}
	if len(result.Beams) == 0 {
		result.Errors = append(result.Errors, "No lines found in DXF file")
	}
	return result
}
