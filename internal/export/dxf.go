package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/RackGen/internal/importer"
	"github.com/piwi3910/RackGen/internal/model"
)

// dxfColors maps categories to ACI colours.
var dxfColors = map[model.Category]color.ColorNumber{
	model.CategoryMainColumn:    color.Blue,
	model.CategoryStubColumn:    color.Cyan,
	model.CategoryVerticalBrace: color.Green,
	model.CategoryPlanBrace:     color.Green,
	model.CategoryLongBeam:      color.Yellow,
	model.CategoryIntLongBeam:   color.Yellow,
	model.CategoryPortalBeam:    color.Red,
	model.CategoryIntTransverse: color.Magenta,
	model.CategoryBracket:       color.Magenta,
	model.CategoryConcrete:      color.White,
	model.CategoryUnclassified:  color.White,
}

// LayerName returns the DXF layer a category is drawn on.
func LayerName(c model.Category) string {
	return "RACK_" + string(c)
}

// ExportDXF writes the structure as a 3D wireframe with one layer per
// non-empty category. The drawing uses the same axes ImportDXFBeams reads,
// so an exported rack can be imported again.
func ExportDXF(path string, s *model.PiperackStructure) error {
	if s == nil {
		return fmt.Errorf("%w: no structure", ErrNothingToExport)
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	lines := 0
	for _, c := range model.Categories {
		beams := s.ByCategory(c)
		if len(beams) == 0 {
			continue
		}
		layer := LayerName(c)
		if _, err := d.AddLayer(layer, dxfColors[c], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layer, err)
		}
		if err := d.ChangeLayer(layer); err != nil {
			return fmt.Errorf("failed to select layer %s: %w", layer, err)
		}
		for _, b := range beams {
			x1, y1, z1 := importer.ToDXF(b.Start)
			x2, y2, z2 := importer.ToDXF(b.End)
			if _, err := d.Line(x1, y1, z1, x2, y2, z2); err != nil {
				return fmt.Errorf("failed to draw member %d: %w", b.ID, err)
			}
			lines++
		}
	}
	if lines == 0 {
		return fmt.Errorf("%w: structure has no members", ErrNothingToExport)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}
