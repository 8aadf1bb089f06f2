package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"

	"github.com/piwi3910/RackGen/internal/model"
)

func TestFromDXFAndBack(t *testing.T) {
	p := FromDXF([]float64{6, 16, 3.00049})
	want := model.Point3D{X: 6, Y: 3, Z: 16}
	if !p.Equal(want) {
		t.Errorf("expected %s, got %s", want, p)
	}

	x, y, z := ToDXF(want)
	if x != 6 || y != 16 || z != 3 {
		t.Errorf("expected (6, 16, 3), got (%v, %v, %v)", x, y, z)
	}

	// 2D points land on the base plane
	if got := FromDXF([]float64{1, 2}); got.Y != 0 || got.Z != 2 {
		t.Errorf("expected 2D point on base plane, got %s", got)
	}
}

func TestImportDXFBeams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rack.dxf")

	d := dxf.NewDrawing()
	lines := [][6]float64{
		{0, 0, 0, 0, 0, 6}, // column
		{0, 0, 6, 8, 0, 6}, // portal beam
		{8, 0, 6, 0, 0, 6}, // same beam reversed
		{2, 2, 2, 2, 2, 2}, // zero length
	}
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], l[2], l[3], l[4], l[5]); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	}
	if _, err := d.Circle(0, 0, 0, 1); err != nil {
		t.Fatalf("failed to add circle: %v", err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}

	result := ImportDXFBeams(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Beams) != 2 {
		t.Fatalf("expected 2 beams, got %d", len(result.Beams))
	}

	column := result.Beams[0]
	if column.ID != model.UnassignedID {
		t.Errorf("expected unassigned ID, got %d", column.ID)
	}
	if !column.End.Equal(model.Point3D{Y: 6}) {
		t.Errorf("expected column to rise to y=6, got %s", column.End)
	}
	if !result.Beams[1].End.Equal(model.Point3D{X: 8, Y: 6}) {
		t.Errorf("unexpected portal beam end %s", result.Beams[1].End)
	}

	joined := strings.Join(result.Warnings, "\n")
	for _, want := range []string{"duplicate line", "zero-length", "Ignored 1 non-line"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected warning containing %q, got %v", want, result.Warnings)
		}
	}
}

func TestImportDXFBeams_FileNotFound(t *testing.T) {
	result := ImportDXFBeams("/nonexistent/rack.dxf")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
