// Package export writes rack results to PDF reports, QR-coded group
// labels, Excel schedules and DXF wireframes.
package export

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

// rgb is a fill or stroke colour.
type rgb struct {
	R, G, B int
}

// categoryColors is the palette shared by the PDF diagrams and the DXF layers.
var categoryColors = map[model.Category]rgb{
	model.CategoryMainColumn:    {R: 33, G: 150, B: 243},  // blue
	model.CategoryStubColumn:    {R: 0, G: 188, B: 212},   // cyan
	model.CategoryVerticalBrace: {R: 76, G: 175, B: 80},   // green
	model.CategoryPlanBrace:     {R: 139, G: 195, B: 74},  // light green
	model.CategoryLongBeam:      {R: 255, G: 152, B: 0},   // orange
	model.CategoryIntLongBeam:   {R: 255, G: 193, B: 7},   // amber
	model.CategoryPortalBeam:    {R: 244, G: 67, B: 54},   // red
	model.CategoryIntTransverse: {R: 156, G: 39, B: 176},  // purple
	model.CategoryBracket:       {R: 121, G: 85, B: 72},   // brown
	model.CategoryConcrete:      {R: 158, G: 158, B: 158}, // grey
	model.CategoryUnclassified:  {R: 0, G: 0, B: 0},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ErrNothingToExport is returned when a report has no structure.
var ErrNothingToExport = errors.New("nothing to export")

// Report collects everything the PDF report can show. Only Structure is
// required.
type Report struct {
	Title      string
	Config     model.PiperackConfig
	Structure  *model.PiperackStructure
	Groups     []*engine.MemberGroup
	Search     []engine.SearchResult
	Comparison []engine.ComparisonResult
	Takeoff    *model.SteelTakeoff
	BandStep   float64
}

// ExportReportPDF writes the rack report: a summary page, portal and
// longitudinal elevations, and, when present, group results with ratio
// bands, a scenario comparison and the steel takeoff.
func ExportReportPDF(path string, r Report) error {
	if r.Structure == nil {
		return fmt.Errorf("%w: no structure", ErrNothingToExport)
	}
	if r.Title == "" {
		r.Title = "Piperack Report"
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, r)

	pdf.AddPage()
	renderElevationPage(pdf, r.Structure, "Portal elevation", portalView(r.Structure))

	pdf.AddPage()
	renderElevationPage(pdf, r.Structure, "Longitudinal elevation", longitudinalView(r.Structure))

	if len(r.Search) > 0 {
		pdf.AddPage()
		renderGroupPage(pdf, r)
	}
	if len(r.Comparison) > 0 {
		pdf.AddPage()
		renderComparisonPage(pdf, r.Comparison)
	}
	if r.Takeoff != nil {
		pdf.AddPage()
		renderTakeoffPage(pdf, *r.Takeoff)
	}

	return pdf.OutputFileAndClose(path)
}

func pageTitle(pdf *fpdf.Fpdf, title string) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)
	return marginTop + 18
}

func sectionTitle(pdf *fpdf.Fpdf, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	return y + 9
}

// table draws a header row and data rows with alternating fill.
func table(pdf *fpdf.Fpdf, y float64, widths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[j], 6, fitText(pdf, cell, widths[j]-2), "1", 0, "C", true, 0, "")
			x += widths[j]
		}
		y += 6
	}
	return y
}

// fitText truncates s with an ellipsis so it fits w.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func renderSummaryPage(pdf *fpdf.Fpdf, r Report) {
	y := pageTitle(pdf, r.Title)
	y = sectionTitle(pdf, y, "Configuration")

	cfg := r.Config
	bays := 0
	if len(cfg.PortalOffsets) > 1 {
		bays = len(cfg.PortalOffsets) - 1
	}
	items := []struct {
		label string
		value string
	}{
		{"Name", cfg.Name},
		{"Portals / bays", fmt.Sprintf("%d / %d", len(cfg.PortalOffsets), bays)},
		{"Column lines", fmt.Sprintf("%d", len(cfg.ColumnOffsets))},
		{"Tiers", formatElevations(cfg.TierElevations())},
		{"Pedestal height", fmt.Sprintf("%.3f m", cfg.PedestalHeight)},
		{"Brace pattern", string(cfg.BracePattern)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(150, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	y = sectionTitle(pdf, y, "Member classification")

	summary := r.Structure.Summary()
	var rows [][]string
	for _, c := range model.Categories {
		n := summary[c]
		if n == 0 {
			continue
		}
		rows = append(rows, []string{
			categoryTitle(c),
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.2f m", totalLength(r.Structure.ByCategory(c))),
			model.FormatMemberList(r.Structure.IDs(c)),
		})
	}
	table(pdf, y, []float64{55, 25, 35, 152}, []string{"Category", "Members", "Length", "IDs"}, rows)

	if n := summary[model.CategoryUnclassified]; n > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, pageHeight-marginBottom-10)
		pdf.CellFormat(200, 6, fmt.Sprintf("WARNING: %d unclassified members", n), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	footer(pdf)
}

// view projects a structure onto a drawing plane.
type view struct {
	caption string
	beams   []model.Beam3D
	project func(p model.Point3D) (h, v float64)
}

// portalView shows the members lying in the first portal plane.
func portalView(s *model.PiperackStructure) view {
	all := allMembers(s)
	z, ok := minCoord(all, func(p model.Point3D) float64 { return p.Z })
	var in []model.Beam3D
	for _, b := range all {
		if ok && model.Round(b.Start.Z) == z && model.Round(b.End.Z) == z {
			in = append(in, b)
		}
	}
	return view{
		caption: fmt.Sprintf("Portal at z = %.3f m", z),
		beams:   in,
		project: func(p model.Point3D) (float64, float64) { return p.X, p.Y },
	}
}

// longitudinalView shows the members lying on the first column line.
func longitudinalView(s *model.PiperackStructure) view {
	all := allMembers(s)
	x, ok := minCoord(all, func(p model.Point3D) float64 { return p.X })
	var in []model.Beam3D
	for _, b := range all {
		if ok && model.Round(b.Start.X) == x && model.Round(b.End.X) == x {
			in = append(in, b)
		}
	}
	return view{
		caption: fmt.Sprintf("Column line at x = %.3f m", x),
		beams:   in,
		project: func(p model.Point3D) (float64, float64) { return p.Z, p.Y },
	}
}

func renderElevationPage(pdf *fpdf.Fpdf, s *model.PiperackStructure, title string, v view) {
	pageTitle(pdf, title)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, fmt.Sprintf("%s, %d members", v.caption, len(v.beams)), "", 0, "L", false, 0, "")

	if len(v.beams) == 0 {
		footer(pdf)
		return
	}

	minH, minV := math.Inf(1), math.Inf(1)
	maxH, maxV := math.Inf(-1), math.Inf(-1)
	for _, b := range v.beams {
		for _, p := range []model.Point3D{b.Start, b.End} {
			h, vv := v.project(p)
			minH, maxH = math.Min(minH, h), math.Max(maxH, h)
			minV, maxV = math.Min(minV, vv), math.Max(maxV, vv)
		}
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	spanH := math.Max(maxH-minH, 1)
	spanV := math.Max(maxV-minV, 1)
	scale := math.Min(drawWidth/spanH, drawHeight/spanV)

	offsetX := marginLeft + (drawWidth-spanH*scale)/2
	baseY := drawAreaTop + spanV*scale

	toPage := func(p model.Point3D) (float64, float64) {
		h, vv := v.project(p)
		return offsetX + (h-minH)*scale, baseY - (vv-minV)*scale
	}

	used := map[model.Category]bool{}
	for _, b := range v.beams {
		c, _ := s.CategoryOf(b.ID)
		used[c] = true
		col := categoryColors[c]
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.6)
		x1, y1 := toPage(b.Start)
		x2, y2 := toPage(b.End)
		pdf.Line(x1, y1, x2, y2)
	}

	// Elevation marks on the left
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	for _, t := range s.Tiers {
		_, y := toPage(model.Point3D{Y: t.Elevation()})
		label := fmt.Sprintf("EL %.3f", t.Elevation())
		w := pdf.GetStringWidth(label)
		pdf.SetXY(offsetX-w-3, y-2)
		pdf.CellFormat(w, 4, label, "", 0, "R", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	drawCategoryLegend(pdf, used, baseY+6)
	footer(pdf)
}

// drawCategoryLegend renders a colour swatch per category shown on the page.
func drawCategoryLegend(pdf *fpdf.Fpdf, used map[model.Category]bool, startY float64) {
	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft
	maxX := pageWidth - marginRight
	for _, c := range model.Categories {
		if !used[c] {
			continue
		}
		label := categoryTitle(c)
		labelW := pdf.GetStringWidth(label) + 6
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		col := categoryColors[c]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

func renderGroupPage(pdf *fpdf.Fpdf, r Report) {
	y := pageTitle(pdf, "Member group results")

	byID := map[string]*engine.MemberGroup{}
	for _, g := range r.Groups {
		byID[g.ID] = g
	}

	var rows [][]string
	for _, res := range r.Search {
		name, allowable := res.GroupID, 0.0
		members := 0
		if g, ok := byID[res.GroupID]; ok {
			name, allowable, members = g.Label(), g.AllowableRatio, len(g.Members)
		}
		status := "OK"
		switch {
		case res.Index < 0:
			status = "NOT RUN"
		case !res.Adequate:
			status = "FAILED"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", members),
			res.Profile,
			fmt.Sprintf("%.3f", res.Result.Average),
			fmt.Sprintf("%.3f", res.Result.Deviation),
			fmt.Sprintf("%.3f", res.Result.MaxRatio()),
			fmt.Sprintf("%.2f", allowable),
			fmt.Sprintf("%d", len(res.Result.Failed)),
			status,
		})
	}
	y = table(pdf, y, []float64{48, 20, 50, 22, 22, 22, 22, 20, 31},
		[]string{"Group", "Members", "Profile", "Average", "Std dev", "Max", "Allowable", "Failed", "Status"}, rows)

	step := r.BandStep
	if step <= 0 {
		step = 0.5
	}
	y += 8
	y = sectionTitle(pdf, y, fmt.Sprintf("Utilization bands (step %.2f)", step))

	pdf.SetFont("Helvetica", "", 9)
	for _, res := range r.Search {
		if len(res.Result.Ratios) == 0 {
			continue
		}
		var parts []string
		for _, b := range engine.RatioBands(res.Result.Ratios, step) {
			if len(b.Members) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", b.Label, len(b.Members)))
			}
		}
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		label := res.GroupID
		if g, ok := byID[res.GroupID]; ok {
			label = g.Label()
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 5, label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(200, 5, strings.Join(parts, "   "), "", 0, "L", false, 0, "")
		y += 6
	}

	failures := engine.SortedFailures(r.Search)
	if len(failures) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("WARNING: %d members over the allowable ratio", len(failures)), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, f := range failures {
			if y > pageHeight-marginBottom-6 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- member %d: ratio %.3f", f.ID, f.Ratio), "", 0, "L", false, 0, "")
			y += 5
		}
	}
	footer(pdf)
}

func renderComparisonPage(pdf *fpdf.Fpdf, results []engine.ComparisonResult) {
	y := pageTitle(pdf, "Scenario comparison")

	var rows [][]string
	for _, c := range results {
		if c.Err != nil {
			rows = append(rows, []string{c.Scenario.Name, fmt.Sprintf("%.2f", c.Scenario.AllowableRatio), "-", "-", "-", "-", c.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			c.Scenario.Name,
			fmt.Sprintf("%.2f", c.Scenario.AllowableRatio),
			c.Search.Profile,
			fmt.Sprintf("%.3f", c.Average),
			fmt.Sprintf("%d", c.FailedCount),
			fmt.Sprintf("%.1f kg", c.SteelWeight),
			"",
		})
	}
	table(pdf, y, []float64{55, 22, 55, 22, 20, 35, 58},
		[]string{"Scenario", "Allowable", "Profile", "Average", "Failed", "Weight", "Note"}, rows)
	footer(pdf)
}

func renderTakeoffPage(pdf *fpdf.Fpdf, t model.SteelTakeoff) {
	y := pageTitle(pdf, "Steel takeoff")

	var rows [][]string
	for _, l := range t.Lines {
		rows = append(rows, []string{
			l.Profile,
			fmt.Sprintf("%d", l.Members),
			fmt.Sprintf("%.2f m", l.TotalLength),
			fmt.Sprintf("%.2f", l.WeightPerMeter),
			fmt.Sprintf("%.1f kg", l.Weight),
		})
	}
	y = table(pdf, y, []float64{70, 25, 40, 35, 40}, []string{"Profile", "Members", "Length", "kg/m", "Weight"}, rows)

	y += 8
	items := []struct {
		label string
		value string
	}{
		{"Total weight", fmt.Sprintf("%.1f kg", t.TotalWeight)},
		{"Waste allowance", fmt.Sprintf("%.1f%%", t.WastePercent)},
		{"Tonnes to order", fmt.Sprintf("%.1f t", t.TonnesToOrder)},
		{"Estimated cost", fmt.Sprintf("%.2f", t.EstimatedCost)},
		{"Members without profile", fmt.Sprintf("%d", t.Unassigned)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		y += 7
	}
	if len(t.Unpriced) > 0 {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(250, 6, "Not in catalog: "+strings.Join(t.Unpriced, ", "), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	footer(pdf)
}

func footer(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RackGen - Piperack Generator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// categoryTitle turns "main_column" into "Main column".
func categoryTitle(c model.Category) string {
	s := strings.ReplaceAll(string(c), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatElevations(ys []float64) string {
	parts := make([]string, len(ys))
	for i, y := range ys {
		parts[i] = fmt.Sprintf("%.3f", y)
	}
	return strings.Join(parts, ", ")
}

func totalLength(beams []model.Beam3D) float64 {
	var total float64
	for _, b := range beams {
		total += b.Length()
	}
	return total
}

// allMembers returns every classified member, concrete included, by ID.
func allMembers(s *model.PiperackStructure) []model.Beam3D {
	var out []model.Beam3D
	for _, c := range model.Categories {
		out = append(out, s.ByCategory(c)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func minCoord(beams []model.Beam3D, axis func(model.Point3D) float64) (float64, bool) {
	if len(beams) == 0 {
		return 0, false
	}
	m := math.Inf(1)
	for _, b := range beams {
		m = math.Min(m, math.Min(axis(b.Start), axis(b.End)))
	}
	return model.Round(m), true
}
