package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

// Sheet names written by ExportScheduleXLSX.
const (
	SheetMembers = "Members"
	SheetSummary = "Summary"
	SheetGroups  = "Groups"
	SheetTiers   = "Tiers"
)

// scheduleCases are the tier load cases given a column in the Tiers sheet.
var scheduleCases = []model.LoadCase{
	model.LoadCaseOperatingLoad,
	model.LoadCaseEmptyLoad,
	model.LoadCaseWindTierGX,
	model.LoadCaseWindTierGXOpposite,
}

// ExportScheduleXLSX writes the member schedule workbook: every member with
// its category and geometry, a per-category summary, the tier table and,
// when search results are given, the member group results.
func ExportScheduleXLSX(path string, s *model.PiperackStructure, groups []*engine.MemberGroup, search []engine.SearchResult) error {
	if s == nil {
		return fmt.Errorf("%w: no structure", ErrNothingToExport)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMembers); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetTiers} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	w := sheetWriter{f: f, header: header}
	w.members(s)
	w.summary(s)
	w.tiers(s)
	if len(search) > 0 {
		if _, err := f.NewSheet(SheetGroups); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", SheetGroups, err)
		}
		w.groups(groups, search)
	}
	if w.err != nil {
		return fmt.Errorf("failed to write schedule: %w", w.err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first write error so the sheet builders read
// straight through.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, r int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headerRow(sheet string, widths []float64, titles ...interface{}) {
	w.row(sheet, 1, titles...)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.f.SetCellStyle(sheet, "A1", last, w.header); w.err != nil {
		return
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		if w.err = w.f.SetColWidth(sheet, col, col, width); w.err != nil {
			return
		}
	}
}

func (w *sheetWriter) members(s *model.PiperackStructure) {
	w.headerRow(SheetMembers, []float64{8, 20, 10, 10, 10, 10, 10, 10, 10, 16},
		"ID", "Category", "Start X", "Start Y", "Start Z", "End X", "End Y", "End Z", "Length", "Profile")

	r := 2
	for _, b := range allMembers(s) {
		c, _ := s.CategoryOf(b.ID)
		w.row(SheetMembers, r, b.ID, string(c),
			b.Start.X, b.Start.Y, b.Start.Z,
			b.End.X, b.End.Y, b.End.Z,
			model.Round(b.Length()), b.Profile)
		r++
	}
}

func (w *sheetWriter) summary(s *model.PiperackStructure) {
	w.headerRow(SheetSummary, []float64{22, 10, 12, 60}, "Category", "Members", "Length", "IDs")

	summary := s.Summary()
	r := 2
	for _, c := range model.Categories {
		w.row(SheetSummary, r, string(c), summary[c],
			model.Round(totalLength(s.ByCategory(c))),
			model.FormatMemberList(s.IDs(c)))
		r++
	}
}

func (w *sheetWriter) tiers(s *model.PiperackStructure) {
	titles := []interface{}{"Elevation", "Type", "Beams", "Intermediate", "Brackets"}
	widths := []float64{10, 24, 8, 12, 10}
	for _, c := range scheduleCases {
		titles = append(titles, c.String())
		widths = append(widths, 22)
	}
	w.headerRow(SheetTiers, widths, titles...)

	for i, t := range s.Tiers {
		values := []interface{}{t.Elevation(), t.Type.String(), len(t.Beams), len(t.IntBeams), len(t.Brackets)}
		for _, c := range scheduleCases {
			values = append(values, model.Round(t.TotalLoad(c)))
		}
		w.row(SheetTiers, i+2, values...)
	}
}

func (w *sheetWriter) groups(groups []*engine.MemberGroup, search []engine.SearchResult) {
	w.headerRow(SheetGroups, []float64{20, 40, 16, 10, 10, 10, 10, 30},
		"Group", "Members", "Profile", "Average", "Std dev", "Max", "Allowable", "Failed")

	byID := map[string]*engine.MemberGroup{}
	for _, g := range groups {
		byID[g.ID] = g
	}
	for i, res := range search {
		name, members, allowable := res.GroupID, "", 0.0
		if g, ok := byID[res.GroupID]; ok {
			name, members, allowable = g.Label(), model.FormatMemberList(g.Members), g.AllowableRatio
		}
		failed := make([]int, len(res.Result.Failed))
		for j, f := range res.Result.Failed {
			failed[j] = f.ID
		}
		w.row(SheetGroups, i+2, name, members, res.Profile,
			model.Round(res.Result.Average), model.Round(res.Result.Deviation),
			model.Round(res.Result.MaxRatio()), allowable, model.FormatMemberList(failed))
	}
}
