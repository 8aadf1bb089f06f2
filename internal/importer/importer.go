// Package importer reads tier tables from CSV and Excel files and beam
// wireframes from DXF drawings. Tier table columns are matched by header
// name in any order.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackGen/internal/model"
)

// ImportResult holds the results of a tier table import.
type ImportResult struct {
	Tiers    []model.TierConfig
	Errors   []string
	Warnings []string
}

// ColumnMapping maps tier table roles to their indices in the data.
type ColumnMapping struct {
	Elevation     int
	Type          int
	OperatingLoad int
	WindLoadPos   int
	WindLoadNeg   int
	IntTransverse int
	Bracket       int
}

// headerAliases lists the lowercase header spellings accepted per column.
var headerAliases = map[string][]string{
	"elevation": {"elevation", "elevation (m)", "elev", "level", "el", "y", "height"},
	"type":      {"type", "tier type", "tier_type", "kind"},
	"operating": {"operating load", "operating_load", "operating", "op load", "load"},
	"windpos":   {"wind load (+)", "wind load +", "wind_load_pos", "wind +", "wind pos", "windward", "wind+"},
	"windneg":   {"wind load (-)", "wind load -", "wind_load_neg", "wind -", "wind neg", "leeward", "wind-"},
	"inttrans":  {"transverse beam", "int. transverse", "intermediate transverse beam", "intermediate_transverse_beam", "int transverse", "itb"},
	"bracket":   {"bracket", "brackets", "bracket provision", "bracket_provision"},
}

// csvDelimiters are tried in order; ties keep the earlier one.
var csvDelimiters = []rune{',', ';', '\t', '|'}

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

// DetectCSVDelimiter picks the delimiter that splits the header into at
// least two columns and keeps that column count on the most rows.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, d := range csvDelimiters {
		if score := delimiterScore(data, d); score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

// delimiterScore is 10 per row matching the header width plus the width
// itself, or 0 when d does not split the header.
func delimiterScore(data []byte, d rune) int {
	records, err := readCSV(bytes.NewReader(data), d)
	if err != nil || len(records) == 0 || len(records[0]) < 2 {
		return 0
	}
	width, matching := len(records[0]), 0
	for _, r := range records {
		if len(r) == width {
			matching++
		}
	}
	return matching*10 + width
}

// DetectColumns maps the columns of a header row. Without a recognised
// header it returns the positional layout and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"elevation": &mapping.Elevation,
		"type":      &mapping.Type,
		"operating": &mapping.OperatingLoad,
		"windpos":   &mapping.WindLoadPos,
		"windneg":   &mapping.WindLoadNeg,
		"inttrans":  &mapping.IntTransverse,
		"bracket":   &mapping.Bracket,
	}

	found := false
	for i, cell := range row {
		role, ok := headerRole(cell)
		if !ok {
			continue
		}
		found = true
		if *slots[role] == -1 {
			*slots[role] = i
		}
	}

	if !found {
		// Elevation, Type, Operating, Wind +, Wind -, Int. Transverse, Bracket
		return ColumnMapping{0, 1, 2, 3, 4, 5, 6}, false
	}
	return mapping, true
}

func headerRole(cell string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(cell))
	for role, aliases := range headerAliases {
		if slices.Contains(aliases, name) {
			return role, true
		}
	}
	return "", false
}

// parseFlag reads a yes/no cell. Empty cells are false.
func parseFlag(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	}
	return false, false
}

// getCell returns the trimmed cell at idx, or "" when idx is outside row.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optionalFloat parses an optional numeric cell, falling back to def.
func optionalFloat(row []string, idx int, def float64) (float64, string, error) {
	s := getCell(row, idx)
	if s == "" {
		return def, s, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, s, err
}

// parseRow extracts a TierConfig from a row using the given column mapping.
// Returns the tier, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.TierConfig, string, []string) {
	var tier model.TierConfig
	var warnings []string

	elevStr := getCell(row, mapping.Elevation)
	if elevStr == "" {
		return tier, fmt.Sprintf("%s: Missing elevation value", rowLabel), nil
	}
	elev, err := strconv.ParseFloat(elevStr, 64)
	if err != nil {
		return tier, fmt.Sprintf("%s: Invalid elevation '%s'", rowLabel, elevStr), nil
	}
	if elev <= 0 {
		return tier, fmt.Sprintf("%s: Elevation must be positive", rowLabel), nil
	}
	tier.Elevation = elev

	typeStr := getCell(row, mapping.Type)
	tt, err := model.ParseTierType(typeStr)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown tier type '%s', defaulting to Piping", rowLabel, typeStr))
	}
	tier.Type = tt

	fields := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"operating load", mapping.OperatingLoad, &tier.OperatingLoad},
		{"wind load +", mapping.WindLoadPos, &tier.WindLoadPos},
		{"wind load -", mapping.WindLoadNeg, &tier.WindLoadNeg},
	}
	for _, f := range fields {
		v, raw, err := optionalFloat(row, f.idx, 0)
		if err != nil {
			return model.TierConfig{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, f.name, raw), nil
		}
		*f.dst = v
	}

	flags := []struct {
		name string
		idx  int
		dst  *bool
	}{
		{"intermediate transverse", mapping.IntTransverse, &tier.IntermediateTransverseBeam},
		{"bracket", mapping.Bracket, &tier.BracketProvision},
	}
	for _, f := range flags {
		raw := getCell(row, f.idx)
		v, ok := parseFlag(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown %s flag '%s', defaulting to No", rowLabel, f.name, raw))
		}
		*f.dst = v
	}

	return tier, "", warnings
}

func isEmptyRow(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}

// ImportTiersCSV imports a tier table from a CSV file whose delimiter is
// detected from its content.
func ImportTiersCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return failed("File is empty")
	}

	d := DetectCSVDelimiter(data)
	var notes []string
	if d != ',' {
		notes = append(notes, fmt.Sprintf("Detected %s delimiter", delimiterNames[d]))
	}
	return importCSV(bytes.NewReader(data), d, notes)
}

// ImportTiersCSVFromReader imports a tier table from CSV text with a known
// delimiter.
func ImportTiersCSVFromReader(r io.Reader, delimiter rune) ImportResult {
	return importCSV(r, delimiter, nil)
}

func importCSV(r io.Reader, delimiter rune, notes []string) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return failed("File is empty")
	}
	return newTierTable("Line", notes).read(records)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// ImportTiersXLSX imports a tier table from an Excel workbook. It reads the
// sheet named "Tiers" when present, else the first sheet.
func ImportTiersXLSX(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return failed("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return failed("Excel file has no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, "Tiers") {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return failed("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return failed("Sheet is empty")
	}
	return newTierTable("Row", nil).read(rows)
}

func failed(format string, args ...any) ImportResult {
	return ImportResult{Errors: []string{fmt.Sprintf(format, args...)}}
}

// tierTable accumulates tiers and diagnostics while reading rows. Rows
// repeating an elevation already read are dropped with a warning.
type tierTable struct {
	prefix string
	result ImportResult
	seen   map[float64]int
}

func newTierTable(prefix string, notes []string) *tierTable {
	return &tierTable{prefix: prefix, result: ImportResult{Warnings: notes}, seen: map[float64]int{}}
}

func (t *tierTable) warn(format string, args ...any) {
	t.result.Warnings = append(t.result.Warnings, fmt.Sprintf(format, args...))
}

func (t *tierTable) read(rows [][]string) ImportResult {
	if len(rows) == 0 {
		t.result.Errors = append(t.result.Errors, "No data rows found")
		return t.result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	first := 0
	switch {
	case hasHeader && mapping.Elevation == -1:
		t.result.Errors = append(t.result.Errors, "Required columns not found in header: Elevation")
		return t.result
	case hasHeader:
		first = 1
	default:
		// an unrecognised header falls back to the positional layout
		if _, err := strconv.ParseFloat(getCell(rows[0], 0), 64); err != nil {
			first = 1
		}
	}
	if first == 1 {
		t.warn("Detected header row, skipping")
	}

	for i := first; i < len(rows); i++ {
		if !isEmptyRow(rows[i]) {
			t.add(rows[i], mapping, i+1)
		}
	}
	return t.result
}

func (t *tierTable) add(row []string, mapping ColumnMapping, line int) {
	label := fmt.Sprintf("%s %d", t.prefix, line)
	tier, errMsg, warnings := parseRow(row, mapping, label)
	if errMsg != "" {
		t.result.Errors = append(t.result.Errors, errMsg)
		return
	}
	t.result.Warnings = append(t.result.Warnings, warnings...)

	key := model.Round(tier.Elevation)
	if prev, dup := t.seen[key]; dup {
		t.warn("%s: Duplicate elevation %.3f, keeping %s %d", label, key, t.prefix, prev)
		return
	}
	t.seen[key] = line
	t.result.Tiers = append(t.result.Tiers, tier)
}
