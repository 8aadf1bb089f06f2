package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

// GroupLabelInfo holds the data encoded into each member group label's QR code.
type GroupLabelInfo struct {
	GroupID   string  `json:"group"`
	Name      string  `json:"name"`
	Profile   string  `json:"profile"`
	Members   string  `json:"members"`
	Count     int     `json:"count"`
	MaxRatio  float64 `json:"max_ratio"`
	Allowable float64 `json:"allowable"`
	Adequate  bool    `json:"adequate"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportGroupLabels generates a PDF of QR-coded labels, one per member
// group. Each label shows the group name, chosen profile and member list,
// and its QR code carries the same data as JSON for the fabrication yard.
func ExportGroupLabels(path string, groups []*engine.MemberGroup, search []engine.SearchResult) error {
	labels := CollectGroupLabels(groups, search)
	if len(labels) == 0 {
		return errors.New("no member groups to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderGroupLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderGroupLabel(pdf *fpdf.Fpdf, x, y float64, n int, info GroupLabelInfo) error {
	// cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.GroupID, n)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fitText(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	profile := info.Profile
	if profile == "" {
		profile = "no profile"
	}
	pdf.CellFormat(textW, 3.5, fitText(pdf, profile, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fitText(pdf, fmt.Sprintf("%d: %s", info.Count, info.Members), textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Ratio %.3f / %.2f", info.MaxRatio, info.Allowable), "", 1, "L", false, 0, "")

	if info.OverAllowable() {
		pdf.SetXY(textX, y+labelPadding+16)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(textW, 3, "Over allowable", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// OverAllowable reports whether the worst member ratio reaches the group's
// allowable ratio, the same limit at which members count as failed.
func (info GroupLabelInfo) OverAllowable() bool {
	return info.Allowable > 0 && info.MaxRatio >= info.Allowable
}

// CollectGroupLabels builds one label per group in group order. A group's
// profile and ratio come from its search result when there is one.
func CollectGroupLabels(groups []*engine.MemberGroup, search []engine.SearchResult) []GroupLabelInfo {
	byGroup := make(map[string]engine.SearchResult, len(search))
	for _, r := range search {
		byGroup[r.GroupID] = r
	}

	var labels []GroupLabelInfo
	for _, g := range groups {
		info := GroupLabelInfo{
			GroupID:   g.ID,
			Name:      g.Label(),
			Profile:   g.Preference,
			Members:   model.FormatMemberList(g.Members),
			Count:     len(g.Members),
			Allowable: g.AllowableRatio,
		}
		if r, ok := byGroup[g.ID]; ok && r.Index >= 0 {
			info.Profile = r.Profile
			info.MaxRatio = r.Result.MaxRatio()
			info.Adequate = r.Adequate
		}
		labels = append(labels, info)
	}
	return labels
}
