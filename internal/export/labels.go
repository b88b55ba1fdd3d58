package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RebarCut/internal/model"
)

// TagCut is one cut as encoded in a bar tag QR code.
type TagCut struct {
	Mark     string `json:"mark"`
	LengthMm int    `json:"length_mm"`
}

// TagInfo holds the data encoded into each bar tag's QR code. The saw
// operator scans it to load the cut sequence for one stock bar.
type TagInfo struct {
	PlanID        string   `json:"plan"`
	BarSize       string   `json:"bar_size"`
	BarIndex      int      `json:"bar"`
	StockLengthMm int      `json:"stock_length_mm"`
	Cuts          []TagCut `json:"cuts"`
	RemainderMm   int      `json:"remainder_mm"`
	StopperMoves  int      `json:"stopper_moves"`
}

// Tag layout constants for Avery 5163-compatible labels (2 columns, 5 rows per page).
const (
	tagMarginTop  = 12.7  // mm
	tagMarginLeft = 4.8   // mm
	tagWidth      = 101.6 // mm per tag
	tagHeight     = 50.8  // mm per tag
	tagCols       = 2
	tagRows       = 5
	tagsPerPage   = tagCols * tagRows
	qrSize        = 36.0 // QR code size in mm
	tagPadding    = 3.0  // mm internal padding
	tagMaxLines   = 6
)

// ExportBarTags generates a PDF of QR-coded tags, one per stock bar, laid
// out on a standard label sheet (Avery 5163 / 2 columns x 5 rows on US
// Letter). Each tag lists the cuts in the order they are made.
func ExportBarTags(path string, plan model.Plan) error {
	tags := CollectTagInfos(plan)
	if len(tags) == 0 {
		return fmt.Errorf("no bars to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, tag := range tags {
		if i%tagsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % tagsPerPage
		col := posOnPage % tagCols
		row := posOnPage / tagCols

		x := tagMarginLeft + float64(col)*tagWidth
		y := tagMarginTop + float64(row)*tagHeight

		if err := renderTag(pdf, x, y, tag); err != nil {
			return fmt.Errorf("failed to render tag for %s bar %d: %w", tag.BarSize, tag.BarIndex, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTag draws a single bar tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, info TagInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, tagWidth, tagHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.BarSize, info.BarIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + tagWidth - qrSize - tagPadding
	qrY := y + (tagHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + tagPadding
	textW := tagWidth - qrSize - 3*tagPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+tagPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("%s  Bar #%d", info.BarSize, info.BarIndex), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+tagPadding+5.5)
	meta := fmt.Sprintf("Stock %d mm | Offcut %d mm | %d moves", info.StockLengthMm, info.RemainderMm, info.StopperMoves)
	pdf.CellFormat(textW, 3.5, meta, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	lines := tagLines(info.Cuts)
	for i, line := range lines {
		pdf.SetXY(textX, y+tagPadding+10+float64(i)*4.5)
		pdf.CellFormat(textW, 4, truncate(pdf, line, textW), "", 1, "L", false, 0, "")
	}

	return nil
}

// tagLines groups consecutive cuts of the same length and mark into one
// line, e.g. "3 x B101  2400 mm".
func tagLines(cuts []TagCut) []string {
	var lines []string
	for i := 0; i < len(cuts); {
		j := i
		for j < len(cuts) && cuts[j] == cuts[i] {
			j++
		}
		lines = append(lines, fmt.Sprintf("%d x %s  %d mm", j-i, cuts[i].Mark, cuts[i].LengthMm))
		i = j
	}
	if len(lines) > tagMaxLines {
		more := len(lines) - tagMaxLines + 1
		lines = append(lines[:tagMaxLines-1], fmt.Sprintf("... %d more (scan)", more))
	}
	return lines
}

func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = strings.TrimRight(s[:len(s)-1], " ")
	}
	return s + "..."
}

// CollectTagInfos extracts one tag per stock bar from a plan, in class and
// bar order.
func CollectTagInfos(plan model.Plan) []TagInfo {
	var tags []TagInfo
	for _, r := range plan.Summary.Results {
		for i, b := range r.Bars {
			cuts := make([]TagCut, len(b.Cuts))
			for j, c := range b.Cuts {
				cuts[j] = TagCut{Mark: c.MarkLabel, LengthMm: c.LengthMm}
			}
			tags = append(tags, TagInfo{
				PlanID:        plan.ID,
				BarSize:       r.BarSize,
				BarIndex:      i + 1,
				StockLengthMm: b.StockLengthMm,
				Cuts:          cuts,
				RemainderMm:   b.RemainderMm,
				StopperMoves:  b.StopperMoves,
			})
		}
	}
	return tags
}
