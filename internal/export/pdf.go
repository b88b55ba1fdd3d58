// Package export provides functionality for exporting committed cutting
// plans to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/RebarCut/internal/model"
)

// cutColor represents an RGB color for a cut on a bar diagram.
type cutColor struct {
	R, G, B int
}

// cutColors cycles per distinct cut length so identical cuts share a color.
var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
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
	drawAreaTop  = marginTop + headerHeight + 8.0
	barRowHeight = 11.0
	barHeight    = 7.0
	barLabelW    = 18.0
)

// barsPerPage is how many bar diagrams fit below the page header:
// floor((pageHeight - drawAreaTop - marginBottom) / barRowHeight).
const barsPerPage = 14

// ExportPDF generates a PDF cutting plan. Each bar-size class gets one or
// more pages of bar diagrams in cut order, followed by a summary page with
// the per-class totals, remnants and any oversize items.
func ExportPDF(path string, plan model.Plan, remnants []model.Remnant) error {
	if len(plan.Summary.Results) == 0 && len(plan.Oversize) == 0 {
		return fmt.Errorf("no bars to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, r := range plan.Summary.Results {
		colors := colorsByLength(r)
		for start := 0; start < len(r.Bars); start += barsPerPage {
			end := min(start+barsPerPage, len(r.Bars))
			pdf.AddPage()
			renderClassPage(pdf, plan, r, start, end, colors)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, remnants)

	return pdf.OutputFileAndClose(path)
}

// colorsByLength assigns colors to the distinct cut lengths of a class,
// longest first, so the same length looks the same on every bar.
func colorsByLength(r model.OptimizationResult) map[int]cutColor {
	colors := make(map[int]cutColor)
	next := 0
	for _, b := range r.Bars {
		for _, c := range b.Cuts {
			if _, ok := colors[c.LengthMm]; ok {
				continue
			}
			colors[c.LengthMm] = cutColors[next%len(cutColors)]
			next++
		}
	}
	return colors
}

// renderClassPage draws bars[start:end] of one class on the current page.
func renderClassPage(pdf *fpdf.Fpdf, plan model.Plan, r model.OptimizationResult, start, end int, colors map[int]cutColor) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%d mm stock)", plan.Name, r.BarSize, r.StockLengthMm)
	if len(r.Bars) > barsPerPage {
		title += fmt.Sprintf("  bars %d-%d of %d", start+1, end, len(r.Bars))
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Bars: %d | Cuts: %d | Stopper moves: %d | Waste: %.2f kg | Efficiency: %.1f%% | Kerf: %d mm",
		r.TotalStockBars, r.TotalCuts, r.TotalStopperMoves, r.WasteKg, r.EfficiencyPct, plan.KerfMm)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - barLabelW
	scale := drawWidth / float64(r.StockLengthMm)

	y := drawAreaTop
	for i := start; i < end; i++ {
		drawBar(pdf, r.Bars[i], i+1, plan.KerfMm, scale, y, colors)
		y += barRowHeight
	}
}

// drawBar renders one stock bar as a strip with its cuts left to right and
// the remainder hatched at the end.
func drawBar(pdf *fpdf.Fpdf, bar model.Bar, barNum, kerfMm int, scale, y float64, colors map[int]cutColor) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y+1)
	pdf.CellFormat(barLabelW, 5, fmt.Sprintf("#%d", barNum), "", 0, "L", false, 0, "")

	x0 := marginLeft + barLabelW
	pdf.SetFillColor(200, 200, 200)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x0, y, float64(bar.StockLengthMm)*scale, barHeight, "FD")

	pos := 0
	for i, c := range bar.Cuts {
		if i > 0 {
			pos += kerfMm
		}
		w := float64(c.LengthMm) * scale
		px := x0 + float64(pos)*scale

		col := colors[c.LengthMm]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(px, y, w, barHeight, "FD")

		label := fmt.Sprintf("%s %d", c.MarkLabel, c.LengthMm)
		pdf.SetFont("Helvetica", "", labelFontSize(w))
		if lw := pdf.GetStringWidth(label); lw < w-1 {
			pdf.SetXY(px+(w-lw)/2, y+1.5)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
		pos += c.LengthMm
	}

	if bar.RemainderMm > 0 {
		rx := x0 + float64(bar.UsedLengthMm)*scale
		rw := float64(bar.RemainderMm) * scale
		pdf.SetFillColor(255, 220, 220)
		pdf.SetDrawColor(200, 0, 0)
		pdf.Rect(rx, y, rw, barHeight, "FD")
		drawHatchPattern(pdf, rx, y, rw, barHeight)

		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(180, 0, 0)
		text := fmt.Sprintf("%d", bar.RemainderMm)
		if lw := pdf.GetStringWidth(text); lw < rw-1 {
			pdf.SetXY(rx+(rw-lw)/2, y+1.5)
			pdf.CellFormat(lw, 4, text, "", 0, "C", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}

	if bar.StopperMoves > 0 {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(marginLeft, y+5)
		pdf.CellFormat(barLabelW, 3, fmt.Sprintf("%d moves", bar.StopperMoves), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark offcut.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 2.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the final summary page with plan totals.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan, remnants []model.Remnant) {
	s := plan.Summary

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary: "+plan.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Strategy", string(s.Strategy)},
		{"Stock Length", fmt.Sprintf("%d mm", plan.StockLengthMm)},
		{"Kerf", fmt.Sprintf("%d mm", plan.KerfMm)},
		{"Stock Bars", fmt.Sprintf("%d", s.TotalStockBars)},
		{"Cuts", fmt.Sprintf("%d", s.TotalCuts)},
		{"Stopper Moves", fmt.Sprintf("%d", s.TotalStopperMoves)},
		{"Waste", fmt.Sprintf("%.2f kg", s.TotalWasteKg)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", s.OverallEfficiency)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	y += 5

	if len(s.Results) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Bar Size Breakdown", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{30, 35, 25, 25, 35, 40, 35}
		headers := []string{"Bar Size", "Stock", "Bars", "Cuts", "Stopper Moves", "Waste", "Efficiency"}
		y = tableHeader(pdf, y, colWidths, headers)

		pdf.SetFont("Helvetica", "", 9)
		for i, r := range s.Results {
			row := []string{
				r.BarSize,
				fmt.Sprintf("%d mm", r.StockLengthMm),
				fmt.Sprintf("%d", r.TotalStockBars),
				fmt.Sprintf("%d", r.TotalCuts),
				fmt.Sprintf("%d", r.TotalStopperMoves),
				fmt.Sprintf("%.2f kg", r.WasteKg),
				fmt.Sprintf("%.1f%%", r.EfficiencyPct),
			}
			y = tableRow(pdf, y, i, colWidths, row)
		}
	}

	if len(remnants) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("Reusable Remnants (%.2f kg)", model.TotalRemnantKg(remnants)), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, rem := range remnants {
			if y > pageHeight-marginBottom-10 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s bar #%d: %d mm (%.2f kg)", rem.BarSizeClass, rem.BarIndex, rem.LengthMm, rem.WeightKg)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if len(plan.Oversize) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Items longer than stock (not cut)", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, it := range plan.Oversize {
			if y > pageHeight-marginBottom-10 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s (%s): %s %d mm x %d", it.MarkLabel, it.ID, it.BarSizeClass, it.LengthMm, it.Quantity)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Plan %s, created %s", plan.ID, plan.CreatedAt.Format("2006-01-02 15:04 MST"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func tableHeader(pdf *fpdf.Fpdf, y float64, widths []float64, headers []string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + 6
}

func tableRow(pdf *fpdf.Fpdf, y float64, idx int, widths []float64, cells []string) float64 {
	if idx%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for i, c := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, c, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	return y + 6
}

// labelFontSize returns a font size that fits a cut of the given width.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 7
	case w > 20:
		return 6
	default:
		return 5
	}
}
