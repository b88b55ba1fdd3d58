package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RebarCut/internal/model"
)

const (
	cutSheet      = "Cuts"
	summarySheet  = "Summary"
	oversizeSheet = "Oversize"
)

var cutHeaders = []string{"Bar Size", "Bar", "Seq", "Mark", "Item ID", "Length (mm)", "Bar Used (mm)", "Bar Remainder (mm)", "Stopper Moves"}

// ExportXLSX writes the plan as a cut sheet workbook: one row per cut in
// cutting order, a per-class summary sheet and, when present, the oversize
// items.
func ExportXLSX(path string, plan model.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cutSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeCutSheet(f, plan, headerStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, plan, headerStyle); err != nil {
		return err
	}
	if len(plan.Oversize) > 0 {
		if err := writeOversizeSheet(f, plan.Oversize, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeCutSheet(f *excelize.File, plan model.Plan, headerStyle int) error {
	if err := writeHeader(f, cutSheet, cutHeaders, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, r := range plan.Summary.Results {
		for bi, b := range r.Bars {
			for ci, c := range b.Cuts {
				values := []interface{}{r.BarSize, bi + 1, ci + 1, c.MarkLabel, c.SourceItemID, c.LengthMm, b.UsedLengthMm, b.RemainderMm, b.StopperMoves}
				if err := writeRow(f, cutSheet, row, values); err != nil {
					return err
				}
				row++
			}
		}
	}

	if err := f.SetPanes(cutSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return f.SetColWidth(cutSheet, "A", "I", 15)
}

func writeSummarySheet(f *excelize.File, plan model.Plan, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	s := plan.Summary
	meta := [][]interface{}{
		{"Plan", plan.Name},
		{"Plan ID", plan.ID},
		{"Strategy", string(s.Strategy)},
		{"Stock Length (mm)", plan.StockLengthMm},
		{"Kerf (mm)", plan.KerfMm},
	}
	for i, values := range meta {
		if err := writeRow(f, summarySheet, i+1, values); err != nil {
			return err
		}
	}

	start := len(meta) + 2
	headers := []string{"Bar Size", "Stock Bars", "Cuts", "Stopper Moves", "Used (mm)", "Waste (kg)", "Efficiency (%)"}
	if err := writeHeaderAt(f, summarySheet, start, headers, headerStyle); err != nil {
		return err
	}

	row := start + 1
	for _, r := range s.Results {
		values := []interface{}{r.BarSize, r.TotalStockBars, r.TotalCuts, r.TotalStopperMoves, r.UsedLengthMm, round2(r.WasteKg), round2(r.EfficiencyPct)}
		if err := writeRow(f, summarySheet, row, values); err != nil {
			return err
		}
		row++
	}

	total := []interface{}{"Total", s.TotalStockBars, s.TotalCuts, s.TotalStopperMoves, "", round2(s.TotalWasteKg), round2(s.OverallEfficiency)}
	if err := writeRow(f, summarySheet, row, total); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(total), row)
	if err := f.SetCellStyle(summarySheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("style total row: %w", err)
	}

	return f.SetColWidth(summarySheet, "A", "G", 16)
}

func writeOversizeSheet(f *excelize.File, oversize model.OversizeReport, headerStyle int) error {
	if _, err := f.NewSheet(oversizeSheet); err != nil {
		return fmt.Errorf("create oversize sheet: %w", err)
	}
	if err := writeHeader(f, oversizeSheet, []string{"Item ID", "Mark", "Bar Size", "Length (mm)", "Quantity"}, headerStyle); err != nil {
		return err
	}
	for i, it := range oversize {
		if err := writeRow(f, oversizeSheet, i+2, []interface{}{it.ID, it.MarkLabel, it.BarSizeClass, it.LengthMm, it.Quantity}); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	return writeHeaderAt(f, sheet, 1, headers, style)
}

func writeHeaderAt(f *excelize.File, sheet string, row int, headers []string, style int) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, row, values); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
