package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/RebarCut/internal/model"
)

// DXF layer names.
const (
	LayerBars   = "BARS"
	LayerCuts   = "CUTS"
	LayerLabels = "LABELS"
)

// Drawing dimensions in mm. Bars are drawn at true length along X.
const (
	dxfBarHeight  = 60.0
	dxfBarSpacing = 160.0
	dxfClassGap   = 400.0
	dxfTextHeight = 25.0
)

// ExportDXF draws every stock bar of the plan at true length: a rectangle
// per bar, a tick at the end of each cut, and the mark and length of each
// cut as text. Classes are stacked top to bottom in plan order.
func ExportDXF(path string, plan model.Plan) error {
	if len(plan.Summary.Results) == 0 {
		return fmt.Errorf("no bars to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBars, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerBars, err)
	}
	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerCuts, err)
	}
	if _, err := d.AddLayer(LayerLabels, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerLabels, err)
	}

	y := 0.0
	for _, r := range plan.Summary.Results {
		for i, b := range r.Bars {
			if err := drawDXFBar(d, b, fmt.Sprintf("%s #%d", r.BarSize, i+1), plan.KerfMm, y); err != nil {
				return fmt.Errorf("draw %s bar %d: %w", r.BarSize, i+1, err)
			}
			y -= dxfBarSpacing
		}
		y -= dxfClassGap
	}

	return d.SaveAs(path)
}

func drawDXFBar(d *drawing.Drawing, b model.Bar, title string, kerfMm int, y float64) error {
	length := float64(b.StockLengthMm)

	if err := d.ChangeLayer(LayerBars); err != nil {
		return err
	}
	outline := [][4]float64{
		{0, y, length, y},
		{length, y, length, y + dxfBarHeight},
		{length, y + dxfBarHeight, 0, y + dxfBarHeight},
		{0, y + dxfBarHeight, 0, y},
	}
	for _, l := range outline {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	if _, err := d.Text(title, 0, y+dxfBarHeight+10, 0, dxfTextHeight); err != nil {
		return err
	}

	pos := 0
	for i, c := range b.Cuts {
		if i > 0 {
			pos += kerfMm
		}
		start := float64(pos)
		pos += c.LengthMm
		end := float64(pos)

		if err := d.ChangeLayer(LayerCuts); err != nil {
			return err
		}
		if _, err := d.Line(end, y, 0, end, y+dxfBarHeight, 0); err != nil {
			return err
		}

		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		label := fmt.Sprintf("%s %d", c.MarkLabel, c.LengthMm)
		if _, err := d.Text(label, start+10, y+dxfBarHeight/2-dxfTextHeight/2, 0, dxfTextHeight); err != nil {
			return err
		}
	}

	return nil
}
