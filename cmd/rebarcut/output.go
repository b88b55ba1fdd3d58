package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/RebarCut/internal/engine"
	"github.com/piwi3910/RebarCut/internal/model"
	"github.com/piwi3910/RebarCut/internal/store"
)

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printSummary(w io.Writer, s model.OptimizationSummary, verbose bool) {
	fmt.Fprintf(w, "Strategy: %s\n", s.Strategy)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tSTOCK\tBARS\tCUTS\tMOVES\tWASTE KG\tEFFICIENCY")
	for _, r := range s.Results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.1f%%\n",
			r.BarSize, r.StockLengthMm, r.TotalStockBars, r.TotalCuts, r.TotalStopperMoves, r.WasteKg, r.EfficiencyPct)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%d\t%d\t%d\t%.2f\t%.1f%%\n",
		s.TotalStockBars, s.TotalCuts, s.TotalStopperMoves, s.TotalWasteKg, s.OverallEfficiency)
	tw.Flush()

	if !verbose {
		return
	}
	for _, r := range s.Results {
		fmt.Fprintf(w, "\n%s\n", r.BarSize)
		for i, b := range r.Bars {
			cuts := make([]string, len(b.Cuts))
			for j, c := range b.Cuts {
				cuts[j] = fmt.Sprintf("%s:%d", c.MarkLabel, c.LengthMm)
			}
			fmt.Fprintf(w, "  #%-3d %s  | offcut %d mm\n", i+1, strings.Join(cuts, " "), b.RemainderMm)
		}
	}
}

func printOversize(w io.Writer, oversize model.OversizeReport) {
	if len(oversize) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWARNING: %d item(s) longer than stock were not cut:\n", len(oversize))
	for _, it := range oversize {
		fmt.Fprintf(w, "  %s (%s) %s %d mm x %d\n", it.MarkLabel, it.ID, it.BarSizeClass, it.LengthMm, it.Quantity)
	}
}

func printComparison(w io.Writer, cmp model.Comparison) {
	first := true
	for _, strategy := range model.AllStrategies {
		s, ok := cmp.Summaries[strategy]
		if !ok {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		printSummary(w, s, false)
	}
	if cmp.Diff != nil {
		fmt.Fprintf(w, "\nOptimized vs standard: %d bar(s) saved, %.2f kg less waste, %+.1f%% efficiency\n",
			cmp.Diff.BarsSaved, cmp.Diff.WasteReductionKg, cmp.Diff.EfficiencyGainPct)
	}
	printOversize(w, cmp.Oversize)
}

func printScenarios(w io.Writer, scenarios []engine.StockLengthScenario) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STOCK\tBEST\tBARS\tWASTE KG\tEFFICIENCY\tOVERSIZE")
	for _, sc := range scenarios {
		best, ok := sc.Best()
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.1f%%\t%d\n",
			sc.StockLengthMm, best.Strategy, best.TotalStockBars, best.TotalWasteKg, best.OverallEfficiency, sc.Comparison.Oversize.Pieces())
	}
	tw.Flush()
}

func printEstimates(w io.Writer, estimates []model.StockEstimate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIZE\tPIECES\tLENGTH MM\tMIN BARS\tORDER BARS\tWEIGHT KG\tORDER KG")
	for _, e := range estimates {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\n",
			e.BarSizeClass, e.Pieces, e.TotalLengthMm, e.BarsNeededMin, e.BarsWithWaste, e.RequiredWeightKg, e.PurchaseWeightKg)
	}
	tw.Flush()
}

func printPlanList(w io.Writer, plans []store.PlanHeader) {
	if len(plans) == 0 {
		fmt.Fprintln(w, "No plans committed.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED\tSTRATEGY\tSTOCK\tBARS\tWASTE KG\tEFFICIENCY")
	for _, p := range plans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.2f\t%.1f%%\n",
			p.ID, p.Name, p.CreatedAt.Format("2006-01-02 15:04"), p.Strategy, p.StockLengthMm,
			p.TotalStockBars, p.TotalWasteKg, p.OverallEfficiency)
	}
	tw.Flush()
}
