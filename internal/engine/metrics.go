package engine

import (
	"github.com/piwi3910/RebarCut/internal/model"
)

// Aggregate computes the totals of a single bar-size class.
func Aggregate(profile model.StockProfile, bars []model.Bar) model.OptimizationResult {
	if bars == nil {
		bars = []model.Bar{}
	}

	result := model.OptimizationResult{
		BarSize:        profile.BarSizeClass,
		StockLengthMm:  profile.StockLengthMm,
		Bars:           bars,
		TotalStockBars: len(bars),
	}

	for _, b := range bars {
		result.TotalCuts += len(b.Cuts)
		result.TotalStopperMoves += b.StopperMoves
		result.UsedLengthMm += b.UsedLengthMm
		result.WasteKg += profile.WeightKg(b.RemainderMm)
	}

	result.EfficiencyPct = efficiency(result.UsedLengthMm, result.StockLengthTotalMm())
	return result
}

// Summarize rolls per-class results up into a strategy summary. Overall
// efficiency is weighted by stock length, not averaged across classes.
func Summarize(strategy model.Strategy, results []model.OptimizationResult) model.OptimizationSummary {
	if results == nil {
		results = []model.OptimizationResult{}
	}

	summary := model.OptimizationSummary{
		Strategy: strategy,
		Results:  results,
	}

	var used, stock int
	for _, r := range results {
		summary.TotalStockBars += r.TotalStockBars
		summary.TotalCuts += r.TotalCuts
		summary.TotalStopperMoves += r.TotalStopperMoves
		summary.TotalWasteKg += r.WasteKg
		used += r.UsedLengthMm
		stock += r.StockLengthTotalMm()
	}

	summary.OverallEfficiency = efficiency(used, stock)
	return summary
}

// Diff compares an optimized summary against the standard one.
func Diff(standard, optimized model.OptimizationSummary) model.StrategyDiff {
	return model.StrategyDiff{
		WasteReductionKg:  standard.TotalWasteKg - optimized.TotalWasteKg,
		BarsSaved:         standard.TotalStockBars - optimized.TotalStockBars,
		EfficiencyGainPct: optimized.OverallEfficiency - standard.OverallEfficiency,
	}
}

func efficiency(used, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}
