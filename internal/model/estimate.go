package model

import "math"

// StockEstimate holds the theoretical stock requirement for one bar-size class.
type StockEstimate struct {
	BarSizeClass     string  `json:"bar_size_class"`
	Pieces           int     `json:"pieces"`
	TotalLengthMm    int     `json:"total_length_mm"` // Sum of all piece lengths, no kerf
	StockLengthMm    int     `json:"stock_length_mm"`
	BarsNeededExact  float64 `json:"bars_needed_exact"` // Fractional bars
	BarsNeededMin    int     `json:"bars_needed_min"`   // Lower bound: ceil of exact
	BarsWithWaste    int     `json:"bars_with_waste"`   // Recommended purchase including waste factor
	WastePercent     float64 `json:"waste_percent"`
	RequiredWeightKg float64 `json:"required_weight_kg"` // Weight of the pieces themselves
	PurchaseWeightKg float64 `json:"purchase_weight_kg"` // Weight of BarsWithWaste stock bars
}

// EstimateStock computes how many stock bars a class needs at minimum, before
// any packing is attempted. Oversize items are skipped since no stock bar of
// this length can produce them.
func EstimateStock(items []CutItem, profile StockProfile, wastePercent float64) StockEstimate {
	est := StockEstimate{
		BarSizeClass:  profile.BarSizeClass,
		StockLengthMm: profile.StockLengthMm,
		WastePercent:  wastePercent,
	}

	for _, it := range items {
		if it.BarSizeClass != profile.BarSizeClass || it.LengthMm <= 0 || it.Quantity <= 0 {
			continue
		}
		if it.LengthMm > profile.StockLengthMm {
			continue
		}
		est.Pieces += it.Quantity
		est.TotalLengthMm += it.LengthMm * it.Quantity
	}
	est.RequiredWeightKg = profile.WeightKg(est.TotalLengthMm)

	if profile.StockLengthMm <= 0 {
		return est
	}

	est.BarsNeededExact = float64(est.TotalLengthMm) / float64(profile.StockLengthMm)
	est.BarsNeededMin = MinBars(est.TotalLengthMm, profile.StockLengthMm)

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.BarsWithWaste = int(math.Ceil(est.BarsNeededExact * wasteFactor))
	if est.BarsWithWaste < est.BarsNeededMin {
		est.BarsWithWaste = est.BarsNeededMin
	}
	est.PurchaseWeightKg = profile.WeightKg(est.BarsWithWaste * profile.StockLengthMm)

	return est
}

// EstimateAll runs EstimateStock for every class that has a profile and at
// least one item, in class order.
func EstimateAll(items []CutItem, profiles map[string]StockProfile, wastePercent float64) []StockEstimate {
	present := make(map[string]bool)
	for _, it := range items {
		if _, ok := profiles[it.BarSizeClass]; ok {
			present[it.BarSizeClass] = true
		}
	}
	classes := make([]string, 0, len(present))
	for c := range present {
		classes = append(classes, c)
	}
	SortClasses(classes)

	estimates := make([]StockEstimate, 0, len(classes))
	for _, c := range classes {
		estimates = append(estimates, EstimateStock(items, profiles[c], wastePercent))
	}
	return estimates
}

// MinBars is the lower bound on stock bars: ceil(totalLengthMm / stockLengthMm).
func MinBars(totalLengthMm, stockLengthMm int) int {
	if stockLengthMm <= 0 || totalLengthMm <= 0 {
		return 0
	}
	return (totalLengthMm + stockLengthMm - 1) / stockLengthMm
}
