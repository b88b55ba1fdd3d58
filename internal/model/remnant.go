package model

import "sort"

// Remnant is a leftover length of stock bar long enough to be put back
// into the rack and cut from on a later job.
type Remnant struct {
	BarSizeClass string  `json:"bar_size_class"`
	BarIndex     int     `json:"bar_index"` // 1-based index of the source bar within its class
	LengthMm     int     `json:"length_mm"`
	WeightKg     float64 `json:"weight_kg"`
}

// DetectRemnants lists the bars of a class result whose remainder is at least
// minLengthMm. Remnants are sorted longest first.
func DetectRemnants(r OptimizationResult, profile StockProfile, minLengthMm int) []Remnant {
	var remnants []Remnant
	for i, b := range r.Bars {
		if b.RemainderMm <= 0 || b.RemainderMm < minLengthMm {
			continue
		}
		remnants = append(remnants, Remnant{
			BarSizeClass: r.BarSize,
			BarIndex:     i + 1,
			LengthMm:     b.RemainderMm,
			WeightKg:     profile.WeightKg(b.RemainderMm),
		})
	}

	sort.SliceStable(remnants, func(i, j int) bool {
		return remnants[i].LengthMm > remnants[j].LengthMm
	})
	return remnants
}

// DetectAllRemnants finds remnants across every class of a summary.
func DetectAllRemnants(s OptimizationSummary, weights map[string]float64, minLengthMm int) []Remnant {
	var all []Remnant
	for _, r := range s.Results {
		profile := StockProfile{
			BarSizeClass:       r.BarSize,
			StockLengthMm:      r.StockLengthMm,
			LinearWeightKgPerM: weights[r.BarSize],
		}
		all = append(all, DetectRemnants(r, profile, minLengthMm)...)
	}
	return all
}

// TotalRemnantKg returns the combined weight of the remnants.
func TotalRemnantKg(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.WeightKg
	}
	return total
}
