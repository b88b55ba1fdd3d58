package model

import (
	"math"
	"testing"
)

func remnantTestResult() OptimizationResult {
	return OptimizationResult{
		BarSize:       "15M",
		StockLengthMm: 12000,
		Bars: []Bar{
			{BarSizeClass: "15M", StockLengthMm: 12000, UsedLengthMm: 11500, RemainderMm: 500},
			{BarSizeClass: "15M", StockLengthMm: 12000, UsedLengthMm: 9000, RemainderMm: 3000},
			{BarSizeClass: "15M", StockLengthMm: 12000, UsedLengthMm: 12000, RemainderMm: 0},
			{BarSizeClass: "15M", StockLengthMm: 12000, UsedLengthMm: 4000, RemainderMm: 8000},
		},
	}
}

func TestDetectRemnantsFiltersShortRemainders(t *testing.T) {
	profile := StockProfile{BarSizeClass: "15M", StockLengthMm: 12000, LinearWeightKgPerM: 1.570}
	remnants := DetectRemnants(remnantTestResult(), profile, 1000)

	if len(remnants) != 2 {
		t.Fatalf("expected 2 remnants, got %d", len(remnants))
	}
	if remnants[0].LengthMm != 8000 || remnants[0].BarIndex != 4 {
		t.Errorf("expected longest remnant first from bar 4, got %+v", remnants[0])
	}
	if remnants[1].LengthMm != 3000 || remnants[1].BarIndex != 2 {
		t.Errorf("expected 3000mm remnant from bar 2, got %+v", remnants[1])
	}
	if math.Abs(remnants[1].WeightKg-4.71) > 1e-9 {
		t.Errorf("expected 4.71 kg, got %f", remnants[1].WeightKg)
	}
}

func TestDetectRemnantsZeroThresholdSkipsFullBars(t *testing.T) {
	profile := StockProfile{BarSizeClass: "15M", StockLengthMm: 12000, LinearWeightKgPerM: 1.570}
	remnants := DetectRemnants(remnantTestResult(), profile, 0)
	if len(remnants) != 3 {
		t.Errorf("expected 3 remnants (full bar excluded), got %d", len(remnants))
	}
}

func TestDetectAllRemnants(t *testing.T) {
	summary := OptimizationSummary{Results: []OptimizationResult{remnantTestResult()}}
	remnants := DetectAllRemnants(summary, DefaultWeightTable(), 1000)
	if len(remnants) != 2 {
		t.Fatalf("expected 2 remnants, got %d", len(remnants))
	}
	want := (8.0 + 3.0) * 1.570
	if math.Abs(TotalRemnantKg(remnants)-want) > 1e-9 {
		t.Errorf("expected %.3f kg, got %.3f", want, TotalRemnantKg(remnants))
	}
}
