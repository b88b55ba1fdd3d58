package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Strategy selects the packing heuristic used by the optimizer.
type Strategy string

const (
	StrategyStandard  Strategy = "standard"  // First-fit in input order
	StrategyOptimized Strategy = "optimized" // Best-fit decreasing
)

// AllStrategies lists every supported strategy in comparison order.
var AllStrategies = []Strategy{StrategyStandard, StrategyOptimized}

func (s Strategy) String() string {
	return string(s)
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyStandard, StrategyOptimized:
		return true
	default:
		return false
	}
}

// ParseStrategy converts a user supplied name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// CutItem is one distinct required cut, expanded into Quantity pieces
// during optimization.
type CutItem struct {
	ID           string `json:"id"`
	MarkLabel    string `json:"mark_label"`
	BarSizeClass string `json:"bar_size_class"`
	LengthMm     int    `json:"length_mm"`
	Quantity     int    `json:"quantity"`
}

// NewCutItem creates a cut item with a generated short ID.
func NewCutItem(mark, barSize string, lengthMm, qty int) CutItem {
	return CutItem{
		ID:           uuid.New().String()[:8],
		MarkLabel:    mark,
		BarSizeClass: barSize,
		LengthMm:     lengthMm,
		Quantity:     qty,
	}
}

// StockProfile describes the purchasable stock bar for a bar-size class.
type StockProfile struct {
	BarSizeClass       string  `json:"bar_size_class"`
	StockLengthMm      int     `json:"stock_length_mm"`
	LinearWeightKgPerM float64 `json:"linear_weight_kg_per_m"`
}

// WeightKg returns the weight of lengthMm of this bar size.
func (p StockProfile) WeightKg(lengthMm int) float64 {
	return float64(lengthMm) / 1000.0 * p.LinearWeightKgPerM
}

// DefaultWeightTable returns the standard metric rebar linear weights in kg/m.
func DefaultWeightTable() map[string]float64 {
	return map[string]float64{
		"10M": 0.785,
		"15M": 1.570,
		"20M": 2.355,
		"25M": 3.925,
		"30M": 5.495,
		"35M": 7.850,
	}
}

// ProfilesFor builds the per-class stock profiles for a single run where every
// class is cut from stock of the same length.
func ProfilesFor(weights map[string]float64, stockLengthMm int) map[string]StockProfile {
	profiles := make(map[string]StockProfile, len(weights))
	for class, kgPerM := range weights {
		profiles[class] = StockProfile{
			BarSizeClass:       class,
			StockLengthMm:      stockLengthMm,
			LinearWeightKgPerM: kgPerM,
		}
	}
	return profiles
}

// PieceInstance is a single physical piece expanded from a CutItem.
type PieceInstance struct {
	ItemID    string `json:"item_id"`
	MarkLabel string `json:"mark_label"`
	LengthMm  int    `json:"length_mm"`
	Seq       int    `json:"seq"` // Position in the expanded input order
}

// Cut is one piece placed on a stock bar.
type Cut struct {
	SourceItemID string `json:"source_item_id"`
	MarkLabel    string `json:"mark_label"`
	LengthMm     int    `json:"length_mm"`
}

// Bar is one stock bar with the cuts assigned to it.
type Bar struct {
	BarSizeClass  string `json:"bar_size_class"`
	StockLengthMm int    `json:"stock_length_mm"`
	Cuts          []Cut  `json:"cuts"`
	UsedLengthMm  int    `json:"used_length_mm"` // Cut lengths plus kerf between cuts
	RemainderMm   int    `json:"remainder_mm"`
	StopperMoves  int    `json:"stopper_moves"`
}

// CutLengthMm returns the summed length of all cuts, excluding kerf.
func (b Bar) CutLengthMm() int {
	total := 0
	for _, c := range b.Cuts {
		total += c.LengthMm
	}
	return total
}

// Efficiency returns the used percentage of the stock bar.
func (b Bar) Efficiency() float64 {
	if b.StockLengthMm == 0 {
		return 0
	}
	return float64(b.UsedLengthMm) / float64(b.StockLengthMm) * 100.0
}

// OptimizationResult holds the plan for a single bar-size class.
type OptimizationResult struct {
	BarSize           string  `json:"bar_size"`
	StockLengthMm     int     `json:"stock_length_mm"`
	Bars              []Bar   `json:"bars"`
	TotalStockBars    int     `json:"total_stock_bars"`
	TotalCuts         int     `json:"total_cuts"`
	TotalStopperMoves int     `json:"total_stopper_moves"`
	UsedLengthMm      int     `json:"used_length_mm"`
	WasteKg           float64 `json:"waste_kg"`
	EfficiencyPct     float64 `json:"efficiency_pct"`
}

// StockLengthTotalMm returns the total purchased length for this class.
func (r OptimizationResult) StockLengthTotalMm() int {
	return r.StockLengthMm * r.TotalStockBars
}

// OptimizationSummary is the plan for one strategy across all bar-size classes.
type OptimizationSummary struct {
	Strategy          Strategy             `json:"strategy"`
	Results           []OptimizationResult `json:"results"`
	TotalStockBars    int                  `json:"total_stock_bars"`
	TotalCuts         int                  `json:"total_cuts"`
	TotalStopperMoves int                  `json:"total_stopper_moves"`
	TotalWasteKg      float64              `json:"total_waste_kg"`
	OverallEfficiency float64              `json:"overall_efficiency"`
}

// Result returns the result for the given bar-size class.
func (s OptimizationSummary) Result(barSize string) (OptimizationResult, bool) {
	for _, r := range s.Results {
		if r.BarSize == barSize {
			return r, true
		}
	}
	return OptimizationResult{}, false
}

// OversizeReport lists items that are longer than the stock bar and were
// excluded from packing.
type OversizeReport []CutItem

// Pieces returns the total number of pieces excluded.
func (o OversizeReport) Pieces() int {
	n := 0
	for _, it := range o {
		n += it.Quantity
	}
	return n
}

// OptimizeRequest is the input of one optimization invocation.
type OptimizeRequest struct {
	Items         []CutItem          `json:"items"`
	StockLengthMm int                `json:"stock_length_mm"`
	Strategies    []Strategy         `json:"strategies"`
	KerfMm        int                `json:"kerf_mm"`
	WeightTable   map[string]float64 `json:"weight_table"`
}

// StrategyDiff compares the optimized plan against the standard plan.
// Values may be zero or negative: best-fit decreasing is a heuristic.
type StrategyDiff struct {
	WasteReductionKg  float64 `json:"waste_reduction_kg"`
	BarsSaved         int     `json:"bars_saved"`
	EfficiencyGainPct float64 `json:"efficiency_gain_pct"`
}

// Comparison is the output of one optimization invocation.
type Comparison struct {
	Summaries map[Strategy]OptimizationSummary `json:"summaries"`
	Oversize  OversizeReport                   `json:"oversize"`
	Diff      *StrategyDiff                    `json:"diff,omitempty"`
}

// SortClasses orders bar-size classes by their numeric prefix ("10M" before
// "15M" before "100M"), falling back to plain string order.
func SortClasses(classes []string) {
	sort.Slice(classes, func(i, j int) bool {
		return ClassLess(classes[i], classes[j])
	})
}

// ClassLess reports whether class a sorts before class b.
func ClassLess(a, b string) bool {
	na, okA := classNumber(a)
	nb, okB := classNumber(b)
	if okA && okB && na != nb {
		return na < nb
	}
	if okA != okB {
		return okA
	}
	return a < b
}

func classNumber(class string) (int, bool) {
	end := 0
	for end < len(class) && class[end] >= '0' && class[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(class[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
