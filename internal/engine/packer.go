package engine

import (
	"sort"

	"github.com/piwi3910/RebarCut/internal/model"
)

// Pack assigns pieces of a single bar-size class to stock bars using the
// given strategy. Every piece must already fit on an empty stock bar;
// Normalize guarantees this by moving oversize items aside.
//
// Bars are returned in the order they were opened, with cuts in placement
// order. Cut order on each bar is finalized later by Sequence.
func Pack(pieces []model.PieceInstance, profile model.StockProfile, kerfMm int, strategy model.Strategy) []model.Bar {
	packer := newLinearPacker(profile.StockLengthMm, kerfMm)

	switch strategy {
	case model.StrategyOptimized:
		packer.packBestFitDecreasing(pieces)
	default:
		packer.packFirstFit(pieces)
	}

	return packer.bars(profile.BarSizeClass)
}

// linearPacker holds the open stock bars of a one-dimensional packing run.
type linearPacker struct {
	open  []*openBar
	stock int
	kerf  int
}

// openBar is a stock bar that is still accepting cuts.
type openBar struct {
	cuts []model.Cut
	used int
}

func newLinearPacker(stockLengthMm, kerfMm int) *linearPacker {
	return &linearPacker{
		stock: stockLengthMm,
		kerf:  kerfMm,
	}
}

// capacity returns the longest piece the bar can still accept. A bar with
// cuts on it loses one kerf for the next saw cut.
func (lp *linearPacker) capacity(b *openBar) int {
	if len(b.cuts) == 0 {
		return lp.stock
	}
	return lp.stock - b.used - lp.kerf
}

func (lp *linearPacker) place(b *openBar, p model.PieceInstance) {
	if len(b.cuts) > 0 {
		b.used += lp.kerf
	}
	b.used += p.LengthMm
	b.cuts = append(b.cuts, model.Cut{
		SourceItemID: p.ItemID,
		MarkLabel:    p.MarkLabel,
		LengthMm:     p.LengthMm,
	})
}

func (lp *linearPacker) openNew() *openBar {
	b := &openBar{}
	lp.open = append(lp.open, b)
	return b
}

// packFirstFit places each piece, in the order received, on the first open
// bar with enough capacity.
func (lp *linearPacker) packFirstFit(pieces []model.PieceInstance) {
	for _, p := range pieces {
		idx := lp.firstFit(p.LengthMm)
		var target *openBar
		if idx < 0 {
			target = lp.openNew()
		} else {
			target = lp.open[idx]
		}
		lp.place(target, p)
	}
}

// packBestFitDecreasing sorts pieces longest first and places each on the
// open bar it fits most tightly.
func (lp *linearPacker) packBestFitDecreasing(pieces []model.PieceInstance) {
	sorted := make([]model.PieceInstance, len(pieces))
	copy(sorted, pieces)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LengthMm != sorted[j].LengthMm {
			return sorted[i].LengthMm > sorted[j].LengthMm
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	for _, p := range sorted {
		idx := lp.bestFit(p.LengthMm)
		var target *openBar
		if idx < 0 {
			target = lp.openNew()
		} else {
			target = lp.open[idx]
		}
		lp.place(target, p)
	}
}

// firstFit returns the index of the earliest opened bar that can accept a
// piece of the given length, or -1.
func (lp *linearPacker) firstFit(length int) int {
	for i, b := range lp.open {
		if lp.capacity(b) >= length {
			return i
		}
	}
	return -1
}

// bestFit returns the index of the bar that would be left with the least
// capacity after accepting the piece, or -1 if no open bar can take it.
// Ties go to the bar with fewer cuts, then to the earliest opened bar.
func (lp *linearPacker) bestFit(length int) int {
	bestIdx := -1
	bestLeft := 0
	bestCuts := 0

	for i, b := range lp.open {
		capacity := lp.capacity(b)
		if capacity < length {
			continue
		}
		left := capacity - length
		switch {
		case bestIdx < 0,
			left < bestLeft,
			left == bestLeft && len(b.cuts) < bestCuts:
			bestIdx = i
			bestLeft = left
			bestCuts = len(b.cuts)
		}
	}
	return bestIdx
}

// bars converts the open bars into finished bars for the given class.
func (lp *linearPacker) bars(barSizeClass string) []model.Bar {
	out := make([]model.Bar, 0, len(lp.open))
	for _, b := range lp.open {
		out = append(out, model.Bar{
			BarSizeClass:  barSizeClass,
			StockLengthMm: lp.stock,
			Cuts:          b.cuts,
			UsedLengthMm:  b.used,
			RemainderMm:   lp.stock - b.used,
		})
	}
	return out
}
