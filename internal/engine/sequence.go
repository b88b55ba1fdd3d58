package engine

import (
	"sort"

	"github.com/piwi3910/RebarCut/internal/model"
)

// Sequence orders the cuts on a bar so that identical lengths are cut back
// to back, longest group first, and sets the resulting stopper move count.
// Pieces of equal length keep their placement order. Used length and
// remainder are unchanged since the number of cuts, and so of kerfs, is fixed.
func Sequence(bar model.Bar) model.Bar {
	cuts := make([]model.Cut, len(bar.Cuts))
	copy(cuts, bar.Cuts)
	sort.SliceStable(cuts, func(i, j int) bool {
		return cuts[i].LengthMm > cuts[j].LengthMm
	})

	bar.Cuts = cuts
	bar.StopperMoves = StopperMoves(cuts)
	return bar
}

// StopperMoves counts how often the length stopper is repositioned when the
// cuts are made in the given order.
func StopperMoves(cuts []model.Cut) int {
	moves := 0
	for i := 1; i < len(cuts); i++ {
		if cuts[i].LengthMm != cuts[i-1].LengthMm {
			moves++
		}
	}
	return moves
}
