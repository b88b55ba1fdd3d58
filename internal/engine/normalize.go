package engine

import (
	"github.com/piwi3910/RebarCut/internal/model"
)

// Normalized is the validated input of a run: pieces grouped by bar-size
// class plus the items that were too long for their stock bar.
type Normalized struct {
	Pieces   map[string][]model.PieceInstance
	Classes  []string // Classes with at least one piece, in class order
	Oversize model.OversizeReport
}

// PieceCount returns the number of pieces across all classes.
func (n Normalized) PieceCount() int {
	total := 0
	for _, p := range n.Pieces {
		total += len(p)
	}
	return total
}

// Normalize validates raw cut items against the stock profiles and expands
// them into individual pieces grouped by bar-size class.
//
// Malformed items fail the whole batch with *model.InvalidItemError listing
// every offending item. Items longer than their class stock length are not
// an error; they are moved to the oversize report and not packed.
func Normalize(items []model.CutItem, profiles map[string]model.StockProfile) (Normalized, error) {
	var issues []model.ItemIssue
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if it.ID == "" {
			issues = append(issues, model.ItemIssue{ItemID: it.ID, Reason: "missing id"})
		} else if seen[it.ID] {
			issues = append(issues, model.ItemIssue{ItemID: it.ID, Reason: "duplicate id"})
		}
		seen[it.ID] = true

		if it.LengthMm <= 0 {
			issues = append(issues, model.ItemIssue{ItemID: it.ID, Reason: "length_mm must be positive"})
		}
		if it.Quantity <= 0 {
			issues = append(issues, model.ItemIssue{ItemID: it.ID, Reason: "quantity must be positive"})
		}
		if it.BarSizeClass == "" {
			issues = append(issues, model.ItemIssue{ItemID: it.ID, Reason: "missing bar size class"})
		} else if _, ok := profiles[it.BarSizeClass]; !ok {
			issues = append(issues, model.ItemIssue{ItemID: it.ID, Reason: "no stock profile for bar size " + it.BarSizeClass})
		}
	}

	if len(issues) > 0 {
		return Normalized{}, &model.InvalidItemError{Issues: issues}
	}

	norm := Normalized{
		Pieces:   make(map[string][]model.PieceInstance),
		Oversize: model.OversizeReport{},
	}

	for _, it := range items {
		profile := profiles[it.BarSizeClass]
		if it.LengthMm > profile.StockLengthMm {
			norm.Oversize = append(norm.Oversize, it)
			continue
		}

		pieces := norm.Pieces[it.BarSizeClass]
		for i := 0; i < it.Quantity; i++ {
			pieces = append(pieces, model.PieceInstance{
				ItemID:    it.ID,
				MarkLabel: it.MarkLabel,
				LengthMm:  it.LengthMm,
				Seq:       len(pieces),
			})
		}
		norm.Pieces[it.BarSizeClass] = pieces
	}

	norm.Classes = make([]string, 0, len(norm.Pieces))
	for class := range norm.Pieces {
		norm.Classes = append(norm.Classes, class)
	}
	model.SortClasses(norm.Classes)

	return norm, nil
}
