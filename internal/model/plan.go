package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan is an optimization summary an operator committed to production.
type Plan struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	CreatedAt     time.Time           `json:"created_at"`
	StockLengthMm int                 `json:"stock_length_mm"`
	KerfMm        int                 `json:"kerf_mm"`
	Summary       OptimizationSummary `json:"summary"`
	Oversize      OversizeReport      `json:"oversize"`
}

// NewPlan wraps a summary into a plan with a generated ID.
func NewPlan(name string, stockLengthMm, kerfMm int, summary OptimizationSummary, oversize OversizeReport) Plan {
	if name == "" {
		name = "Untitled"
	}
	if oversize == nil {
		oversize = OversizeReport{}
	}
	return Plan{
		ID:            uuid.New().String(),
		Name:          name,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
		StockLengthMm: stockLengthMm,
		KerfMm:        kerfMm,
		Summary:       summary,
		Oversize:      oversize,
	}
}
