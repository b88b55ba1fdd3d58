package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/RebarCut/internal/model"
)

// Compare normalizes the request once and runs every requested strategy
// against the same pieces, so the summaries can be shown side by side.
// When both standard and optimized ran, the comparison carries their diff.
func (o *Optimizer) Compare(ctx context.Context, req model.OptimizeRequest) (model.Comparison, error) {
	r, err := o.resolve(req)
	if err != nil {
		return model.Comparison{}, err
	}

	norm, err := Normalize(req.Items, r.profiles)
	if err != nil {
		return model.Comparison{}, err
	}

	summaries := make([]model.OptimizationSummary, len(r.strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range r.strategies {
		g.Go(func() error {
			summary, err := o.runStrategy(gctx, norm, r, strategy)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Comparison{}, err
	}

	cmp := model.Comparison{
		Summaries: make(map[model.Strategy]model.OptimizationSummary, len(summaries)),
		Oversize:  norm.Oversize,
	}
	for _, s := range summaries {
		cmp.Summaries[s.Strategy] = s
	}

	standard, okStd := cmp.Summaries[model.StrategyStandard]
	optimized, okOpt := cmp.Summaries[model.StrategyOptimized]
	if okStd && okOpt {
		d := Diff(standard, optimized)
		cmp.Diff = &d
	}

	return cmp, nil
}

// Compare is a convenience wrapper around New(settings).Compare.
func Compare(ctx context.Context, req model.OptimizeRequest, settings Settings) (model.Comparison, error) {
	return New(settings).Compare(ctx, req)
}

// StockLengthScenario is the comparison for one candidate stock length.
type StockLengthScenario struct {
	StockLengthMm int              `json:"stock_length_mm"`
	Comparison    model.Comparison `json:"comparison"`
}

// Best returns the lowest-waste summary of the scenario and its strategy.
func (s StockLengthScenario) Best() (model.OptimizationSummary, bool) {
	var best model.OptimizationSummary
	found := false
	for _, strategy := range model.AllStrategies {
		summary, ok := s.Comparison.Summaries[strategy]
		if !ok {
			continue
		}
		if !found || summary.TotalWasteKg < best.TotalWasteKg {
			best = summary
			found = true
		}
	}
	return best, found
}

// CompareStockLengths runs the comparison once per candidate stock length so
// an operator can see what a different stock bar would change. With no
// lengths given, the configured allowed lengths are used. Scenarios are
// returned in the order of the lengths.
func (o *Optimizer) CompareStockLengths(ctx context.Context, req model.OptimizeRequest, lengths []int) ([]StockLengthScenario, error) {
	if len(lengths) == 0 {
		lengths = o.Settings.AllowedStockLengths
	}
	if len(lengths) == 0 {
		lengths = []int{req.StockLengthMm}
	}

	scenarios := make([]StockLengthScenario, len(lengths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, length := range lengths {
		g.Go(func() error {
			scenarioReq := req
			scenarioReq.StockLengthMm = length
			cmp, err := o.Compare(gctx, scenarioReq)
			if err != nil {
				return err
			}
			scenarios[i] = StockLengthScenario{StockLengthMm: length, Comparison: cmp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenarios, nil
}
