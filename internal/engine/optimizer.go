package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/RebarCut/internal/model"
)

// Settings holds the configured defaults an Optimizer falls back to when a
// request leaves them unset.
type Settings struct {
	DefaultStockLengthMm int
	AllowedStockLengths  []int              // Empty accepts any positive length
	WeightTable          map[string]float64 // kg/m by bar-size class
}

// DefaultSettings returns the settings matching model.DefaultAppConfig.
func DefaultSettings() Settings {
	return SettingsFromConfig(model.DefaultAppConfig())
}

// SettingsFromConfig derives optimizer settings from the application config.
func SettingsFromConfig(cfg model.AppConfig) Settings {
	allowed := make([]int, len(cfg.AllowedStockLengths))
	copy(allowed, cfg.AllowedStockLengths)
	return Settings{
		DefaultStockLengthMm: cfg.DefaultStockLengthMm,
		AllowedStockLengths:  allowed,
		WeightTable:          cfg.WeightTable(),
	}
}

// Optimizer runs the cutting-stock pipeline: normalize, pack, sequence and
// aggregate. It holds no state between runs and is safe for concurrent use.
type Optimizer struct {
	Settings Settings
}

func New(settings Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// run is the resolved form of an OptimizeRequest.
type run struct {
	stockLengthMm int
	kerfMm        int
	strategies    []model.Strategy
	profiles      map[string]model.StockProfile
}

// resolve validates a request and fills unset fields from the settings.
func (o *Optimizer) resolve(req model.OptimizeRequest) (run, error) {
	stock := req.StockLengthMm
	if stock == 0 {
		stock = o.Settings.DefaultStockLengthMm
	}
	if stock <= 0 {
		return run{}, fmt.Errorf("%w: %d mm", model.ErrStockLength, stock)
	}
	if len(o.Settings.AllowedStockLengths) > 0 && !containsInt(o.Settings.AllowedStockLengths, stock) {
		return run{}, fmt.Errorf("%w: %d mm is not one of %v", model.ErrStockLength, stock, o.Settings.AllowedStockLengths)
	}

	if req.KerfMm < 0 {
		return run{}, fmt.Errorf("%w: %d mm", model.ErrNegativeKerf, req.KerfMm)
	}

	strategies := req.Strategies
	if len(strategies) == 0 {
		strategies = model.AllStrategies
	}
	seen := make(map[model.Strategy]bool, len(strategies))
	resolved := make([]model.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if !s.Valid() {
			return run{}, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, string(s))
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		resolved = append(resolved, s)
	}

	weights := req.WeightTable
	if weights == nil {
		weights = o.Settings.WeightTable
	}

	return run{
		stockLengthMm: stock,
		kerfMm:        req.KerfMm,
		strategies:    resolved,
		profiles:      model.ProfilesFor(weights, stock),
	}, nil
}

// Optimize runs a single strategy and returns its summary together with the
// oversize report.
func (o *Optimizer) Optimize(ctx context.Context, req model.OptimizeRequest, strategy model.Strategy) (model.OptimizationSummary, model.OversizeReport, error) {
	req.Strategies = []model.Strategy{strategy}
	r, err := o.resolve(req)
	if err != nil {
		return model.OptimizationSummary{}, nil, err
	}

	norm, err := Normalize(req.Items, r.profiles)
	if err != nil {
		return model.OptimizationSummary{}, nil, err
	}

	summary, err := o.runStrategy(ctx, norm, r, strategy)
	if err != nil {
		return model.OptimizationSummary{}, nil, err
	}
	return summary, norm.Oversize, nil
}

// runStrategy packs every class of the normalized input with one strategy.
// Classes are independent; cancellation is checked between them.
func (o *Optimizer) runStrategy(ctx context.Context, norm Normalized, r run, strategy model.Strategy) (model.OptimizationSummary, error) {
	results := make([]model.OptimizationResult, 0, len(norm.Classes))

	for _, class := range norm.Classes {
		if err := ctx.Err(); err != nil {
			return model.OptimizationSummary{}, err
		}

		profile := r.profiles[class]
		bars := Pack(norm.Pieces[class], profile, r.kerfMm, strategy)
		for i := range bars {
			bars[i] = Sequence(bars[i])
		}
		results = append(results, Aggregate(profile, bars))
	}

	return Summarize(strategy, results), nil
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
