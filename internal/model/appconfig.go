package model

// WeightEntry is one row of the configured linear weight table.
type WeightEntry struct {
	BarSizeClass       string  `json:"bar_size_class" mapstructure:"bar_size_class"`
	LinearWeightKgPerM float64 `json:"linear_weight_kg_per_m" mapstructure:"linear_weight_kg_per_m"`
}

// AppConfig holds application-wide defaults for optimization runs.
type AppConfig struct {
	// Optimizer defaults
	DefaultKerfMm        int           `json:"default_kerf_mm" mapstructure:"default_kerf_mm"`
	DefaultStockLengthMm int           `json:"default_stock_length_mm" mapstructure:"default_stock_length_mm"`
	AllowedStockLengths  []int         `json:"allowed_stock_lengths" mapstructure:"allowed_stock_lengths"`
	MinRemnantMm         int           `json:"min_remnant_mm" mapstructure:"min_remnant_mm"`     // Shorter remainders are scrap
	WasteFactorPct       float64       `json:"waste_factor_pct" mapstructure:"waste_factor_pct"` // Padding for stock estimates
	Profiles             []WeightEntry `json:"profiles" mapstructure:"profiles"`                 // Linear weight per bar-size class

	// Application preferences
	LogLevel     string `json:"log_level" mapstructure:"log_level"`   // "debug", "info", "warn", "error"
	LogFormat    string `json:"log_format" mapstructure:"log_format"` // "text" or "json"
	DatabasePath string `json:"database_path" mapstructure:"database_path"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
// Kerf defaults to zero; shops that account for blade loss set it explicitly.
func DefaultAppConfig() AppConfig {
	weights := DefaultWeightTable()
	classes := make([]string, 0, len(weights))
	for c := range weights {
		classes = append(classes, c)
	}
	SortClasses(classes)

	profiles := make([]WeightEntry, 0, len(classes))
	for _, c := range classes {
		profiles = append(profiles, WeightEntry{BarSizeClass: c, LinearWeightKgPerM: weights[c]})
	}

	return AppConfig{
		DefaultKerfMm:        0,
		DefaultStockLengthMm: 12000,
		AllowedStockLengths:  []int{6000, 12000, 18000},
		MinRemnantMm:         1000,
		WasteFactorPct:       10,
		Profiles:             profiles,
		LogLevel:             "info",
		LogFormat:            "text",
		DatabasePath:         "",
	}
}

// WeightTable returns the configured profiles as a lookup keyed by class.
func (c AppConfig) WeightTable() map[string]float64 {
	table := make(map[string]float64, len(c.Profiles))
	for _, p := range c.Profiles {
		table[p.BarSizeClass] = p.LinearWeightKgPerM
	}
	return table
}

// StockLengthAllowed reports whether mm is an accepted stock length.
// An empty allow-list accepts any positive length.
func (c AppConfig) StockLengthAllowed(mm int) bool {
	if mm <= 0 {
		return false
	}
	if len(c.AllowedStockLengths) == 0 {
		return true
	}
	for _, l := range c.AllowedStockLengths {
		if l == mm {
			return true
		}
	}
	return false
}
