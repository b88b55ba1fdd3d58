package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/RebarCut/internal/model"
)

// EnvPrefix prefixes environment overrides, e.g. REBARCUT_DEFAULT_KERF_MM.
const EnvPrefix = "REBARCUT"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.rebarcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".rebarcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultDatabasePath returns the default location of the plan database.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultConfigDir(), "plans.db")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from a JSON or YAML file, picked by
// extension, and applies REBARCUT_* environment overrides on top.
// If the file does not exist, it returns DefaultAppConfig with the
// environment overrides and no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return model.AppConfig{}, fmt.Errorf("read config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return model.AppConfig{}, fmt.Errorf("stat config: %w", err)
		}
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validateConfig(config); err != nil {
		return model.AppConfig{}, err
	}
	return config, nil
}

// newViper returns a viper instance seeded with the default config so that
// every key is known for environment lookup.
func newViper() *viper.Viper {
	def := model.DefaultAppConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("default_kerf_mm", def.DefaultKerfMm)
	v.SetDefault("default_stock_length_mm", def.DefaultStockLengthMm)
	v.SetDefault("allowed_stock_lengths", def.AllowedStockLengths)
	v.SetDefault("min_remnant_mm", def.MinRemnantMm)
	v.SetDefault("waste_factor_pct", def.WasteFactorPct)
	v.SetDefault("profiles", def.Profiles)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("database_path", def.DatabasePath)
	return v
}

func validateConfig(c model.AppConfig) error {
	if c.DefaultKerfMm < 0 {
		return fmt.Errorf("config default_kerf_mm: %w", model.ErrNegativeKerf)
	}
	if !c.StockLengthAllowed(c.DefaultStockLengthMm) {
		return fmt.Errorf("config default_stock_length_mm %d: %w", c.DefaultStockLengthMm, model.ErrStockLength)
	}
	for _, p := range c.Profiles {
		if p.BarSizeClass == "" || p.LinearWeightKgPerM <= 0 {
			return fmt.Errorf("config profile %q: linear weight must be positive", p.BarSizeClass)
		}
	}
	return nil
}
