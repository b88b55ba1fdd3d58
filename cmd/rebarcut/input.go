package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/importer"
	"github.com/piwi3910/RebarCut/internal/model"
)

// requestFlags are shared by every command that runs the optimizer.
type requestFlags struct {
	input      string
	stock      int
	kerf       int
	strategies []string
}

func (f *requestFlags) register(cmd *cobra.Command, withStrategies bool) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "cut list file (.csv or .xlsx)")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "stock bar length in mm (default from config)")
	cmd.Flags().IntVar(&f.kerf, "kerf", 0, "saw kerf in mm (default from config)")
	if withStrategies {
		cmd.Flags().StringSliceVar(&f.strategies, "strategy", nil, "strategies to run: standard, optimized (default both)")
	}
	_ = cmd.MarkFlagRequired("input")
}

// loadItems imports the cut list. Row errors abort; warnings are logged.
func loadItems(path string) ([]model.CutItem, error) {
	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		logger.Warn("import", slog.String("file", path), slog.String("warning", w))
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("import %s: %s", path, strings.Join(result.Errors, "; "))
	}
	logger.Info("cut list imported", slog.String("file", path), slog.Int("items", len(result.Items)))
	return result.Items, nil
}

// buildRequest turns the flags into an OptimizeRequest. Kerf falls back to
// the configured default when the flag is not given.
func (f *requestFlags) buildRequest(cmd *cobra.Command) (model.OptimizeRequest, error) {
	items, err := loadItems(f.input)
	if err != nil {
		return model.OptimizeRequest{}, err
	}

	req := model.OptimizeRequest{
		Items:         items,
		StockLengthMm: f.stock,
		KerfMm:        appConfig.DefaultKerfMm,
	}
	if cmd.Flags().Changed("kerf") {
		req.KerfMm = f.kerf
	}

	for _, name := range f.strategies {
		s, err := model.ParseStrategy(name)
		if err != nil {
			return model.OptimizeRequest{}, err
		}
		req.Strategies = append(req.Strategies, s)
	}
	return req, nil
}

// resolvedStock returns the stock length a request will run with.
func resolvedStock(req model.OptimizeRequest) int {
	if req.StockLengthMm != 0 {
		return req.StockLengthMm
	}
	return appConfig.DefaultStockLengthMm
}
