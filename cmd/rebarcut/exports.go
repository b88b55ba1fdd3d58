package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/export"
	"github.com/piwi3910/RebarCut/internal/model"
)

// exportFlags select which shop documents to write for a plan.
type exportFlags struct {
	pdf  string
	tags string
	xlsx string
	dxf  string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "write the cutting diagram PDF to this path")
	cmd.Flags().StringVar(&f.tags, "tags", "", "write QR bar tags (PDF) to this path")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "write the cut sheet workbook to this path")
	cmd.Flags().StringVar(&f.dxf, "dxf", "", "write the bar layout drawing (DXF) to this path")
}

func (f *exportFlags) any() bool {
	return f.pdf != "" || f.tags != "" || f.xlsx != "" || f.dxf != ""
}

// write produces every requested document. It stops at the first failure.
func (f *exportFlags) write(plan model.Plan) error {
	if f.pdf != "" {
		remnants := model.DetectAllRemnants(plan.Summary, appConfig.WeightTable(), appConfig.MinRemnantMm)
		if err := export.ExportPDF(f.pdf, plan, remnants); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		logger.Info("exported", slog.String("format", "pdf"), slog.String("path", f.pdf))
	}
	if f.tags != "" {
		if err := export.ExportBarTags(f.tags, plan); err != nil {
			return fmt.Errorf("export tags: %w", err)
		}
		logger.Info("exported", slog.String("format", "tags"), slog.String("path", f.tags))
	}
	if f.xlsx != "" {
		if err := export.ExportXLSX(f.xlsx, plan); err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		logger.Info("exported", slog.String("format", "xlsx"), slog.String("path", f.xlsx))
	}
	if f.dxf != "" {
		if err := export.ExportDXF(f.dxf, plan); err != nil {
			return fmt.Errorf("export dxf: %w", err)
		}
		logger.Info("exported", slog.String("format", "dxf"), slog.String("path", f.dxf))
	}
	return nil
}
