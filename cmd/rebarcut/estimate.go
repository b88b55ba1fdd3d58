package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/model"
)

var (
	estimateInput string
	estimateStock int
	estimateWaste float64
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate how much stock to order before optimizing",
	Long: `Estimate computes the theoretical minimum number of stock bars per
size and a recommended order quantity including the waste factor. It does
not pack anything, so it is instant even for very large cut lists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := loadItems(estimateInput)
		if err != nil {
			return err
		}

		stock := appConfig.DefaultStockLengthMm
		if estimateStock != 0 {
			stock = estimateStock
		}
		waste := appConfig.WasteFactorPct
		if cmd.Flags().Changed("waste") {
			waste = estimateWaste
		}

		estimates := model.EstimateAll(items, model.ProfilesFor(appConfig.WeightTable(), stock), waste)

		w := stdout(cmd)
		if flagJSON {
			return printJSON(w, estimates)
		}
		printEstimates(w, estimates)
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateInput, "input", "i", "", "cut list file (.csv or .xlsx)")
	estimateCmd.Flags().IntVar(&estimateStock, "stock", 0, "stock bar length in mm (default from config)")
	estimateCmd.Flags().Float64Var(&estimateWaste, "waste", 0, "waste factor in percent (default from config)")
	_ = estimateCmd.MarkFlagRequired("input")
}
