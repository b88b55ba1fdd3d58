package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	scenariosReq     requestFlags
	scenariosLengths []int
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Compare the cut list across several stock lengths",
	Long: `Scenarios runs the full comparison once per stock length and shows
the best strategy for each, so buyers can pick the stock length that
wastes the least steel. Lengths default to allowed_stock_lengths from the
config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := scenariosReq.buildRequest(cmd)
		if err != nil {
			return err
		}

		scenarios, err := newOptimizer().CompareStockLengths(cmd.Context(), req, scenariosLengths)
		if err != nil {
			return fmt.Errorf("compare stock lengths: %w", err)
		}

		w := stdout(cmd)
		if flagJSON {
			return printJSON(w, scenarios)
		}
		printScenarios(w, scenarios)
		return nil
	},
}

func init() {
	scenariosReq.register(scenariosCmd, true)
	scenariosCmd.Flags().IntSliceVar(&scenariosLengths, "lengths", nil, "stock lengths in mm to try, e.g. 6000,12000")
}
