package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/model"
)

var (
	optimizeReq      requestFlags
	optimizeExports  exportFlags
	optimizeStrategy string
	optimizeName     string
	optimizeVerbose  bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run one strategy over a cut list and print the plan",
	Long: `Optimize packs every cut in the list onto stock bars using a single
strategy and prints the per-size results. Nothing is saved; use commit to
store a plan. Export flags write shop documents for the draft plan.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, err := model.ParseStrategy(optimizeStrategy)
		if err != nil {
			return err
		}
		req, err := optimizeReq.buildRequest(cmd)
		if err != nil {
			return err
		}

		summary, oversize, err := newOptimizer().Optimize(cmd.Context(), req, strategy)
		if err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
		remnants := model.DetectAllRemnants(summary, appConfig.WeightTable(), appConfig.MinRemnantMm)

		if optimizeExports.any() {
			plan := model.NewPlan(optimizeName, resolvedStock(req), req.KerfMm, summary, oversize)
			if err := optimizeExports.write(plan); err != nil {
				return err
			}
		}

		w := stdout(cmd)
		if flagJSON {
			return printJSON(w, map[string]any{
				"summary":  summary,
				"oversize": oversize,
				"remnants": remnants,
			})
		}

		printSummary(w, summary, optimizeVerbose)
		if len(remnants) > 0 {
			fmt.Fprintf(w, "\n%d reusable remnant(s) of at least %d mm, %.2f kg\n",
				len(remnants), appConfig.MinRemnantMm, model.TotalRemnantKg(remnants))
		}
		printOversize(w, oversize)
		return nil
	},
}

func init() {
	optimizeReq.register(optimizeCmd, false)
	optimizeExports.register(optimizeCmd)
	optimizeCmd.Flags().StringVar(&optimizeStrategy, "strategy", string(model.StrategyOptimized), "strategy: standard or optimized")
	optimizeCmd.Flags().StringVar(&optimizeName, "name", "", "plan name used in exported documents")
	optimizeCmd.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "list every bar and its cuts")
}
