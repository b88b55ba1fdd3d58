package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/model"
	"github.com/piwi3910/RebarCut/internal/project"
)

var (
	commitReq      requestFlags
	commitExports  exportFlags
	commitStrategy string
	commitName     string
	commitOut      string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Optimize a cut list and save the plan for production",
	Long: `Commit runs one strategy (optimized unless --strategy says otherwise)
over the cut list and stores the resulting plan in the plan database. The plan
can also be written to a standalone JSON file and exported as shop
documents in the same step.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, err := model.ParseStrategy(commitStrategy)
		if err != nil {
			return err
		}
		req, err := commitReq.buildRequest(cmd)
		if err != nil {
			return err
		}

		summary, oversize, err := newOptimizer().Optimize(cmd.Context(), req, strategy)
		if err != nil {
			return fmt.Errorf("optimize: %w", err)
		}
		if len(summary.Results) == 0 {
			return fmt.Errorf("nothing to commit: every item is longer than stock")
		}
		plan := model.NewPlan(commitName, resolvedStock(req), req.KerfMm, summary, oversize)

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SavePlan(cmd.Context(), plan); err != nil {
			return err
		}
		logger.Info("plan committed", slog.String("id", plan.ID), slog.String("name", plan.Name), slog.String("strategy", string(strategy)))

		if commitOut != "" {
			if err := project.SavePlan(commitOut, plan); err != nil {
				return err
			}
		}
		if err := commitExports.write(plan); err != nil {
			return err
		}

		w := stdout(cmd)
		if flagJSON {
			return printJSON(w, plan)
		}
		fmt.Fprintf(w, "Committed plan %s (%s)\n\n", plan.ID, plan.Name)
		printSummary(w, plan.Summary, false)
		printOversize(w, plan.Oversize)
		return nil
	},
}

func init() {
	commitReq.register(commitCmd, false)
	commitExports.register(commitCmd)
	commitCmd.Flags().StringVar(&commitStrategy, "strategy", string(model.StrategyOptimized), "strategy to commit: standard or optimized")
	commitCmd.Flags().StringVar(&commitName, "name", "", "plan name")
	commitCmd.Flags().StringVarP(&commitOut, "out", "o", "", "also write the plan to this JSON file")
}
