package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/model"
	"github.com/piwi3910/RebarCut/internal/project"
	"github.com/piwi3910/RebarCut/internal/store"
)

var plansExports exportFlags

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage committed cutting plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List committed plans, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		plans, err := st.ListPlans(cmd.Context())
		if err != nil {
			return err
		}

		w := stdout(cmd)
		if flagJSON {
			return printJSON(w, plans)
		}
		printPlanList(w, plans)
		return nil
	},
}

var plansShowCmd = &cobra.Command{
	Use:   "show <id|file.json>",
	Short: "Show a plan from the database or a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := resolvePlan(cmd, args[0])
		if err != nil {
			return err
		}

		w := stdout(cmd)
		if flagJSON {
			return printJSON(w, plan)
		}
		fmt.Fprintf(w, "Plan %s (%s), created %s\n", plan.ID, plan.Name, plan.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintf(w, "Stock %d mm, kerf %d mm\n\n", plan.StockLengthMm, plan.KerfMm)
		printSummary(w, plan.Summary, true)
		printOversize(w, plan.Oversize)
		return nil
	},
}

var plansExportCmd = &cobra.Command{
	Use:   "export <id|file.json>",
	Short: "Write shop documents for a committed plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !plansExports.any() {
			return errors.New("nothing to export: pass at least one of --pdf, --tags, --xlsx, --dxf")
		}
		plan, err := resolvePlan(cmd, args[0])
		if err != nil {
			return err
		}
		return plansExports.write(plan)
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a committed plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeletePlan(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(stdout(cmd), "Deleted plan %s\n", args[0])
		return nil
	},
}

var plansBackupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write the config and every committed plan to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		plans, err := st.AllPlans(cmd.Context())
		if err != nil {
			return err
		}
		if err := project.ExportAllData(args[0], appConfig, plans); err != nil {
			return err
		}
		fmt.Fprintf(stdout(cmd), "Backed up %d plan(s) to %s\n", len(plans), args[0])
		return nil
	},
}

var plansRestoreConfig bool

var plansRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Load plans from a backup file into the database",
	Long: `Restore saves every plan in the backup into the plan database,
replacing plans with the same ID. Either every plan is restored or none
is. With --with-config the backed up settings are also written to the
config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SavePlans(cmd.Context(), data.Plans); err != nil {
			return err
		}

		if plansRestoreConfig {
			path := flagConfig
			if path == "" {
				path = project.DefaultConfigPath()
			}
			if err := project.SaveAppConfig(path, data.Config); err != nil {
				return err
			}
			logger.Info("config restored", slog.String("path", path))
		}

		fmt.Fprintf(stdout(cmd), "Restored %d plan(s) from %s\n", len(data.Plans), args[0])
		return nil
	},
}

func init() {
	plansExports.register(plansExportCmd)
	plansRestoreCmd.Flags().BoolVar(&plansRestoreConfig, "with-config", false, "also restore the saved settings")

	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansShowCmd)
	plansCmd.AddCommand(plansExportCmd)
	plansCmd.AddCommand(plansDeleteCmd)
	plansCmd.AddCommand(plansBackupCmd)
	plansCmd.AddCommand(plansRestoreCmd)
}

// resolvePlan loads a plan from a JSON file when ref names one, otherwise
// from the database by ID.
func resolvePlan(cmd *cobra.Command, ref string) (model.Plan, error) {
	if strings.HasSuffix(strings.ToLower(ref), ".json") {
		if _, err := os.Stat(ref); err == nil {
			return project.LoadPlan(ref)
		}
	}

	st, err := openStore()
	if err != nil {
		return model.Plan{}, err
	}
	defer st.Close()

	plan, err := st.GetPlan(cmd.Context(), ref)
	if errors.Is(err, store.ErrNotFound) {
		return model.Plan{}, fmt.Errorf("plan %s not found", ref)
	}
	return plan, err
}
