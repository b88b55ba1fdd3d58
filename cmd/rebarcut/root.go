package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/engine"
	"github.com/piwi3910/RebarCut/internal/model"
	"github.com/piwi3910/RebarCut/internal/project"
	"github.com/piwi3910/RebarCut/internal/store"
)

// Global flag values.
var (
	flagConfig   string
	flagDatabase string
	flagJSON     bool
	flagLogLevel string
)

// Loaded by PersistentPreRunE for every subcommand.
var (
	appConfig model.AppConfig
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rebarcut",
	Short: "Plan rebar cutting from standard stock bars",
	Long: `rebarcut turns a list of required rebar cuts into a cutting plan:
which stock bar each piece is cut from, in which order, and how much
steel is left over. Plans can be compared across strategies and stock
lengths, exported for the shop floor, and committed to a local database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file in the working directory may carry REBARCUT_* overrides.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		path := flagConfig
		if path == "" {
			path = project.DefaultConfigPath()
		}

		cfg, err := project.LoadAppConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		appConfig = cfg
		logger = setupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

		logger.Debug("config loaded", slog.String("path", path), slog.Int("default_stock_length_mm", cfg.DefaultStockLengthMm))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file, JSON or YAML (default: ~/.rebarcut/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "db", "", "plan database (default: database_path from config or ~/.rebarcut/plans.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(plansCmd)
}

// setupLogger builds the process logger. Logs go to stderr so that JSON
// output on stdout stays machine readable.
func setupLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler)
}

func newOptimizer() *engine.Optimizer {
	return engine.New(engine.SettingsFromConfig(appConfig))
}

// openStore opens the plan database. Precedence: --db flag, database_path
// from config, then the default location.
func openStore() (*store.Store, error) {
	path := flagDatabase
	if path == "" {
		path = appConfig.DatabasePath
	}
	if path == "" {
		path = project.DefaultDatabasePath()
	}
	return store.Open(path, logger)
}

func stdout(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
