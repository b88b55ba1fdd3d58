package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RebarCut/internal/engine"
)

var (
	compareReq   requestFlags
	compareWatch bool
)

// Editors often write a file in several steps; wait for them to settle.
const watchDebounce = 200 * time.Millisecond

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run both strategies side by side and show the savings",
	Long: `Compare runs the standard and optimized strategies over the same cut
list and reports bars saved, waste reduction and efficiency gain.

With --watch the cut list is re-read and compared every time it changes.
A change that arrives while a comparison is still running cancels it; only
the newest result is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		coord := engine.NewCoordinator(newOptimizer(), logger)
		if compareWatch {
			return watchCompare(cmd, coord)
		}
		return runCompare(cmd.Context(), cmd, coord)
	},
}

func init() {
	compareReq.register(compareCmd, true)
	compareCmd.Flags().BoolVarP(&compareWatch, "watch", "w", false, "re-run whenever the cut list file changes")
}

func runCompare(ctx context.Context, cmd *cobra.Command, coord *engine.Coordinator) error {
	req, err := compareReq.buildRequest(cmd)
	if err != nil {
		return err
	}

	cmp, err := coord.Run(ctx, req)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if flagJSON {
		return printJSON(w, cmp)
	}
	printComparison(w, cmp)
	return nil
}

// watchCompare re-runs the comparison on every write to the input file
// until the command context is cancelled.
func watchCompare(cmd *cobra.Command, coord *engine.Coordinator) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so that rename-on-save editors keep working.
	dir := filepath.Dir(compareReq.input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(compareReq.input)

	rerun := func() {
		go func() {
			err := runCompare(ctx, cmd, coord)
			switch {
			case err == nil:
			case errors.Is(err, engine.ErrSuperseded), errors.Is(err, context.Canceled):
				logger.Debug("comparison superseded", slog.String("file", target))
			default:
				logger.Error("comparison failed", slog.String("file", target), slog.Any("error", err))
			}
		}()
	}

	logger.Info("watching cut list", slog.String("file", target))
	rerun()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		}
	}
}
