package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imishinist/agent-metrics/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Record every execution summary written to a directory",
	Long: `Watch a directory and append one EMF record for each JSON or YAML
execution summary created or rewritten in it.`,
	RunE: watchDir,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("dir", "", "Directory to watch (required)")
	watchCmd.Flags().String("run-id", "", "Also log each record to this MLflow run")
	watchCmd.MarkFlagRequired("dir")
}

func watchDir(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	dir, _ := cmd.Flags().GetString("dir")
	runID, _ := cmd.Flags().GetString("run-id")
	runID = resolveRunID(runID, cfg)

	rec, err := newRecorder(cfg, log, runID, nil)
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}

	handle := func(ctx context.Context, path string) error {
		summary, err := loadSummary(nil, path, "")
		if err != nil {
			return fmt.Errorf("%w: %w", watch.ErrSkipFile, err)
		}

		_, err = rec.Record(ctx, summary, "")
		return err
	}

	// The sinks may live in the watched directory; their own writes must not
	// be read back as summaries.
	w, err := watch.New(log, dir, cfg.WatchDebounce, handle, cfg.SinkPath, cfg.TextfilePath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx)
}
