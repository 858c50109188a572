package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imishinist/agent-metrics/internal/mlflow"
	timeutils "github.com/imishinist/agent-metrics/internal/time"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Log an execution summary to an MLflow run",
	Long: `Build the metrics record for an execution summary and log its values to
an existing MLflow run without touching the EMF metrics file.`,
	RunE: publish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().String("run-id", "", "Run ID to log metrics to (default: MLFLOW_RUN_ID)")
	publishCmd.Flags().String("from-file", "", "Execution summary file, or - for stdin (required)")
	publishCmd.Flags().String("format", "json", "Input format when reading stdin (json/yaml)")
	publishCmd.Flags().String("timestamp", "", "Record timestamp in ISO8601 format (default: now)")
	publishCmd.MarkFlagRequired("from-file")
}

func publish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runID, _ := cmd.Flags().GetString("run-id")
	runID = resolveRunID(runID, cfg)
	fromFile, _ := cmd.Flags().GetString("from-file")
	format, _ := cmd.Flags().GetString("format")
	timestampStr, _ := cmd.Flags().GetString("timestamp")

	now, err := timeutils.ParseTimestamp(timestampStr)
	if err != nil {
		return err
	}

	summary, err := loadSummary(cmd.InOrStdin(), fromFile, format)
	if err != nil {
		return err
	}

	if runID == "" {
		return fmt.Errorf("run ID is required: pass --run-id or set MLFLOW_RUN_ID")
	}

	client, err := mlflow.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MLflow client: %w", err)
	}

	record := newBuilder(cfg, now).Build(summary, cfg.AgentName)
	dest, err := mlflow.NewPublisher(client, runID).Write(cmd.Context(), record)
	if err != nil {
		return fmt.Errorf("failed to publish metrics: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged %d metrics to %s\n",
		len(record.AWS.CloudWatchMetrics[0].Metrics), dest)

	return nil
}
