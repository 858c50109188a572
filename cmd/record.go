package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	timeutils "github.com/imishinist/agent-metrics/internal/time"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an execution summary as an EMF metrics line",
	Long: `Build an Embedded Metric Format record from an agent execution summary
(JSON or YAML) and append it as one line to the metrics file.`,
	RunE: record,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().String("from-file", "", "Execution summary file, or - for stdin (required)")
	recordCmd.Flags().String("format", "json", "Input format when reading stdin (json/yaml)")
	recordCmd.Flags().String("trace-id", "", "Trace ID attached to log entries")
	recordCmd.Flags().String("timestamp", "", "Record timestamp in ISO8601 format (default: now)")
	recordCmd.Flags().String("run-id", "", "Also log the record to this MLflow run")
	recordCmd.MarkFlagRequired("from-file")
}

func record(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	fromFile, _ := cmd.Flags().GetString("from-file")
	format, _ := cmd.Flags().GetString("format")
	traceID, _ := cmd.Flags().GetString("trace-id")
	timestampStr, _ := cmd.Flags().GetString("timestamp")
	runID, _ := cmd.Flags().GetString("run-id")
	runID = resolveRunID(runID, cfg)

	now, err := timeutils.ParseTimestamp(timestampStr)
	if err != nil {
		return err
	}

	summary, err := loadSummary(cmd.InOrStdin(), fromFile, format)
	if err != nil {
		return err
	}

	rec, err := newRecorder(cfg, log, runID, now)
	if err != nil {
		return fmt.Errorf("failed to create recorder: %w", err)
	}

	result, err := rec.Record(cmd.Context(), summary, traceID)
	if err != nil {
		return err
	}

	// Output only the metrics file path for shell scripting
	fmt.Fprintln(cmd.OutOrStdout(), result.Path())

	return nil
}
