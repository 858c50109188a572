package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imishinist/agent-metrics/internal/emf"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Print tool usage totals for an execution summary",
	Long:  "Sum call, error and success counts across every tool of an execution summary",
	RunE:  aggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().String("from-file", "", "Execution summary file, or - for stdin (required)")
	aggregateCmd.Flags().String("format", "json", "Input format when reading stdin (json/yaml)")
	aggregateCmd.MarkFlagRequired("from-file")
}

func aggregate(cmd *cobra.Command, args []string) error {
	fromFile, _ := cmd.Flags().GetString("from-file")
	format, _ := cmd.Flags().GetString("format")

	summary, err := loadSummary(cmd.InOrStdin(), fromFile, format)
	if err != nil {
		return err
	}

	stats := emf.AggregateToolUsage(summary.ToolUsage)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("failed to write tool stats: %w", err)
	}

	return nil
}
