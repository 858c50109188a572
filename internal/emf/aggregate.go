// Package emf turns agent execution summaries into CloudWatch Embedded Metric
// Format records.
package emf

import "github.com/imishinist/agent-metrics/internal/models"

// AggregateToolUsage sums call, error and success counts over every tool.
//
// SuccessRate is SuccessCount/CallCount, or 0 when no calls were made. Counts
// are trusted as reported, so an inconsistent input may yield a rate above 1.
func AggregateToolUsage(toolUsage map[string]models.ToolUsage) models.AggregatedToolStats {
	var stats models.AggregatedToolStats
	for _, usage := range toolUsage {
		stats.CallCount += usage.ExecutionStats.CallCount
		stats.ErrorCount += usage.ExecutionStats.ErrorCount
		stats.SuccessCount += usage.ExecutionStats.SuccessCount
	}

	if stats.CallCount > 0 {
		stats.SuccessRate = float64(stats.SuccessCount) / float64(stats.CallCount)
	}

	return stats
}
