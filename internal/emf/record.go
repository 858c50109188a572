package emf

import (
	"time"

	"github.com/imishinist/agent-metrics/internal/models"
	timeutils "github.com/imishinist/agent-metrics/internal/time"
)

const (
	DefaultNamespace    = "StrandsAgentMetrics"
	DefaultLogGroupName = "strands-agent-metrics"
	DefaultAgentName    = "weather-forecaster-strands-agent"

	// DimensionAgentName is the only dimension records are published under.
	DimensionAgentName = "AgentName"
)

// Metric names as they appear in the record body and the metric directive.
const (
	MetricLatencyMs     = "LatencyMs"
	MetricInputTokens   = "InputTokens"
	MetricOutputTokens  = "OutputTokens"
	MetricToolCallCount = "ToolCallCount"
	MetricErrorCount    = "ErrorCount"
	MetricSuccessCount  = "SuccessCount"
	MetricSuccessRate   = "SuccessRate"
	MetricTotalCycles   = "TotalCycles"
	MetricTotalDuration = "TotalDuration"
)

// Definitions returns the metric directive entries in canonical order.
func Definitions() []models.MetricDefinition {
	return []models.MetricDefinition{
		{Name: MetricLatencyMs, Unit: models.UnitMilliseconds},
		{Name: MetricInputTokens, Unit: models.UnitCount},
		{Name: MetricOutputTokens, Unit: models.UnitCount},
		{Name: MetricToolCallCount, Unit: models.UnitCount},
		{Name: MetricErrorCount, Unit: models.UnitCount},
		{Name: MetricSuccessCount, Unit: models.UnitCount},
		{Name: MetricSuccessRate, Unit: models.UnitNone},
		{Name: MetricTotalCycles, Unit: models.UnitCount},
		{Name: MetricTotalDuration, Unit: models.UnitSeconds},
	}
}

// Builder carries the fixed labels stamped on every record.
type Builder struct {
	Namespace    string
	LogGroupName string
	// Now defaults to time.Now when nil.
	Now func() time.Time
}

// NewBuilder returns a Builder with the default namespace and log group.
func NewBuilder() Builder {
	return Builder{
		Namespace:    DefaultNamespace,
		LogGroupName: DefaultLogGroupName,
	}
}

// BuildRecord builds a record with the default labels. A nil summary produces
// an all-zero record.
func BuildRecord(summary *models.ExecutionSummary, agentName string, now func() time.Time) *models.EmfRecord {
	b := NewBuilder()
	b.Now = now
	return b.Build(summary, agentName)
}

// Build projects summary into a fully populated record. It never fails.
func (b Builder) Build(summary *models.ExecutionSummary, agentName string) *models.EmfRecord {
	if summary == nil {
		summary = &models.ExecutionSummary{}
	}

	now := b.Now
	if now == nil {
		now = time.Now
	}

	tools := AggregateToolUsage(summary.ToolUsage)

	return &models.EmfRecord{
		AWS: models.EmfMetadata{
			Timestamp:    timeutils.EpochMillis(now()),
			LogGroupName: b.LogGroupName,
			CloudWatchMetrics: []models.MetricDirective{{
				Namespace:  b.Namespace,
				Dimensions: [][]string{{DimensionAgentName}},
				Metrics:    Definitions(),
			}},
		},
		AgentName:     agentName,
		LatencyMs:     summary.AccumulatedMetrics.LatencyMs,
		InputTokens:   summary.AccumulatedUsage.InputTokens,
		OutputTokens:  summary.AccumulatedUsage.OutputTokens,
		TotalCycles:   summary.TotalCycles,
		TotalDuration: summary.TotalDuration,
		ToolCallCount: tools.CallCount,
		ErrorCount:    tools.ErrorCount,
		SuccessCount:  tools.SuccessCount,
		SuccessRate:   tools.SuccessRate,
	}
}

// Metrics flattens the record's values into Definitions order.
func Metrics(record *models.EmfRecord) []models.Metric {
	values := map[string]float64{
		MetricLatencyMs:     record.LatencyMs,
		MetricInputTokens:   float64(record.InputTokens),
		MetricOutputTokens:  float64(record.OutputTokens),
		MetricToolCallCount: float64(record.ToolCallCount),
		MetricErrorCount:    float64(record.ErrorCount),
		MetricSuccessCount:  float64(record.SuccessCount),
		MetricSuccessRate:   record.SuccessRate,
		MetricTotalCycles:   float64(record.TotalCycles),
		MetricTotalDuration: record.TotalDuration,
	}

	defs := Definitions()
	result := make([]models.Metric, 0, len(defs))
	for _, def := range defs {
		result = append(result, models.Metric{
			Key:   def.Name,
			Value: values[def.Name],
			Unit:  def.Unit,
		})
	}
	return result
}
