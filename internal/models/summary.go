package models

import "gopkg.in/yaml.v3"

// ExecutionSummary is the per-invocation counter summary an agent run produces.
// Every field is optional; an absent field reads as zero.
type ExecutionSummary struct {
	AccumulatedMetrics AccumulatedMetrics   `json:"accumulated_metrics" yaml:"accumulated_metrics"`
	AccumulatedUsage   AccumulatedUsage     `json:"accumulated_usage" yaml:"accumulated_usage"`
	TotalCycles        int64                `json:"total_cycles" yaml:"total_cycles"`
	TotalDuration      float64              `json:"total_duration" yaml:"total_duration"`
	ToolUsage          map[string]ToolUsage `json:"tool_usage" yaml:"tool_usage"`
}

type AccumulatedMetrics struct {
	LatencyMs float64 `json:"latencyMs" yaml:"latencyMs"`
}

type AccumulatedUsage struct {
	InputTokens  int64 `json:"inputTokens" yaml:"inputTokens"`
	OutputTokens int64 `json:"outputTokens" yaml:"outputTokens"`
	TotalTokens  int64 `json:"totalTokens,omitempty" yaml:"totalTokens,omitempty"`
}

// ToolUsage holds the statistics reported for a single tool.
type ToolUsage struct {
	ExecutionStats ExecutionStats `json:"execution_stats" yaml:"execution_stats"`
}

// ExecutionStats counts are taken as reported; success+error is not checked
// against call_count.
type ExecutionStats struct {
	CallCount    int64 `json:"call_count" yaml:"call_count"`
	ErrorCount   int64 `json:"error_count" yaml:"error_count"`
	SuccessCount int64 `json:"success_count" yaml:"success_count"`
}

// UnmarshalJSON decodes field by field. A field of the wrong type reads as
// zero instead of failing the summary; only a non-mapping document is an
// error.
func (s *ExecutionSummary) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		*s = ExecutionSummary{}
		return nil
	}
	fields, ok := newJSONFields(data)
	if !ok {
		return errNotMapping
	}
	*s = summaryFrom(fields)
	return nil
}

func (s *ExecutionSummary) UnmarshalYAML(value *yaml.Node) error {
	fields, ok := newYAMLFields(value)
	if !ok {
		return errNotMapping
	}
	*s = summaryFrom(fields)
	return nil
}

func summaryFrom(f fieldSet) ExecutionSummary {
	metrics, _ := f.object("accumulated_metrics")
	usage, _ := f.object("accumulated_usage")

	s := ExecutionSummary{
		AccumulatedMetrics: AccumulatedMetrics{
			LatencyMs: metrics.number("latencyMs"),
		},
		AccumulatedUsage: AccumulatedUsage{
			InputTokens:  usage.integer("inputTokens"),
			OutputTokens: usage.integer("outputTokens"),
			TotalTokens:  usage.integer("totalTokens"),
		},
		TotalCycles:   f.integer("total_cycles"),
		TotalDuration: f.number("total_duration"),
	}

	if tools, ok := f.object("tool_usage"); ok {
		s.ToolUsage = make(map[string]ToolUsage)
		for _, name := range tools.keys() {
			entry, _ := tools.object(name)
			s.ToolUsage[name] = toolUsageFrom(entry)
		}
	}

	return s
}

func toolUsageFrom(f fieldSet) ToolUsage {
	stats, _ := f.object("execution_stats")
	return ToolUsage{ExecutionStats: ExecutionStats{
		CallCount:    stats.integer("call_count"),
		ErrorCount:   stats.integer("error_count"),
		SuccessCount: stats.integer("success_count"),
	}}
}

// AggregatedToolStats sums execution stats across every tool of a summary.
type AggregatedToolStats struct {
	CallCount    int64   `json:"call_count"`
	ErrorCount   int64   `json:"error_count"`
	SuccessCount int64   `json:"success_count"`
	SuccessRate  float64 `json:"success_rate"`
}
