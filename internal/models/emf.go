package models

// Unit is a CloudWatch metric unit.
type Unit string

const (
	UnitMilliseconds Unit = "Milliseconds"
	UnitSeconds      Unit = "Seconds"
	UnitCount        Unit = "Count"
	UnitNone         Unit = "None"
)

// EmfRecord is one CloudWatch Embedded Metric Format log line.
type EmfRecord struct {
	AWS           EmfMetadata `json:"_aws"`
	AgentName     string      `json:"AgentName"`
	LatencyMs     float64     `json:"LatencyMs"`
	InputTokens   int64       `json:"InputTokens"`
	OutputTokens  int64       `json:"OutputTokens"`
	TotalCycles   int64       `json:"TotalCycles"`
	TotalDuration float64     `json:"TotalDuration"`
	ToolCallCount int64       `json:"ToolCallCount"`
	ErrorCount    int64       `json:"ErrorCount"`
	SuccessCount  int64       `json:"SuccessCount"`
	SuccessRate   float64     `json:"SuccessRate"`
}

type EmfMetadata struct {
	Timestamp         int64             `json:"Timestamp"`
	LogGroupName      string            `json:"LogGroupName"`
	CloudWatchMetrics []MetricDirective `json:"CloudWatchMetrics"`
}

type MetricDirective struct {
	Namespace  string             `json:"Namespace"`
	Dimensions [][]string         `json:"Dimensions"`
	Metrics    []MetricDefinition `json:"Metrics"`
}

type MetricDefinition struct {
	Name string `json:"Name"`
	Unit Unit   `json:"Unit"`
}

// Metric is a single named value ready to be sent to a tracking backend.
type Metric struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}
