package mlflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/databricks/databricks-sdk-go/service/ml"
	"github.com/stretchr/testify/require"

	"github.com/imishinist/agent-metrics/internal/config"
	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/models"
)

type fakeExperiments struct {
	metrics   []ml.LogMetric
	params    []ml.LogParam
	failOnKey string
}

func (f *fakeExperiments) LogMetric(_ context.Context, request ml.LogMetric) error {
	if request.Key == f.failOnKey {
		return errors.New("boom")
	}
	f.metrics = append(f.metrics, request)
	return nil
}

func (f *fakeExperiments) LogParam(_ context.Context, request ml.LogParam) error {
	if request.Key == f.failOnKey {
		return errors.New("boom")
	}
	f.params = append(f.params, request)
	return nil
}

func testRecord() *models.EmfRecord {
	return emf.BuildRecord(&models.ExecutionSummary{
		AccumulatedMetrics: models.AccumulatedMetrics{LatencyMs: 120},
		TotalCycles:        3,
		ToolUsage: map[string]models.ToolUsage{
			"http": {ExecutionStats: models.ExecutionStats{CallCount: 10, ErrorCount: 2, SuccessCount: 8}},
		},
	}, "agent", func() time.Time { return time.UnixMilli(1700000000000) })
}

func TestLogRecord(t *testing.T) {
	fake := &fakeExperiments{}
	client := &Client{experiments: fake}

	require.NoError(t, client.LogRecord(context.Background(), "run-1", testRecord()))
	require.Len(t, fake.metrics, 9)

	for _, m := range fake.metrics {
		require.Equal(t, "run-1", m.RunId)
		require.Equal(t, int64(1700000000000), m.Timestamp)
		require.Equal(t, int64(3), m.Step)
	}
	require.Equal(t, "LatencyMs", fake.metrics[0].Key)
	require.Equal(t, 120.0, fake.metrics[0].Value)
	require.Equal(t, "SuccessRate", fake.metrics[6].Key)
	require.InDelta(t, 0.8, fake.metrics[6].Value, 1e-12)
}

func TestLogRecord_StopsOnError(t *testing.T) {
	fake := &fakeExperiments{failOnKey: "ToolCallCount"}
	client := &Client{experiments: fake}

	err := client.LogRecord(context.Background(), "run-1", testRecord())
	require.ErrorContains(t, err, "failed to log metric ToolCallCount")
	require.Len(t, fake.metrics, 3)
}

func TestPublisher_Write(t *testing.T) {
	fake := &fakeExperiments{}
	p := NewPublisher(&Client{experiments: fake}, "run-9")

	dest, err := p.Write(context.Background(), testRecord())
	require.NoError(t, err)
	require.Equal(t, "mlflow run run-9", dest)
	require.Len(t, fake.metrics, 9)
	require.Equal(t, []ml.LogParam{
		{RunId: "run-9", Key: "agent_name", Value: "agent"},
		{RunId: "run-9", Key: "log_group_name", Value: emf.DefaultLogGroupName},
		{RunId: "run-9", Key: "namespace", Value: emf.DefaultNamespace},
	}, fake.params)
}

func TestPublisher_RequiresRunID(t *testing.T) {
	p := NewPublisher(&Client{experiments: &fakeExperiments{}}, "")
	_, err := p.Write(context.Background(), testRecord())
	require.ErrorContains(t, err, "run ID is required")
}

func TestNewClient_DatabricksWithoutHost(t *testing.T) {
	_, err := NewClient(&config.Config{TrackingURI: "databricks"})
	require.ErrorContains(t, err, "Databricks host or profile is required")
}

func TestNewClient_RequiresTrackingURI(t *testing.T) {
	_, err := NewClient(&config.Config{})
	require.ErrorContains(t, err, "tracking URI is required")
}
