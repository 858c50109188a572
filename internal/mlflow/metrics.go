package mlflow

import (
	"context"
	"fmt"

	"github.com/databricks/databricks-sdk-go/service/ml"

	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/models"
)

func (c *Client) LogMetric(ctx context.Context, runID string, metric models.Metric, timestamp, step int64) error {
	err := c.experiments.LogMetric(ctx, ml.LogMetric{
		RunId:     runID,
		Key:       metric.Key,
		Value:     metric.Value,
		Timestamp: timestamp,
		Step:      step,
	})
	if err != nil {
		return fmt.Errorf("failed to log metric %s: %w", metric.Key, err)
	}

	return nil
}

// LogRecord logs every value of record as an MLflow metric stamped with the
// record timestamp. The step is the record's cycle count.
func (c *Client) LogRecord(ctx context.Context, runID string, record *models.EmfRecord) error {
	for _, metric := range emf.Metrics(record) {
		if err := c.LogMetric(ctx, runID, metric, record.AWS.Timestamp, record.TotalCycles); err != nil {
			return err
		}
	}

	return nil
}

// LogRecordParams records the labels a record was published under as run
// parameters.
func (c *Client) LogRecordParams(ctx context.Context, runID string, record *models.EmfRecord) error {
	params := [][2]string{
		{"agent_name", record.AgentName},
		{"log_group_name", record.AWS.LogGroupName},
	}
	for _, d := range record.AWS.CloudWatchMetrics {
		params = append(params, [2]string{"namespace", d.Namespace})
	}

	for _, p := range params {
		err := c.experiments.LogParam(ctx, ml.LogParam{
			RunId: runID,
			Key:   p[0],
			Value: p[1],
		})
		if err != nil {
			return fmt.Errorf("failed to log parameter %s: %w", p[0], err)
		}
	}

	return nil
}
