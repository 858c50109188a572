package mlflow

import (
	"context"
	"fmt"

	"github.com/imishinist/agent-metrics/internal/models"
	"github.com/imishinist/agent-metrics/internal/sink"
)

// Publisher sends records to a single MLflow run.
type Publisher struct {
	client *Client
	runID  string
}

func NewPublisher(client *Client, runID string) *Publisher {
	return &Publisher{client: client, runID: runID}
}

func (p *Publisher) Write(ctx context.Context, record *models.EmfRecord) (string, error) {
	if p.runID == "" {
		return "", fmt.Errorf("run ID is required to publish to MLflow")
	}

	if err := p.client.LogRecordParams(ctx, p.runID, record); err != nil {
		return "", err
	}
	if err := p.client.LogRecord(ctx, p.runID, record); err != nil {
		return "", err
	}

	return "mlflow run " + p.runID, nil
}

var _ sink.Sink = (*Publisher)(nil)
