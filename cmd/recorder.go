package cmd

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imishinist/agent-metrics/internal/config"
	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/mlflow"
	"github.com/imishinist/agent-metrics/internal/recorder"
	"github.com/imishinist/agent-metrics/internal/sink"
)

func newBuilder(cfg *config.Config, now func() time.Time) emf.Builder {
	return emf.Builder{
		Namespace:    cfg.Namespace,
		LogGroupName: cfg.LogGroupName,
		Now:          now,
	}
}

// resolveRunID prefers the --run-id flag and falls back to the configured run
// (AGENT_METRICS_RUN_ID or MLFLOW_RUN_ID).
func resolveRunID(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.RunID
}

// newRecorder wires the EMF file sink plus the optional textfile and MLflow
// sinks selected by cfg and runID.
func newRecorder(cfg *config.Config, log logrus.FieldLogger, runID string, now func() time.Time) (*recorder.Recorder, error) {
	var extra []sink.Sink

	if cfg.TextfilePath != "" {
		extra = append(extra, sink.NewTextfileSink(cfg.TextfilePath))
	}

	if runID != "" {
		client, err := mlflow.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		extra = append(extra, mlflow.NewPublisher(client, runID))
	}

	return recorder.New(log, newBuilder(cfg, now), cfg.AgentName, sink.NewFileSink(cfg.SinkPath), extra...), nil
}
