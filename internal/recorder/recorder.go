// Package recorder builds one EMF record per agent invocation and hands it to
// the configured sinks.
package recorder

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/models"
	"github.com/imishinist/agent-metrics/internal/sink"
)

// Result describes a recorded invocation.
type Result struct {
	Record *models.EmfRecord
	// Destinations holds what each sink returned, in sink order. The first
	// entry is the EMF file path.
	Destinations []string
}

// Recorder is stateless between calls; every Record call is a self-contained
// snapshot of the summary it receives.
type Recorder struct {
	builder   emf.Builder
	agentName string
	sinks     []sink.Sink
	log       logrus.FieldLogger
}

// New returns a Recorder writing to primary first and then to extra, in order.
func New(log logrus.FieldLogger, builder emf.Builder, agentName string, primary sink.Sink, extra ...sink.Sink) *Recorder {
	return &Recorder{
		builder:   builder,
		agentName: agentName,
		sinks:     append([]sink.Sink{primary}, extra...),
		log:       log.WithField("component", "recorder"),
	}
}

// Record builds a record from summary and writes it to every sink. The first
// sink error stops the run and is returned; it is never swallowed. traceID is
// attached to log entries only.
func (r *Recorder) Record(ctx context.Context, summary *models.ExecutionSummary, traceID string) (*Result, error) {
	log := r.log
	if traceID != "" {
		log = log.WithField("trace_id", traceID)
	}

	record := r.builder.Build(summary, r.agentName)
	log.WithFields(logrus.Fields{
		"agent_name":      record.AgentName,
		"tool_call_count": record.ToolCallCount,
		"success_rate":    record.SuccessRate,
		"latency_ms":      record.LatencyMs,
	}).Debug("built metrics record")

	result := &Result{Record: record}
	for i, s := range r.sinks {
		dest, err := s.Write(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("failed to write metrics record (sink %d): %w", i, err)
		}
		result.Destinations = append(result.Destinations, dest)
		log.WithField("destination", dest).Info("metrics record written")
	}

	return result, nil
}

// Path returns the EMF file path the record was appended to.
func (r *Result) Path() string {
	if len(r.Destinations) == 0 {
		return ""
	}
	return r.Destinations[0]
}
