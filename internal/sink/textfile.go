package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/models"
)

const promNamespace = "agent_metrics"

// TextfileSink writes the latest record as a Prometheus textfile for the
// node_exporter textfile collector. Unlike FileSink the file is replaced on
// every write.
type TextfileSink struct {
	Path string
}

func NewTextfileSink(path string) *TextfileSink {
	return &TextfileSink{Path: path}
}

func (s *TextfileSink) Write(_ context.Context, record *models.EmfRecord) (string, error) {
	reg := prom.NewRegistry()
	if err := RegisterRecord(reg, record); err != nil {
		return "", err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := prom.WriteToTextfile(s.Path, reg); err != nil {
		return "", fmt.Errorf("failed to write textfile %s: %w", s.Path, err)
	}

	return s.Path, nil
}

// RegisterRecord registers one gauge per record metric on reg, labelled with
// the record's agent name.
func RegisterRecord(reg prom.Registerer, record *models.EmfRecord) error {
	for _, m := range emf.Metrics(record) {
		g := prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: promNamespace,
			Name:      GaugeName(m),
			Help:      fmt.Sprintf("%s reported by the last agent invocation (%s)", m.Key, m.Unit),
		}, []string{"agent_name"})
		if err := reg.Register(g); err != nil {
			return fmt.Errorf("failed to register gauge %s: %w", m.Key, err)
		}
		g.WithLabelValues(record.AgentName).Set(m.Value)
	}
	return nil
}

// GaugeName converts a record metric into a snake_case gauge name with a unit
// suffix, e.g. LatencyMs -> latency_ms, TotalDuration -> total_duration_seconds.
func GaugeName(m models.Metric) string {
	var b strings.Builder
	for i, r := range m.Key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}

	name := b.String()
	if m.Unit == models.UnitSeconds {
		name += "_seconds"
	}
	return name
}

var _ Sink = (*TextfileSink)(nil)
