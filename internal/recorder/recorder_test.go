package recorder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/models"
	"github.com/imishinist/agent-metrics/internal/sink"
)

type failingSink struct{ err error }

func (f failingSink) Write(context.Context, *models.EmfRecord) (string, error) {
	return "", f.err
}

type countingSink struct{ n int }

func (c *countingSink) Write(context.Context, *models.EmfRecord) (string, error) {
	c.n++
	return "counted", nil
}

func testBuilder() emf.Builder {
	b := emf.NewBuilder()
	b.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return b
}

func TestRecord_WritesToAllSinks(t *testing.T) {
	log, hook := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "metrics.json")
	counter := &countingSink{}

	r := New(log, testBuilder(), "agent", sink.NewFileSink(path), counter)

	result, err := r.Record(context.Background(), &models.ExecutionSummary{TotalCycles: 2}, "abc123")
	require.NoError(t, err)
	require.Equal(t, path, result.Path())
	require.Equal(t, []string{path, "counted"}, result.Destinations)
	require.Equal(t, int64(2), result.Record.TotalCycles)
	require.Equal(t, 1, counter.n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "\n"))

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		require.Equal(t, "abc123", e.Data["trace_id"])
		require.Equal(t, "recorder", e.Data["component"])
	}
}

func TestRecord_NoTraceID(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := New(log, testBuilder(), "agent", &countingSink{})

	_, err := r.Record(context.Background(), nil, "")
	require.NoError(t, err)
	require.NotContains(t, hook.LastEntry().Data, "trace_id")
}

func TestRecord_SurfacesSinkError(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	counter := &countingSink{}
	sinkErr := errors.New("disk full")

	r := New(log, testBuilder(), "agent", failingSink{err: sinkErr}, counter)

	_, err := r.Record(context.Background(), &models.ExecutionSummary{}, "")
	require.ErrorIs(t, err, sinkErr)
	require.Zero(t, counter.n)
	for _, e := range hook.AllEntries() {
		require.NotEqual(t, logrus.ErrorLevel, e.Level)
	}
}

func TestRecord_IndependentSnapshots(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := New(log, testBuilder(), "agent", &countingSink{})

	first, err := r.Record(context.Background(), &models.ExecutionSummary{TotalCycles: 5}, "")
	require.NoError(t, err)
	second, err := r.Record(context.Background(), &models.ExecutionSummary{}, "")
	require.NoError(t, err)

	require.Equal(t, int64(5), first.Record.TotalCycles)
	require.Zero(t, second.Record.TotalCycles)
}
