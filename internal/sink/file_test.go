package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/models"
)

func testRecord(t *testing.T, latency float64) *models.EmfRecord {
	t.Helper()
	return emf.BuildRecord(&models.ExecutionSummary{
		AccumulatedMetrics: models.AccumulatedMetrics{LatencyMs: latency},
		AccumulatedUsage:   models.AccumulatedUsage{InputTokens: 50, OutputTokens: 30},
		TotalCycles:        3,
		TotalDuration:      1.5,
		ToolUsage: map[string]models.ToolUsage{
			"http": {ExecutionStats: models.ExecutionStats{CallCount: 10, ErrorCount: 2, SuccessCount: 8}},
		},
	}, "agent", func() time.Time { return time.UnixMilli(1700000000000) })
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestPersist_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "metrics.json")

	got, err := Persist(testRecord(t, 120), path)
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Len(t, readLines(t, path), 1)
}

func TestPersist_CompactSingleLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")

	_, err := Persist(testRecord(t, 120), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	require.True(t, strings.HasSuffix(content, "}\n"))
	require.Equal(t, 1, strings.Count(content, "\n"))
	require.NotContains(t, content, ": ")
	require.NotContains(t, content, ", ")
	require.True(t, strings.HasPrefix(content, `{"_aws":{"Timestamp":1700000000000,`))
}

func TestPersist_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	record := testRecord(t, 120)

	_, err := Persist(record, path)
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 1)

	var decoded models.EmfRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	require.Equal(t, *record, decoded)
}

func TestPersist_AppendsAndPreservesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0o644))

	_, err := Persist(testRecord(t, 1), path)
	require.NoError(t, err)
	_, err = Persist(testRecord(t, 2), path)
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	require.Equal(t, "existing line", lines[0])

	for i, want := range []float64{1, 2} {
		var decoded models.EmfRecord
		require.NoError(t, json.Unmarshal([]byte(lines[i+1]), &decoded))
		require.Equal(t, want, decoded.LatencyMs)
	}
}

func TestPersist_DefaultPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := Persist(testRecord(t, 1), "")
	require.NoError(t, err)
	require.Equal(t, DefaultPath, got)
	require.FileExists(t, DefaultPath)
}

func TestPersist_ParentIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Persist(testRecord(t, 1), filepath.Join(blocker, "metrics.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create directory")
}

func TestPersist_PathIsADirectory(t *testing.T) {
	_, err := Persist(testRecord(t, 1), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open metrics file")
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	record := testRecord(t, 1)
	record.AgentName = "a<b>&c"

	line, err := Encode(record)
	require.NoError(t, err)
	require.Contains(t, string(line), `"AgentName":"a<b>&c"`)
}

func TestFileSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "metrics.json")
	s := NewFileSink(path)

	got, err := s.Write(context.Background(), testRecord(t, 5))
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Len(t, readLines(t, path), 1)
}
