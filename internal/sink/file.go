package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imishinist/agent-metrics/internal/models"
)

// DefaultPath is where records go when no path is configured.
const DefaultPath = "strands_agent_metrics.json"

// Encode renders record as a single compact JSON line terminated by "\n".
func Encode(record *models.EmfRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return buf.Bytes(), nil
}

// Persist appends record to the file at path, creating the file and its parent
// directory as needed, and returns the path written to.
//
// The line is written with a single Write call. Appends from separate
// processes are not coordinated.
func Persist(record *models.EmfRecord, path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	line, err := Encode(record)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open metrics file %s: %w", path, err)
	}

	if _, err := f.Write(line); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to append to metrics file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close metrics file %s: %w", path, err)
	}

	return path, nil
}

// FileSink appends EMF lines to Path.
type FileSink struct {
	Path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) Write(_ context.Context, record *models.EmfRecord) (string, error) {
	return Persist(record, s.Path)
}

var _ Sink = (*FileSink)(nil)
