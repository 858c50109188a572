package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/imishinist/agent-metrics/internal/models"
	"github.com/imishinist/agent-metrics/internal/parser"
)

// loadSummary reads a summary from path, or from stdin when path is "-". For
// stdin the format flag picks the decoder; for files the extension does.
func loadSummary(stdin io.Reader, path, format string) (*models.ExecutionSummary, error) {
	if path == "-" {
		summary, err := parser.ParseSummary(stdin, format)
		if err != nil {
			return nil, fmt.Errorf("failed to parse summary from stdin: %w", err)
		}
		return summary, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	summary, err := parser.ParseSummary(file, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary file %s: %w", path, err)
	}
	return summary, nil
}
