package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/imishinist/agent-metrics/internal/models"
)

// Supported reports whether path has an extension ParseSummary understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseSummary decodes a summary in the format named by ext (".json", ".yaml",
// ".yml"; a bare "json" or "yaml" is also accepted).
func ParseSummary(reader io.Reader, ext string) (*models.ExecutionSummary, error) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	switch ext {
	case ".json":
		return ParseJSONSummary(reader)
	case ".yaml", ".yml":
		return ParseYAMLSummary(reader)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .json, .yaml, .yml)", ext)
	}
}
