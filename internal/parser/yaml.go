package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/imishinist/agent-metrics/internal/models"
)

func ParseYAMLSummary(reader io.Reader) (*models.ExecutionSummary, error) {
	var data models.ExecutionSummary
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML summary: %w", err)
	}

	return &data, nil
}
