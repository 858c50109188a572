package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/imishinist/agent-metrics/internal/models"
)

func ParseJSONSummary(reader io.Reader) (*models.ExecutionSummary, error) {
	var data models.ExecutionSummary
	decoder := json.NewDecoder(reader)

	if err := decoder.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse JSON summary: %w", err)
	}

	return &data, nil
}
