// Package sink writes EMF records to their destinations.
package sink

import (
	"context"

	"github.com/imishinist/agent-metrics/internal/models"
)

// Sink receives one record per agent invocation. Write returns a description
// of where the record went (a path for file sinks).
type Sink interface {
	Write(ctx context.Context, record *models.EmfRecord) (string, error)
}
