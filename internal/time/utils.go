package timeutils

import (
	"fmt"
	"time"
)

// EpochMillis returns t as whole milliseconds since the Unix epoch.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// ParseTimestamp parses an ISO8601 timestamp. An empty string yields a nil
// clock, meaning "use the current time".
func ParseTimestamp(s string) (func() time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp format: %s (expected ISO8601)", s)
	}

	return func() time.Time { return t }, nil
}
