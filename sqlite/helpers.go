package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/docagent"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// encodeMetadata serializes metadata for the metadata column.
func encodeMetadata(m docagent.Metadata) (string, error) {
	data, err := json.Marshal(m.Clone())
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(data), nil
}

// decodeMetadata parses the metadata column. Empty values decode to an empty map.
func decodeMetadata(value string) (docagent.Metadata, error) {
	m := docagent.Metadata{}
	if value == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(value), &m); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if m == nil {
		m = docagent.Metadata{}
	}
	return m, nil
}
