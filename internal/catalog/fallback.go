package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fallback.json
var embeddedFallback []byte

// DefaultFallback returns the embedded dataset used when the catalog resource
// cannot be loaded.
func DefaultFallback() []byte {
	return embeddedFallback
}

// decodeRecords decodes a JSON array of raw records. ok is false when data is
// valid JSON but not an array.
func decodeRecords(data []byte) (records []any, ok bool, err error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, fmt.Errorf("catalog: decode: %w", err)
	}
	records, ok = v.([]any)
	return records, ok, nil
}
