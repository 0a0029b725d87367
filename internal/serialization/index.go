package serialization

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadIndex reads and validates the sharded-checkpoint index at path.
//
// The index is trusted: its weight_map names are used verbatim by callers
// without re-reading per-shard headers. Top-level fields other than
// weight_map and metadata are ignored.
func ReadIndex(path string) (*Index, error) {
	//nolint:gosec // G304: checkpoint paths come from the caller by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("%w: %s: decoding index JSON: %v", ErrMalformedIndex, path, err)
	}
	if index.WeightMap == nil {
		return nil, fmt.Errorf("%w: %s: missing weight_map field", ErrMalformedIndex, path)
	}

	return &index, nil
}

// WriteIndex writes a sharded-checkpoint index to path.
func WriteIndex(path string, index *Index) error {
	if index.WeightMap == nil {
		return fmt.Errorf("%w: nil weight_map", ErrMalformedIndex)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	return nil
}
