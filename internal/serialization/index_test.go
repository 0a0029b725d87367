package serialization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SafeWeightsIndexName)

	index := &Index{
		Metadata: map[string]int64{"total_size": 42},
		WeightMap: map[string]string{
			"layer.weight": "model-00001-of-00002.safetensors",
			"layer.bias":   "model-00002-of-00002.safetensors",
		},
	}
	require.NoError(t, WriteIndex(path, index))

	got, err := ReadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, index.WeightMap, got.WeightMap)
	assert.Equal(t, int64(42), got.Metadata["total_size"])
}

func TestReadIndex_MissingWeightMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), SafeWeightsIndexName)
	require.NoError(t, os.WriteFile(path, []byte(`{"metadata": {"total_size": 1}}`), 0o644))

	_, err := ReadIndex(path)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestReadIndex_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), SafeWeightsIndexName)
	require.NoError(t, os.WriteFile(path, []byte(`{"weight_map": `), 0o644))

	_, err := ReadIndex(path)
	assert.ErrorIs(t, err, ErrMalformedIndex)
}

func TestWriteIndex_NilWeightMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), SafeWeightsIndexName)

	err := WriteIndex(path, &Index{})
	assert.ErrorIs(t, err, ErrMalformedIndex)
}
