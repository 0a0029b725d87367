package serialization

// Well-known file names from the safetensors ecosystem convention.
//
// These are defaults, not requirements: callers that resolve checkpoint
// directories take them through a loader.Layout value and may substitute
// their own names.
const (
	// SafeWeightsName is the canonical file name of a single-shard checkpoint.
	SafeWeightsName = "model.safetensors"

	// SafeWeightsIndexName is the canonical file name of the index sidecar
	// written next to a sharded checkpoint.
	SafeWeightsIndexName = "model.safetensors.index.json"
)

// MetadataKey is the reserved header key holding free-form file metadata.
// It is never a parameter name and is excluded from all name mappings.
const MetadataKey = "__metadata__"

// MaxHeaderSize caps the declared header length. Anything larger is treated
// as a corrupted length prefix rather than a genuine header.
const MaxHeaderSize = 100 * 1024 * 1024

// TensorInfo is the per-tensor entry of a safetensors header.
type TensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end) relative to the data region
}

// Index is the sidecar JSON document describing a sharded checkpoint.
// Only WeightMap is consumed by this module; Metadata is carried through
// for writers.
type Index struct {
	Metadata  map[string]int64  `json:"metadata,omitempty"`
	WeightMap map[string]string `json:"weight_map"`
}
