// Package loader provides checkpoint weight-location resolution and
// compression-parameter grouping for safetensors checkpoints.
//
// This package wraps the internal loader implementation and exports a clean
// public API. It reasons purely about checkpoint metadata: which file holds
// each parameter, and which parameters form one compressed layer. Tensor
// payload bytes are never read.
//
// Example usage:
//
//	import "github.com/born-ml/weightmap/loader"
//
//	// Map every parameter to its shard file.
//	mapping, err := loader.ResolveWeightLocations("path/to/model")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Group quantization parameters under their owning layers and keep
//	// the remainder for the next compression pass.
//	nested, rest := loader.GroupBySuffixWithRemainder(
//	    map[string]string(mapping),
//	    []string{"weight_scale", "zero_point"},
//	)
package loader

import (
	"context"

	"github.com/born-ml/weightmap/internal/loader"
)

// WeightMapping maps a fully qualified parameter name to the absolute path
// of the safetensors file that stores it.
type WeightMapping = loader.WeightMapping

// NestedMapping maps an entity name to its compression parameters, keyed by
// suffix, generic over the value type.
type NestedMapping[V any] = loader.NestedMapping[V]

// Layout names the well-known files a checkpoint directory may contain.
type Layout = loader.Layout

// ErrCheckpointNotFound reports that the given location holds neither a
// single-shard safetensors file nor a sharded-checkpoint index.
var ErrCheckpointNotFound = loader.ErrCheckpointNotFound

// DefaultLayout returns the ecosystem-standard checkpoint file names.
func DefaultLayout() Layout {
	return loader.DefaultLayout()
}

// SafetensorsFolder resolves a local model path to an absolute folder path.
func SafetensorsFolder(path string) (string, error) {
	return loader.SafetensorsFolder(path)
}

// ResolveWeightLocations maps every parameter of the checkpoint at path to
// the file that contains it, using the default layout. The path may be a
// single safetensors file, a directory containing the canonical weights
// file, or a sharded directory with an index.
func ResolveWeightLocations(path string) (WeightMapping, error) {
	return loader.ResolveWeightLocations(path)
}

// ResolveWeightLocationsLayout is ResolveWeightLocations with caller-chosen
// checkpoint file names.
func ResolveWeightLocationsLayout(path string, layout Layout) (WeightMapping, error) {
	return loader.ResolveWeightLocationsLayout(path, layout)
}

// MergeNames joins an entity name with a compression parameter suffix into
// a full parameter name.
func MergeNames(entityName, suffix string) string {
	return loader.MergeNames(entityName, suffix)
}

// MatchParamName extracts the entity name from a full parameter name merged
// with MergeNames; the second result reports whether the suffix matched.
func MatchParamName(fullName, suffix string) (string, bool) {
	return loader.MatchParamName(fullName, suffix)
}

// GroupBySuffix groups a flat parameter mapping into per-entity clusters.
// Names matching no suffix are dropped.
func GroupBySuffix[V any](flat map[string]V, suffixes []string) NestedMapping[V] {
	return loader.GroupBySuffix(flat, suffixes)
}

// GroupBySuffixWithRemainder is GroupBySuffix plus a flat mapping holding
// exactly the input names that matched no suffix, enabling stacked
// compression passes.
func GroupBySuffixWithRemainder[V any](flat map[string]V, suffixes []string) (NestedMapping[V], map[string]V) {
	return loader.GroupBySuffixWithRemainder(flat, suffixes)
}

// ResolveNestedWeightLocations resolves the checkpoint at path and groups
// the resulting locations by the given suffixes.
func ResolveNestedWeightLocations(path string, suffixes []string) (NestedMapping[string], error) {
	return loader.ResolveNestedWeightLocations(path, suffixes)
}

// ResolveNestedWeightLocationsWithRemainder resolves the checkpoint at path
// and groups the resulting locations by the given suffixes, returning the
// unmatched names alongside.
func ResolveNestedWeightLocationsWithRemainder(path string, suffixes []string) (NestedMapping[string], WeightMapping, error) {
	return loader.ResolveNestedWeightLocationsWithRemainder(path, suffixes)
}

// IsQuantizationParam reports whether the parameter name belongs to the
// known family of quantization parameters.
func IsQuantizationParam(name string) bool {
	return loader.IsQuantizationParam(name)
}

// QuantizationParamLocations resolves the checkpoint at path and keeps only
// the quantization parameters.
func QuantizationParamLocations(path string) (WeightMapping, error) {
	return loader.QuantizationParamLocations(path)
}

// VerifyShards checks that every file referenced by mapping exists and that
// its header declares the parameters the mapping assigns to it. Shards are
// read concurrently.
func VerifyShards(ctx context.Context, mapping WeightMapping) error {
	return loader.VerifyShards(ctx, mapping)
}
