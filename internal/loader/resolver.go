package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/born-ml/weightmap/internal/serialization"
)

// WeightMapping maps a fully qualified parameter name to the absolute path
// of the safetensors file that stores it.
type WeightMapping map[string]string

// Layout names the well-known files a checkpoint directory may contain.
// The zero value is not useful; start from DefaultLayout.
type Layout struct {
	// WeightsName is the file name of a single-shard checkpoint.
	WeightsName string

	// IndexName is the file name of the sharded-checkpoint index sidecar.
	IndexName string
}

// DefaultLayout returns the ecosystem-standard checkpoint file names.
func DefaultLayout() Layout {
	return Layout{
		WeightsName: serialization.SafeWeightsName,
		IndexName:   serialization.SafeWeightsIndexName,
	}
}

// SafetensorsFolder resolves a local model path to an absolute folder path.
//
// Remote repository identifiers are not handled here: callers that accept
// model stubs must download to a local folder first and hand the result in.
func SafetensorsFolder(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrCheckpointNotFound, path)
	}
	return filepath.Abs(path)
}

// ResolveWeightLocations maps every parameter of the checkpoint at path to
// the file that contains it, using the default layout. See
// ResolveWeightLocationsLayout.
func ResolveWeightLocations(path string) (WeightMapping, error) {
	return ResolveWeightLocationsLayout(path, DefaultLayout())
}

// ResolveWeightLocationsLayout maps every parameter of the checkpoint at
// path to the file that contains it.
//
// The path may be a single safetensors file, a directory containing the
// layout's weights file, or a directory containing the layout's index file.
// In the index case the index is trusted: its weight_map names are used
// verbatim and per-shard headers are not re-read. Should an index declare
// the same name twice (a malformed producer), the last entry processed
// wins; indexes are name-unique by construction of the upstream writer.
//
// On any error the mapping is nil; no partially populated mapping is ever
// returned.
func ResolveWeightLocationsLayout(path string, layout Layout) (WeightMapping, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, path)
	}

	if !info.IsDir() {
		return locationsFromFile(path)
	}

	weightsPath := filepath.Join(path, layout.WeightsName)
	if fileExists(weightsPath) {
		return locationsFromFile(weightsPath)
	}

	indexPath := filepath.Join(path, layout.IndexName)
	if fileExists(indexPath) {
		index, err := serialization.ReadIndex(indexPath)
		if err != nil {
			return nil, err
		}
		mapping := make(WeightMapping, len(index.WeightMap))
		for name, relative := range index.WeightMap {
			mapping[name] = filepath.Join(path, relative)
		}
		return mapping, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, path)
}

// locationsFromFile reads a single shard's header and points every declared
// parameter at the shard itself.
func locationsFromFile(path string) (WeightMapping, error) {
	header, err := serialization.ReadHeader(path)
	if err != nil {
		return nil, err
	}

	mapping := make(WeightMapping, len(header))
	for name := range header {
		if name == serialization.MetadataKey {
			continue
		}
		mapping[name] = path
	}
	return mapping, nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
