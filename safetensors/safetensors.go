// Package safetensors provides metadata-level access to the safetensors
// binary container format.
//
// This package wraps the internal serialization implementation and exports
// a clean public API for reading checkpoint headers and index files, and
// for writing single-file or sharded checkpoints from raw payloads.
//
// Example usage:
//
//	import "github.com/born-ml/weightmap/safetensors"
//
//	header, err := safetensors.ReadHeader("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, name := range header.ParamNames() {
//	    fmt.Println(name)
//	}
package safetensors

import (
	"github.com/born-ml/weightmap/internal/serialization"
)

// Well-known file names from the safetensors ecosystem convention.
const (
	SafeWeightsName      = serialization.SafeWeightsName
	SafeWeightsIndexName = serialization.SafeWeightsIndexName
)

// MetadataKey is the reserved header key holding free-form file metadata.
const MetadataKey = serialization.MetadataKey

// Header is the decoded JSON header of a safetensors file.
type Header = serialization.Header

// TensorInfo is the per-tensor entry of a safetensors header.
type TensorInfo = serialization.TensorInfo

// TensorData is a named raw tensor payload destined for a safetensors file.
type TensorData = serialization.TensorData

// Index is the sidecar JSON document describing a sharded checkpoint.
type Index = serialization.Index

// Common errors.
var (
	ErrMalformedHeader = serialization.ErrMalformedHeader
	ErrMalformedIndex  = serialization.ErrMalformedIndex
)

// ReadHeader reads the header of the safetensors file at path. Only the
// 8-byte length prefix and the header bytes it declares are read.
func ReadHeader(path string) (Header, error) {
	return serialization.ReadHeader(path)
}

// ReadIndex reads and validates the sharded-checkpoint index at path.
func ReadIndex(path string) (*Index, error) {
	return serialization.ReadIndex(path)
}

// WriteIndex writes a sharded-checkpoint index to path.
func WriteIndex(path string, index *Index) error {
	return serialization.WriteIndex(path, index)
}

// WriteFile writes tensors and optional metadata to a safetensors file at
// path.
func WriteFile(path string, tensors map[string]TensorData, metadata map[string]string) error {
	return serialization.WriteFile(path, tensors, metadata)
}

// WriteSharded writes one safetensors file per shard into dir plus an index
// sidecar named indexName.
func WriteSharded(dir, indexName string, shards map[string]map[string]TensorData) error {
	return serialization.WriteSharded(dir, indexName, shards)
}
