package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// TensorData is a named raw tensor payload destined for a safetensors file.
// The payload is opaque: this package records its dtype string and shape in
// the header verbatim and writes the bytes as-is.
type TensorData struct {
	DType string
	Shape []int64
	Data  []byte
}

// Writer writes safetensors files.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a safetensors file writer at path.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: checkpoint paths come from the caller by design
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &Writer{file: file}, nil
}

// WriteFile writes tensors and optional metadata to a safetensors file
// at path. Tensors are written in alphabetical order by name.
func WriteFile(path string, tensors map[string]TensorData, metadata map[string]string) error {
	writer, err := NewWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = writer.Close() // best effort close
	}()

	return writer.WriteStateDict(tensors, metadata)
}

// WriteStateDict writes a state dictionary to the file.
//
// Names are sorted alphabetically and data offsets are computed from the
// payload lengths, so the resulting header parses back with ReadHeader.
func (w *Writer) WriteStateDict(stateDict map[string]TensorData, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	tensorNames := make([]string, 0, len(stateDict))
	for name := range stateDict {
		tensorNames = append(tensorNames, name)
	}
	sort.Strings(tensorNames)

	header := make(map[string]interface{}, len(stateDict)+1)
	if len(metadata) > 0 {
		header[MetadataKey] = metadata
	}

	var currentOffset int64
	for _, name := range tensorNames {
		td := stateDict[name]
		size := int64(len(td.Data))
		header[name] = TensorInfo{
			DType:       td.DType,
			Shape:       td.Shape,
			DataOffsets: [2]int64{currentOffset, currentOffset + size},
		}
		currentOffset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	headerSize := uint64(len(headerJSON))
	if err := binary.Write(w.file, binary.LittleEndian, headerSize); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, name := range tensorNames {
		if _, err := w.file.Write(stateDict[name].Data); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}

	return nil
}

// Close closes the writer and the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteSharded writes a sharded checkpoint into dir: one safetensors file
// per entry of shards (keyed by relative file name) plus an index sidecar
// named indexName whose weight_map points every tensor at its shard.
func WriteSharded(dir, indexName string, shards map[string]map[string]TensorData) error {
	index := &Index{
		Metadata:  map[string]int64{},
		WeightMap: make(map[string]string),
	}

	var totalSize int64
	shardNames := make([]string, 0, len(shards))
	for name := range shards {
		shardNames = append(shardNames, name)
	}
	sort.Strings(shardNames)

	for _, shardName := range shardNames {
		tensors := shards[shardName]
		if err := WriteFile(filepath.Join(dir, shardName), tensors, nil); err != nil {
			return err
		}
		for tensorName, td := range tensors {
			index.WeightMap[tensorName] = shardName
			totalSize += int64(len(td.Data))
		}
	}
	index.Metadata["total_size"] = totalSize

	return WriteIndex(filepath.Join(dir, indexName), index)
}
