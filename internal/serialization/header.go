package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Header is the decoded JSON header of a safetensors file: a mapping from
// entry name to its raw JSON metadata. Entries are kept undecoded because
// most callers only need the names; use Info to decode a single entry.
type Header map[string]json.RawMessage

// ReadHeader reads the header of the safetensors file at path.
//
// Exactly the 8-byte length prefix and the header bytes it declares are
// read; the tensor data region is never touched. The file is opened and
// closed within the call.
func ReadHeader(path string) (Header, error) {
	//nolint:gosec // G304: checkpoint paths come from the caller by design
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file: %w", err)
	}
	defer func() {
		_ = file.Close() // read-only handle, nothing to report
	}()

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("%w: %s: reading length prefix: %v", ErrMalformedHeader, path, err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %s: declared header size %d exceeds %d", ErrMalformedHeader, path, headerSize, MaxHeaderSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, fmt.Errorf("%w: %s: reading %d header bytes: %v", ErrMalformedHeader, path, headerSize, err)
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("%w: %s: decoding header JSON: %v", ErrMalformedHeader, path, err)
	}

	return header, nil
}

// ParamNames returns the tensor names declared by the header, sorted,
// with the reserved MetadataKey excluded.
func (h Header) ParamNames() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		if name == MetadataKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metadata decodes the reserved MetadataKey entry. Returns nil when the
// header carries no metadata.
func (h Header) Metadata() (map[string]string, error) {
	raw, ok := h[MetadataKey]
	if !ok {
		return nil, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("%w: decoding %s entry: %v", ErrMalformedHeader, MetadataKey, err)
	}
	return metadata, nil
}

// Info decodes the TensorInfo entry for the named tensor.
func (h Header) Info(name string) (TensorInfo, error) {
	raw, ok := h[name]
	if !ok {
		return TensorInfo{}, fmt.Errorf("tensor %s not found in header", name)
	}
	var info TensorInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return TensorInfo{}, fmt.Errorf("%w: decoding entry for tensor %s: %v", ErrMalformedHeader, name, err)
	}
	return info, nil
}
