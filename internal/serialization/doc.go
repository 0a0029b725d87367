// Package serialization implements the safetensors binary container format
// at the metadata level.
//
// A safetensors file has three regions:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw bytes]
//
// This package reads and writes the length prefix, the JSON header, and the
// sidecar index file used by sharded checkpoints. Tensor payload bytes are
// carried as opaque []byte on the write path and are never read back on the
// read path: ReadHeader stops at byte 8+header_size.
package serialization
