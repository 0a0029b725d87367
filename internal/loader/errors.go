package loader

import "errors"

// ErrCheckpointNotFound reports that the given location holds neither a
// single-shard safetensors file nor a sharded-checkpoint index.
var ErrCheckpointNotFound = errors.New("no safetensors weight or index file found")
