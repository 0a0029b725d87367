package serialization

import "errors"

// Common errors.
var (
	ErrMalformedHeader = errors.New("malformed safetensors header")
	ErrMalformedIndex  = errors.New("malformed safetensors index")
)
