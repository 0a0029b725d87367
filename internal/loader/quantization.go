package loader

import "strings"

// Raw name endings that identify quantization parameters. These are matched
// against the whole name, not through the dot-separated entity/suffix
// convention: "g_idx" matches "layer.weight_g_idx" as well as "layer.g_idx".
var quantizationSuffixes = []string{"_scale", "zero_point", "g_idx"}

// IsQuantizationParam reports whether the parameter name belongs to the
// known family of quantization parameters (scales, zero points, group
// index mappings).
func IsQuantizationParam(name string) bool {
	for _, suffix := range quantizationSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// QuantizationParamLocations resolves the checkpoint at path and keeps only
// the quantization parameters.
func QuantizationParamLocations(path string) (WeightMapping, error) {
	mapping, err := ResolveWeightLocations(path)
	if err != nil {
		return nil, err
	}

	quantization := make(WeightMapping)
	for name, location := range mapping {
		if IsQuantizationParam(name) {
			quantization[name] = location
		}
	}
	return quantization, nil
}
