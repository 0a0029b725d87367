package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMatch_RoundTrip(t *testing.T) {
	cases := []struct {
		entity string
		suffix string
	}{
		{"layer", "weight_scale"},
		{"model.layers.0.self_attn.q_proj", "zero_point"},
		{"a.b", "c.d"}, // dotted suffixes are matched literally
		{"x", "weight"},
	}

	for _, tc := range cases {
		full := MergeNames(tc.entity, tc.suffix)
		entity, ok := MatchParamName(full, tc.suffix)
		require.True(t, ok, "MatchParamName(%q, %q)", full, tc.suffix)
		assert.Equal(t, tc.entity, entity)
	}
}

func TestMatchParamName_Rejections(t *testing.T) {
	// No dot separator before the suffix.
	_, ok := MatchParamName("weight", "weight")
	assert.False(t, ok)

	// Bare suffix with an empty entity prefix.
	_, ok = MatchParamName(".weight", "weight")
	assert.False(t, ok)

	// Suffix in the middle of the name.
	_, ok = MatchParamName("layer.weight.extra", "weight")
	assert.False(t, ok)

	// Suffix is matched literally, not as a pattern.
	_, ok = MatchParamName("layer.weightX", "weight.")
	assert.False(t, ok)
}

func TestGroupBySuffix_Nesting(t *testing.T) {
	flat := map[string]string{
		"layers.0.attn.weight_scale": "f1",
		"layers.0.attn.zero_point":   "f1",
		"layers.1.attn.weight_scale": "f2",
		"layers.1.attn.bias":         "f2",
	}

	nested := GroupBySuffix(flat, []string{"weight_scale", "zero_point"})

	assert.Equal(t, NestedMapping[string]{
		"layers.0.attn": {"weight_scale": "f1", "zero_point": "f1"},
		"layers.1.attn": {"weight_scale": "f2"},
	}, nested)
}

func TestGroupBySuffixWithRemainder_Partition(t *testing.T) {
	flat := map[string]int{
		"layer.weight_scale": 1,
		"layer.zero_point":   2,
		"layer.weight":       3,
		"other.bias":         4,
	}

	nested, unmatched := GroupBySuffixWithRemainder(flat, []string{"weight_scale", "zero_point"})

	// Every input lands in exactly one of the two outputs.
	total := len(unmatched)
	for _, inner := range nested {
		total += len(inner)
	}
	assert.Equal(t, len(flat), total)

	assert.Equal(t, map[string]int{"layer.weight": 3, "other.bias": 4}, unmatched)
	assert.Equal(t, map[string]int{"weight_scale": 1, "zero_point": 2}, nested["layer"])
}

func TestGroupBySuffix_StackedPasses(t *testing.T) {
	flat := map[string]string{
		"layer.weight_scale": "A",
		"layer.zero_point":   "B",
		"layer.bitmask":      "C",
		"layer.shape":        "D",
	}

	// Quantization pass.
	quantized, rest := GroupBySuffixWithRemainder(flat, []string{"weight_scale", "zero_point"})
	assert.Equal(t, NestedMapping[string]{
		"layer": {"weight_scale": "A", "zero_point": "B"},
	}, quantized)
	assert.Equal(t, map[string]string{"layer.bitmask": "C", "layer.shape": "D"}, rest)

	// Sparsity pass consumes the remainder.
	sparse, rest := GroupBySuffixWithRemainder(rest, []string{"bitmask", "shape"})
	assert.Equal(t, NestedMapping[string]{
		"layer": {"bitmask": "C", "shape": "D"},
	}, sparse)
	assert.Empty(t, rest)
}

func TestGroupBySuffix_OverlappingSuffixes(t *testing.T) {
	// A name may match several configured suffixes; every match applies.
	flat := map[string]string{"layer.weight.scale": "A"}

	nested := GroupBySuffix(flat, []string{"scale", "weight.scale"})

	assert.Equal(t, NestedMapping[string]{
		"layer.weight": {"scale": "A"},
		"layer":        {"weight.scale": "A"},
	}, nested)
}

func TestGroupBySuffix_DropsUnmatched(t *testing.T) {
	flat := map[string]string{"layer.weight": "A"}

	nested := GroupBySuffix(flat, []string{"weight_scale"})
	assert.Empty(t, nested)
}

func TestResolveNestedWeightLocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")
	writeCheckpointFile(t, path,
		"layer.weight_scale",
		"layer.zero_point",
		"layer.weight",
	)

	nested, unmatched, err := ResolveNestedWeightLocationsWithRemainder(path, []string{"weight_scale", "zero_point"})
	require.NoError(t, err)

	assert.Equal(t, NestedMapping[string]{
		"layer": {"weight_scale": path, "zero_point": path},
	}, nested)
	assert.Equal(t, WeightMapping{"layer.weight": path}, unmatched)

	dropped, err := ResolveNestedWeightLocations(path, []string{"weight_scale"})
	require.NoError(t, err)
	assert.Equal(t, NestedMapping[string]{
		"layer": {"weight_scale": path},
	}, dropped)
}
