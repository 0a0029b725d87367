package loader

import "strings"

// NestedMapping maps an entity name (a parameter name with its compression
// suffix stripped) to that entity's compression parameters, keyed by suffix.
// The value type is generic: file locations on the resolution path,
// in-memory tensor values when grouping a state dict directly.
type NestedMapping[V any] map[string]map[string]V

// MergeNames joins an entity name with a compression parameter suffix into
// a full parameter name. Names produced here parse back with MatchParamName.
func MergeNames(entityName, suffix string) string {
	return entityName + "." + suffix
}

// MatchParamName extracts the entity name from a full parameter name merged
// with MergeNames. The suffix is compared literally, anchored at the end of
// the name after a "." separator; no pattern language is involved. Names
// with an empty entity prefix (a bare ".suffix") do not match.
func MatchParamName(fullName, suffix string) (string, bool) {
	tail := "." + suffix
	if !strings.HasSuffix(fullName, tail) {
		return "", false
	}
	entityName := fullName[:len(fullName)-len(tail)]
	if entityName == "" {
		return "", false
	}
	return entityName, true
}

// GroupBySuffix groups a flat parameter mapping into per-entity clusters.
//
// Every name is tried against every suffix, in order; each match inserts the
// value under (entity, suffix). A name matching several suffixes lands in
// several inner mappings — keeping suffixes mutually exclusive is the
// caller's responsibility. Names matching no suffix are dropped; use
// GroupBySuffixWithRemainder to observe them.
func GroupBySuffix[V any](flat map[string]V, suffixes []string) NestedMapping[V] {
	nested, _ := groupBySuffix(flat, suffixes, false)
	return nested
}

// GroupBySuffixWithRemainder is GroupBySuffix plus the unmatched remainder:
// a flat mapping holding exactly the input names that matched no suffix.
//
// The remainder is what makes compression passes stackable. A quantization
// pass groups by its own suffixes and hands the remainder to a sparsity
// pass, which groups by a different suffix set; whatever survives both is
// the literal uncompressed tensor set.
func GroupBySuffixWithRemainder[V any](flat map[string]V, suffixes []string) (NestedMapping[V], map[string]V) {
	return groupBySuffix(flat, suffixes, true)
}

func groupBySuffix[V any](flat map[string]V, suffixes []string, keepUnmatched bool) (NestedMapping[V], map[string]V) {
	nested := make(NestedMapping[V])
	var unmatched map[string]V
	if keepUnmatched {
		unmatched = make(map[string]V)
	}

	for name, value := range flat {
		matched := false
		for _, suffix := range suffixes {
			entityName, ok := MatchParamName(name, suffix)
			if !ok {
				continue
			}
			inner, ok := nested[entityName]
			if !ok {
				inner = make(map[string]V)
				nested[entityName] = inner
			}
			inner[suffix] = value
			matched = true
		}
		if keepUnmatched && !matched {
			unmatched[name] = value
		}
	}

	return nested, unmatched
}

// ResolveNestedWeightLocations resolves the checkpoint at path and groups
// the resulting locations by the given suffixes. Unmatched names are
// dropped.
func ResolveNestedWeightLocations(path string, suffixes []string) (NestedMapping[string], error) {
	mapping, err := ResolveWeightLocations(path)
	if err != nil {
		return nil, err
	}
	return GroupBySuffix(map[string]string(mapping), suffixes), nil
}

// ResolveNestedWeightLocationsWithRemainder resolves the checkpoint at path
// and groups the resulting locations by the given suffixes, returning the
// unmatched names alongside.
func ResolveNestedWeightLocationsWithRemainder(path string, suffixes []string) (NestedMapping[string], WeightMapping, error) {
	mapping, err := ResolveWeightLocations(path)
	if err != nil {
		return nil, nil, err
	}
	nested, unmatched := GroupBySuffixWithRemainder(map[string]string(mapping), suffixes)
	return nested, WeightMapping(unmatched), nil
}
