// Package loader resolves the on-disk layout of safetensors checkpoints and
// regroups their flat parameter namespace into per-entity clusters.
//
// The package answers two questions without loading tensor payloads:
//
//   - Which file holds each named parameter? ResolveWeightLocations walks
//     the three recognized layouts (single file, canonical file inside a
//     directory, sharded directory with an index) and returns a flat
//     name-to-file mapping.
//
//   - Which parameters belong to the same compressed layer?
//     GroupBySuffix folds names like "layers.0.attn.q.weight_scale" under
//     their owning entity "layers.0.attn.q" keyed by the configured suffix,
//     so a compressor can reconstruct one layer from its scattered parts.
//
// Grouping composes across independent compression passes: the remainder
// returned by GroupBySuffixWithRemainder is itself a flat mapping and can be
// fed to the next pass with a different suffix set.
package loader
