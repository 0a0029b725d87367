package loader

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/weightmap/internal/serialization"
)

// VerifyShards checks that every file referenced by mapping exists and that
// its header actually declares the parameters the mapping assigns to it.
//
// Resolution trusts the index without opening shards; this is the opt-in
// stricter check for callers that want duplicate or missing parameters
// surfaced before any tensor read. Each shard's header is read in its own
// goroutine; the first failure cancels the rest.
func VerifyShards(ctx context.Context, mapping WeightMapping) error {
	byFile := make(map[string][]string)
	for name, location := range mapping {
		byFile[location] = append(byFile[location], name)
	}

	g, ctx := errgroup.WithContext(ctx)
	for location, names := range byFile {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			header, err := serialization.ReadHeader(location)
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, ok := header[name]; !ok {
					return fmt.Errorf("parameter %q not declared by shard %s", name, location)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
