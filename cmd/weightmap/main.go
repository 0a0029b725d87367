// Package main provides the weightmap checkpoint inspection CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/weightmap/loader"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

func main() {
	cmd := &cli.Command{
		Name:  "weightmap",
		Usage: "Inspect safetensors checkpoint layouts without loading tensor data",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Map every parameter of a checkpoint to its shard file",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "verify",
						Usage: "Re-read every shard header and check the mapping against it",
					},
				},
				Action: runInspect,
			},
			{
				Name:      "group",
				Usage:     "Group parameter locations by compression suffix",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "suffix",
						Aliases:  []string{"s"},
						Usage:    "Compression parameter suffix to group by (repeatable)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "unmatched",
						Usage: "Also report parameters that matched no suffix",
					},
				},
				Action: runGroup,
			},
			{
				Name:      "quant",
				Usage:     "List quantization parameter locations",
				ArgsUsage: "<path>",
				Action:    runQuant,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func checkpointPath(cmd *cli.Command) (string, error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	path := cmd.Args().First()
	if path == "" {
		return "", fmt.Errorf("missing required argument: <path>")
	}
	return path, nil
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	path, err := checkpointPath(cmd)
	if err != nil {
		return err
	}

	mapping, err := loader.ResolveWeightLocations(path)
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("parameters", len(mapping)).Msg("resolved weight locations")

	if cmd.Bool("verify") {
		if err := loader.VerifyShards(ctx, mapping); err != nil {
			return fmt.Errorf("shard verification failed: %w", err)
		}
		log.Info().Msg("all shards verified")
	}

	return printJSON(mapping)
}

func runGroup(ctx context.Context, cmd *cli.Command) error {
	path, err := checkpointPath(cmd)
	if err != nil {
		return err
	}
	suffixes := cmd.StringSlice("suffix")

	if cmd.Bool("unmatched") {
		nested, unmatched, err := loader.ResolveNestedWeightLocationsWithRemainder(path, suffixes)
		if err != nil {
			return err
		}
		log.Debug().Int("entities", len(nested)).Int("unmatched", len(unmatched)).Msg("grouped parameters")
		return printJSON(map[string]any{
			"nested":    nested,
			"unmatched": unmatched,
		})
	}

	nested, err := loader.ResolveNestedWeightLocations(path, suffixes)
	if err != nil {
		return err
	}
	log.Debug().Int("entities", len(nested)).Msg("grouped parameters")
	return printJSON(nested)
}

func runQuant(ctx context.Context, cmd *cli.Command) error {
	path, err := checkpointPath(cmd)
	if err != nil {
		return err
	}

	mapping, err := loader.QuantizationParamLocations(path)
	if err != nil {
		return err
	}
	log.Debug().Int("parameters", len(mapping)).Msg("filtered quantization parameters")
	return printJSON(mapping)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
