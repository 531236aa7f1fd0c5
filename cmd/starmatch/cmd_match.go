package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starlab-dev/starmatch/internal/grid"
	"github.com/starlab-dev/starmatch/internal/logging"
	"github.com/starlab-dev/starmatch/internal/match"
	"github.com/starlab-dev/starmatch/internal/store"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run the matchmaking pass and write the weighted result table",
		Long: `Match every population member against the sample grid, resolve each
selected grid point to the closest catalog run, and write the accumulated
(run, weight) table to the results database.

Example:
  starmatch match -C config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			schema, err := cfg.Schema()
			if err != nil {
				return fmt.Errorf("invalid dimension configuration: %w", err)
			}

			g, err := grid.LoadFile(schema, cfg.GridFile)
			if err != nil {
				return err
			}

			locator, err := match.NewLocator(cfg.Strategy, g)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			popDB, err := store.Open(cfg.PopulationDatabase)
			if err != nil {
				return err
			}
			defer popDB.Close()

			members, err := store.NewPopulation(popDB, cfg.PopulationTable, schema).FetchAll(ctx)
			if err != nil {
				return err
			}

			catDB, err := store.Open(cfg.CatalogDatabase)
			if err != nil {
				return err
			}
			defer catDB.Close()

			records, err := store.NewCatalog(catDB, cfg.CatalogTable, cfg.CatalogIDColumn, schema).Records(ctx)
			if err != nil {
				return err
			}

			tracer := newTracer(cfg.Logging.TraceDir, cfg.Logging.Level)
			defer tracer.Close()

			pass := &match.Pass{
				Schema:    schema,
				Locator:   locator,
				Resolver:  match.NewResolver(records),
				Logger:    logger,
				Tracer:    tracer,
				Workers:   cfg.Workers,
				OnInvalid: match.InvalidPolicy(cfg.OnInvalid),
			}

			result, stats, err := pass.Run(ctx, members)
			if err != nil {
				return err
			}

			resDB, err := store.Open(cfg.ResultsDatabase)
			if err != nil {
				return err
			}
			defer resDB.Close()

			sink := store.NewResultSink(resDB, logger)
			if err := sink.EnsureTable(ctx); err != nil {
				return err
			}
			if err := sink.Write(ctx, result); err != nil {
				return err
			}

			fmt.Printf("Matched %d members (%d skipped) onto %d catalog runs.\n",
				stats.Matched, stats.Skipped, len(result))
			return nil
		},
	}

	return cmd
}

// newTracer opens the JSONL match trace when a trace directory is configured.
// Returns nil (a valid no-op tracer) otherwise.
func newTracer(dir, level string) *logging.TraceLogger {
	if dir == "" {
		return nil
	}
	return logging.NewTraceLogger(dir, level)
}
