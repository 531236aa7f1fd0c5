package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// starterConfig is written by `starmatch init` as a commented template.
const starterConfig = `# starmatch configuration

# SQLite database holding the simulated population (see 'starmatch import').
population_database: out/population.db
population_table: population

# SQLite database holding the detailed-run catalog.
catalog_database: out/catalog.db
catalog_table: runs
catalog_id_column: run_name

# YAML grid definition: one ordered sample sequence per matched dimension,
# in physical units. Example:
#   m1: [10, 20, 40]
#   m2: [1.0, 1.4, 2.0]
#   porb: [1, 10, 100, 1000]
#   ecc: [0.0, 0.25, 0.5, 0.75]
grid_file: grids/grid.yaml

# SQLite database the weighted result table is written to.
results_database: out/weighted.db

# Neighbor strategy: weighted (2^D-corner interpolation) or nearest.
strategy: weighted

# Parallel matching workers. 0 means one per CPU.
workers: 0

# Policy for members with non-positive values on log axes: skip or abort.
on_invalid: skip

logging:
  level: info        # info | debug | trace
  trace_dir: ""      # JSONL match traces when level is debug or trace

# Matched dimensions, in order. column is the population database column,
# catalog_column the corresponding catalog column. log marks axes compared
# in log10 space.
dimensions:
  - {name: m1, column: companion_mass, catalog_column: m1i, log: true}
  - {name: m2, column: remnant_mass, catalog_column: m2i, log: true}
  - {name: porb, column: porb_pm, catalog_column: porbi, log: true}
  - {name: ecc, column: e_pm, catalog_column: ei, log: false}
`

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "starmatch.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("refusing to overwrite existing file %s", path)
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Wrote starter configuration to %s\n", path)
			return nil
		},
	}

	return cmd
}
