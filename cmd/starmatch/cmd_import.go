package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starlab-dev/starmatch/internal/store"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <population-file>",
		Short: "Import a COMPAS summary file into the population database",
		Long: `Parse a whitespace-delimited COMPAS summary file and load it into the
population database named by the configuration, replacing any previous
population table. Raw COMPAS column headers are renamed to the short
column names the matcher reads.

Example:
  starmatch import -C config.yaml compas_output.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.PopulationDatabase)
			if err != nil {
				return err
			}
			defer db.Close()

			count, err := store.ImportPopulationFile(cmd.Context(), db, cfg.PopulationTable, args[0])
			if err != nil {
				return err
			}

			logger.Info("population imported", "file", args[0], "members", count)
			fmt.Printf("Imported %d members into %s.\n", count, cfg.PopulationDatabase)
			return nil
		},
	}

	return cmd
}
