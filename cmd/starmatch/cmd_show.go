package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starlab-dev/starmatch/internal/store"
)

func newShowPopulationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-population",
		Short: "Display the population database summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			schema, err := cfg.Schema()
			if err != nil {
				return fmt.Errorf("invalid dimension configuration: %w", err)
			}

			db, err := store.Open(cfg.PopulationDatabase)
			if err != nil {
				return err
			}
			defer db.Close()

			pop := store.NewPopulation(db, cfg.PopulationTable, schema)
			ctx := cmd.Context()

			count, err := pop.Count(ctx)
			if err != nil {
				return err
			}
			columns, err := pop.Columns(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Population: %s (table %s)\n", cfg.PopulationDatabase, cfg.PopulationTable)
			fmt.Printf("Members: %d\n", count)
			fmt.Printf("Columns: %s\n", strings.Join(columns, ", "))
			return nil
		},
	}
}

func newShowCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-catalog",
		Short: "Display the detailed-run catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			schema, err := cfg.Schema()
			if err != nil {
				return fmt.Errorf("invalid dimension configuration: %w", err)
			}

			db, err := store.Open(cfg.CatalogDatabase)
			if err != nil {
				return err
			}
			defer db.Close()

			catalog := store.NewCatalog(db, cfg.CatalogTable, cfg.CatalogIDColumn, schema)
			return catalog.Show(cmd.Context(), os.Stdout)
		},
	}
}
