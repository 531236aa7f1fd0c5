package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "starmatch",
		Short: "Match a synthetic binary population to a grid of detailed runs",
		Long: `starmatch matches every member of a simulated binary-star population
against a fixed grid of detailed stellar evolution simulations.

Each member is located on the grid (nearest point or weighted 2^D-corner
interpolation), every selected grid point is resolved to the closest real
catalog run, and the run weights accumulated over the whole population are
written to a results database.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newMatchCmd(),
		newImportCmd(),
		newShowPopulationCmd(),
		newShowCatalogCmd(),
	)

	// A signal during a matchmaking pass cancels the run before anything is
	// written to the results database.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("starmatch version %s\n", version)
		},
	}
}
