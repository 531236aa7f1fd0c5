package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/starlab-dev/starmatch/internal/config"
	"github.com/starlab-dev/starmatch/internal/logging"
)

// loadConfig reads the configuration named by the global -C flag and applies
// the --debug override. Every data-bearing subcommand starts here: without a
// config file there is nothing to work on.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config-file")
	if path == "" {
		return nil, nil, fmt.Errorf("configuration file flag -C/--config-file cannot be empty")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("no such file found: %s", path)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug && logging.ParseLevel(cfg.Logging.Level) > slog.LevelDebug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	return cfg, logger, nil
}
