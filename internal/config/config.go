// Package config provides configuration loading for starmatch.
// All inputs are named explicitly in the YAML file; there are no built-in
// filesystem locations.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starlab-dev/starmatch/internal/dimension"
)

// Config contains all starmatch configuration settings.
type Config struct {
	// PopulationDatabase is the SQLite database holding the simulated
	// population to match.
	PopulationDatabase string `yaml:"population_database"`

	// PopulationTable is the table within PopulationDatabase.
	PopulationTable string `yaml:"population_table"`

	// CatalogDatabase is the SQLite database holding the detailed-run catalog.
	CatalogDatabase string `yaml:"catalog_database"`

	// CatalogTable is the table within CatalogDatabase.
	CatalogTable string `yaml:"catalog_table"`

	// CatalogIDColumn is the column holding the unique run identifier.
	CatalogIDColumn string `yaml:"catalog_id_column"`

	// GridFile is the YAML grid definition: one ordered sample sequence per
	// matched dimension, in physical units.
	GridFile string `yaml:"grid_file"`

	// ResultsDatabase is the SQLite database the weighted result table is
	// written to. Created if absent.
	ResultsDatabase string `yaml:"results_database"`

	// Strategy selects the neighbor locator: "weighted" (default) or "nearest".
	Strategy string `yaml:"strategy"`

	// Workers is the number of parallel matching workers. 0 means one per CPU.
	Workers int `yaml:"workers"`

	// OnInvalid selects the policy for members that fail the log transform:
	// "skip" (default) or "abort".
	OnInvalid string `yaml:"on_invalid"`

	// Logging configures operational and trace logging.
	Logging LoggingConfig `yaml:"logging"`

	// Dimensions is the ordered list of matched axes.
	Dimensions []DimensionConfig `yaml:"dimensions"`
}

// LoggingConfig configures starmatch's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `yaml:"level"`

	// TraceDir, when set together with level "debug" or "trace", receives a
	// JSONL trace of per-member match decisions.
	TraceDir string `yaml:"trace_dir"`
}

// DimensionConfig declares one matched axis.
type DimensionConfig struct {
	Name          string `yaml:"name"`
	Column        string `yaml:"column"`
	CatalogColumn string `yaml:"catalog_column"`
	Log           bool   `yaml:"log"`
}

// Default returns a Config with the standard axis set and sensible defaults.
// File paths have no defaults and must come from the config file.
func Default() *Config {
	return &Config{
		PopulationTable: "population",
		CatalogTable:    "runs",
		CatalogIDColumn: "run_name",
		Strategy:        "weighted",
		OnInvalid:       "skip",
		Logging: LoggingConfig{
			Level: "info",
		},
		Dimensions: []DimensionConfig{
			{Name: "m1", Column: "companion_mass", CatalogColumn: "m1i", Log: true},
			{Name: "m2", Column: "remnant_mass", CatalogColumn: "m2i", Log: true},
			{Name: "porb", Column: "porb_pm", CatalogColumn: "porbi", Log: true},
			{Name: "ecc", Column: "e_pm", CatalogColumn: "ei", Log: false},
		},
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	required := map[string]string{
		"population_database": c.PopulationDatabase,
		"catalog_database":    c.CatalogDatabase,
		"grid_file":           c.GridFile,
		"results_database":    c.ResultsDatabase,
		"population_table":    c.PopulationTable,
		"catalog_table":       c.CatalogTable,
		"catalog_id_column":   c.CatalogIDColumn,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}

	validStrategies := map[string]bool{"": true, "weighted": true, "nearest": true}
	if !validStrategies[c.Strategy] {
		return fmt.Errorf("invalid strategy: %s (valid: weighted, nearest, or empty for default)", c.Strategy)
	}

	validPolicies := map[string]bool{"skip": true, "abort": true}
	if !validPolicies[c.OnInvalid] {
		return fmt.Errorf("invalid on_invalid policy: %s (valid: skip, abort)", c.OnInvalid)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}

	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if len(c.Dimensions) == 0 {
		return fmt.Errorf("at least one dimension must be declared")
	}

	return nil
}

// Schema builds the dimension schema declared by the configuration.
func (c *Config) Schema() (*dimension.Schema, error) {
	axes := make([]dimension.Axis, len(c.Dimensions))
	for i, d := range c.Dimensions {
		axes[i] = dimension.Axis{
			Name:          d.Name,
			Column:        d.Column,
			CatalogColumn: d.CatalogColumn,
			Log:           d.Log,
		}
	}
	return dimension.NewSchema(axes)
}
