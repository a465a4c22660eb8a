// Package config loads the optional holdem-odds HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "holdem-odds.hcl"

// MaxOpponents is the most opponents that can be dealt in on every street.
// The river is the tightest: 45 cards remain, enough for 22 hands.
const MaxOpponents = 22

// Config is the complete holdem-odds configuration
type Config struct {
	LogLevel   string             `hcl:"log_level,optional"`
	Opponents  []int              `hcl:"opponents,optional"`
	Simulation SimulationSettings `hcl:"simulation,block"`
	Display    DisplaySettings    `hcl:"display,block"`
}

// SimulationSettings controls the Monte Carlo sampler
type SimulationSettings struct {
	Trials  int   `hcl:"trials,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// DisplaySettings controls terminal rendering
type DisplaySettings struct {
	Color *bool `hcl:"color,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	color := true
	return &Config{
		LogLevel:  "info",
		Opponents: []int{7, 5, 3, 1},
		Simulation: SimulationSettings{
			Trials: 10000,
		},
		Display: DisplaySettings{Color: &color},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; settings absent from the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Blocks are optional in the file but required by gohcl, so decode
	// into a shadow struct with pointer blocks
	var raw struct {
		LogLevel   string              `hcl:"log_level,optional"`
		Opponents  []int               `hcl:"opponents,optional"`
		Simulation *SimulationSettings `hcl:"simulation,block"`
		Display    *DisplaySettings    `hcl:"display,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.LogLevel != "" {
		config.LogLevel = raw.LogLevel
	}
	if raw.Opponents != nil {
		config.Opponents = raw.Opponents
	}
	if raw.Simulation != nil {
		if raw.Simulation.Trials != 0 {
			config.Simulation.Trials = raw.Simulation.Trials
		}
		config.Simulation.Workers = raw.Simulation.Workers
		config.Simulation.Seed = raw.Simulation.Seed
	}
	if raw.Display != nil && raw.Display.Color != nil {
		config.Display.Color = raw.Display.Color
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if len(c.Opponents) == 0 {
		return fmt.Errorf("at least one opponent count must be configured")
	}
	for _, n := range c.Opponents {
		if n < 1 || n > MaxOpponents {
			return fmt.Errorf("opponents must be between 1 and %d, got %d", MaxOpponents, n)
		}
	}

	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Simulation.Workers)
	}

	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorEnabled reports whether colour output is on
func (c *Config) ColorEnabled() bool {
	return c.Display.Color == nil || *c.Display.Color
}
