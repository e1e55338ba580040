// Package config loads diagctl's optional YAML config file, per
// SPEC_FULL.md's ambient config section.
//
// Modelled on the teacher's pack companion moolen-spectre's
// internal/config/watcher_config.go: a plain struct with yaml tags,
// loaded with os.ReadFile + yaml.Unmarshal, validated once after load.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is diagctl's on-disk configuration, normally named
// .diagctl.yaml.
type Config struct {
	// MaxCyclesReported bounds how many cycle reports render's
	// CycleReport output includes when printing a full report; 0 means
	// unbounded.
	MaxCyclesReported int `yaml:"max_cycles_reported"`
	// Color enables lipgloss styling in terminal output.
	Color bool `yaml:"color"`
	// ShowCycleGraphs prints every examined cycle's refinement trace.
	// When false, no refinement trace is printed; the verdict banner
	// still names the witness cycle.
	ShowCycleGraphs bool `yaml:"show_cycle_graphs"`
}

// Default is used when no config file is given.
func Default() Config {
	return Config{MaxCyclesReported: 0, Color: true, ShowCycleGraphs: false}
}

// Load reads and validates a YAML config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.MaxCyclesReported < 0 {
		return fmt.Errorf("max_cycles_reported must not be negative")
	}
	return nil
}
