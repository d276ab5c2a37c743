// Package config loads tokpatch configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Matching struct {
		// Floating enables the whitespace-normalized fallback when strict
		// matching finds nothing. nil means enabled.
		Floating *bool `yaml:"floating"`
	} `yaml:"matching"`

	Output struct {
		Versioned bool   `yaml:"versioned"` // write name_vN.M.ext next to the input
		Suffix    string `yaml:"suffix"`    // fixed suffix; empty means auto-compute
	} `yaml:"output"`

	Report struct {
		Color *bool `yaml:"color"` // nil means enabled
		Diff  bool  `yaml:"diff"`  // include a unified diff in the report
	} `yaml:"report"`

	Log struct {
		Path string `yaml:"path"` // empty disables logging
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load reads a YAML config from path. A missing file is not an error: the
// defaults are returned so the tool works with zero setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FloatingEnabled reports whether floating matching is on (default true).
func (c *Config) FloatingEnabled() bool {
	return c.Matching.Floating == nil || *c.Matching.Floating
}

// ColorEnabled reports whether report coloring is on (default true).
func (c *Config) ColorEnabled() bool {
	return c.Report.Color == nil || *c.Report.Color
}
