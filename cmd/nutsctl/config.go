package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PatternConfig is one named, prioritized pattern entry in a classify
// config file.
type PatternConfig struct {
	Label    string `yaml:"label"`
	Pattern  string `yaml:"pattern"`
	Priority int    `yaml:"priority"`
}

// Config is the on-disk shape of a classify config file: a flat list of
// labeled patterns handed to nuts.Build to form one PatternSet.
type Config struct {
	Patterns []PatternConfig `yaml:"patterns"`
}

// LoadConfig reads and parses a YAML config file from path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("config %q defines no patterns", path)
	}
	return &cfg, nil
}
