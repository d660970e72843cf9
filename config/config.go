// Package config loads the compile configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one compilation run: the documents to read and where
// to write the knowledge base.
type Config struct {
	Inputs []string `yaml:"inputs"`
	Output string   `yaml:"output"`
}

// Load reads a compile configuration from a YAML file.
func Load(filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
