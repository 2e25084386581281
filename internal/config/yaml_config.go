package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"keywatch/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Seed data is easier to manage in YAML than env vars.
type YAMLConfig struct {
	Seed []models.KeywordInput `yaml:"seed"`
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SeedKeywords returns the configured seed keywords, or nil for a nil config.
func (c *YAMLConfig) SeedKeywords() []models.KeywordInput {
	if c == nil {
		return nil
	}
	return c.Seed
}
