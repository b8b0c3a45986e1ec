package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
)

//go:embed default-scenario.yaml
var defaultScenarioYAML []byte

// DefaultProjection returns the built-in default scenario config.
func DefaultProjection() (models.ProjectionConfig, error) {
	return parseProjection(defaultScenarioYAML)
}

// LoadProjectionFile reads a scenario config from a YAML file, for operator
// overrides of the embedded default.
func LoadProjectionFile(path string) (models.ProjectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ProjectionConfig{}, fmt.Errorf("reading scenario file: %w", err)
	}
	return parseProjection(data)
}

func parseProjection(data []byte) (models.ProjectionConfig, error) {
	var cfg models.ProjectionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return models.ProjectionConfig{}, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := engine.Validate(cfg); err != nil {
		return models.ProjectionConfig{}, err
	}
	return cfg, nil
}
