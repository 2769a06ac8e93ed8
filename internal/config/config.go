// Package config loads and validates the analyzer's run configuration
// (ambient stack: gopkg.in/yaml.v3 + go-playground/validator/v10,
// grounded on the teacher's own config-loading convention).
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AnalyzerConfig is the optional run configuration a caller may supply
// alongside the positional CLI arguments (spec §6).
type AnalyzerConfig struct {
	NestedSelectorPrefix string `yaml:"nestedSelectorPrefix" validate:"omitempty,min=1"`
	MaxFileSizeBytes     int64  `yaml:"maxFileSizeBytes" validate:"omitempty,gt=0"`
	TruncateLength       int    `yaml:"truncateLength" validate:"omitempty,gt=0"`
	Debug                bool   `yaml:"debug"`
}

// Default returns the zero-friction configuration (spec §4.1/§4.5
// defaults).
func Default() AnalyzerConfig {
	return AnalyzerConfig{
		NestedSelectorPrefix: "app-",
		MaxFileSizeBytes:     5 * 1024 * 1024,
		TruncateLength:       200,
	}
}

var validate = validator.New()

// Load reads and validates an AnalyzerConfig from path. A missing path
// is not an error: Default() is returned unchanged (spec's config layer
// is wholly optional).
func Load(path string) (AnalyzerConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
