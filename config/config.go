// Package config provides configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/artpar/gymprice/domain/membership"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "gymprice.yaml"

// Config is the root configuration structure.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Pricing PricingConfig `yaml:"pricing"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CatalogConfig overrides the built-in catalog. Each list is optional and
// replaces its built-in table independently.
type CatalogConfig struct {
	Plans            []PlanConfig    `yaml:"plans,omitempty"`
	OrdinaryFeatures []FeatureConfig `yaml:"ordinary_features,omitempty"`
	PremiumFeatures  []FeatureConfig `yaml:"premium_features,omitempty"`
}

// IsEmpty reports whether no table is overridden.
func (c CatalogConfig) IsEmpty() bool {
	return len(c.Plans) == 0 && len(c.OrdinaryFeatures) == 0 && len(c.PremiumFeatures) == 0
}

// PlanConfig configures a membership plan.
type PlanConfig struct {
	Name      string  `yaml:"name"`
	Benefits  string  `yaml:"benefits"`
	Cost      float64 `yaml:"cost"`
	Available *bool   `yaml:"available,omitempty"` // nil = available
}

// FeatureConfig configures an add-on feature.
type FeatureConfig struct {
	Name      string  `yaml:"name"`
	Price     float64 `yaml:"price"`
	Available *bool   `yaml:"available,omitempty"` // nil = available
}

// PricingConfig configures pricing behaviour.
type PricingConfig struct {
	UnknownNames membership.UnknownNamePolicy `yaml:"unknown_names"` // "treat_as_zero" or "reject"
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`  // Collect quote metrics
	Textfile string `yaml:"textfile"` // Write metrics here after each command (optional)
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes, then applies environment
// overrides and defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(&cfg)
}

// LoadOptional loads path when it exists and falls back to environment
// variables and defaults when it does not. The bool reports whether a file
// was read.
func LoadOptional(path string) (*Config, bool, error) {
	if path != "" {
		cfg, err := Load(path)
		if err == nil {
			return cfg, true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, false, err
		}
	}

	cfg, err := LoadFromEnv()
	return cfg, false, err
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	GYMPRICE_LOG_LEVEL         - Log level: debug, info, warn, error (default: info)
//	GYMPRICE_LOG_FORMAT        - Log format: json or console (default: console)
//	GYMPRICE_UNKNOWN_NAMES     - Unknown name policy: treat_as_zero or reject (default: treat_as_zero)
//	GYMPRICE_METRICS_ENABLED   - Collect quote metrics (default: false)
//	GYMPRICE_METRICS_TEXTFILE  - Write metrics to this file
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies GYMPRICE_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMPRICE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GYMPRICE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("GYMPRICE_UNKNOWN_NAMES"); v != "" {
		cfg.Pricing.UnknownNames = membership.UnknownNamePolicy(v)
	}
	if v := os.Getenv("GYMPRICE_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("GYMPRICE_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Pricing.UnknownNames == "" {
		cfg.Pricing.UnknownNames = membership.PolicyTreatAsZero
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Textfile != "" {
		cfg.Metrics.Enabled = true
	}
}

func validate(cfg *Config) error {
	if !cfg.Pricing.UnknownNames.Valid() {
		return fmt.Errorf("pricing.unknown_names must be 'treat_as_zero' or 'reject', got %q", cfg.Pricing.UnknownNames)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	for i, p := range cfg.Catalog.Plans {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("catalog.plans[%d].name is required", i)
		}
	}
	for i, f := range cfg.Catalog.OrdinaryFeatures {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("catalog.ordinary_features[%d].name is required", i)
		}
	}
	for i, f := range cfg.Catalog.PremiumFeatures {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("catalog.premium_features[%d].name is required", i)
		}
	}

	return nil
}
