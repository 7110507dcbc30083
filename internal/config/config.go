// Package config reads the intake CLI settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-intake/pkg/submit"
)

// Config holds settings that command-line flags may override.
type Config struct {
	// FormsDir points at a directory of definitions. Empty means the bundled
	// forms.
	FormsDir     string `env:"INTAKE_FORMS_DIR"`
	OutputFormat string `env:"INTAKE_OUTPUT_FORMAT" envDefault:"json"`
	Verbose      bool   `env:"INTAKE_VERBOSE"`
	// AuthToken is attached to submissions as a hidden field when set.
	AuthToken     string `env:"INTAKE_AUTH_TOKEN"`
	AuthTokenName string `env:"INTAKE_AUTH_TOKEN_NAME" envDefault:"_token"`
}

// Load parses the environment and checks the output format.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := submit.ParseFormat(cfg.OutputFormat); err != nil {
		return Config{}, fmt.Errorf("config: INTAKE_OUTPUT_FORMAT: %w", err)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
