// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the AlgoViz CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates the file parsed but failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// DefaultPath returns ~/.algoviz/algoviz.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".algoviz", "algoviz.yaml"), nil
}

// Load reads the configuration.
//
// # Description
//
// With an empty path the default location is used and created with
// DefaultConfig on first run. An explicit path must exist. Fields missing
// from the file keep their default values.
//
// # Outputs
//
//   - *Config: The validated configuration.
//   - error: Read or parse failure, or a wrapped ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := createDefault(path); err != nil {
				return nil, err
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and cross-field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Server.RequestsPerSecond > 0 && cfg.Server.Burst == 0 {
		return fmt.Errorf("%w: server.burst must be positive when requests_per_second is set", ErrInvalidConfig)
	}
	if cfg.Telemetry.TraceExporter == "otlp" && cfg.Telemetry.OTLPEndpoint == "" {
		return fmt.Errorf("%w: telemetry.otlp_endpoint is required for the otlp exporter", ErrInvalidConfig)
	}
	return nil
}

func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
