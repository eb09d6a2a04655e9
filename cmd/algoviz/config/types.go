// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"time"

	"github.com/AleutianAI/AlgoViz/services/visualizer/telemetry"
)

// Config is the contents of algoviz.yaml.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Limits    LimitsConfig     `yaml:"limits"`
	Logging   LoggingConfig    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ServerConfig configures `algoviz serve`.
type ServerConfig struct {
	// Port is the HTTP listen port.
	Port int `yaml:"port" validate:"min=1,max=65535"`

	// Debug switches gin to debug mode.
	Debug bool `yaml:"debug"`

	// RequestsPerSecond bounds the /v1 API. Zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`

	// Burst is the token bucket size. Must be positive when limiting.
	Burst int `yaml:"burst" validate:"gte=0"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// LimitsConfig bounds the work a single request or session can cause.
type LimitsConfig struct {
	MaxValues    int           `yaml:"max_values" validate:"min=1,max=1000"`
	MaxTextBytes int           `yaml:"max_text_bytes" validate:"min=1,max=1048576"`
	MaxSessions  int           `yaml:"max_sessions" validate:"gte=0"`
	SessionTTL   time.Duration `yaml:"session_ttl" validate:"gte=0"`
}

// LoggingConfig configures pkg/logging.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	JSON  bool   `yaml:"json"`
	Dir   string `yaml:"dir"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:              8080,
			RequestsPerSecond: 50,
			Burst:             100,
			ShutdownTimeout:   10 * time.Second,
		},
		Limits: LimitsConfig{
			MaxValues:    100,
			MaxTextBytes: 4096,
			MaxSessions:  1000,
			SessionTTL:   30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}
