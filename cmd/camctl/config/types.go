// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads camctl settings from defaults, an optional YAML file,
// CAMCTL_ environment variables and command line flags, in increasing order
// of precedence.
package config

import (
	"time"
)

type CamctlConfig struct {
	// Devices: which capture devices to drive
	Devices DevicesConfig `yaml:"devices" mapstructure:"devices"`

	// Monitor: loop timing and output style
	Monitor MonitorConfig `yaml:"monitor" mapstructure:"monitor"`

	// Logging: structured log destinations
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Telemetry: optional metrics and trace dumps
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

type DevicesConfig struct {
	// Paths lists device nodes to use instead of Glob, e.g. ["/dev/video0"].
	Paths []string `yaml:"paths,omitempty" mapstructure:"paths" validate:"dive,required"`

	Glob string `yaml:"glob" mapstructure:"glob" validate:"required"`

	// Simulate replaces real hardware with SimCount simulated cameras.
	Simulate bool `yaml:"simulate" mapstructure:"simulate"`
	SimCount int  `yaml:"sim_count" mapstructure:"sim_count" validate:"gte=1,lte=16"`
	SimDrift bool `yaml:"sim_drift" mapstructure:"sim_drift"`
}

type MonitorConfig struct {
	// Tick is the resync period.
	Tick time.Duration `yaml:"tick" mapstructure:"tick" validate:"gte=1ms,lte=1m"`

	// WarnInterval limits repeated resync warnings per control.
	WarnInterval time.Duration `yaml:"warn_interval" mapstructure:"warn_interval" validate:"gte=0"`

	// Output is the list/watch style: auto, rich or plain.
	Output string `yaml:"output" mapstructure:"output" validate:"oneof=auto rich plain"`
}

type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Dir   string `yaml:"dir,omitempty" mapstructure:"dir"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

type TelemetryConfig struct {
	MetricsFile string `yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
	TraceFile   string `yaml:"trace_file,omitempty" mapstructure:"trace_file"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() CamctlConfig {
	return CamctlConfig{
		Devices: DevicesConfig{
			Glob:     "/dev/video*",
			SimCount: 2,
		},
		Monitor: MonitorConfig{
			Tick:         30 * time.Millisecond,
			WarnInterval: 30 * time.Second,
			Output:       "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
