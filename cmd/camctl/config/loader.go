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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CAMCTL_MONITOR_TICK.
const EnvPrefix = "CAMCTL"

var validate = validator.New()

// DefaultPath returns ~/.camctl/camctl.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".camctl", "camctl.yaml"), nil
}

// Load resolves the configuration.
//
// # Description
//
// Defaults come from DefaultConfig. When path is empty the default path is
// read if it exists; a missing default file is not an error and is never
// created. An explicit path must exist. Flags bound on v beforehand with
// BindPFlag override everything else.
//
// # Inputs
//
//   - v: The viper instance, possibly with flags bound. Nil creates one.
//   - path: Explicit config file, or "" for the default location.
//
// # Outputs
//
//   - CamctlConfig: The validated configuration.
//   - error: Unreadable file, undecodable values, or failed validation.
func Load(v *viper.Viper, path string) (CamctlConfig, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if def, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(def); statErr == nil {
				path = def
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return CamctlConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg CamctlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return CamctlConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return CamctlConfig{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func Validate(cfg CamctlConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("devices.paths", d.Devices.Paths)
	v.SetDefault("devices.glob", d.Devices.Glob)
	v.SetDefault("devices.simulate", d.Devices.Simulate)
	v.SetDefault("devices.sim_count", d.Devices.SimCount)
	v.SetDefault("devices.sim_drift", d.Devices.SimDrift)
	v.SetDefault("monitor.tick", d.Monitor.Tick)
	v.SetDefault("monitor.warn_interval", d.Monitor.WarnInterval)
	v.SetDefault("monitor.output", d.Monitor.Output)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.json", d.Logging.JSON)
	v.SetDefault("telemetry.metrics_file", d.Telemetry.MetricsFile)
	v.SetDefault("telemetry.trace_file", d.Telemetry.TraceFile)
}

// WriteDefault writes DefaultConfig as YAML to path. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, fs.ErrExist)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
