// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/AleutianAI/camctl/cmd/camctl/config"
	"github.com/AleutianAI/camctl/pkg/logging"
	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/device"
	"github.com/AleutianAI/camctl/services/camctl/monitor"
	"github.com/AleutianAI/camctl/services/camctl/registry"
	"github.com/AleutianAI/camctl/services/camctl/sim"
	"github.com/AleutianAI/camctl/services/camctl/v4l2"
)

// app holds everything one command invocation needs.
type app struct {
	cfg       config.CamctlConfig
	logger    *logging.Logger
	telemetry *telemetry
	out       *ux.Printer
}

// newApp loads configuration and builds the logger and telemetry.
//
// # Inputs
//
//   - v: Viper instance with the command's flags bound.
//   - configPath: Value of --config.
//   - stdout: Where list and watch print.
//   - interactive: True for the TUI, which owns the terminal; stderr
//     logging is disabled so log lines do not corrupt the screen.
func newApp(v *viper.Viper, configPath string, stdout io.Writer, interactive bool) (*app, error) {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "camctl",
		JSON:    cfg.Logging.JSON,
		Quiet:   interactive,
	}).With("session_id", uuid.NewString())

	tel, err := newTelemetry(cfg.Telemetry)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	mode := ux.ParseMode(cfg.Monitor.Output)
	return &app{
		cfg:       cfg,
		logger:    logger,
		telemetry: tel,
		out:       ux.NewPrinter(stdout, mode),
	}, nil
}

// transport returns the simulated or V4L2 transport.
func (a *app) transport() device.Transport {
	if a.cfg.Devices.Simulate {
		return sim.New(&sim.Options{
			Devices: a.cfg.Devices.SimCount,
			Drift:   a.cfg.Devices.SimDrift,
		})
	}
	return v4l2.New(&v4l2.Options{
		Devices: a.cfg.Devices.Paths,
		Glob:    a.cfg.Devices.Glob,
		Logger:  a.logger,
	})
}

// discover builds the registry.
func (a *app) discover(ctx context.Context) (*registry.Registry, error) {
	reg, err := registry.Discover(ctx, a.transport(), &registry.Options{
		Logger:       a.logger,
		Metrics:      a.telemetry.metrics,
		Tracer:       a.telemetry.tracer,
		WarnInterval: a.cfg.Monitor.WarnInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	a.logger.Info("discovery complete", "devices", reg.Len())
	return reg, nil
}

func (a *app) session(reg *registry.Registry) *monitor.Session {
	return monitor.NewSession(reg, &monitor.SessionOptions{
		Period: a.cfg.Monitor.Tick,
		Logger: a.logger,
	})
}

// Close flushes telemetry and closes the log file.
func (a *app) Close() error {
	return errors.Join(a.telemetry.Close(), a.logger.Close())
}
