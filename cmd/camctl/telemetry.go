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
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/AleutianAI/camctl/cmd/camctl/config"
	"github.com/AleutianAI/camctl/services/camctl/registry"
)

// telemetry owns the metrics registry and tracer provider for one run.
//
// Neither is exported over the network: metrics are written once to a
// Prometheus text file on exit and spans stream to a JSON file. Without the
// corresponding paths both are in-memory only.
type telemetry struct {
	promRegistry *prometheus.Registry
	metrics      *registry.Metrics
	metricsFile  string

	tracer    trace.Tracer
	provider  *sdktrace.TracerProvider
	traceFile *os.File
}

func newTelemetry(cfg config.TelemetryConfig) (*telemetry, error) {
	reg := prometheus.NewRegistry()
	t := &telemetry{
		promRegistry: reg,
		metrics:      registry.NewMetrics(reg),
		metricsFile:  cfg.MetricsFile,
		tracer:       noop.NewTracerProvider().Tracer("camctl/registry"),
	}

	if cfg.TraceFile == "" {
		return t, nil
	}

	f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	t.traceFile = f
	t.provider = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(t.provider)
	t.tracer = t.provider.Tracer("camctl/registry")
	return t, nil
}

// Close flushes spans and writes the metrics file.
func (t *telemetry) Close() error {
	var errs []error
	if t.provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := t.provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("trace shutdown: %w", err))
		}
		if err := t.traceFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if t.metricsFile != "" {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.promRegistry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}
