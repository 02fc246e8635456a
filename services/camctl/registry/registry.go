// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package registry holds the in-memory state of every discovered device and
// the protocol that keeps it in step with the hardware.
//
// # Description
//
// A Registry owns an ordered list of Bindings (one per device), which own
// their control Descriptors. It tracks which device and which control have
// focus, commits adjustments only after the device accepted the write, and
// overwrites values on resync so out-of-band changes win.
//
// Device I/O errors never escape as failures of the session: they are
// logged, counted and turned into "no state change".
//
// # Thread Safety
//
// Not safe for concurrent use. The monitor loop is the only owner and
// mutates the registry from a single goroutine, so there are no locks.
package registry

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/camctl/pkg/logging"
	"github.com/AleutianAI/camctl/services/camctl/device"
)

// Options configures a Registry. A nil *Options uses defaults.
type Options struct {
	// Logger receives swallowed device errors. Default: logging.Nop().
	Logger *logging.Logger

	// Metrics receives counters. Default: unregistered instruments.
	Metrics *Metrics

	// Tracer creates spans around discovery, adjustment and resync.
	// Default: the global otel tracer "camctl/registry".
	Tracer trace.Tracer

	// WarnInterval limits repeated resync warnings per device and control.
	// Default: 30s.
	WarnInterval time.Duration
}

// DefaultOptions returns the defaults applied for a nil *Options.
func DefaultOptions() Options {
	return Options{
		Logger:       logging.Nop(),
		Metrics:      NewMetrics(nil),
		Tracer:       otel.Tracer("camctl/registry"),
		WarnInterval: 30 * time.Second,
	}
}

func (o *Options) withDefaults() Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	out := *o
	if out.Logger == nil {
		out.Logger = d.Logger
	}
	if out.Metrics == nil {
		out.Metrics = d.Metrics
	}
	if out.Tracer == nil {
		out.Tracer = d.Tracer
	}
	if out.WarnInterval <= 0 {
		out.WarnInterval = d.WarnInterval
	}
	return out
}

// Registry is the ordered collection of device bindings plus focus state.
type Registry struct {
	devices []*Binding
	focused int

	handles *handleTable

	logger  *logging.Logger
	metrics *Metrics
	tracer  trace.Tracer

	warnInterval time.Duration
	warnLimits   map[string]*rate.Limiter
}

func newRegistry(transport device.Transport, opts Options) *Registry {
	return &Registry{
		handles:      newHandleTable(transport),
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		tracer:       opts.Tracer,
		warnInterval: opts.WarnInterval,
		warnLimits:   make(map[string]*rate.Limiter),
	}
}

// =============================================================================
// Queries
// =============================================================================

// Len returns the number of bound devices.
func (r *Registry) Len() int {
	return len(r.devices)
}

// FocusedDeviceIndex returns the focused device index, or -1 when no device
// was discovered.
func (r *Registry) FocusedDeviceIndex() int {
	if len(r.devices) == 0 {
		return -1
	}
	return r.focused
}

// FocusedDevice returns the focused binding.
func (r *Registry) FocusedDevice() (*Binding, bool) {
	if len(r.devices) == 0 {
		return nil, false
	}
	return r.devices[r.focused], true
}

// Snapshot returns a deep copy of the registry state for presenters.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Devices: make([]DeviceSnapshot, len(r.devices)),
		Focused: r.FocusedDeviceIndex(),
	}
	for i, b := range r.devices {
		s.Devices[i] = b.snapshot()
	}
	return s
}

// =============================================================================
// Focus Navigation
// =============================================================================

// NextDevice moves focus to the next device, stopping at the last one.
func (r *Registry) NextDevice() {
	if r.focused < len(r.devices)-1 {
		r.focused++
	}
}

// PreviousDevice moves focus to the previous device, stopping at the first.
func (r *Registry) PreviousDevice() {
	if r.focused > 0 {
		r.focused--
	}
}

// NextControl moves focus to the next control of the focused device.
func (r *Registry) NextControl() {
	if b, ok := r.FocusedDevice(); ok {
		b.nextControl()
	}
}

// PreviousControl moves focus to the previous control of the focused device.
func (r *Registry) PreviousControl() {
	if b, ok := r.FocusedDevice(); ok {
		b.previousControl()
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

// Close releases every cached device handle.
func (r *Registry) Close() error {
	return r.handles.closeAll()
}

// allowWarn reports whether a warning for key may be logged now.
func (r *Registry) allowWarn(key string) bool {
	l, ok := r.warnLimits[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(r.warnInterval), 1)
		r.warnLimits[key] = l
	}
	return l.Allow()
}
