// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/camctl/services/camctl/device"
)

// ResyncReport summarises one resync pass.
type ResyncReport struct {
	// Reads is the number of successful reads.
	Reads int

	// Failures is the number of controls whose value could not be read.
	Failures int

	// Drifted is the number of reads that changed the stored value.
	Drifted int

	// Changes lists every control whose value changed, in registry order.
	Changes []Change

	Duration time.Duration
}

// Change records one value overwritten by resync.
type Change struct {
	Device   string
	Name     string
	Previous int64
	Value    int64
}

// Resync re-reads every control of every device and overwrites the stored
// value with what the device reports.
//
// # Description
//
// This is a refresh, not a merge: a value changed by another process or by
// the device itself replaces the last locally committed one. Reads are
// clamped into the control bounds. A failed read leaves that control alone
// and the pass continues with the rest; when the handle died, the device is
// reopened for the next control. Focus, bounds and metadata are never
// modified.
//
// Failure warnings are rate limited per control so a stuck device does not
// flood the log at the tick rate.
func (r *Registry) Resync(ctx context.Context) ResyncReport {
	_, span := r.tracer.Start(ctx, "registry.Resync")
	defer span.End()

	start := time.Now()
	var report ResyncReport

	for _, b := range r.devices {
		if len(b.Controls) == 0 {
			continue
		}
		r.resyncBinding(b, &report)
	}

	report.Duration = time.Since(start)
	r.metrics.resyncDuration.Observe(report.Duration.Seconds())
	r.metrics.reads.WithLabelValues("ok").Add(float64(report.Reads))
	r.metrics.reads.WithLabelValues("error").Add(float64(report.Failures))
	r.metrics.drift.Add(float64(report.Drifted))

	span.SetAttributes(
		attribute.Int("camctl.reads", report.Reads),
		attribute.Int("camctl.failures", report.Failures),
		attribute.Int("camctl.drifted", report.Drifted),
	)
	return report
}

func (r *Registry) resyncBinding(b *Binding, report *ResyncReport) {
	h, err := r.handles.get(b.Identifier)
	if err != nil {
		report.Failures += len(b.Controls)
		if r.allowWarn(b.Identifier) {
			r.logger.Warn("resync cannot reach device", "device", b.Identifier, "error", err)
		}
		return
	}

	for i := range b.Controls {
		d := &b.Controls[i]

		v, err := h.ReadValue(d.ID)
		if err != nil {
			report.Failures++
			if r.allowWarn(b.Identifier + "/" + d.ID.String()) {
				r.logger.Warn("resync read failed", "device", b.Identifier, "control", d.ID, "name", d.Name, "error", err)
			}
			if !device.IsHandleDead(err) {
				continue
			}
			r.handles.evict(b.Identifier)
			if h, err = r.handles.get(b.Identifier); err != nil {
				report.Failures += len(b.Controls) - i - 1
				if r.allowWarn(b.Identifier) {
					r.logger.Warn("resync cannot reach device", "device", b.Identifier, "error", err)
				}
				return
			}
			continue
		}

		report.Reads++
		v = d.Clamp(v)
		if v != d.Value {
			report.Drifted++
			report.Changes = append(report.Changes, Change{
				Device:   b.Identifier,
				Name:     d.Name,
				Previous: d.Value,
				Value:    v,
			})
			d.Value = v
		}
	}
}
