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
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/camctl/services/camctl/control"
)

// Outcome classifies what an adjustment did.
type Outcome int

const (
	// OutcomeNoControl means there was nothing focused to adjust.
	OutcomeNoControl Outcome = iota

	// OutcomeAtBound means the value already sat on the bound in the
	// requested direction. Nothing was written.
	OutcomeAtBound

	// OutcomeCommitted means the device accepted the write and the new
	// value was stored.
	OutcomeCommitted

	// OutcomeFailed means the write was attempted and refused. The stored
	// value is unchanged.
	OutcomeFailed
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAtBound:
		return "at_bound"
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	default:
		return "no_control"
	}
}

// AdjustResult describes one adjustment.
type AdjustResult struct {
	Outcome   Outcome
	Device    string
	Control   control.ID
	Previous  int64
	Candidate int64

	// Value is the stored value after the call.
	Value int64

	// Err is the write error for OutcomeFailed.
	Err error
}

// Adjust steps the focused control of the focused device.
//
// # Description
//
// The candidate comes from control.Candidate. If it equals the current
// value no write is issued. Otherwise the candidate is written to the
// device, and only a successful write commits it. A failed write leaves the
// stored value exactly as it was; it is logged and counted but not
// retried. Bounds, step and items are never touched.
//
// The call is synchronous: the outcome is final when it returns.
func (r *Registry) Adjust(ctx context.Context, dir control.Direction) AdjustResult {
	b, ok := r.FocusedDevice()
	if !ok {
		return r.recordAdjust(AdjustResult{Outcome: OutcomeNoControl})
	}
	d, ok := b.Focused()
	if !ok {
		return r.recordAdjust(AdjustResult{Outcome: OutcomeNoControl, Device: b.Identifier})
	}

	res := AdjustResult{
		Device:    b.Identifier,
		Control:   d.ID,
		Previous:  d.Value,
		Candidate: control.Candidate(*d, dir),
		Value:     d.Value,
	}
	if res.Candidate == d.Value {
		res.Outcome = OutcomeAtBound
		return r.recordAdjust(res)
	}

	_, span := r.tracer.Start(ctx, "registry.Adjust")
	defer span.End()
	span.SetAttributes(
		attribute.String("camctl.device", b.Identifier),
		attribute.String("camctl.control", d.ID.String()),
		attribute.String("camctl.direction", dir.String()),
		attribute.Int64("camctl.candidate", res.Candidate),
	)

	start := time.Now()
	err := r.write(b.Identifier, d.ID, res.Candidate)
	r.metrics.writeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, "write refused")
		r.logger.Warn("control write failed",
			"device", b.Identifier,
			"control", d.ID,
			"name", d.Name,
			"candidate", res.Candidate,
			"error", err,
		)
		return r.recordAdjust(res)
	}

	d.Value = res.Candidate
	res.Value = d.Value
	res.Outcome = OutcomeCommitted
	r.logger.Debug("control written",
		"device", b.Identifier,
		"control", d.ID,
		"from", res.Previous,
		"to", res.Value,
	)
	return r.recordAdjust(res)
}

func (r *Registry) write(identifier string, id control.ID, value int64) error {
	h, err := r.handles.get(identifier)
	if err != nil {
		return err
	}
	err = h.WriteValue(id, value)
	r.handles.observe(identifier, err)
	return err
}

func (r *Registry) recordAdjust(res AdjustResult) AdjustResult {
	r.metrics.adjustments.WithLabelValues(res.Outcome.String()).Inc()
	return res
}
