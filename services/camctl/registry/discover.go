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

	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/device"
)

// Discover builds a Registry from every device the transport enumerates.
//
// # Description
//
// Devices are opened in enumeration order. A device that cannot be opened
// is skipped. A device whose control list cannot be read is kept with no
// controls. Non-adjustable controls are dropped and every retained control
// gets one live read; a failed read keeps the device default. Both device
// order and control order are preserved verbatim.
//
// Focus starts on the first device and, within each device, on the first
// control.
//
// # Inputs
//
//   - ctx: Checked between devices; cancellation aborts discovery.
//   - transport: Enumerates and opens devices.
//   - opts: Optional configuration (nil uses defaults).
//
// # Outputs
//
//   - *Registry: The populated registry. The caller must Close it.
//   - error: Only ctx.Err() on cancellation.
func Discover(ctx context.Context, transport device.Transport, opts *Options) (*Registry, error) {
	o := opts.withDefaults()
	r := newRegistry(transport, o)

	ctx, span := r.tracer.Start(ctx, "registry.Discover")
	defer span.End()

	for _, identifier := range transport.Enumerate() {
		if err := ctx.Err(); err != nil {
			_ = r.Close()
			return nil, err
		}

		h, err := transport.Open(identifier)
		if err != nil {
			r.logger.Warn("skipping device", "device", identifier, "error", err)
			continue
		}
		r.handles.put(identifier, h)

		binding := &Binding{
			Identifier: identifier,
			Controls:   r.bindControls(identifier, h),
		}
		r.devices = append(r.devices, binding)

		r.logger.Info("device bound", "device", identifier, "controls", len(binding.Controls))
	}

	controls := 0
	for _, b := range r.devices {
		controls += len(b.Controls)
	}
	r.metrics.devices.Set(float64(len(r.devices)))
	r.metrics.controls.Set(float64(controls))

	span.SetAttributes(
		attribute.Int("camctl.devices", len(r.devices)),
		attribute.Int("camctl.controls", controls),
	)
	return r, nil
}

// bindControls lists, filters and reads the controls of one open device.
func (r *Registry) bindControls(identifier string, h device.Handle) []control.Descriptor {
	infos, err := h.ListControls()
	if err != nil {
		r.logger.Warn("listing controls failed", "device", identifier, "error", err)
		r.handles.observe(identifier, err)
		return nil
	}

	descriptors := make([]control.Descriptor, 0, len(infos))
	for _, info := range infos {
		d, ok := control.Normalize(info)
		if !ok {
			r.logger.Debug("ignoring control", "device", identifier, "control", info.ID, "kind", info.Kind)
			continue
		}

		descriptors = append(descriptors, d)
		if h == nil {
			continue
		}

		v, err := h.ReadValue(d.ID)
		if err == nil {
			descriptors[len(descriptors)-1].Value = d.Clamp(v)
			continue
		}
		r.logger.Debug("initial read failed, keeping default",
			"device", identifier, "control", d.ID, "default", d.Default, "error", err)
		if !device.IsHandleDead(err) {
			continue
		}
		r.handles.evict(identifier)
		if h, err = r.handles.get(identifier); err != nil {
			// Remaining controls keep their defaults.
			r.logger.Warn("device lost during discovery", "device", identifier, "error", err)
		}
	}
	return descriptors
}
