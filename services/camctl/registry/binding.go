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
	"github.com/AleutianAI/camctl/services/camctl/control"
)

// Binding associates one device identifier with its controls.
//
// Controls keep discovery order for the whole run. The focused index is
// meaningful only while Controls is non-empty.
type Binding struct {
	// Identifier is the path used to reopen the device.
	Identifier string

	// Controls are the adjustable controls in device order.
	Controls []control.Descriptor

	focused int
}

// FocusedIndex returns the index of the focused control, or -1 when the
// binding has no controls.
func (b *Binding) FocusedIndex() int {
	if len(b.Controls) == 0 {
		return -1
	}
	return b.focused
}

// Focused returns the focused control.
func (b *Binding) Focused() (*control.Descriptor, bool) {
	if len(b.Controls) == 0 {
		return nil, false
	}
	return &b.Controls[b.focused], true
}

func (b *Binding) nextControl() {
	if b.focused < len(b.Controls)-1 {
		b.focused++
	}
}

func (b *Binding) previousControl() {
	if b.focused > 0 {
		b.focused--
	}
}

func (b *Binding) snapshot() DeviceSnapshot {
	controls := make([]control.Descriptor, len(b.Controls))
	for i, d := range b.Controls {
		controls[i] = d.Clone()
	}
	return DeviceSnapshot{
		Identifier: b.Identifier,
		Controls:   controls,
		Focused:    b.FocusedIndex(),
	}
}
