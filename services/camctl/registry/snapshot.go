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

// Snapshot is a read-only copy of the registry handed to presenters.
// Mutating it has no effect on the registry.
type Snapshot struct {
	Devices []DeviceSnapshot `json:"devices" yaml:"devices"`

	// Focused is the focused device index, -1 when Devices is empty.
	Focused int `json:"focused" yaml:"focused"`
}

// DeviceSnapshot is the copy of one binding.
type DeviceSnapshot struct {
	Identifier string               `json:"identifier" yaml:"identifier"`
	Controls   []control.Descriptor `json:"controls" yaml:"controls"`

	// Focused is the focused control index, -1 when Controls is empty.
	Focused int `json:"focused" yaml:"focused"`
}

// FocusedDevice returns the focused device copy.
func (s Snapshot) FocusedDevice() (DeviceSnapshot, bool) {
	if s.Focused < 0 || s.Focused >= len(s.Devices) {
		return DeviceSnapshot{}, false
	}
	return s.Devices[s.Focused], true
}

// ControlCount returns the number of controls across all devices.
func (s Snapshot) ControlCount() int {
	n := 0
	for _, d := range s.Devices {
		n += len(d.Controls)
	}
	return n
}
