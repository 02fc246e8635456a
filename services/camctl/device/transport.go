// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package device defines the transport capability used to reach capture
// devices.
//
// # Description
//
// The registry never talks to hardware directly. It enumerates device
// identifiers and opens handles through a Transport, then lists, reads and
// writes controls through a Handle. Implementations live in sibling
// packages (v4l2 for real hardware, sim for a simulated camera).
//
// # Thread Safety
//
// Implementations need not be safe for concurrent use; the monitor loop
// drives them from a single goroutine.
package device

import (
	"errors"

	"github.com/AleutianAI/camctl/services/camctl/control"
)

// Sentinel errors shared by transport implementations.
var (
	// ErrClosed is returned by operations on a closed handle.
	ErrClosed = errors.New("device: handle closed")

	// ErrUnknownControl is returned when a control id does not exist on the
	// device.
	ErrUnknownControl = errors.New("device: unknown control")

	// ErrNotFound is returned by Open for identifiers that do not resolve to
	// a device.
	ErrNotFound = errors.New("device: not found")

	// ErrGone marks failures after which the handle is unusable, such as a
	// camera that was unplugged. Callers drop the handle and reopen.
	ErrGone = errors.New("device: gone")
)

// IsHandleDead reports whether err means the handle must be discarded.
func IsHandleDead(err error) bool {
	return errors.Is(err, ErrGone) || errors.Is(err, ErrClosed)
}

// Transport enumerates and opens devices.
type Transport interface {
	// Enumerate returns device identifiers in discovery order. Identifiers
	// that fail to enumerate are skipped, never reported.
	Enumerate() []string

	// Open returns a handle for the identifier.
	Open(identifier string) (Handle, error)
}

// Handle is an open device.
//
// Every method may block for the duration of the underlying driver call;
// there are no timeouts.
type Handle interface {
	// ListControls returns the full control list in device order, including
	// kinds the caller will filter out.
	ListControls() ([]control.Info, error)

	// ReadValue returns the live value of a control.
	ReadValue(id control.ID) (int64, error)

	// WriteValue sets a control on the device.
	WriteValue(id control.ID, value int64) error

	// Close releases the handle.
	Close() error
}
