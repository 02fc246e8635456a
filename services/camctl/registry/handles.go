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
	"errors"
	"fmt"

	"github.com/AleutianAI/camctl/services/camctl/device"
)

// handleTable caches open device handles keyed by identifier.
//
// Descriptors never see a handle. A handle whose call reports the device
// as gone is closed and evicted, so the next operation reopens the path;
// from the outside this behaves like opening the device per operation.
type handleTable struct {
	transport device.Transport
	open      map[string]device.Handle
}

func newHandleTable(transport device.Transport) *handleTable {
	return &handleTable{
		transport: transport,
		open:      make(map[string]device.Handle),
	}
}

// get returns the cached handle for identifier, opening it if needed.
func (t *handleTable) get(identifier string) (device.Handle, error) {
	if h, ok := t.open[identifier]; ok {
		return h, nil
	}
	h, err := t.transport.Open(identifier)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", identifier, err)
	}
	t.open[identifier] = h
	return h, nil
}

// put stores a handle opened elsewhere (by discovery).
func (t *handleTable) put(identifier string, h device.Handle) {
	t.open[identifier] = h
}

// observe evicts the handle when err says it is unusable.
func (t *handleTable) observe(identifier string, err error) {
	if err != nil && device.IsHandleDead(err) {
		t.evict(identifier)
	}
}

func (t *handleTable) evict(identifier string) {
	if h, ok := t.open[identifier]; ok {
		_ = h.Close()
		delete(t.open, identifier)
	}
}

func (t *handleTable) closeAll() error {
	var errs []error
	for identifier, h := range t.open {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", identifier, err))
		}
		delete(t.open, identifier)
	}
	return errors.Join(errs...)
}
