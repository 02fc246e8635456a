// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package monitor

import (
	"fmt"
	"time"

	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/registry"
)

// LinePresenter is a non-interactive Presenter that prints the initial
// state once and then one line per value change.
//
// It never produces input events other than Quit, which it returns once
// done is closed.
type LinePresenter struct {
	out  *ux.Printer
	done <-chan struct{}

	seen map[controlKey]control.Descriptor
}

type controlKey struct {
	device string
	id     control.ID
}

// NewLinePresenter creates a LinePresenter writing to out.
func NewLinePresenter(out *ux.Printer, done <-chan struct{}) *LinePresenter {
	return &LinePresenter{out: out, done: done}
}

// Render prints the full state on the first call and changed values after.
func (p *LinePresenter) Render(snap registry.Snapshot) {
	if p.seen == nil {
		p.seen = make(map[controlKey]control.Descriptor, snap.ControlCount())
		p.out.Title(fmt.Sprintf("Watching %d devices", len(snap.Devices)))
		for _, dev := range snap.Devices {
			if len(dev.Controls) == 0 {
				p.out.Warning(dev.Identifier + ": no adjustable controls")
			}
			for _, d := range dev.Controls {
				p.seen[controlKey{dev.Identifier, d.ID}] = d
				p.out.Info(fmt.Sprintf("%s %s = %s", dev.Identifier, d.Name, d.DisplayValue()))
			}
		}
		return
	}

	for _, dev := range snap.Devices {
		for _, d := range dev.Controls {
			k := controlKey{dev.Identifier, d.ID}
			prev, ok := p.seen[k]
			p.seen[k] = d
			if !ok || prev.Value == d.Value {
				continue
			}
			p.out.Change(dev.Identifier+" "+d.Name, prev.DisplayValue(), d.DisplayValue())
		}
	}
}

// PollEvent waits for timeout or for done, whichever comes first.
func (p *LinePresenter) PollEvent(timeout time.Duration) (Event, bool) {
	select {
	case <-p.done:
		return Quit, true
	default:
	}
	if timeout <= 0 {
		return 0, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.done:
		return Quit, true
	case <-timer.C:
		return 0, false
	}
}
