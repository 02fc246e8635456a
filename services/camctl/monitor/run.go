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
	"context"
	"time"

	"github.com/AleutianAI/camctl/services/camctl/registry"
)

// Presenter displays registry snapshots and delivers input events.
type Presenter interface {
	// Render refreshes the display. Called once per loop iteration.
	Render(snap registry.Snapshot)

	// PollEvent blocks up to timeout for one event. It returns false on
	// timeout.
	PollEvent(timeout time.Duration) (Event, bool)
}

// Run drives s with p until Quit is handled or ctx is cancelled.
//
// # Description
//
// Each iteration renders, waits for at most one event, handles it, and then
// resyncs if the period has elapsed. Quit ends the loop after the event is
// handled. Cancellation is checked between iterations; a transport call in
// progress is never interrupted.
//
// # Outputs
//
//   - error: nil on Quit, ctx.Err() on cancellation.
func Run(ctx context.Context, s *Session, p Presenter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.Render(s.Snapshot())

		if ev, ok := p.PollEvent(s.Timeout()); ok {
			s.Handle(ctx, ev)
			if s.Done() {
				return nil
			}
		}

		s.ResyncIfDue(ctx)
	}
}
