// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package monitor runs the interactive control loop over a registry.
//
// # Description
//
// A Session turns discrete input events into registry operations and
// decides when the periodic resync is due. Run drives a Session with any
// Presenter using a single cooperative loop: render, wait up to the time
// left before the next resync for one event, handle it, resync if due.
// Resync and adjustment therefore never interleave.
//
// The bubbletea program in package tui drives the same Session from its
// Update function instead of calling Run.
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/AleutianAI/camctl/pkg/logging"
	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/registry"
)

// ErrNoTerminal is returned when an interactive presenter cannot take over
// the terminal.
var ErrNoTerminal = errors.New("monitor: terminal unavailable")

// DefaultPeriod is the resync period used when none is configured.
const DefaultPeriod = 30 * time.Millisecond

// Event is a discrete operator input.
type Event int

const (
	// Quit ends the session after the current iteration.
	Quit Event = iota

	// FocusNextDevice moves to the next device tab.
	FocusNextDevice

	// FocusPreviousDevice moves to the previous device tab.
	FocusPreviousDevice

	// FocusNextControl moves to the next control of the focused device.
	FocusNextControl

	// FocusPreviousControl moves to the previous control of the focused
	// device.
	FocusPreviousControl

	// Increase steps the focused control towards its maximum.
	Increase

	// Decrease steps the focused control towards its minimum.
	Decrease
)

// String returns the name used when logging the event.
func (e Event) String() string {
	switch e {
	case Quit:
		return "quit"
	case FocusNextDevice:
		return "focus_next_device"
	case FocusPreviousDevice:
		return "focus_previous_device"
	case FocusNextControl:
		return "focus_next_control"
	case FocusPreviousControl:
		return "focus_previous_control"
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "unknown"
	}
}

// SessionOptions configures a Session. A nil *SessionOptions uses defaults.
type SessionOptions struct {
	// Period is the resync period. Default: DefaultPeriod.
	Period time.Duration

	// Logger records handled events at debug level. Default: logging.Nop().
	Logger *logging.Logger

	// Now returns the current time. Default: time.Now, whose monotonic
	// reading makes the deadline immune to wall clock changes.
	Now func() time.Time
}

// Session owns a registry for the duration of one monitor run.
//
// # Thread Safety
//
// Not safe for concurrent use. Exactly one loop drives a Session.
type Session struct {
	reg    *registry.Registry
	period time.Duration
	logger *logging.Logger
	now    func() time.Time

	lastResync time.Time
	lastReport registry.ResyncReport
	lastAdjust registry.AdjustResult
	done       bool
}

// NewSession creates a Session. The first resync is due one period after
// creation, since discovery has just read every value.
func NewSession(reg *registry.Registry, opts *SessionOptions) *Session {
	s := &Session{
		reg:    reg,
		period: DefaultPeriod,
		logger: logging.Nop(),
		now:    time.Now,
	}
	if opts != nil {
		if opts.Period > 0 {
			s.period = opts.Period
		}
		if opts.Logger != nil {
			s.logger = opts.Logger
		}
		if opts.Now != nil {
			s.now = opts.Now
		}
	}
	s.lastResync = s.now()
	return s
}

// Period returns the resync period.
func (s *Session) Period() time.Duration {
	return s.period
}

// Done reports whether Quit was handled.
func (s *Session) Done() bool {
	return s.done
}

// Snapshot returns the registry state for rendering.
func (s *Session) Snapshot() registry.Snapshot {
	return s.reg.Snapshot()
}

// LastAdjust returns the result of the most recent Increase or Decrease.
func (s *Session) LastAdjust() registry.AdjustResult {
	return s.lastAdjust
}

// LastResync returns the report of the most recent resync pass.
func (s *Session) LastResync() registry.ResyncReport {
	return s.lastReport
}

// Handle applies one event. Focus events never touch the device;
// Increase and Decrease run the adjustment protocol synchronously.
func (s *Session) Handle(ctx context.Context, ev Event) {
	s.logger.Debug("event", "event", ev)

	switch ev {
	case Quit:
		s.done = true
	case FocusNextDevice:
		s.reg.NextDevice()
	case FocusPreviousDevice:
		s.reg.PreviousDevice()
	case FocusNextControl:
		s.reg.NextControl()
	case FocusPreviousControl:
		s.reg.PreviousControl()
	case Increase:
		s.lastAdjust = s.reg.Adjust(ctx, control.Increase)
	case Decrease:
		s.lastAdjust = s.reg.Adjust(ctx, control.Decrease)
	}
}

// Timeout returns how long the loop may wait for input before the next
// resync is due. It is zero when a resync is already due.
func (s *Session) Timeout() time.Duration {
	return max(s.period-s.now().Sub(s.lastResync), 0)
}

// ResyncIfDue runs one resync pass when at least one period has elapsed
// since the previous one. It reports whether a pass ran.
func (s *Session) ResyncIfDue(ctx context.Context) (registry.ResyncReport, bool) {
	now := s.now()
	if now.Sub(s.lastResync) < s.period {
		return registry.ResyncReport{}, false
	}
	s.lastResync = now
	s.lastReport = s.reg.Resync(ctx)
	return s.lastReport, true
}
