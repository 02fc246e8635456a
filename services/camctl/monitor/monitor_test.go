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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/camctl/pkg/ux"
	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/device"
	"github.com/AleutianAI/camctl/services/camctl/registry"
	"github.com/AleutianAI/camctl/services/camctl/sim"
)

// =============================================================================
// Helpers
// =============================================================================

const brightness control.ID = 0x980900

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func focused(s registry.Snapshot) (string, control.Descriptor) {
	d, _ := s.FocusedDevice()
	return d.Identifier, d.Controls[d.Focused]
}

func focusedValue(s registry.Snapshot) int64 {
	_, d := focused(s)
	return d.Value
}

func focusedName(s registry.Snapshot) string {
	_, d := focused(s)
	return d.Name
}

func focusedDevice(s registry.Snapshot) string {
	id, _ := focused(s)
	return id
}

func newSimSession(t *testing.T, devices int, clock *fakeClock) (*Session, *sim.Transport) {
	t.Helper()
	tr := sim.New(&sim.Options{Devices: devices})
	reg, err := registry.Discover(context.Background(), tr, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	return NewSession(reg, &SessionOptions{Period: 100 * time.Millisecond, Now: clock.Now}), tr
}

// scriptedPresenter replays events and advances the fake clock on every
// poll, as if each wait used its full timeout.
type scriptedPresenter struct {
	clock    *fakeClock
	events   []Event
	renders  []registry.Snapshot
	timeouts []time.Duration
}

func (p *scriptedPresenter) Render(snap registry.Snapshot) {
	p.renders = append(p.renders, snap)
}

func (p *scriptedPresenter) PollEvent(timeout time.Duration) (Event, bool) {
	p.timeouts = append(p.timeouts, timeout)
	p.clock.Advance(timeout)
	if len(p.events) == 0 {
		return Quit, true
	}
	ev := p.events[0]
	p.events = p.events[1:]
	if ev < 0 {
		return 0, false
	}
	return ev, true
}

// idle is a scripted poll timeout.
const idle Event = -1

// =============================================================================
// Session
// =============================================================================

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "quit", Quit.String())
	assert.Equal(t, "focus_previous_control", FocusPreviousControl.String())
	assert.Equal(t, "decrease", Decrease.String())
	assert.Equal(t, "unknown", Event(42).String())
}

func TestSession_ResyncDeadline(t *testing.T) {
	clock := newFakeClock()
	s, _ := newSimSession(t, 1, clock)

	assert.Equal(t, 100*time.Millisecond, s.Timeout())

	clock.Advance(60 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, s.Timeout())
	_, ran := s.ResyncIfDue(context.Background())
	assert.False(t, ran)

	clock.Advance(40 * time.Millisecond)
	assert.Zero(t, s.Timeout())
	report, ran := s.ResyncIfDue(context.Background())
	assert.True(t, ran)
	assert.Equal(t, 9, report.Reads)
	assert.Equal(t, report, s.LastResync())

	assert.Equal(t, 100*time.Millisecond, s.Timeout())

	clock.Advance(time.Hour)
	assert.Zero(t, s.Timeout(), "an overdue resync never yields a negative wait")
}

func TestSession_ResyncPicksUpExternalChange(t *testing.T) {
	clock := newFakeClock()
	s, tr := newSimSession(t, 1, clock)

	require.NoError(t, tr.Set("sim://video0", brightness, 33))
	assert.Equal(t, int64(0), focusedValue(s.Snapshot()))

	clock.Advance(s.Period())
	report, ran := s.ResyncIfDue(context.Background())
	require.True(t, ran)
	assert.Equal(t, 1, report.Drifted)
	assert.Equal(t, int64(33), focusedValue(s.Snapshot()))
}

func TestSession_HandleEvents(t *testing.T) {
	clock := newFakeClock()
	s, _ := newSimSession(t, 2, clock)
	ctx := context.Background()

	s.Handle(ctx, FocusNextDevice)
	assert.Equal(t, "sim://video1", focusedDevice(s.Snapshot()))
	s.Handle(ctx, FocusNextDevice)
	assert.Equal(t, "sim://video1", focusedDevice(s.Snapshot()))
	s.Handle(ctx, FocusPreviousDevice)
	assert.Equal(t, "sim://video0", focusedDevice(s.Snapshot()))

	s.Handle(ctx, FocusNextControl)
	assert.Equal(t, "Contrast", focusedName(s.Snapshot()))
	s.Handle(ctx, FocusPreviousControl)
	assert.Equal(t, "Brightness", focusedName(s.Snapshot()))

	s.Handle(ctx, Increase)
	assert.Equal(t, registry.OutcomeCommitted, s.LastAdjust().Outcome)
	assert.Equal(t, int64(1), focusedValue(s.Snapshot()))
	s.Handle(ctx, Decrease)
	s.Handle(ctx, Decrease)
	assert.Equal(t, int64(-1), focusedValue(s.Snapshot()))

	assert.False(t, s.Done())
	s.Handle(ctx, Quit)
	assert.True(t, s.Done())
}

// =============================================================================
// Run
// =============================================================================

func TestRun_ProcessesEventsInOrderAndQuits(t *testing.T) {
	clock := newFakeClock()
	s, _ := newSimSession(t, 1, clock)
	p := &scriptedPresenter{
		clock:  clock,
		events: []Event{FocusNextControl, Increase, idle, Quit, Increase},
	}

	require.NoError(t, Run(context.Background(), s, p))

	// One render per iteration, Quit ends the loop before the trailing event.
	require.Len(t, p.renders, 4)
	assert.Equal(t, []Event{Increase}, p.events)

	last := p.renders[3]
	assert.Equal(t, "Contrast", focusedName(last))
	assert.Equal(t, int64(33), focusedValue(last))
}

func TestRun_ResyncsWhenPeriodElapses(t *testing.T) {
	clock := newFakeClock()
	s, tr := newSimSession(t, 1, clock)
	require.NoError(t, tr.Set("sim://video0", brightness, -5))

	p := &scriptedPresenter{clock: clock, events: []Event{idle, idle}}
	require.NoError(t, Run(context.Background(), s, p))

	// The first wait used the whole period, so the first iteration resynced.
	assert.Equal(t, s.Period(), p.timeouts[0])
	assert.Equal(t, int64(-5), focusedValue(p.renders[1]))
}

func TestRun_Cancelled(t *testing.T) {
	clock := newFakeClock()
	s, _ := newSimSession(t, 1, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedPresenter{clock: clock}
	assert.ErrorIs(t, Run(ctx, s, p), context.Canceled)
	assert.Empty(t, p.renders)
}

func TestRun_NoDevices(t *testing.T) {
	clock := newFakeClock()
	reg, err := registry.Discover(context.Background(), noDevices{}, nil)
	require.NoError(t, err)
	s := NewSession(reg, &SessionOptions{Period: 100 * time.Millisecond, Now: clock.Now})

	p := &scriptedPresenter{clock: clock, events: []Event{Increase, FocusNextControl, FocusNextDevice}}
	require.NoError(t, Run(context.Background(), s, p))

	assert.Equal(t, registry.OutcomeNoControl, s.LastAdjust().Outcome)
	assert.Equal(t, -1, p.renders[0].Focused)
	assert.Len(t, p.renders, 4)
}

type noDevices struct{}

func (noDevices) Enumerate() []string { return nil }

func (noDevices) Open(string) (device.Handle, error) { return nil, device.ErrNotFound }

// =============================================================================
// LinePresenter
// =============================================================================

func TestLinePresenter_PrintsStateThenChanges(t *testing.T) {
	clock := newFakeClock()
	s, tr := newSimSession(t, 1, clock)

	var buf bytes.Buffer
	p := NewLinePresenter(ux.NewPrinter(&buf, ux.ModePlain), nil)

	p.Render(s.Snapshot())
	first := buf.String()
	assert.Contains(t, first, "sim://video0 Brightness = 0\n")
	assert.Contains(t, first, "sim://video0 White Balance, Automatic = True\n")
	assert.Contains(t, first, "sim://video0 Power Line Frequency = 50 Hz\n")

	buf.Reset()
	p.Render(s.Snapshot())
	assert.Empty(t, buf.String(), "unchanged values print nothing")

	require.NoError(t, tr.Set("sim://video0", 0x980918, 2))
	clock.Advance(s.Period())
	s.ResyncIfDue(context.Background())
	p.Render(s.Snapshot())
	assert.Equal(t, "sim://video0 Power Line Frequency\t50 Hz\t60 Hz\n", buf.String())
}

func TestLinePresenter_EmptyDevice(t *testing.T) {
	var buf bytes.Buffer
	p := NewLinePresenter(ux.NewPrinter(&buf, ux.ModePlain), nil)
	p.Render(registry.Snapshot{Devices: []registry.DeviceSnapshot{{Identifier: "/dev/video3", Focused: -1}}})
	assert.True(t, strings.HasPrefix(buf.String(), "WARN: /dev/video3"))
}

func TestLinePresenter_PollEvent(t *testing.T) {
	done := make(chan struct{})
	p := NewLinePresenter(ux.NewPrinter(&bytes.Buffer{}, ux.ModePlain), done)

	_, ok := p.PollEvent(0)
	assert.False(t, ok)
	_, ok = p.PollEvent(time.Millisecond)
	assert.False(t, ok)

	close(done)
	ev, ok := p.PollEvent(time.Hour)
	assert.True(t, ok)
	assert.Equal(t, Quit, ev)
}
