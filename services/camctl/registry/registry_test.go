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
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/camctl/pkg/logging"
	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/device"
	"github.com/AleutianAI/camctl/services/camctl/device/mocks"
)

// ==============================================================================
// Test Fixtures
// ==============================================================================

const (
	idBrightness control.ID = 0x980900
	idContrast   control.ID = 0x980901
	idAutoWB     control.ID = 0x98090c
	idPowerLine  control.ID = 0x980918
	idUserClass  control.ID = 0x980001
)

func brightness(value int64) control.Descriptor {
	return control.Descriptor{
		ID: idBrightness, Name: "Brightness", Kind: control.KindInteger,
		Minimum: 0, Maximum: 100, Step: 10, Value: value,
	}
}

func autoWB(value int64) control.Descriptor {
	return control.Descriptor{
		ID: idAutoWB, Name: "White Balance, Automatic", Kind: control.KindBoolean,
		Minimum: 0, Maximum: 1, Step: 1, Value: value,
	}
}

// newTestRegistry builds a registry directly from bindings, bypassing
// discovery. Each binding gets a cached mock handle.
func newTestRegistry(t *testing.T, bindings ...*Binding) (*Registry, *mocks.MockTransport, map[string]*mocks.MockHandle) {
	t.Helper()

	transport := mocks.NewMockTransport(t)
	opts := &Options{Metrics: NewMetrics(prometheus.NewRegistry())}
	r := newRegistry(transport, opts.withDefaults())

	handles := make(map[string]*mocks.MockHandle, len(bindings))
	for _, b := range bindings {
		h := mocks.NewMockHandle(t)
		handles[b.Identifier] = h
		r.handles.put(b.Identifier, h)
		r.devices = append(r.devices, b)
	}
	return r, transport, handles
}

func adjustCount(r *Registry, o Outcome) float64 {
	return testutil.ToFloat64(r.metrics.adjustments.WithLabelValues(o.String()))
}

// ==============================================================================
// Discovery
// ==============================================================================

func TestDiscover_BuildsRegistryInDeviceOrder(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cam0 := mocks.NewMockHandle(t)
	cam2 := mocks.NewMockHandle(t)

	transport.EXPECT().Enumerate().Return([]string{"/dev/video0", "/dev/video1", "/dev/video2"})
	transport.EXPECT().Open("/dev/video0").Return(cam0, nil)
	transport.EXPECT().Open("/dev/video1").Return(nil, errors.New("permission denied"))
	transport.EXPECT().Open("/dev/video2").Return(cam2, nil)

	cam0.EXPECT().ListControls().Return([]control.Info{
		{ID: idUserClass, Name: "User Controls", Kind: control.KindClass},
		{ID: idBrightness, Name: "Brightness", Kind: control.KindInteger, Minimum: 0, Maximum: 255, Step: 1, Default: 128},
		{ID: idAutoWB, Name: "White Balance, Automatic", Kind: control.KindBoolean, Maximum: 1, Default: 1},
		{ID: idPowerLine, Name: "Power Line Frequency", Kind: control.KindMenu, Maximum: 2, Default: 1,
			Items: map[int64]string{0: "Disabled", 1: "50 Hz", 2: "60 Hz"}},
		{ID: 0x9a0910, Name: "Reset", Kind: control.KindButton},
	}, nil)
	cam0.EXPECT().ReadValue(idBrightness).Return(int64(200), nil)
	cam0.EXPECT().ReadValue(idAutoWB).Return(int64(0), errors.New("input/output error"))
	cam0.EXPECT().ReadValue(idPowerLine).Return(int64(2), nil)

	cam2.EXPECT().ListControls().Return(nil, errors.New("inappropriate ioctl for device"))

	metrics := NewMetrics(prometheus.NewRegistry())
	r, err := Discover(context.Background(), transport, &Options{Metrics: metrics})
	require.NoError(t, err)

	require.Equal(t, 2, r.Len())
	assert.Equal(t, 0, r.FocusedDeviceIndex())

	snap := r.Snapshot()
	assert.Equal(t, "/dev/video0", snap.Devices[0].Identifier)
	assert.Equal(t, "/dev/video2", snap.Devices[1].Identifier)

	controls := snap.Devices[0].Controls
	require.Len(t, controls, 3)
	assert.Equal(t, []control.ID{idBrightness, idAutoWB, idPowerLine},
		[]control.ID{controls[0].ID, controls[1].ID, controls[2].ID})
	assert.Equal(t, int64(200), controls[0].Value)
	assert.Equal(t, int64(1), controls[1].Value, "failed read keeps the default")
	assert.Equal(t, "60 Hz", controls[2].DisplayValue())
	assert.Equal(t, 0, snap.Devices[0].Focused)

	assert.Empty(t, snap.Devices[1].Controls, "device with unreadable control list stays visible")
	assert.Equal(t, -1, snap.Devices[1].Focused)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.devices))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.controls))

	cam0.EXPECT().Close().Return(nil)
	cam2.EXPECT().Close().Return(nil)
	require.NoError(t, r.Close())
}

func TestDiscover_ClampsInitialRead(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cam := mocks.NewMockHandle(t)

	transport.EXPECT().Enumerate().Return([]string{"/dev/video0"})
	transport.EXPECT().Open("/dev/video0").Return(cam, nil)
	cam.EXPECT().ListControls().Return([]control.Info{
		{ID: idContrast, Name: "Contrast", Kind: control.KindInteger, Minimum: 0, Maximum: 10, Step: 1},
	}, nil)
	cam.EXPECT().ReadValue(idContrast).Return(int64(42), nil)

	r, err := Discover(context.Background(), transport, nil)
	require.NoError(t, err)

	b, ok := r.FocusedDevice()
	require.True(t, ok)
	assert.Equal(t, int64(10), b.Controls[0].Value)
}

var twoControls = []control.Info{
	{ID: idBrightness, Name: "Brightness", Kind: control.KindInteger, Minimum: 0, Maximum: 255, Step: 1, Default: 128},
	{ID: idAutoWB, Name: "White Balance, Automatic", Kind: control.KindBoolean, Maximum: 1, Default: 1},
}

func TestDiscover_ReopensAfterDeviceGone(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cam := mocks.NewMockHandle(t)
	fresh := mocks.NewMockHandle(t)

	transport.EXPECT().Enumerate().Return([]string{"/dev/video0"})
	transport.EXPECT().Open("/dev/video0").Return(cam, nil).Once()
	transport.EXPECT().Open("/dev/video0").Return(fresh, nil).Once()
	cam.EXPECT().ListControls().Return(twoControls, nil)
	cam.EXPECT().ReadValue(idBrightness).Return(int64(0), device.ErrGone)
	cam.EXPECT().Close().Return(nil)
	fresh.EXPECT().ReadValue(idAutoWB).Return(int64(0), nil)

	r, err := Discover(context.Background(), transport, nil)
	require.NoError(t, err)

	b, ok := r.FocusedDevice()
	require.True(t, ok)
	assert.Equal(t, int64(128), b.Controls[0].Value, "default kept")
	assert.Equal(t, int64(0), b.Controls[1].Value, "read through the reopened handle")
}

func TestDiscover_UnreachableAfterDeviceGoneKeepsDefaults(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	cam := mocks.NewMockHandle(t)

	transport.EXPECT().Enumerate().Return([]string{"/dev/video0"})
	transport.EXPECT().Open("/dev/video0").Return(cam, nil).Once()
	transport.EXPECT().Open("/dev/video0").Return(nil, device.ErrNotFound).Once()
	cam.EXPECT().ListControls().Return(twoControls, nil)
	cam.EXPECT().ReadValue(idBrightness).Return(int64(0), device.ErrGone)
	cam.EXPECT().Close().Return(nil)

	r, err := Discover(context.Background(), transport, nil)
	require.NoError(t, err)

	b, ok := r.FocusedDevice()
	require.True(t, ok)
	require.Len(t, b.Controls, 2)
	assert.Equal(t, int64(128), b.Controls[0].Value)
	assert.Equal(t, int64(1), b.Controls[1].Value)
}

func TestDiscover_NoDevices(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Enumerate().Return(nil)

	r, err := Discover(context.Background(), transport, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, -1, r.FocusedDeviceIndex())
	assert.Equal(t, -1, r.Snapshot().Focused)
}

func TestDiscover_Cancelled(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	transport.EXPECT().Enumerate().Return([]string{"/dev/video0"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := Discover(ctx, transport, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, r)
}

// ==============================================================================
// Adjustment
// ==============================================================================

func TestAdjust_SaturatesAtMaximum(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(95)}}
	r, _, handles := newTestRegistry(t, b)

	handles["/dev/video0"].EXPECT().WriteValue(idBrightness, int64(100)).Return(nil).Once()

	res := r.Adjust(context.Background(), control.Increase)

	assert.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, int64(100), res.Candidate)
	assert.Equal(t, int64(100), b.Controls[0].Value)
	assert.Equal(t, 1.0, adjustCount(r, OutcomeCommitted))
}

func TestAdjust_NoWriteAtBound(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(100)}}
	// The mock handle has no WriteValue expectation; any write fails the test.
	r, _, _ := newTestRegistry(t, b)

	res := r.Adjust(context.Background(), control.Increase)

	assert.Equal(t, OutcomeAtBound, res.Outcome)
	assert.Equal(t, int64(100), b.Controls[0].Value)
	assert.Equal(t, 1.0, adjustCount(r, OutcomeAtBound))
}

func TestAdjust_FailedWriteLeavesValue(t *testing.T) {
	for _, dir := range []control.Direction{control.Increase, control.Decrease} {
		t.Run(dir.String(), func(t *testing.T) {
			b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50)}}
			r, _, handles := newTestRegistry(t, b)

			busy := errors.New("device or resource busy")
			handles["/dev/video0"].EXPECT().WriteValue(idBrightness, expectedCandidate(b, dir)).Return(busy)

			res := r.Adjust(context.Background(), dir)

			assert.Equal(t, OutcomeFailed, res.Outcome)
			assert.ErrorIs(t, res.Err, busy)
			assert.Equal(t, int64(50), res.Value)
			assert.Equal(t, int64(50), b.Controls[0].Value)
			assert.Equal(t, 1.0, adjustCount(r, OutcomeFailed))
		})
	}
}

// expectedCandidate is a test helper computing the expected write for the focused
// control of b.
func expectedCandidate(b *Binding, dir control.Direction) int64 {
	d, _ := b.Focused()
	return control.Candidate(*d, dir)
}

func TestAdjust_BooleanToggles(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{autoWB(0)}}
	r, _, handles := newTestRegistry(t, b)

	handles["/dev/video0"].EXPECT().WriteValue(idAutoWB, int64(1)).Return(nil)

	res := r.Adjust(context.Background(), control.Increase)

	require.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, int64(1), b.Controls[0].Value)
	assert.Equal(t, "True", b.Controls[0].DisplayValue())
}

func TestAdjust_NoControl(t *testing.T) {
	empty, _, _ := newTestRegistry(t)
	assert.Equal(t, OutcomeNoControl, empty.Adjust(context.Background(), control.Increase).Outcome)

	r, _, _ := newTestRegistry(t, &Binding{Identifier: "/dev/video4"})
	res := r.Adjust(context.Background(), control.Decrease)
	assert.Equal(t, OutcomeNoControl, res.Outcome)
	assert.Equal(t, "/dev/video4", res.Device)
}

func TestAdjust_DoesNotTouchMetadata(t *testing.T) {
	menu := control.Descriptor{
		ID: idPowerLine, Name: "Power Line Frequency", Kind: control.KindMenu,
		Minimum: 0, Maximum: 2, Step: 1, Value: 1,
		Items: map[int64]string{0: "Disabled", 1: "50 Hz", 2: "60 Hz"},
	}
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{menu}}
	r, _, handles := newTestRegistry(t, b)
	handles["/dev/video0"].EXPECT().WriteValue(idPowerLine, int64(2)).Return(nil)

	r.Adjust(context.Background(), control.Increase)

	got := b.Controls[0]
	assert.Equal(t, int64(2), got.Value)
	assert.Equal(t, menu.Minimum, got.Minimum)
	assert.Equal(t, menu.Maximum, got.Maximum)
	assert.Equal(t, menu.Step, got.Step)
	assert.Equal(t, menu.Items, got.Items)
}

func TestAdjust_ReopensAfterDeviceGone(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50)}}
	r, transport, handles := newTestRegistry(t, b)

	old := handles["/dev/video0"]
	old.EXPECT().WriteValue(idBrightness, int64(60)).Return(device.ErrGone)
	old.EXPECT().Close().Return(nil)

	res := r.Adjust(context.Background(), control.Increase)
	require.Equal(t, OutcomeFailed, res.Outcome)
	assert.Equal(t, int64(50), b.Controls[0].Value)

	fresh := mocks.NewMockHandle(t)
	transport.EXPECT().Open("/dev/video0").Return(fresh, nil).Once()
	fresh.EXPECT().WriteValue(idBrightness, int64(60)).Return(nil)

	res = r.Adjust(context.Background(), control.Increase)
	assert.Equal(t, OutcomeCommitted, res.Outcome)
	assert.Equal(t, int64(60), b.Controls[0].Value)
}

func TestAdjust_OpenFailureIsAFailedWrite(t *testing.T) {
	transport := mocks.NewMockTransport(t)
	r := newRegistry(transport, (*Options)(nil).withDefaults())
	r.devices = []*Binding{{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50)}}}

	transport.EXPECT().Open("/dev/video0").Return(nil, device.ErrNotFound)

	res := r.Adjust(context.Background(), control.Decrease)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, device.ErrNotFound)
	assert.Equal(t, int64(50), r.devices[0].Controls[0].Value)
}

// ==============================================================================
// Resync
// ==============================================================================

func TestResync_OverwritesWithDeviceValue(t *testing.T) {
	for _, v1 := range []int64{0, 20, 80, 100} {
		b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50)}}
		r, _, handles := newTestRegistry(t, b)
		handles["/dev/video0"].EXPECT().ReadValue(idBrightness).Return(v1, nil)

		report := r.Resync(context.Background())

		assert.Equal(t, v1, b.Controls[0].Value)
		assert.Equal(t, 1, report.Reads)
		assert.Equal(t, 1, report.Drifted)
		require.Len(t, report.Changes, 1)
		assert.Equal(t, Change{Device: "/dev/video0", Name: "Brightness", Previous: 50, Value: v1}, report.Changes[0])
	}
}

func TestResync_FailureLeavesValueAndContinues(t *testing.T) {
	cam0 := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50), autoWB(1)}}
	cam1 := &Binding{Identifier: "/dev/video1", Controls: []control.Descriptor{brightness(10)}}
	r, _, handles := newTestRegistry(t, cam0, cam1)

	handles["/dev/video0"].EXPECT().ReadValue(idBrightness).Return(int64(0), errors.New("input/output error"))
	handles["/dev/video0"].EXPECT().ReadValue(idAutoWB).Return(int64(0), nil)
	handles["/dev/video1"].EXPECT().ReadValue(idBrightness).Return(int64(10), nil)

	report := r.Resync(context.Background())

	assert.Equal(t, int64(50), cam0.Controls[0].Value)
	assert.Equal(t, int64(0), cam0.Controls[1].Value)
	assert.Equal(t, int64(10), cam1.Controls[0].Value)
	assert.Equal(t, 2, report.Reads)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 1, report.Drifted)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.metrics.reads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.reads.WithLabelValues("error")))
}

func TestResync_ClampsOutOfRangeRead(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50)}}
	r, _, handles := newTestRegistry(t, b)
	handles["/dev/video0"].EXPECT().ReadValue(idBrightness).Return(int64(1000), nil)

	r.Resync(context.Background())

	assert.Equal(t, int64(100), b.Controls[0].Value)
}

func TestResync_KeepsFocusAndMetadata(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50), autoWB(0)}}
	r, _, handles := newTestRegistry(t, b)
	r.NextControl()

	handles["/dev/video0"].EXPECT().ReadValue(idBrightness).Return(int64(30), nil)
	handles["/dev/video0"].EXPECT().ReadValue(idAutoWB).Return(int64(1), nil)

	r.Resync(context.Background())

	assert.Equal(t, 1, b.FocusedIndex())
	assert.Equal(t, 0, r.FocusedDeviceIndex())
	assert.Equal(t, int64(10), b.Controls[0].Step)
	assert.Equal(t, int64(100), b.Controls[0].Maximum)
}

func TestResync_ReopensAfterDeviceGone(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50), autoWB(0)}}
	r, transport, handles := newTestRegistry(t, b)

	old := handles["/dev/video0"]
	old.EXPECT().ReadValue(idBrightness).Return(int64(0), device.ErrGone).Once()
	old.EXPECT().Close().Return(nil)

	fresh := mocks.NewMockHandle(t)
	transport.EXPECT().Open("/dev/video0").Return(fresh, nil).Once()
	fresh.EXPECT().ReadValue(idAutoWB).Return(int64(1), nil).Once()

	report := r.Resync(context.Background())

	assert.Equal(t, 1, report.Reads)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, int64(50), b.Controls[0].Value)
	assert.Equal(t, int64(1), b.Controls[1].Value)
}

func TestResync_UnreachableDeviceCountsRemainingAsFailed(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50), autoWB(0)}}
	r, transport, handles := newTestRegistry(t, b)

	h := handles["/dev/video0"]
	h.EXPECT().ReadValue(idBrightness).Return(int64(0), device.ErrGone).Once()
	h.EXPECT().Close().Return(nil)
	transport.EXPECT().Open("/dev/video0").Return(nil, device.ErrNotFound).Twice()

	report := r.Resync(context.Background())
	assert.Equal(t, 2, report.Failures)
	assert.Equal(t, 0, report.Reads)
	assert.Equal(t, int64(50), b.Controls[0].Value)
	assert.Equal(t, int64(0), b.Controls[1].Value)

	report = r.Resync(context.Background())
	assert.Equal(t, 2, report.Failures)
	assert.Equal(t, 0, report.Reads)
}

func TestResync_RateLimitsWarningsPerControl(t *testing.T) {
	exporter := logging.NewBufferedExporter()
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Quiet: true, Exporter: exporter})

	transport := mocks.NewMockTransport(t)
	h := mocks.NewMockHandle(t)
	r := newRegistry(transport, (&Options{
		Logger:       logger,
		Metrics:      NewMetrics(prometheus.NewRegistry()),
		WarnInterval: time.Hour,
	}).withDefaults())
	r.handles.put("/dev/video0", h)
	r.devices = []*Binding{{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(50), autoWB(0)}}}

	ioErr := errors.New("input/output error")
	h.EXPECT().ReadValue(idBrightness).Return(int64(0), ioErr).Times(3)
	h.EXPECT().ReadValue(idAutoWB).Return(int64(0), ioErr).Times(3)

	for range 3 {
		report := r.Resync(context.Background())
		assert.Equal(t, 2, report.Failures)
	}

	// Export is asynchronous; wait for the first two, then for stragglers.
	require.Eventually(t, func() bool { return len(exporter.Entries()) >= 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	perControl := map[string]int{}
	for _, e := range exporter.Entries() {
		if e.Message == "resync read failed" {
			perControl[fmt.Sprint(e.Attrs["name"])]++
		}
	}
	assert.Equal(t, map[string]int{"Brightness": 1, "White Balance, Automatic": 1}, perControl)
}

func TestResync_SkipsEmptyBindings(t *testing.T) {
	// No ReadValue expectations: a read on the empty binding fails the test.
	r, _, _ := newTestRegistry(t, &Binding{Identifier: "/dev/video3"})

	report := r.Resync(context.Background())
	assert.Zero(t, report.Reads)
	assert.Zero(t, report.Failures)
}

// ==============================================================================
// Focus
// ==============================================================================

func TestFocus_DeviceSaturates(t *testing.T) {
	r, _, _ := newTestRegistry(t,
		&Binding{Identifier: "/dev/video0"},
		&Binding{Identifier: "/dev/video1"},
	)

	r.PreviousDevice()
	assert.Equal(t, 0, r.FocusedDeviceIndex())

	r.NextDevice()
	r.NextDevice()
	r.NextDevice()
	assert.Equal(t, 1, r.FocusedDeviceIndex())

	r.PreviousDevice()
	assert.Equal(t, 0, r.FocusedDeviceIndex())
}

func TestFocus_ControlSaturates(t *testing.T) {
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(0), autoWB(0)}}
	r, _, _ := newTestRegistry(t, b)

	r.PreviousControl()
	assert.Equal(t, 0, b.FocusedIndex())

	r.NextControl()
	r.NextControl()
	assert.Equal(t, 1, b.FocusedIndex())
}

func TestFocus_ControlIsPerDevice(t *testing.T) {
	cam0 := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{brightness(0), autoWB(0)}}
	cam1 := &Binding{Identifier: "/dev/video1", Controls: []control.Descriptor{brightness(0), autoWB(0)}}
	r, _, _ := newTestRegistry(t, cam0, cam1)

	r.NextControl()
	r.NextDevice()

	assert.Equal(t, 1, cam0.FocusedIndex())
	assert.Equal(t, 0, cam1.FocusedIndex())
}

func TestFocus_EmptyIsNoop(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	r.NextDevice()
	r.PreviousDevice()
	r.NextControl()
	r.PreviousControl()
	assert.Equal(t, -1, r.FocusedDeviceIndex())

	b := &Binding{Identifier: "/dev/video0"}
	r2, _, _ := newTestRegistry(t, b)
	r2.NextControl()
	assert.Equal(t, -1, b.FocusedIndex())
}

// ==============================================================================
// Snapshot
// ==============================================================================

func TestSnapshot_IsDeepCopy(t *testing.T) {
	menu := control.Descriptor{ID: idPowerLine, Kind: control.KindMenu, Maximum: 1, Items: map[int64]string{0: "Off", 1: "On"}}
	b := &Binding{Identifier: "/dev/video0", Controls: []control.Descriptor{menu}}
	r, _, _ := newTestRegistry(t, b)

	snap := r.Snapshot()
	snap.Devices[0].Controls[0].Value = 1
	snap.Devices[0].Controls[0].Items[0] = "mutated"

	assert.Equal(t, int64(0), b.Controls[0].Value)
	assert.Equal(t, "Off", b.Controls[0].Items[0])

	d, ok := snap.FocusedDevice()
	require.True(t, ok)
	assert.Equal(t, "/dev/video0", d.Identifier)
	assert.Equal(t, 1, snap.ControlCount())
}
