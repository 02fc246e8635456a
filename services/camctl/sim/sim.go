// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sim provides an in-memory device.Transport that behaves like a
// handful of webcams, so the monitor runs without hardware.
//
// # Description
//
// Every simulated device carries the same control set as a typical UVC
// camera: integer image controls, an auto white balance boolean, two menus,
// plus a button and a class marker that discovery is expected to drop.
// Writes to read-only controls fail, which exercises the "failed write
// changes nothing" path.
//
// With drift enabled, the exposure control wanders on every read the way it
// does when the camera's auto exposure is on, so resync has something to
// pick up.
package sim

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/device"
)

// Prefix starts every simulated device identifier.
const Prefix = "sim://video"

// Options configures a Transport. A nil *Options uses defaults.
type Options struct {
	// Devices is the number of simulated cameras. Default: 2.
	Devices int

	// Drift makes drifting controls change on read.
	Drift bool

	// Seed fixes the drift sequence. Default: 1.
	Seed uint64
}

// Transport is a simulated set of cameras. Device state outlives handles, so
// a value written through one handle is read back through the next.
type Transport struct {
	mu      sync.Mutex
	devices map[string]*camera
	order   []string
	drift   bool
	rng     *rand.Rand
}

// New creates a Transport with opts.Devices cameras.
func New(opts *Options) *Transport {
	n, seed, drift := 2, uint64(1), false
	if opts != nil {
		if opts.Devices > 0 {
			n = opts.Devices
		}
		if opts.Seed != 0 {
			seed = opts.Seed
		}
		drift = opts.Drift
	}

	t := &Transport{
		devices: make(map[string]*camera, n),
		drift:   drift,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range n {
		id := fmt.Sprintf("%s%d", Prefix, i)
		t.devices[id] = newCamera()
		t.order = append(t.order, id)
	}
	return t
}

// Enumerate returns the simulated identifiers in creation order.
func (t *Transport) Enumerate() []string {
	return append([]string(nil), t.order...)
}

// Open returns a handle to a simulated camera.
func (t *Transport) Open(identifier string) (device.Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cam, ok := t.devices[identifier]
	if !ok {
		return nil, fmt.Errorf("%s: %w", identifier, device.ErrNotFound)
	}
	return &handle{t: t, cam: cam}, nil
}

// Unplug removes a camera. Open handles start failing with device.ErrGone.
func (t *Transport) Unplug(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cam, ok := t.devices[identifier]; ok {
		cam.gone = true
		delete(t.devices, identifier)
	}
}

// Set changes a control behind the monitor's back, as another program
// would.
func (t *Transport) Set(identifier string, id control.ID, value int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cam, ok := t.devices[identifier]
	if !ok {
		return fmt.Errorf("%s: %w", identifier, device.ErrNotFound)
	}
	c, err := cam.lookup(id)
	if err != nil {
		return err
	}
	c.value = value
	return nil
}

// =============================================================================
// Simulated camera
// =============================================================================

type simControl struct {
	info   control.Info
	value  int64
	drifts bool
}

type camera struct {
	controls []*simControl
	gone     bool
}

func (c *camera) lookup(id control.ID) (*simControl, error) {
	for _, sc := range c.controls {
		if sc.info.ID == id {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("control %s: %w", id, device.ErrUnknownControl)
}

func newCamera() *camera {
	infos := []struct {
		info   control.Info
		drifts bool
	}{
		{info: control.Info{ID: 0x980001, Name: "User Controls", Kind: control.KindClass}},
		{info: control.Info{ID: 0x980900, Name: "Brightness", Kind: control.KindInteger, Minimum: -64, Maximum: 64, Step: 1, Default: 0}},
		{info: control.Info{ID: 0x980901, Name: "Contrast", Kind: control.KindInteger, Minimum: 0, Maximum: 95, Step: 1, Default: 32}},
		{info: control.Info{ID: 0x980902, Name: "Saturation", Kind: control.KindInteger, Minimum: 0, Maximum: 100, Step: 5, Default: 55}},
		{info: control.Info{ID: 0x98090c, Name: "White Balance, Automatic", Kind: control.KindBoolean, Minimum: 0, Maximum: 1, Step: 1, Default: 1}},
		{info: control.Info{ID: 0x980918, Name: "Power Line Frequency", Kind: control.KindMenu, Minimum: 0, Maximum: 2, Step: 1, Default: 1,
			Items: map[int64]string{0: "Disabled", 1: "50 Hz", 2: "60 Hz"}}},
		{info: control.Info{ID: 0x98091b, Name: "Sharpness", Kind: control.KindInteger, Minimum: 0, Maximum: 7, Step: 1, Default: 2}},
		{info: control.Info{ID: 0x9a0901, Name: "Auto Exposure", Kind: control.KindMenu, Minimum: 0, Maximum: 3, Step: 1, Default: 3,
			Items: map[int64]string{1: "Manual Mode", 3: "Aperture Priority Mode"}}},
		{info: control.Info{ID: 0x9a0902, Name: "Exposure Time, Absolute", Kind: control.KindInteger, Minimum: 1, Maximum: 5000, Step: 1, Default: 157,
			Flags: control.Flags{Inactive: true}}, drifts: true},
		{info: control.Info{ID: 0x9a0911, Name: "Focus, Absolute", Kind: control.KindInteger, Minimum: 0, Maximum: 250, Step: 5, Default: 0,
			Flags: control.Flags{ReadOnly: true}}},
		{info: control.Info{ID: 0x9a0910, Name: "Restore Defaults", Kind: control.KindButton}},
	}

	cam := &camera{}
	for _, i := range infos {
		cam.controls = append(cam.controls, &simControl{info: i.info, value: i.info.Default, drifts: i.drifts})
	}
	return cam
}

// =============================================================================
// Handle
// =============================================================================

type handle struct {
	t      *Transport
	cam    *camera
	closed bool
}

func (h *handle) check() error {
	if h.closed {
		return device.ErrClosed
	}
	if h.cam.gone {
		return device.ErrGone
	}
	return nil
}

func (h *handle) ListControls() ([]control.Info, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.check(); err != nil {
		return nil, err
	}
	infos := make([]control.Info, len(h.cam.controls))
	for i, sc := range h.cam.controls {
		infos[i] = sc.info
		if sc.info.Items != nil {
			infos[i].Items = make(map[int64]string, len(sc.info.Items))
			for k, v := range sc.info.Items {
				infos[i].Items[k] = v
			}
		}
	}
	return infos, nil
}

func (h *handle) ReadValue(id control.ID) (int64, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.check(); err != nil {
		return 0, err
	}
	sc, err := h.cam.lookup(id)
	if err != nil {
		return 0, err
	}
	if !sc.info.Kind.Adjustable() {
		return 0, fmt.Errorf("control %s is a %s: %w", id, sc.info.Kind, device.ErrUnknownControl)
	}
	if h.t.drift && sc.drifts {
		sc.value = h.t.wander(sc)
	}
	return sc.value, nil
}

func (h *handle) WriteValue(id control.ID, value int64) error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.check(); err != nil {
		return err
	}
	sc, err := h.cam.lookup(id)
	if err != nil {
		return err
	}
	if sc.info.Flags.ReadOnly {
		return fmt.Errorf("control %s (%s) is read-only", id, strings.ToLower(sc.info.Name))
	}
	if value < sc.info.Minimum || value > sc.info.Maximum {
		return fmt.Errorf("control %s: value %d outside [%d, %d]", id, value, sc.info.Minimum, sc.info.Maximum)
	}
	sc.value = value
	return nil
}

func (h *handle) Close() error {
	h.closed = true
	return nil
}

// wander moves a value by up to 2% of its range, staying in bounds.
// The caller holds t.mu.
func (t *Transport) wander(sc *simControl) int64 {
	span := sc.info.Maximum - sc.info.Minimum
	delta := max(span/50, 1)
	v := sc.value + t.rng.Int64N(2*delta+1) - delta
	return min(max(v, sc.info.Minimum), sc.info.Maximum)
}
