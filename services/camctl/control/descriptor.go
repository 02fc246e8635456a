// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package control models a single adjustable device control.
//
// # Description
//
// A Descriptor is the normalized, in-memory record of one control exposed by
// a capture device. Integer, Boolean and Menu controls share one
// representation; only the Menu kind carries an extra payload (its items).
// All value arithmetic works on the raw integer domain, so the three kinds
// are adjusted identically. Only display helpers branch on Kind.
//
// # Invariants
//
//   - Minimum <= Maximum
//   - Step > 0
//   - Minimum <= Value <= Maximum
//
// Normalize establishes these for transport-reported metadata; Clamp keeps
// Value inside bounds for every later mutation.
package control

import (
	"maps"
	"strconv"
)

// =============================================================================
// Kind
// =============================================================================

// Kind identifies the value domain of a control.
type Kind int

const (
	// KindUnsupported is any device-reported kind this package cannot adjust.
	KindUnsupported Kind = iota

	// KindInteger is a bounded integer with a step.
	KindInteger

	// KindBoolean is a 0/1 switch.
	KindBoolean

	// KindMenu is an enumeration keyed by integers.
	KindMenu

	// KindButton is a write-only trigger without a value.
	KindButton

	// KindClass is a grouping marker without a value.
	KindClass
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindMenu:
		return "menu"
	case KindButton:
		return "button"
	case KindClass:
		return "class"
	default:
		return "unsupported"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Adjustable reports whether controls of this kind carry a value that can
// be stepped. Only adjustable kinds become Descriptors.
func (k Kind) Adjustable() bool {
	return k == KindInteger || k == KindBoolean || k == KindMenu
}

// =============================================================================
// Identity and flags
// =============================================================================

// ID is the device-assigned control identifier. It is unique within one
// device and stable for the device's lifetime.
type ID uint32

// String formats the id the way V4L2 tools print control ids.
func (id ID) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

// Flags carries informational state bits reported by the device.
type Flags struct {
	// ReadOnly is set when the device refuses writes to the control.
	ReadOnly bool `json:"read_only,omitempty" yaml:"read_only,omitempty"`

	// Inactive is set when the control currently has no effect, e.g. manual
	// exposure while auto exposure is on.
	Inactive bool `json:"inactive,omitempty" yaml:"inactive,omitempty"`
}

// =============================================================================
// Descriptor
// =============================================================================

// Descriptor is the normalized snapshot of one device control.
type Descriptor struct {
	ID      ID               `json:"id" yaml:"id"`
	Name    string           `json:"name" yaml:"name"`
	Kind    Kind             `json:"kind" yaml:"kind"`
	Minimum int64            `json:"minimum" yaml:"minimum"`
	Maximum int64            `json:"maximum" yaml:"maximum"`
	Step    int64            `json:"step" yaml:"step"`
	Default int64            `json:"default" yaml:"default"`
	Items   map[int64]string `json:"items,omitempty" yaml:"items,omitempty"`
	Flags   Flags            `json:"flags" yaml:"flags"`

	// Value is the last known value of the control on the device.
	Value int64 `json:"value" yaml:"value"`
}

// Info is the raw control metadata reported by a transport before
// normalization.
type Info struct {
	ID      ID
	Name    string
	Kind    Kind
	Minimum int64
	Maximum int64
	Step    int64
	Default int64
	Items   map[int64]string
	Flags   Flags
}

// Normalize turns transport-reported metadata into a Descriptor.
//
// # Description
//
// Returns false for kinds that carry no adjustable value (buttons, class
// markers, anything unsupported). For retained kinds the bounds are ordered,
// the step is made positive, menu items outside the bounds are dropped and
// the initial Value is the clamped device default.
//
// # Inputs
//
//   - info: Metadata as listed by the transport.
//
// # Outputs
//
//   - Descriptor: The normalized descriptor.
//   - bool: False when the control must be filtered out.
func Normalize(info Info) (Descriptor, bool) {
	if !info.Kind.Adjustable() {
		return Descriptor{}, false
	}

	lo, hi := info.Minimum, info.Maximum
	if lo > hi {
		lo, hi = hi, lo
	}

	step := info.Step
	if step <= 0 || info.Kind != KindInteger {
		step = 1
	}

	d := Descriptor{
		ID:      info.ID,
		Name:    info.Name,
		Kind:    info.Kind,
		Minimum: lo,
		Maximum: hi,
		Step:    step,
		Flags:   info.Flags,
	}
	d.Default = d.Clamp(info.Default)
	d.Value = d.Default

	if info.Kind == KindMenu {
		d.Items = make(map[int64]string, len(info.Items))
		for k, label := range info.Items {
			if k >= lo && k <= hi {
				d.Items[k] = label
			}
		}
	}

	return d, true
}

// Clamp returns v limited to [Minimum, Maximum].
func (d Descriptor) Clamp(v int64) int64 {
	if v < d.Minimum {
		return d.Minimum
	}
	if v > d.Maximum {
		return d.Maximum
	}
	return v
}

// EffectiveStep is the increment used by adjustment: Step for Integer
// controls and 1 for Boolean and Menu controls.
func (d Descriptor) EffectiveStep() int64 {
	if d.Kind != KindInteger || d.Step <= 0 {
		return 1
	}
	return d.Step
}

// Ratio returns the position of Value inside the bounds as a fraction in
// [0, 1]. A control whose bounds collapse to one value reports 0.
func (d Descriptor) Ratio() float64 {
	span := d.Maximum - d.Minimum
	if span <= 0 {
		return 0
	}
	r := float64(d.Value-d.Minimum) / float64(span)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// DisplayValue renders Value for an operator.
//
// Integer controls show the decimal value, Boolean controls "True" or
// "False", and Menu controls the label of the matching item, falling back
// to the decimal value when no item key matches.
func (d Descriptor) DisplayValue() string {
	switch d.Kind {
	case KindBoolean:
		if d.Value != 0 {
			return "True"
		}
		return "False"
	case KindMenu:
		if label, ok := d.Items[d.Value]; ok {
			return label
		}
	}
	return strconv.FormatInt(d.Value, 10)
}

// Clone returns a deep copy; the Items map is not shared.
func (d Descriptor) Clone() Descriptor {
	if d.Items != nil {
		d.Items = maps.Clone(d.Items)
	}
	return d
}
