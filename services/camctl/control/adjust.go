// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package control

// Direction selects which way an adjustment moves a value.
type Direction int

const (
	// Increase moves the value up by one step.
	Increase Direction = iota

	// Decrease moves the value down by one step.
	Decrease
)

// String returns "increase" or "decrease".
func (d Direction) String() string {
	if d == Decrease {
		return "decrease"
	}
	return "increase"
}

// Candidate computes the value an adjustment would write.
//
// # Description
//
// Increase yields min(Value+step, Maximum) and Decrease yields
// max(Value-step, Minimum), where step is EffectiveStep. Menu item keys are
// not consulted: the candidate may land on a key that has no item.
//
// When the result equals d.Value the control is already at the bound in
// that direction and callers must not write anything.
func Candidate(d Descriptor, dir Direction) int64 {
	step := d.EffectiveStep()

	if dir == Decrease {
		if d.Value-d.Minimum <= step {
			return d.Minimum
		}
		return d.Value - step
	}

	if d.Maximum-d.Value <= step {
		return d.Maximum
	}
	return d.Value + step
}

// AtBound reports whether an adjustment in dir would be a no-op.
func AtBound(d Descriptor, dir Direction) bool {
	return Candidate(d, dir) == d.Value
}
