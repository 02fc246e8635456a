// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package v4l2 implements device.Transport over Video4Linux2 device nodes.
//
// # Description
//
// Devices are enumerated from a glob (default /dev/video*) or an explicit
// list, opened read-write, and driven with the VIDIOC_QUERYCTRL,
// VIDIOC_QUERYMENU, VIDIOC_G_CTRL and VIDIOC_S_CTRL ioctls.
//
// Only Linux has an implementation. Elsewhere Open returns ErrUnsupported,
// so discovery yields an empty registry instead of failing.
package v4l2

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/AleutianAI/camctl/pkg/logging"
	"github.com/AleutianAI/camctl/services/camctl/control"
)

// ErrUnsupported is returned by Open on platforms without V4L2.
var ErrUnsupported = errors.New("v4l2: not supported on this platform")

// DefaultGlob matches the capture nodes created by the kernel.
const DefaultGlob = "/dev/video*"

// Control types reported in v4l2_queryctrl.type.
const (
	ctrlTypeInteger     uint32 = 1
	ctrlTypeBoolean     uint32 = 2
	ctrlTypeMenu        uint32 = 3
	ctrlTypeButton      uint32 = 4
	ctrlTypeInteger64   uint32 = 5
	ctrlTypeCtrlClass   uint32 = 6
	ctrlTypeString      uint32 = 7
	ctrlTypeBitmask     uint32 = 8
	ctrlTypeIntegerMenu uint32 = 9
)

// Control flags reported in v4l2_queryctrl.flags.
const (
	ctrlFlagDisabled uint32 = 0x0001
	ctrlFlagReadOnly uint32 = 0x0004
	ctrlFlagInactive uint32 = 0x0010
	ctrlFlagNextCtrl uint32 = 0x80000000
)

// Options configures a Transport. A nil *Options uses defaults.
type Options struct {
	// Devices lists device paths to use instead of the glob. Order is kept.
	Devices []string

	// Glob selects device nodes when Devices is empty. Default: DefaultGlob.
	Glob string

	// Logger receives enumeration problems. Default: logging.Nop().
	Logger *logging.Logger
}

// Transport opens V4L2 device nodes.
type Transport struct {
	devices []string
	glob    string
	logger  *logging.Logger
}

// New creates a Transport.
func New(opts *Options) *Transport {
	t := &Transport{glob: DefaultGlob, logger: logging.Nop()}
	if opts == nil {
		return t
	}
	t.devices = slices.Clone(opts.Devices)
	if opts.Glob != "" {
		t.glob = opts.Glob
	}
	if opts.Logger != nil {
		t.logger = opts.Logger
	}
	return t
}

// Enumerate returns the explicit device list, or the glob matches sorted by
// their trailing device number (/dev/video2 before /dev/video10).
func (t *Transport) Enumerate() []string {
	if len(t.devices) > 0 {
		return dedupe(t.devices)
	}
	matches, err := filepath.Glob(t.glob)
	if err != nil {
		t.logger.Warn("bad device glob", "glob", t.glob, "error", err)
		return nil
	}
	sortByDeviceNumber(matches)
	return matches
}

// =============================================================================
// Platform-independent helpers
// =============================================================================

// sortByDeviceNumber orders paths by the decimal suffix of their base name,
// falling back to lexical order for paths without one.
func sortByDeviceNumber(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		na, oka := deviceNumber(a)
		nb, okb := deviceNumber(b)
		switch {
		case oka && okb && na != nb:
			if na < nb {
				return -1
			}
			return 1
		case oka != okb:
			if oka {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
}

func deviceNumber(path string) (int, bool) {
	base := filepath.Base(path)
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	if i == len(base) {
		return 0, false
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// kindOf maps a V4L2 control type and flags to a control kind. Disabled
// controls are unsupported regardless of type.
func kindOf(typ, flags uint32) control.Kind {
	if flags&ctrlFlagDisabled != 0 {
		return control.KindUnsupported
	}
	switch typ {
	case ctrlTypeInteger:
		return control.KindInteger
	case ctrlTypeBoolean:
		return control.KindBoolean
	case ctrlTypeMenu, ctrlTypeIntegerMenu:
		return control.KindMenu
	case ctrlTypeButton:
		return control.KindButton
	case ctrlTypeCtrlClass:
		return control.KindClass
	default:
		return control.KindUnsupported
	}
}

func flagsOf(flags uint32) control.Flags {
	return control.Flags{
		ReadOnly: flags&ctrlFlagReadOnly != 0,
		Inactive: flags&ctrlFlagInactive != 0,
	}
}

// cString returns the NUL-terminated prefix of b.
func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}
