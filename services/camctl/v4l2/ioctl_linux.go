// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

//go:build linux

package v4l2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/AleutianAI/camctl/services/camctl/control"
	"github.com/AleutianAI/camctl/services/camctl/device"
)

// ioctl request numbers from linux/videodev2.h.
const (
	vidiocQueryCtrl uintptr = 0xC0445624
	vidiocGCtrl     uintptr = 0xC008561B
	vidiocSCtrl     uintptr = 0xC008561C
	vidiocQueryMenu uintptr = 0xC02C5625
)

// struct v4l2_queryctrl
type queryCtrl struct {
	ID           uint32
	Type         uint32
	Name         [32]byte
	Minimum      int32
	Maximum      int32
	Step         int32
	DefaultValue int32
	Flags        uint32
	Reserved     [2]uint32
}

// struct v4l2_control
type ctrlValue struct {
	ID    uint32
	Value int32
}

// struct v4l2_querymenu (packed). Name doubles as the int64 value of an
// integer menu item.
type queryMenu struct {
	ID       uint32
	Index    uint32
	Name     [32]byte
	Reserved uint32
}

// Open opens the device node read-write.
func (t *Transport) Open(identifier string) (device.Handle, error) {
	fd, err := unix.Open(identifier, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%s: %w", identifier, device.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", identifier, err)
	}
	return &handle{fd: fd, path: identifier}, nil
}

type handle struct {
	fd     int
	path   string
	closed bool
}

func (h *handle) ioctl(req uintptr, arg unsafe.Pointer) error {
	if h.closed {
		return device.ErrClosed
	}
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(h.fd), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		case unix.ENODEV, unix.ENXIO:
			return fmt.Errorf("%w: %w", device.ErrGone, errno)
		default:
			return errno
		}
	}
}

// ListControls walks the control list with V4L2_CTRL_FLAG_NEXT_CTRL until the
// driver reports EINVAL.
func (h *handle) ListControls() ([]control.Info, error) {
	var infos []control.Info
	id := uint32(0)
	for {
		q := queryCtrl{ID: id | ctrlFlagNextCtrl}
		err := h.ioctl(vidiocQueryCtrl, unsafe.Pointer(&q))
		if errors.Is(err, unix.EINVAL) {
			return infos, nil
		}
		if err != nil {
			return infos, fmt.Errorf("VIDIOC_QUERYCTRL on %s: %w", h.path, err)
		}
		id = q.ID

		info := control.Info{
			ID:      control.ID(q.ID),
			Name:    cString(q.Name[:]),
			Kind:    kindOf(q.Type, q.Flags),
			Minimum: int64(q.Minimum),
			Maximum: int64(q.Maximum),
			Step:    int64(q.Step),
			Default: int64(q.DefaultValue),
			Flags:   flagsOf(q.Flags),
		}
		if info.Kind == control.KindMenu {
			info.Items = h.menuItems(q)
		}
		infos = append(infos, info)
	}
}

// menuItems queries every index in [minimum, maximum]. Drivers return
// EINVAL for holes, which are skipped.
func (h *handle) menuItems(q queryCtrl) map[int64]string {
	items := make(map[int64]string)
	for i := int64(q.Minimum); i <= int64(q.Maximum); i++ {
		m := queryMenu{ID: q.ID, Index: uint32(i)}
		if err := h.ioctl(vidiocQueryMenu, unsafe.Pointer(&m)); err != nil {
			continue
		}
		if q.Type == ctrlTypeIntegerMenu {
			items[i] = strconv.FormatInt(int64(binary.NativeEndian.Uint64(m.Name[:8])), 10)
		} else {
			items[i] = cString(m.Name[:])
		}
	}
	return items
}

func (h *handle) ReadValue(id control.ID) (int64, error) {
	c := ctrlValue{ID: uint32(id)}
	if err := h.ioctl(vidiocGCtrl, unsafe.Pointer(&c)); err != nil {
		return 0, h.controlErr("VIDIOC_G_CTRL", id, err)
	}
	return int64(c.Value), nil
}

func (h *handle) WriteValue(id control.ID, value int64) error {
	c := ctrlValue{ID: uint32(id), Value: int32(value)}
	if err := h.ioctl(vidiocSCtrl, unsafe.Pointer(&c)); err != nil {
		return h.controlErr("VIDIOC_S_CTRL", id, err)
	}
	return nil
}

func (h *handle) controlErr(op string, id control.ID, err error) error {
	if errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("%s %s on %s: %w: %w", op, id, h.path, device.ErrUnknownControl, err)
	}
	return fmt.Errorf("%s %s on %s: %w", op, id, h.path, err)
}

func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return unix.Close(h.fd)
}
