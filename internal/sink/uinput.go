// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/relabs-tech/cursor_stabilizer/internal/input"
)

const uinputPath = "/dev/uinput"

// virtualMouse is a uinput-backed relative pointer device. The stabilizer
// writes its (raw or corrected) motion here and the kernel delivers it to
// the desktop like any other mouse.
type virtualMouse struct {
	file *os.File
}

// CreateVirtualMouse registers a new relative pointer device with the
// kernel. Failure to set up the device is fatal at startup and carries the
// underlying platform error.
func CreateVirtualMouse(name string) (Cursor, error) {
	f, err := os.OpenFile(uinputPath, syscall.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputPath, err)
	}

	if err := ioctl(f, input.SetEvBit, input.EvKey); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("register key events: %w", err)
	}
	for _, btn := range []int{input.BtnLeft, input.BtnRight, input.BtnMiddle} {
		if err := ioctl(f, input.SetKeyBit, uintptr(btn)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("register button 0x%x: %w", btn, err)
		}
	}
	if err := ioctl(f, input.SetEvBit, input.EvRel); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("register relative events: %w", err)
	}
	for _, axis := range []int{input.RelX, input.RelY} {
		if err := ioctl(f, input.SetRelBit, uintptr(axis)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("register relative axis %d: %w", axis, err)
		}
	}

	var dev input.UserDev
	copy(dev.Name[:], name)
	dev.ID = input.ID{Bustype: input.BusUsb, Vendor: 0x4711, Product: 0x0816, Version: 1}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, dev); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("encode device setup: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write device setup: %w", err)
	}
	if err := ioctl(f, input.DevCreate, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}

	// The desktop needs a moment to pick the new device up.
	time.Sleep(200 * time.Millisecond)

	return &virtualMouse{file: f}, nil
}

func (m *virtualMouse) Move(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	if dx != 0 {
		if err := m.write(input.EvRel, input.RelX, int32(dx)); err != nil {
			return err
		}
	}
	if dy != 0 {
		if err := m.write(input.EvRel, input.RelY, int32(dy)); err != nil {
			return err
		}
	}
	return m.write(input.EvSyn, input.SynReport, 0)
}

func (m *virtualMouse) SetButton(b Button, pressed bool) error {
	code := uint16(input.BtnLeft)
	switch b {
	case ButtonRight:
		code = input.BtnRight
	case ButtonMiddle:
		code = input.BtnMiddle
	}
	value := int32(0)
	if pressed {
		value = 1
	}
	if err := m.write(input.EvKey, code, value); err != nil {
		return err
	}
	return m.write(input.EvSyn, input.SynReport, 0)
}

func (m *virtualMouse) write(evType, code uint16, value int32) error {
	ev := input.Event{Type: evType, Code: code, Value: value}
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, ev); err != nil {
		return err
	}
	if _, err := m.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write input event: %w", err)
	}
	return nil
}

func (m *virtualMouse) Close() error {
	_ = ioctl(m.file, input.DevDestroy, 0)
	return m.file.Close()
}

func ioctl(f *os.File, op int, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(op), arg)
	if errno != 0 {
		return errno
	}
	return nil
}
