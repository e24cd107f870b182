// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package source

import "errors"

// ErrClosed is returned by Next once a source has been shut down.
var ErrClosed = errors.New("sample source closed")

// Kind discriminates the events a source can deliver.
type Kind int

const (
	// EventMotion carries an absolute cursor position sample.
	EventMotion Kind = iota
	// EventButton carries a button transition.
	EventButton
	// EventInfo carries an informational line from the device.
	EventInfo
	// EventDeviceError carries an error line reported by the device.
	EventDeviceError
)

// Button identifies a pointer button in a device-independent way.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// Event is one observation from a sample source.
type Event struct {
	Kind Kind

	// Motion fields: absolute position and monotonic timestamp in seconds.
	X float64
	Y float64
	T float64

	// Button fields.
	Button  Button
	Pressed bool

	// Info / device error text.
	Text string
}

// Source is anything that can deliver pointer events over time: a serial
// link to a hardware interceptor, an evdev device node, or a mock generator.
// Next blocks until an event is available and returns ErrClosed after Close.
type Source interface {
	Next() (Event, error)
	Close() error
}
