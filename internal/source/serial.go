// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package source

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
)

// SerialOptions configures the serial sample source.
type SerialOptions struct {
	Port string
	Baud uint
}

// serialSource reads line records from a hardware mouse interceptor attached
// over a serial link and integrates motion deltas into absolute coordinates.
type serialSource struct {
	port   io.ReadWriteCloser
	reader *bufio.Reader
	start  time.Time

	x, y     float64
	verified bool

	mu     sync.Mutex
	closed bool
}

// OpenSerial opens the serial port and returns a Source delivering the
// device's records as events. Open failures are fatal for the caller; they
// carry the underlying platform error.
func OpenSerial(opts SerialOptions) (Source, error) {
	serialOpts := serial.OpenOptions{
		PortName:              opts.Port,
		BaudRate:              opts.Baud,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", opts.Port, err)
	}
	log.Printf("serial: port opened on %s at %d baud", opts.Port, opts.Baud)

	return &serialSource{
		port:   port,
		reader: bufio.NewReader(port),
		start:  time.Now(),
	}, nil
}

func (s *serialSource) Next() (Event, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if s.isClosed() {
				return Event{}, ErrClosed
			}
			return Event{}, fmt.Errorf("serial read: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			// Malformed records are discarded; the stream continues.
			log.Printf("serial: discarding record: %v", err)
			continue
		}

		switch rec.kind {
		case EventMotion:
			s.x += float64(rec.dx)
			s.y += float64(rec.dy)
			return Event{
				Kind: EventMotion,
				X:    s.x,
				Y:    s.y,
				T:    time.Since(s.start).Seconds(),
			}, nil

		case EventButton:
			return Event{Kind: EventButton, Button: rec.button, Pressed: rec.pressed}, nil

		case EventInfo:
			if !s.verified && strings.Contains(rec.text, "USB Host Shield") {
				s.verified = true
				log.Printf("serial: interceptor identified: %s", rec.text)
			}
			return Event{Kind: EventInfo, Text: rec.text}, nil

		case EventDeviceError:
			return Event{Kind: EventDeviceError, Text: rec.text}, nil
		}
	}
}

func (s *serialSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close shuts the port down. Safe to call from a different goroutine than
// the one blocked in Next, and idempotent.
func (s *serialSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.port.Close()
}
