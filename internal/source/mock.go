// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package source

import (
	"math"
	"sync"
	"time"
)

// mockSource generates a slow drift with a tremor-band oscillation on top,
// useful for development without hardware attached.
type mockSource struct {
	interval time.Duration
	ticker   *time.Ticker
	start    time.Time

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewMock creates a mock source emitting one synthetic sample per interval.
func NewMock(interval time.Duration) Source {
	if interval <= 0 {
		interval = 5 * time.Millisecond
	}
	return &mockSource{
		interval: interval,
		ticker:   time.NewTicker(interval),
		start:    time.Now(),
		done:     make(chan struct{}),
	}
}

func (m *mockSource) Next() (Event, error) {
	// A stopped ticker can still have one buffered tick; check done first.
	select {
	case <-m.done:
		return Event{}, ErrClosed
	default:
	}

	select {
	case <-m.done:
		return Event{}, ErrClosed
	case <-m.ticker.C:
	}

	elapsed := time.Since(m.start).Seconds()

	// 8 Hz tremor of ~6 device units riding on a slow diagonal drift.
	x := elapsed*40 + 6*math.Sin(2*math.Pi*8*elapsed)
	y := elapsed*25 + 6*math.Cos(2*math.Pi*8*elapsed)

	return Event{
		Kind: EventMotion,
		X:    math.Round(x),
		Y:    math.Round(y),
		T:    elapsed,
	}, nil
}

func (m *mockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.ticker.Stop()
	close(m.done)
	return nil
}
