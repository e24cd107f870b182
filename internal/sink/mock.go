package sink

import "sync"

// MockMove records one relative move.
type MockMove struct {
	DX int
	DY int
}

// MockButton records one button transition.
type MockButton struct {
	Button  Button
	Pressed bool
}

// Mock is a Cursor that records every call, for tests and dry runs.
type Mock struct {
	mu      sync.Mutex
	moves   []MockMove
	buttons []MockButton
	closed  bool
}

// NewMock creates an empty recording cursor.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Move(dx, dy int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves = append(m.moves, MockMove{DX: dx, DY: dy})
	return nil
}

func (m *Mock) SetButton(b Button, pressed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons = append(m.buttons, MockButton{Button: b, Pressed: pressed})
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Moves returns a copy of the recorded moves.
func (m *Mock) Moves() []MockMove {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMove, len(m.moves))
	copy(out, m.moves)
	return out
}

// Buttons returns a copy of the recorded button transitions.
func (m *Mock) Buttons() []MockButton {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockButton, len(m.buttons))
	copy(out, m.buttons)
	return out
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
