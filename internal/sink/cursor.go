package sink

// Button identifies a pointer button on the cursor sink.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Cursor is anything that can move the system pointer and press its buttons.
// Moves are relative in integer device units and fire-and-forget: no
// acknowledgement is awaited.
type Cursor interface {
	Move(dx, dy int) error
	SetButton(b Button, pressed bool) error
	Close() error
}
