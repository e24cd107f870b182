package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/cursor_stabilizer/internal/motion"
	"github.com/relabs-tech/cursor_stabilizer/internal/sink"
	"github.com/relabs-tech/cursor_stabilizer/internal/source"
)

// scriptedSource replays a fixed event sequence and then reports closure,
// which makes runEventLoop terminate deterministically.
type scriptedSource struct {
	events []source.Event
	i      int
}

func (s *scriptedSource) Next() (source.Event, error) {
	if s.i >= len(s.events) {
		return source.Event{}, source.ErrClosed
	}
	ev := s.events[s.i]
	s.i++
	return ev, nil
}

func (s *scriptedSource) Close() error { return nil }

func motionEvent(x, y, t float64) source.Event {
	return source.Event{Kind: source.EventMotion, X: x, Y: y, T: t}
}

func TestEventLoopEmitsRelativeMoves(t *testing.T) {
	src := &scriptedSource{events: []source.Event{
		motionEvent(100, 200, 0.01),
		motionEvent(102, 200, 0.02),
		motionEvent(104, 201, 0.03),
	}}
	cursor := sink.NewMock()
	ctrl := motion.NewController(motion.DefaultParams())
	ctrl.SetEnabled(true)

	runEventLoop(src, cursor, ctrl)

	// The first sample seeds the output position, the rest become deltas.
	moves := cursor.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, sink.MockMove{DX: 2, DY: 0}, moves[0])
	assert.Equal(t, sink.MockMove{DX: 2, DY: 1}, moves[1])
}

func TestEventLoopAccumulatesSubPixelMotion(t *testing.T) {
	src := &scriptedSource{events: []source.Event{
		motionEvent(0, 0, 0.01),
		motionEvent(0.4, 0, 0.02),
		motionEvent(0.8, 0, 0.03),
		motionEvent(1.2, 0, 0.04),
	}}
	cursor := sink.NewMock()
	ctrl := motion.NewController(motion.DefaultParams())
	ctrl.SetEnabled(true)

	runEventLoop(src, cursor, ctrl)

	// 0.4 rounds away, 0.8 finally crosses to a whole unit, 1.2 leaves a
	// remainder again. Only one physical move comes out.
	moves := cursor.Moves()
	require.Len(t, moves, 1)
	assert.Equal(t, sink.MockMove{DX: 1, DY: 0}, moves[0])
}

func TestEventLoopForwardsButtonsWhileDisabled(t *testing.T) {
	src := &scriptedSource{events: []source.Event{
		{Kind: source.EventButton, Button: source.ButtonLeft, Pressed: true},
		{Kind: source.EventButton, Button: source.ButtonLeft, Pressed: false},
		{Kind: source.EventButton, Button: source.ButtonRight, Pressed: true},
	}}
	cursor := sink.NewMock()
	ctrl := motion.NewController(motion.DefaultParams())
	ctrl.SetEnabled(false)

	runEventLoop(src, cursor, ctrl)

	buttons := cursor.Buttons()
	require.Len(t, buttons, 3)
	assert.Equal(t, sink.MockButton{Button: sink.ButtonLeft, Pressed: true}, buttons[0])
	assert.Equal(t, sink.MockButton{Button: sink.ButtonLeft, Pressed: false}, buttons[1])
	assert.Equal(t, sink.MockButton{Button: sink.ButtonRight, Pressed: true}, buttons[2])
}

func TestEventLoopIgnoresInfoAndErrorEvents(t *testing.T) {
	src := &scriptedSource{events: []source.Event{
		{Kind: source.EventInfo, Text: "Mouse Interceptor v2 (USB Host Shield)"},
		{Kind: source.EventDeviceError, Text: "device reset"},
		motionEvent(10, 10, 0.01),
	}}
	cursor := sink.NewMock()
	ctrl := motion.NewController(motion.DefaultParams())
	ctrl.SetEnabled(true)

	runEventLoop(src, cursor, ctrl)

	assert.Empty(t, cursor.Moves())
	assert.Empty(t, cursor.Buttons())
}
