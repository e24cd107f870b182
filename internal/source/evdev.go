package source

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/relabs-tech/cursor_stabilizer/internal/input"
)

// evdevSource reads relative motion and button events straight from a
// /dev/input/eventX node. Deltas between SYN_REPORT markers are merged into
// one sample so a diagonal move arrives as a single event.
type evdevSource struct {
	file  *os.File
	start time.Time

	x, y    float64
	grabbed bool

	mu     sync.Mutex
	closed bool
}

// OpenEvdev opens an evdev device node. With grab set the device is taken
// exclusively so the raw motion does not reach the desktop twice.
func OpenEvdev(path string, grab bool) (Source, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", path, err)
	}

	s := &evdevSource{file: f, start: time.Now()}
	if grab {
		if err := ioctl(f, input.EVIOCGRAB, 1); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("grab input device %s: %w", path, err)
		}
		s.grabbed = true
	}
	return s, nil
}

func (s *evdevSource) Next() (Event, error) {
	var dx, dy float64
	pending := false

	buf := make([]byte, binary.Size(input.Event{}))
	for {
		if _, err := s.file.Read(buf); err != nil {
			if s.isClosed() {
				return Event{}, ErrClosed
			}
			return Event{}, fmt.Errorf("evdev read: %w", err)
		}

		ev := decodeEvent(buf)
		switch ev.Type {
		case input.EvRel:
			switch ev.Code {
			case input.RelX:
				dx += float64(ev.Value)
				pending = true
			case input.RelY:
				dy += float64(ev.Value)
				pending = true
			}

		case input.EvKey:
			btn, ok := buttonFromCode(ev.Code)
			if !ok {
				continue
			}
			return Event{Kind: EventButton, Button: btn, Pressed: ev.Value != 0}, nil

		case input.EvSyn:
			if ev.Code != input.SynReport || !pending {
				continue
			}
			s.x += dx
			s.y += dy
			return Event{
				Kind: EventMotion,
				X:    s.x,
				Y:    s.y,
				T:    time.Since(s.start).Seconds(),
			}, nil
		}
	}
}

func decodeEvent(buf []byte) input.Event {
	var e input.Event
	e.Time.Sec = int64(binary.LittleEndian.Uint64(buf[0:8]))
	e.Time.Usec = int64(binary.LittleEndian.Uint64(buf[8:16]))
	e.Type = binary.LittleEndian.Uint16(buf[16:18])
	e.Code = binary.LittleEndian.Uint16(buf[18:20])
	e.Value = int32(binary.LittleEndian.Uint32(buf[20:24]))
	return e
}

func buttonFromCode(code uint16) (Button, bool) {
	switch code {
	case input.BtnLeft:
		return ButtonLeft, true
	case input.BtnRight:
		return ButtonRight, true
	case input.BtnMiddle:
		return ButtonMiddle, true
	}
	return 0, false
}

func (s *evdevSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *evdevSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.grabbed {
		_ = ioctl(s.file, input.EVIOCGRAB, 0)
		s.grabbed = false
	}
	return s.file.Close()
}

func ioctl(f *os.File, op, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), op, arg)
	if errno != 0 {
		return errno
	}
	return nil
}
