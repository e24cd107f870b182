package source

import (
	"fmt"
	"strconv"
	"strings"
)

// Serial record format, one ASCII record per line:
//
//	M,<dx>,<dy>   relative motion
//	L,<0|1>       left button state
//	R,<0|1>       right button state
//	N,<0|1>       middle button state
//	I,<text>      informational message
//	E,<text>      error message
type record struct {
	kind    Kind
	dx, dy  int
	button  Button
	pressed bool
	text    string
}

func parseRecord(line string) (record, error) {
	parts := strings.Split(line, ",")
	switch parts[0] {
	case "M":
		if len(parts) < 3 {
			return record{}, fmt.Errorf("motion record %q: missing fields", line)
		}
		dx, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return record{}, fmt.Errorf("motion record %q: bad dx: %w", line, err)
		}
		dy, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return record{}, fmt.Errorf("motion record %q: bad dy: %w", line, err)
		}
		return record{kind: EventMotion, dx: dx, dy: dy}, nil

	case "L", "R", "N":
		if len(parts) < 2 {
			return record{}, fmt.Errorf("button record %q: missing state", line)
		}
		state := strings.TrimSpace(parts[1])
		if state != "0" && state != "1" {
			return record{}, fmt.Errorf("button record %q: state must be 0 or 1", line)
		}
		btn := ButtonLeft
		switch parts[0] {
		case "R":
			btn = ButtonRight
		case "N":
			btn = ButtonMiddle
		}
		return record{kind: EventButton, button: btn, pressed: state == "1"}, nil

	case "I":
		return record{kind: EventInfo, text: strings.Join(parts[1:], ",")}, nil

	case "E":
		return record{kind: EventDeviceError, text: strings.Join(parts[1:], ",")}, nil
	}
	return record{}, fmt.Errorf("unknown record type %q", line)
}
