package input

import "syscall"

// Event mirrors the kernel input_event struct (input-event-codes.h).
type Event struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Event types and codes used by the pointer pipeline.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02

	RelX = 0x00
	RelY = 0x01

	SynReport = 0

	BtnLeft   = 0x110
	BtnRight  = 0x111
	BtnMiddle = 0x112
)

// uinput ioctls and limits (uinput.h).
const (
	MaxNameSize = 80
	AbsSize     = 64

	DevCreate  = 0x5501
	DevDestroy = 0x5502

	SetEvBit  = 0x40045564
	SetKeyBit = 0x40045565
	SetRelBit = 0x40045566

	EVIOCGRAB = 0x40044590

	BusUsb = 0x03
)

// ID identifies an input device on the bus.
type ID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// UserDev is the uinput_user_dev setup block written before device creation.
type UserDev struct {
	Name       [MaxNameSize]byte
	ID         ID
	EffectsMax uint32
	Absmax     [AbsSize]int32
	Absmin     [AbsSize]int32
	Absfuzz    [AbsSize]int32
	Absflat    [AbsSize]int32
}
