package dispatcher

import (
	"errors"

	"monovator/src/types"
)

var ErrFloorOutOfRange = errors.New("floor out of range")

// DoorGateway is the car door as seen by the dispatcher.
type DoorGateway interface {
	CanBeOpened() bool
}

type Option func(*Dispatcher)

// WithDoor sets the door consulted on same-floor calls. Without a door the
// same-floor fast path never serves the call directly.
func WithDoor(door DoorGateway) Option {
	return func(d *Dispatcher) {
		d.door = door
	}
}

// WithFloorRange makes AddRequest reject floors outside [lowest, highest].
func WithFloorRange(lowest, highest int) Option {
	return func(d *Dispatcher) {
		d.bounded = true
		d.lowest, d.highest = lowest, highest
	}
}

// WithDirection sets the initial sweep direction. MD_Stop is ignored.
func WithDirection(dir types.MotorDirection) Option {
	return func(d *Dispatcher) {
		if dir == types.MD_Up || dir == types.MD_Down {
			d.dir = dir
		}
	}
}
