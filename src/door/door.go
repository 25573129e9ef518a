// Package door is the car door: it opens when the car stops, keeps the car
// from moving while open and closes again after a fixed time.
package door

import (
	"context"
	"log/slog"
	"time"

	"monovator/src/notify"
	"monovator/src/timer"
)

// Door is owned by the car goroutine, like the dispatcher it serves.
type Door struct {
	open       bool
	duration   time.Duration
	travelling func() bool
	hold       func(canMove bool)
	action     chan timer.TimerAction
	timeout    chan bool
}

func New(duration time.Duration) *Door {
	return &Door{
		duration: duration,
		action:   make(chan timer.TimerAction, 1),
		timeout:  make(chan bool, 1),
	}
}

// Attach subscribes the door to the car's events. travelling reports whether
// the car is between stops; hold is called with false when the door opens
// and true when it closes.
func (d *Door) Attach(events *notify.Port, travelling func() bool, hold func(canMove bool)) {
	d.travelling = travelling
	d.hold = hold
	events.Subscribe(notify.Arrived, d.Open)
	events.Subscribe(notify.SameFloorCalled, func() {
		if d.CanBeOpened() {
			d.Open()
		}
	})
}

// Run starts the door timer. It returns immediately.
func (d *Door) Run(ctx context.Context) {
	go timer.Timer(ctx, d.duration, d.timeout, d.action)
}

// Timeout delivers door timer expiries; the owner calls HandleTimeout.
func (d *Door) Timeout() <-chan bool {
	return d.timeout
}

// CanBeOpened reports whether the car is standing at a landing.
func (d *Door) CanBeOpened() bool {
	return d.travelling == nil || !d.travelling()
}

// Open opens the door, or keeps it open for another full period.
func (d *Door) Open() {
	if !d.open {
		slog.Debug("Opening door")
	}
	d.open = true
	if d.hold != nil {
		d.hold(false)
	}
	select {
	case d.action <- timer.Start:
	default:
	}
}

func (d *Door) HandleTimeout() {
	if !d.open {
		slog.Debug("Door timeout ignored - door not open")
		return
	}
	slog.Debug("Closing door")
	d.open = false
	if d.hold != nil {
		d.hold(true)
	}
}

func (d *Door) IsOpen() bool {
	return d.open
}
