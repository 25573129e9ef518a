package elev

import (
	"context"
	"log/slog"
	"time"

	"monovator/src/types"

	"github.com/tiendc/go-deepcopy"
)

// StartCarMgr starts the goroutine that owns car. It ticks the car, closes
// the door on timeout and runs commands from Cmds until ctx is done.
func StartCarMgr(ctx context.Context, car *Car) *CarMgr {
	carMgr := &CarMgr{
		Cmds: make(chan CarCmd),
		done: make(chan struct{}),
	}
	car.Door.Run(ctx)
	go carMgr.run(ctx, car)
	return carMgr
}

func (carMgr *CarMgr) run(ctx context.Context, car *Car) {
	defer close(carMgr.done)
	ticker := time.NewTicker(car.tickInterval)
	defer ticker.Stop()
	lastTick := time.Now()

	slog.Info("Car manager running", "tickInterval", car.tickInterval)
	for {
		select {
		case <-ctx.Done():
			carMgr.err = ctx.Err()
			slog.Info("Car manager stopped", "reason", carMgr.err)
			return
		case cmd := <-carMgr.Cmds:
			cmd.Exec(car)
		case now := <-ticker.C:
			car.tick(now.Sub(lastTick))
			lastTick = now
		case <-car.Door.Timeout():
			car.Door.HandleTimeout()
			car.refreshState()
		}
	}
}

// Done is closed once the manager goroutine has returned.
func (carMgr *CarMgr) Done() <-chan struct{} {
	return carMgr.done
}

// Err is the reason the manager stopped, valid after Done is closed.
func (carMgr *CarMgr) Err() error {
	<-carMgr.done
	return carMgr.err
}

// Exec runs fn on the car goroutine and waits for it to finish.
func (carMgr *CarMgr) Exec(fn func(car *Car)) error {
	finished := make(chan struct{})
	cmd := CarCmd{Exec: func(car *Car) {
		defer close(finished)
		fn(car)
	}}
	select {
	case carMgr.Cmds <- cmd:
	case <-carMgr.done:
		return ErrStopped
	}
	<-finished
	return nil
}

// AddRequest submits a floor call from any goroutine.
func (carMgr *CarMgr) AddRequest(floor int, landing *types.Landing, onArrival types.ArrivalFunc) error {
	var reqErr error
	if err := carMgr.Exec(func(car *Car) {
		reqErr = car.Disp.AddRequest(floor, landing, onArrival)
		car.refreshState()
	}); err != nil {
		return err
	}
	return reqErr
}

// Call presses the call point on floor.
func (carMgr *CarMgr) Call(floor int) error {
	var panelErr error
	if err := carMgr.Exec(func(car *Car) {
		panelErr = car.Panel.Press(floor, car.Disp)
		car.refreshState()
	}); err != nil {
		return err
	}
	return panelErr
}

// SetHold keeps the car where it is while hold is true. Queued calls are
// kept.
func (carMgr *CarMgr) SetHold(hold bool) error {
	return carMgr.Exec(func(car *Car) {
		slog.Info("Car hold changed", "hold", hold)
		car.setUserHold(hold)
	})
}

// SetPaused stops the simulation clock for the car.
func (carMgr *CarMgr) SetPaused(paused bool) error {
	return carMgr.Exec(func(car *Car) {
		slog.Info("Car paused changed", "paused", paused)
		car.paused = paused
		car.refreshState()
	})
}

// GetState returns a deep copy of the car state.
func (carMgr *CarMgr) GetState() (types.CarState, error) {
	var clone types.CarState
	var copyErr error
	if err := carMgr.Exec(func(car *Car) {
		copyErr = deepcopy.Copy(&clone, &car.state)
	}); err != nil {
		return clone, err
	}
	return clone, copyErr
}
