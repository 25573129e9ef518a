package lights

import (
	"log/slog"
	"sync/atomic"

	"monovator/src/notify"
)

// FloorIndicator is the floor display in the car. It follows FloorChanged
// and reads the floor from the supplied func on the car goroutine.
type FloorIndicator struct {
	floor   atomic.Int64
	changes atomic.Int64
}

func NewFloorIndicator(events *notify.Port, currentFloor func() int) *FloorIndicator {
	ind := &FloorIndicator{}
	events.Subscribe(notify.FloorChanged, func() {
		floor := currentFloor()
		ind.floor.Store(int64(floor))
		ind.changes.Add(1)
		slog.Info("Floor indicator", "floor", floor)
	})
	return ind
}

func (ind *FloorIndicator) Floor() int {
	return int(ind.floor.Load())
}

// Changes counts FloorChanged events seen so far.
func (ind *FloorIndicator) Changes() int {
	return int(ind.changes.Load())
}
