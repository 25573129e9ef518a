// Package dispatcher decides the order in which the car serves floor calls.
//
// Calls above the car go to the up queue, calls below to the down queue. The
// car finishes the sweep in its current direction before turning around
// (SCAN/LOOK), and its target is always the head of the queue for the
// current direction.
package dispatcher

import (
	"fmt"
	"log/slog"

	"monovator/src/notify"
	"monovator/src/types"
)

// Dispatcher is not safe for concurrent use; see elev.CarMgr.
type Dispatcher struct {
	up      *requestQueue
	down    *requestQueue
	floor   int
	dir     types.MotorDirection
	canMove bool

	target    types.FloorRequest
	hasTarget bool

	door    DoorGateway
	events  *notify.Port
	bounded bool
	lowest  int
	highest int
}

// New returns an idle dispatcher at floor 0 sweeping up. A nil port gets a
// private one.
func New(events *notify.Port, opts ...Option) *Dispatcher {
	if events == nil {
		events = notify.NewPort()
	}
	d := &Dispatcher{
		up:      newRequestQueue(types.MD_Up),
		down:    newRequestQueue(types.MD_Down),
		dir:     types.MD_Up,
		canMove: true,
		events:  events,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddRequest routes a call for floor. Calls for the car's current floor are
// parked in the queue opposite to the sweep and, if the door can open, served
// on the spot. The only error is ErrFloorOutOfRange, and only when the
// dispatcher was built WithFloorRange.
func (d *Dispatcher) AddRequest(floor int, landing *types.Landing, onArrival types.ArrivalFunc) error {
	if d.bounded && (floor < d.lowest || floor > d.highest) {
		slog.Warn("Rejected call outside building", "floor", floor, "lowest", d.lowest, "highest", d.highest)
		return fmt.Errorf("floor %d not in %d..%d: %w", floor, d.lowest, d.highest, ErrFloorOutOfRange)
	}
	req := types.FloorRequest{Floor: floor, Landing: landing, OnArrival: onArrival}

	switch {
	case floor > d.floor:
		d.enqueue(d.up, req)
	case floor < d.floor:
		d.enqueue(d.down, req)
	default:
		d.sameFloorCall(req)
	}
	return nil
}

func (d *Dispatcher) sameFloorCall(req types.FloorRequest) {
	opposite := d.down
	if d.dir == types.MD_Down {
		opposite = d.up
	}
	slog.Debug("Same floor call", "floor", req.Floor, "dir", d.dir, "parkedIn", opposite.dir)
	d.enqueue(opposite, req)

	d.events.Publish(notify.SameFloorCalled)
	if d.door != nil && d.door.CanBeOpened() {
		req.ApplyArrivalState(false)
	}
}

func (d *Dispatcher) enqueue(q *requestQueue, req types.FloorRequest) {
	if !q.insert(req) {
		slog.Debug("Floor already queued", "floor", req.Floor, "queue", q.dir)
		return
	}
	slog.Debug("Queued floor", "floor", req.Floor, "queue", q.dir, "len", q.len())
	d.callStartedMove()
	d.SetTargetFloor()
}

// callStartedMove must run before re-targeting so that it sees the idle state.
func (d *Dispatcher) callStartedMove() {
	if !d.hasTarget {
		slog.Debug("Leaving idle", "floor", d.floor)
		d.events.Publish(notify.StartedMoving)
	}
}

// SetTargetFloor picks the next stop: the head of the queue for the current
// direction, turning around first if that queue is empty. With both queues
// empty the car goes idle.
func (d *Dispatcher) SetTargetFloor() {
	if d.up.empty() && d.down.empty() {
		if d.hasTarget {
			slog.Debug("Both queues empty, going idle", "floor", d.floor)
		}
		d.target, d.hasTarget = types.FloorRequest{}, false
		return
	}

	if d.up.empty() && d.dir == types.MD_Up {
		slog.Debug("Up queue empty, switching direction", "dir", types.MD_Down)
		d.dir = types.MD_Down
	}
	if d.down.empty() && d.dir == types.MD_Down {
		slog.Debug("Down queue empty, switching direction", "dir", types.MD_Up)
		d.dir = types.MD_Up
	}

	next, _ := d.queue(d.dir).head()
	if !d.hasTarget || next.Floor != d.target.Floor {
		slog.Debug("New target", "request", next, "dir", d.dir)
	}
	d.target, d.hasTarget = next, true
}

// Arrive serves the current target. It is called by the motion controller
// once the car is within the arrival threshold. Without a target it does
// nothing.
func (d *Dispatcher) Arrive() {
	if !d.hasTarget {
		slog.Debug("Arrive with no target ignored", "floor", d.floor)
		return
	}
	upward := d.dir == types.MD_Up
	served, ok := d.queue(d.dir).pop()
	if !ok {
		served = d.target
	}
	slog.Info("Arrived", "request", served, "dir", d.dir)

	d.SetCurrentFloor(served.Floor)
	served.ApplyArrivalState(upward)
	d.events.Publish(notify.Arrived)
	d.SetTargetFloor()
}

// SetCurrentFloor records the floor the car is at and publishes
// FloorChanged, even if the floor is unchanged.
func (d *Dispatcher) SetCurrentFloor(floor int) {
	d.floor = floor
	d.events.Publish(notify.FloorChanged)
}

func (d *Dispatcher) CurrentFloor() int {
	return d.floor
}

func (d *Dispatcher) Direction() types.MotorDirection {
	return d.dir
}

func (d *Dispatcher) SetCanMove(canMove bool) {
	if d.canMove != canMove {
		slog.Debug("Can move changed", "canMove", canMove)
	}
	d.canMove = canMove
}

func (d *Dispatcher) CanMove() bool {
	return d.canMove
}

// Target returns the stop the car is heading for.
func (d *Dispatcher) Target() (types.FloorRequest, bool) {
	return d.target, d.hasTarget
}

func (d *Dispatcher) HasTargetsLeft() bool {
	return d.hasTarget
}

func (d *Dispatcher) Events() *notify.Port {
	return d.events
}

// UpFloors and DownFloors list the queued floors in service order.
func (d *Dispatcher) UpFloors() []int {
	return d.up.appendFloors(nil)
}

func (d *Dispatcher) DownFloors() []int {
	return d.down.appendFloors(nil)
}

// WriteState fills the dispatcher part of s, reusing its slices.
func (d *Dispatcher) WriteState(s *types.CarState) {
	s.Floor = d.floor
	s.Dir = d.dir
	s.CanMove = d.canMove
	s.UpQueue = d.up.appendFloors(s.UpQueue[:0])
	s.DownQueue = d.down.appendFloors(s.DownQueue[:0])
	if d.hasTarget {
		floor := d.target.Floor
		s.TargetFloor = &floor
	} else {
		s.TargetFloor = nil
	}
}

func (d *Dispatcher) queue(dir types.MotorDirection) *requestQueue {
	if dir == types.MD_Up {
		return d.up
	}
	return d.down
}
