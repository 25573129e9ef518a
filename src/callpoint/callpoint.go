// Package callpoint models the call buttons on each landing.
package callpoint

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"monovator/src/types"
)

// Submitter accepts floor calls, typically an elev.CarMgr.
type Submitter interface {
	AddRequest(floor int, landing *types.Landing, onArrival types.ArrivalFunc) error
}

// CallPoint is a call button. Its lamp is read from other goroutines than the
// one serving the car, so state is atomic.
type CallPoint struct {
	Floor   int
	Landing *types.Landing

	lamp      atomic.Bool
	served    atomic.Int64
	lastSweep atomic.Int32
}

func New(floor int, landing *types.Landing) *CallPoint {
	return &CallPoint{Floor: floor, Landing: landing}
}

// Press lights the lamp and calls the car.
func (c *CallPoint) Press(s Submitter) error {
	c.lamp.Store(true)
	if err := s.AddRequest(c.Floor, c.Landing, c.applyArrivalState); err != nil {
		c.lamp.Store(false)
		return fmt.Errorf("call floor %d: %w", c.Floor, err)
	}
	return nil
}

func (c *CallPoint) applyArrivalState(upwardSweep bool) {
	c.lamp.Store(false)
	c.served.Add(1)
	dir := types.MD_Down
	if upwardSweep {
		dir = types.MD_Up
	}
	c.lastSweep.Store(int32(dir))
	slog.Debug("Call served", "floor", c.Floor, "sweep", dir)
}

func (c *CallPoint) LampOn() bool {
	return c.lamp.Load()
}

// Served counts how many times the car has answered this call point.
func (c *CallPoint) Served() int {
	return int(c.served.Load())
}

// LastSweep is the direction the car was sweeping when it last answered, or
// MD_Stop if it never has.
func (c *CallPoint) LastSweep() types.MotorDirection {
	return types.MotorDirection(c.lastSweep.Load())
}

// Panel is the set of call points in a building, one per floor.
type Panel struct {
	points map[int]*CallPoint
}

func NewPanel() *Panel {
	return &Panel{points: make(map[int]*CallPoint)}
}

func (p *Panel) Add(cp *CallPoint) {
	p.points[cp.Floor] = cp
}

func (p *Panel) Get(floor int) (*CallPoint, bool) {
	cp, ok := p.points[floor]
	return cp, ok
}

// Press presses the call point on floor. Floors without a call point are
// called anyway, with no landing and no lamp.
func (p *Panel) Press(floor int, s Submitter) error {
	if cp, ok := p.points[floor]; ok {
		return cp.Press(s)
	}
	slog.Warn("No call point on floor", "floor", floor)
	return s.AddRequest(floor, nil, nil)
}

func (p *Panel) Floors() []int {
	floors := make([]int, 0, len(p.points))
	for f := range p.points {
		floors = append(floors, f)
	}
	slices.Sort(floors)
	return floors
}

// FormatLamps renders the lamps bottom to top, e.g. "0:- 1:* 2:-".
func (p *Panel) FormatLamps() string {
	var b strings.Builder
	for i, f := range p.Floors() {
		if i > 0 {
			b.WriteByte(' ')
		}
		mark := "-"
		if p.points[f].LampOn() {
			mark = "*"
		}
		fmt.Fprintf(&b, "%d:%s", f, mark)
	}
	return b.String()
}
