// Package motion moves the car towards the dispatcher's target once per tick.
package motion

import (
	"log/slog"
	"math"
	"time"

	"monovator/src/dispatcher"
	"monovator/src/types"
)

// Context is the per-tick input from whatever drives the simulation.
type Context struct {
	DeltaTime time.Duration
	Enabled   bool
}

type Controller struct {
	disp      *dispatcher.Dispatcher
	sensor    *FloorSensor
	speed     float64
	threshold float64
	y         float64
	behaviour types.CarBehaviour
	enRoute   bool
	// floor of the last call reported as having no landing
	noLanding *int
}

// NewController returns a controller for the car at height 0. speed is the
// fraction of the remaining distance covered per second, threshold the
// distance at which the car counts as arrived. sensor may be nil.
func NewController(disp *dispatcher.Dispatcher, speed, threshold float64, sensor *FloorSensor) *Controller {
	return &Controller{
		disp:      disp,
		sensor:    sensor,
		speed:     speed,
		threshold: threshold,
	}
}

// Place puts the car at landing and tells the dispatcher it is on floor.
func (c *Controller) Place(floor int, landing *types.Landing) {
	c.y = landing.Height()
	c.enRoute = false
	slog.Info("Car placed", "floor", floor, "height", c.y)
	c.disp.SetCurrentFloor(floor)
}

// Tick moves the car a share speed*dt of the remaining distance and hands
// over to the dispatcher on arrival. The car is held while the tick is
// disabled, the dispatcher cannot move, or the target has no landing to
// drive to. A held car keeps its target queued.
func (c *Controller) Tick(tick Context) types.CarBehaviour {
	target, ok := c.disp.Target()
	if !ok {
		c.behaviour = types.Idle
		return c.behaviour
	}
	if !tick.Enabled || !c.disp.CanMove() {
		c.behaviour = types.Held
		return c.behaviour
	}
	if target.Landing == nil {
		c.warnNoLanding(target.Floor)
		c.behaviour = types.Held
		return c.behaviour
	}
	c.noLanding = nil

	goal := target.Landing.Height()
	prev := c.y
	c.y = lerp(c.y, goal, c.speed*tick.DeltaTime.Seconds())
	c.crossFloors(prev, target.Floor)

	if math.Abs(c.y-goal) > c.threshold {
		c.behaviour = types.Moving
		c.enRoute = true
		return c.behaviour
	}
	c.behaviour = types.Arriving
	c.enRoute = false
	c.disp.Arrive()
	return c.behaviour
}

func (c *Controller) warnNoLanding(floor int) {
	if c.noLanding != nil && *c.noLanding == floor {
		return
	}
	slog.Warn("Target floor has no landing, holding car", "floor", floor)
	c.noLanding = &floor
}

func (c *Controller) crossFloors(prev float64, targetFloor int) {
	if c.sensor == nil {
		return
	}
	floor, ok := c.sensor.Crossed(prev, c.y, targetFloor)
	if ok && floor != c.disp.CurrentFloor() {
		slog.Debug("Passed floor", "floor", floor, "height", c.y)
		c.disp.SetCurrentFloor(floor)
	}
}

func (c *Controller) Position() float64 {
	return c.y
}

// Behaviour is the state reported by the last tick.
func (c *Controller) Behaviour() types.CarBehaviour {
	return c.behaviour
}

// Travelling reports whether the car is between stops, including while it
// is held on the way.
func (c *Controller) Travelling() bool {
	return c.enRoute
}

func lerp(from, to, t float64) float64 {
	t = max(0, min(1, t))
	return from + (to-from)*t
}
