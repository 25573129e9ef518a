package motion

import (
	"math"
	"slices"

	"monovator/src/types"
)

// FloorSensor reports which landings the car passed during a tick.
type FloorSensor struct {
	landings []sensedLanding
}

type sensedLanding struct {
	floor  int
	height float64
}

func NewFloorSensor() *FloorSensor {
	return &FloorSensor{}
}

// Add registers the landing for floor, replacing any earlier one.
func (s *FloorSensor) Add(floor int, landing *types.Landing) {
	s.landings = slices.DeleteFunc(s.landings, func(l sensedLanding) bool {
		return l.floor == floor
	})
	s.landings = append(s.landings, sensedLanding{floor: floor, height: landing.Height()})
}

// Crossed returns the floor of the landing passed on the way from prev to y
// that lies closest to y, skipping the floor in exclude. The starting height
// itself does not count as crossed. ok is false when no landing was passed.
func (s *FloorSensor) Crossed(prev, y float64, exclude int) (floor int, ok bool) {
	if prev == y {
		return 0, false
	}
	best := math.Inf(1)
	for _, l := range s.landings {
		if l.floor == exclude || !between(l.height, prev, y) {
			continue
		}
		if d := math.Abs(y - l.height); d < best {
			floor, best, ok = l.floor, d, true
		}
	}
	return floor, ok
}

// between reports whether h lies in (from, to] travelling from from to to.
func between(h, from, to float64) bool {
	if from < to {
		return h > from && h <= to
	}
	return h < from && h >= to
}
