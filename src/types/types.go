package types

import "fmt"

// MotorDirection doubles as the sweep direction. A sweep is only ever
// MD_Up or MD_Down; MD_Stop is reported by the car when it is idle.
type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Stop MotorDirection = 0
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "Up"
	case MD_Down:
		return "Down"
	case MD_Stop:
		return "Stop"
	}
	return fmt.Sprintf("MotorDirection(%d)", int(d))
}

type CarBehaviour int

const (
	Idle CarBehaviour = iota
	Moving
	Arriving
	// Held: a target is queued but the car may not move towards it.
	Held
)

func (b CarBehaviour) String() string {
	switch b {
	case Idle:
		return "Idle"
	case Moving:
		return "Moving"
	case Arriving:
		return "Arriving"
	case Held:
		return "Held"
	}
	return fmt.Sprintf("CarBehaviour(%d)", int(b))
}

// Landing is the physical location of a floor stop.
type Landing struct {
	height float64
}

func NewLanding(height float64) *Landing {
	return &Landing{height: height}
}

func (l *Landing) Height() float64 {
	if l == nil {
		return 0
	}
	return l.height
}

// ArrivalFunc is called once when the car stops for a request.
type ArrivalFunc func(upwardSweep bool)

// FloorRequest is one pending stop.
type FloorRequest struct {
	Floor     int
	Landing   *Landing
	OnArrival ArrivalFunc
}

// Equal reports whether two requests refer to the same stop. Requests from
// different call points for the same landing are the same stop.
func (r FloorRequest) Equal(other FloorRequest) bool {
	return r.Floor == other.Floor && r.Landing == other.Landing
}

func (r FloorRequest) String() string {
	if r.Landing == nil {
		return fmt.Sprintf("Floor(%d@none)", r.Floor)
	}
	return fmt.Sprintf("Floor(%d@%.2f)", r.Floor, r.Landing.Height())
}

func (r FloorRequest) ApplyArrivalState(upwardSweep bool) {
	if r.OnArrival != nil {
		r.OnArrival(upwardSweep)
	}
}

// CarState is a point-in-time view of the car used by readers outside the
// car goroutine.
type CarState struct {
	Floor       int
	Dir         MotorDirection
	CanMove     bool
	DoorOpen    bool
	Paused      bool
	Behaviour   CarBehaviour
	Position    float64
	TargetFloor *int
	UpQueue     []int
	DownQueue   []int
}
