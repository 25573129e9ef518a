package motion

import (
	"math"
	"slices"
	"testing"
	"time"

	"monovator/src/dispatcher"
	"monovator/src/notify"
	"monovator/src/types"
)

const (
	testSpeed     = 2.0
	testThreshold = 0.01
	testSpacing   = 3.0
)

type building struct {
	port     *notify.Port
	disp     *dispatcher.Dispatcher
	ctrl     *Controller
	landings []*types.Landing
	sensor   *FloorSensor
}

func newBuilding(numFloors int, withSensor bool) *building {
	b := &building{port: notify.NewPort()}
	b.disp = dispatcher.New(b.port)
	if withSensor {
		b.sensor = NewFloorSensor()
	}
	for f := range numFloors {
		l := types.NewLanding(float64(f) * testSpacing)
		b.landings = append(b.landings, l)
		if b.sensor != nil {
			b.sensor.Add(f, l)
		}
	}
	b.ctrl = NewController(b.disp, testSpeed, testThreshold, b.sensor)
	b.ctrl.Place(0, b.landings[0])
	return b
}

func (b *building) call(floor int, onArrival types.ArrivalFunc) {
	b.disp.AddRequest(floor, b.landings[floor], onArrival)
}

var frame = Context{DeltaTime: 16 * time.Millisecond, Enabled: true}

// runUntilIdle ticks until the dispatcher has no target, up to maxTicks.
func (b *building) runUntilIdle(t *testing.T, maxTicks int) int {
	t.Helper()
	for i := range maxTicks {
		if !b.disp.HasTargetsLeft() {
			return i
		}
		b.ctrl.Tick(frame)
	}
	t.Fatalf("Car still busy after %d ticks, target floor %v", maxTicks, b.disp.UpFloors())
	return maxTicks
}

func TestController_ApproachesTargetProportionally(t *testing.T) {
	b := newBuilding(3, false)
	b.call(2, nil)
	goal := b.landings[2].Height()

	tick := Context{DeltaTime: 100 * time.Millisecond, Enabled: true}
	if got := b.ctrl.Tick(tick); got != types.Moving {
		t.Errorf("Expected Moving, got %v", got)
	}
	if want := goal * 0.2; math.Abs(b.ctrl.Position()-want) > 1e-9 {
		t.Errorf("Expected position %v, got %v", want, b.ctrl.Position())
	}

	prevGap := goal - b.ctrl.Position()
	for range 5 {
		b.ctrl.Tick(tick)
		gap := goal - b.ctrl.Position()
		if math.Abs(gap-prevGap*0.8) > 1e-9 {
			t.Errorf("Expected gap to shrink to %v, got %v", prevGap*0.8, gap)
		}
		prevGap = gap
	}
}

func TestController_ArrivesWithinThreshold(t *testing.T) {
	b := newBuilding(4, false)
	var arrived []int
	b.call(3, func(bool) { arrived = append(arrived, 3) })

	b.runUntilIdle(t, 2000)

	if !slices.Equal(arrived, []int{3}) {
		t.Errorf("Expected one arrival at 3, got %v", arrived)
	}
	if d := math.Abs(b.ctrl.Position() - b.landings[3].Height()); d > testThreshold {
		t.Errorf("Expected position within %v of landing, off by %v", testThreshold, d)
	}
	if b.disp.CurrentFloor() != 3 {
		t.Errorf("Expected floor 3, got %d", b.disp.CurrentFloor())
	}
	if got := b.ctrl.Tick(frame); got != types.Idle {
		t.Errorf("Expected Idle after arrival, got %v", got)
	}
}

func TestController_LargeStepSnapsToTarget(t *testing.T) {
	b := newBuilding(2, false)
	b.call(1, nil)
	got := b.ctrl.Tick(Context{DeltaTime: time.Second, Enabled: true})
	if got != types.Arriving {
		t.Errorf("Expected Arriving, got %v", got)
	}
	if b.ctrl.Position() != b.landings[1].Height() {
		t.Errorf("Expected exact landing height, got %v", b.ctrl.Position())
	}
	if b.disp.HasTargetsLeft() {
		t.Errorf("Expected idle after arrival")
	}
}

func TestController_HeldCarDoesNotMove(t *testing.T) {
	b := newBuilding(3, false)
	b.call(2, nil)

	b.ctrl.Tick(Context{DeltaTime: frame.DeltaTime, Enabled: false})
	if b.ctrl.Position() != 0 {
		t.Errorf("Expected no movement while disabled, got %v", b.ctrl.Position())
	}

	b.disp.SetCanMove(false)
	for range 100 {
		b.ctrl.Tick(frame)
	}
	if b.ctrl.Position() != 0 {
		t.Errorf("Expected no movement while can move is false, got %v", b.ctrl.Position())
	}
	if !b.disp.HasTargetsLeft() {
		t.Errorf("Expected the call to stay queued")
	}

	b.disp.SetCanMove(true)
	b.ctrl.Tick(frame)
	if b.ctrl.Position() <= 0 {
		t.Errorf("Expected the car to move once released")
	}
}

func TestController_IdleWithoutTarget(t *testing.T) {
	b := newBuilding(2, false)
	if got := b.ctrl.Tick(frame); got != types.Idle {
		t.Errorf("Expected Idle, got %v", got)
	}
	if b.ctrl.Travelling() {
		t.Errorf("Expected idle car not to be travelling")
	}
}

func TestController_ServesScenarioInOrder(t *testing.T) {
	b := newBuilding(6, false)
	arrivals := 0
	b.port.Subscribe(notify.Arrived, func() { arrivals++ })
	var served []int
	for _, f := range []int{3, 1, 5} {
		b.call(f, func(bool) { served = append(served, f) })
	}

	b.runUntilIdle(t, 5000)

	if !slices.Equal(served, []int{1, 3, 5}) {
		t.Errorf("Expected [1 3 5], got %v", served)
	}
	if arrivals != 3 {
		t.Errorf("Expected 3 arrivals, got %d", arrivals)
	}
}

func TestController_SensorReportsPassedFloors(t *testing.T) {
	b := newBuilding(6, true)
	var floors []int
	b.port.Subscribe(notify.FloorChanged, func() { floors = append(floors, b.disp.CurrentFloor()) })
	b.call(5, nil)

	b.runUntilIdle(t, 5000)

	if len(floors) == 0 || floors[len(floors)-1] != 5 {
		t.Fatalf("Expected to end on floor 5, got %v", floors)
	}
	if !slices.IsSorted(floors) || len(slices.Compact(slices.Clone(floors))) != len(floors) {
		t.Errorf("Expected strictly increasing floors, got %v", floors)
	}
	if !slices.Contains(floors, 1) {
		t.Errorf("Expected floor 1 to be passed, got %v", floors)
	}
}

func TestController_PlaceSetsFloorOnce(t *testing.T) {
	port := notify.NewPort()
	changes := 0
	port.Subscribe(notify.FloorChanged, func() { changes++ })
	disp := dispatcher.New(port)
	ctrl := NewController(disp, testSpeed, testThreshold, nil)

	ctrl.Place(2, types.NewLanding(7.5))

	if changes != 1 {
		t.Errorf("Expected one FloorChanged, got %d", changes)
	}
	if ctrl.Position() != 7.5 || disp.CurrentFloor() != 2 {
		t.Errorf("Expected floor 2 at 7.5, got floor %d at %v", disp.CurrentFloor(), ctrl.Position())
	}
}

func TestController_HoldsForCallWithoutLanding(t *testing.T) {
	b := newBuilding(3, true)
	b.ctrl.Place(2, b.landings[2])
	arrivals := 0
	b.port.Subscribe(notify.Arrived, func() { arrivals++ })

	b.disp.AddRequest(9, nil, nil)
	for range 1000 {
		if got := b.ctrl.Tick(frame); got != types.Held {
			t.Fatalf("Expected Held, got %v", got)
		}
	}

	if arrivals != 0 {
		t.Errorf("Expected no arrival, got %d", arrivals)
	}
	if b.ctrl.Position() != b.landings[2].Height() {
		t.Errorf("Expected car to stay at %v, got %v", b.landings[2].Height(), b.ctrl.Position())
	}
	if b.disp.CurrentFloor() != 2 {
		t.Errorf("Expected floor 2, got %d", b.disp.CurrentFloor())
	}
	if !slices.Equal(b.disp.UpFloors(), []int{9}) {
		t.Errorf("Expected call to stay queued, got %v", b.disp.UpFloors())
	}
}

func TestController_SensorReportsBasementFloor(t *testing.T) {
	port := notify.NewPort()
	disp := dispatcher.New(port)
	sensor := NewFloorSensor()
	landings := map[int]*types.Landing{-2: types.NewLanding(-6), -1: types.NewLanding(-3), 0: types.NewLanding(0)}
	for f, l := range landings {
		sensor.Add(f, l)
	}
	ctrl := NewController(disp, testSpeed, testThreshold, sensor)
	ctrl.Place(0, landings[0])
	disp.AddRequest(-2, landings[-2], nil)

	for range 5000 {
		if ctrl.Position() < -3 {
			break
		}
		ctrl.Tick(frame)
	}

	if ctrl.Position() >= -3 {
		t.Fatalf("Expected car below floor -1, got %v", ctrl.Position())
	}
	if disp.CurrentFloor() != -1 {
		t.Errorf("Expected floor -1 after passing it, got %d", disp.CurrentFloor())
	}
}

func TestController_HeldBehaviour(t *testing.T) {
	b := newBuilding(3, false)
	b.call(1, nil)
	b.call(2, nil)
	for b.disp.UpFloors()[0] == 1 {
		b.ctrl.Tick(frame)
	}

	b.disp.SetCanMove(false)
	if got := b.ctrl.Tick(frame); got != types.Held {
		t.Errorf("Expected Held after arrival while door holds the car, got %v", got)
	}
	if b.ctrl.Behaviour() != types.Held {
		t.Errorf("Expected Behaviour Held, got %v", b.ctrl.Behaviour())
	}
	if b.ctrl.Travelling() {
		t.Errorf("Expected car standing at a landing not to be travelling")
	}

	b.disp.SetCanMove(true)
	b.ctrl.Tick(frame)
	b.disp.SetCanMove(false)
	b.ctrl.Tick(Context{DeltaTime: frame.DeltaTime, Enabled: false})
	if !b.ctrl.Travelling() {
		t.Errorf("Expected car held between floors to be travelling")
	}
}
