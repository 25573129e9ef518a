package elev

import (
	"fmt"
	"log/slog"
	"time"

	"monovator/src/callpoint"
	"monovator/src/config"
	"monovator/src/dispatcher"
	"monovator/src/door"
	"monovator/src/lights"
	"monovator/src/motion"
	"monovator/src/notify"
	"monovator/src/types"
)

// NewCar wires a car from cfg and places it at the starting floor.
func NewCar(cfg config.Config) (*Car, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	events := notify.NewPort()
	sensor := motion.NewFloorSensor()
	panel := callpoint.NewPanel()
	landings := make(map[int]*types.Landing, len(cfg.Landings))
	for _, l := range cfg.Landings {
		landing := types.NewLanding(l.Height)
		landings[l.Floor] = landing
		sensor.Add(l.Floor, landing)
		panel.Add(callpoint.New(l.Floor, landing))
	}

	car := &Car{
		Door:         door.New(cfg.DoorOpenDuration()),
		Events:       events,
		Panel:        panel,
		landings:     landings,
		tickInterval: cfg.TickInterval(),
	}

	opts := []dispatcher.Option{dispatcher.WithDoor(car.Door)}
	if cfg.EnforceBounds {
		opts = append(opts, dispatcher.WithFloorRange(cfg.FloorRange()))
	}
	car.Disp = dispatcher.New(events, opts...)
	car.Motion = motion.NewController(car.Disp, cfg.MovementSpeed, cfg.ArrivalThreshold, sensor)
	car.Door.Attach(events, car.Motion.Travelling, car.setDoorHold)
	car.Indicator = lights.NewFloorIndicator(events, car.Disp.CurrentFloor)

	if err := car.Place(cfg.StartingFloor); err != nil {
		return nil, err
	}
	slog.Debug("Car initialized", "floors", len(landings), "startingFloor", cfg.StartingFloor)
	return car, nil
}

// Place moves the car straight to floor's landing.
func (car *Car) Place(floor int) error {
	landing, ok := car.landings[floor]
	if !ok {
		return fmt.Errorf("place car at floor %d: %w", floor, dispatcher.ErrFloorOutOfRange)
	}
	car.Motion.Place(floor, landing)
	car.refreshState()
	return nil
}

// Landing returns the landing for floor, or nil if the building has none.
func (car *Car) Landing(floor int) *types.Landing {
	return car.landings[floor]
}

func (car *Car) tick(dt time.Duration) {
	dt = min(dt, config.MaxTickDelta)
	car.Motion.Tick(motion.Context{DeltaTime: dt, Enabled: !car.paused})
	car.refreshState()
}

func (car *Car) setDoorHold(canMove bool) {
	car.doorHold = !canMove
	car.updateCanMove()
}

func (car *Car) setUserHold(hold bool) {
	car.userHold = hold
	car.updateCanMove()
}

func (car *Car) updateCanMove() {
	car.Disp.SetCanMove(!car.doorHold && !car.userHold)
	car.refreshState()
}

func (car *Car) refreshState() {
	car.Disp.WriteState(&car.state)
	car.state.DoorOpen = car.Door.IsOpen()
	car.state.Paused = car.paused
	car.state.Behaviour = car.Motion.Behaviour()
	car.state.Position = car.Motion.Position()
}
