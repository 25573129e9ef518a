// State types are defined in elev package to make method receivers possible in elev_state.go.
package elev

import (
	"errors"
	"time"

	"monovator/src/callpoint"
	"monovator/src/dispatcher"
	"monovator/src/door"
	"monovator/src/lights"
	"monovator/src/motion"
	"monovator/src/notify"
	"monovator/src/types"
)

var ErrStopped = errors.New("car manager stopped")

// Car bundles everything that must only be touched from the car goroutine.
type Car struct {
	Disp      *dispatcher.Dispatcher
	Motion    *motion.Controller
	Door      *door.Door
	Events    *notify.Port
	Panel     *callpoint.Panel
	Indicator *lights.FloorIndicator

	landings     map[int]*types.Landing
	tickInterval time.Duration
	paused       bool
	doorHold     bool
	userHold     bool
	state        types.CarState
}

// CarCmd is executed on the car goroutine.
type CarCmd struct {
	Exec func(car *Car)
}

// CarMgr owns the car and serializes its access.
type CarMgr struct {
	Cmds chan CarCmd
	done chan struct{}
	err  error
}
