package config

import (
	"fmt"
	"time"

	"github.com/tiendc/go-deepcopy"
)

const (
	NumFloors           = 6
	FloorSpacing        = 3.0
	StartingFloor       = 0
	MovementSpeed       = 2.0
	ArrivalThreshold    = 0.01
	TickInterval        = 16 * time.Millisecond
	DoorOpenDuration    = 3 * time.Second
	MaxTickDelta        = 250 * time.Millisecond
	StatusPrintInterval = time.Second
)

// LandingConfig places one floor in the shaft.
type LandingConfig struct {
	Floor  int     `yaml:"floor"`
	Height float64 `yaml:"height"`
}

type Config struct {
	MovementSpeed    float64         `yaml:"movement_speed"`
	ArrivalThreshold float64         `yaml:"arrival_threshold"`
	TickIntervalMs   int             `yaml:"tick_interval_ms"`
	DoorOpenSeconds  float64         `yaml:"door_open_seconds"`
	StartingFloor    int             `yaml:"starting_floor"`
	EnforceBounds    bool            `yaml:"enforce_bounds"`
	Landings         []LandingConfig `yaml:"landings"`
	LogLevel         string          `yaml:"log_level"`
	LogFile          string          `yaml:"log_file"`
}

var defaults = Config{
	MovementSpeed:    MovementSpeed,
	ArrivalThreshold: ArrivalThreshold,
	TickIntervalMs:   int(TickInterval / time.Millisecond),
	DoorOpenSeconds:  DoorOpenDuration.Seconds(),
	StartingFloor:    StartingFloor,
	Landings:         evenlySpaced(NumFloors, FloorSpacing),
	LogLevel:         "info",
}

// Default returns a copy of the built-in configuration that the caller may
// modify freely.
func Default() (Config, error) {
	var c Config
	if err := deepcopy.Copy(&c, &defaults); err != nil {
		return Config{}, fmt.Errorf("copy default config: %w", err)
	}
	return c, nil
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c Config) DoorOpenDuration() time.Duration {
	return time.Duration(c.DoorOpenSeconds * float64(time.Second))
}

// FloorRange returns the lowest and highest configured floor.
func (c Config) FloorRange() (lowest, highest int) {
	for i, l := range c.Landings {
		if i == 0 || l.Floor < lowest {
			lowest = l.Floor
		}
		if i == 0 || l.Floor > highest {
			highest = l.Floor
		}
	}
	return lowest, highest
}

// Landing looks up the landing configured for floor.
func (c Config) Landing(floor int) (LandingConfig, bool) {
	for _, l := range c.Landings {
		if l.Floor == floor {
			return l, true
		}
	}
	return LandingConfig{}, false
}

func evenlySpaced(numFloors int, spacing float64) []LandingConfig {
	landings := make([]LandingConfig, 0, numFloors)
	for floor := range numFloors {
		landings = append(landings, LandingConfig{Floor: floor, Height: float64(floor) * spacing})
	}
	return landings
}
