package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

// Environment keys read from the dotenv file. They override the YAML file.
const (
	EnvMovementSpeed    = "MONOVATOR_MOVEMENT_SPEED"
	EnvArrivalThreshold = "MONOVATOR_ARRIVAL_THRESHOLD"
	EnvTickIntervalMs   = "MONOVATOR_TICK_INTERVAL_MS"
	EnvDoorOpenSeconds  = "MONOVATOR_DOOR_OPEN_SECONDS"
	EnvStartingFloor    = "MONOVATOR_STARTING_FLOOR"
	EnvEnforceBounds    = "MONOVATOR_ENFORCE_BOUNDS"
	EnvLogLevel         = "MONOVATOR_LOG_LEVEL"
	EnvLogFile          = "MONOVATOR_LOG_FILE"
)

// Load decodes the YAML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	c, err := Default()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return c, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	slog.Debug("Config loaded", "path", path, "landings", len(c.Landings))
	return c, nil
}

// ApplyEnvFile overrides fields from a dotenv file. A missing file is not an
// error.
func ApplyEnvFile(c *Config, path string) error {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No env file", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	return applyEnv(c, env)
}

func applyEnv(c *Config, env map[string]string) error {
	floatVars := map[string]*float64{
		EnvMovementSpeed:    &c.MovementSpeed,
		EnvArrivalThreshold: &c.ArrivalThreshold,
		EnvDoorOpenSeconds:  &c.DoorOpenSeconds,
	}
	for key, field := range floatVars {
		if v, ok := env[key]; ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, v, ErrInvalidConfig)
			}
			*field = f
		}
	}

	intVars := map[string]*int{
		EnvTickIntervalMs: &c.TickIntervalMs,
		EnvStartingFloor:  &c.StartingFloor,
	}
	for key, field := range intVars {
		if v, ok := env[key]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", key, v, ErrInvalidConfig)
			}
			*field = n
		}
	}

	if v, ok := env[EnvEnforceBounds]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvEnforceBounds, v, ErrInvalidConfig)
		}
		c.EnforceBounds = b
	}
	if v, ok := env[EnvLogLevel]; ok {
		c.LogLevel = v
	}
	if v, ok := env[EnvLogFile]; ok {
		c.LogFile = v
	}
	return nil
}

// Validate checks the values the car cannot run without.
func (c Config) Validate() error {
	if c.MovementSpeed <= 0 {
		return fmt.Errorf("movement_speed %v must be positive: %w", c.MovementSpeed, ErrInvalidConfig)
	}
	if c.ArrivalThreshold <= 0 {
		return fmt.Errorf("arrival_threshold %v must be positive: %w", c.ArrivalThreshold, ErrInvalidConfig)
	}
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms %d must be positive: %w", c.TickIntervalMs, ErrInvalidConfig)
	}
	if c.DoorOpenSeconds < 0 {
		return fmt.Errorf("door_open_seconds %v must not be negative: %w", c.DoorOpenSeconds, ErrInvalidConfig)
	}
	if len(c.Landings) == 0 {
		return fmt.Errorf("no landings configured: %w", ErrInvalidConfig)
	}
	seen := make(map[int]bool, len(c.Landings))
	for _, l := range c.Landings {
		if seen[l.Floor] {
			return fmt.Errorf("floor %d configured twice: %w", l.Floor, ErrInvalidConfig)
		}
		seen[l.Floor] = true
	}
	if _, ok := c.Landing(c.StartingFloor); !ok {
		return fmt.Errorf("starting_floor %d has no landing: %w", c.StartingFloor, ErrInvalidConfig)
	}
	return nil
}
