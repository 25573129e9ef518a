package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monovator/src/callpoint"
	"monovator/src/config"
	"monovator/src/elev"
	"monovator/src/utils"

	"github.com/eiannone/keyboard"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Exiting", "err", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	envPath := flag.String("env", ".env", "dotenv file with MONOVATOR_* overrides")
	calls := flag.String("calls", "", "comma separated floors to call, exits once the car is idle")
	logFile := flag.String("log", "", "also write the log to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyEnvFile(&cfg, *envPath); err != nil {
		return err
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	closeLog, err := elev.InitLogger(elev.ParseLevel(cfg.LogLevel), cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	car, err := elev.NewCar(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	carMgr := elev.StartCarMgr(ctx, car)

	if *calls != "" {
		floors, err := utils.ParseFloors(*calls)
		if err != nil {
			return err
		}
		return runScripted(ctx, carMgr, floors)
	}
	return runInteractive(ctx, stop, carMgr, car.Panel)
}

// runScripted calls each floor in turn and waits for the car to finish.
func runScripted(ctx context.Context, carMgr *elev.CarMgr, floors []int) error {
	for _, floor := range floors {
		if err := carMgr.Call(floor); err != nil {
			slog.Warn("Call rejected", "floor", floor, "err", err)
		}
	}

	poll := time.NewTicker(100 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-poll.C:
			state, err := carMgr.GetState()
			if err != nil {
				return err
			}
			if state.TargetFloor == nil && !state.DoorOpen {
				slog.Info("All calls served", "state", elev.FormatState(state))
				return nil
			}
		}
	}
}

// runInteractive reads single keys: 0-9 call a floor, h holds the car, p
// pauses the clock, s logs the state, q or Ctrl-C quits.
func runInteractive(ctx context.Context, stop context.CancelFunc, carMgr *elev.CarMgr, panel *callpoint.Panel) error {
	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	fmt.Println("Keys: 0-9 call floor | h hold | p pause | s status | q quit")
	status := time.NewTicker(config.StatusPrintInterval)
	defer status.Stop()
	var hold, paused bool

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-status.C:
			state, err := carMgr.GetState()
			if errors.Is(err, elev.ErrStopped) {
				return nil
			}
			utils.PrintStatus(state, panel.FormatLamps())
		case ev := <-keys:
			if ev.Err != nil {
				return fmt.Errorf("read key: %w", ev.Err)
			}
			switch {
			case ev.Key == keyboard.KeyCtrlC || ev.Key == keyboard.KeyEsc || ev.Rune == 'q':
				stop()
			case ev.Rune >= '0' && ev.Rune <= '9':
				floor := int(ev.Rune - '0')
				if err := carMgr.Call(floor); err != nil {
					slog.Warn("Call rejected", "floor", floor, "err", err)
				}
			case ev.Rune == 'h':
				hold = !hold
				if err := carMgr.SetHold(hold); err != nil {
					return err
				}
			case ev.Rune == 'p':
				paused = !paused
				if err := carMgr.SetPaused(paused); err != nil {
					return err
				}
			case ev.Rune == 's':
				state, err := carMgr.GetState()
				if err != nil {
					return err
				}
				slog.Info("Status", "state", elev.FormatState(state), "lamps", panel.FormatLamps())
			}
		}
	}
}
