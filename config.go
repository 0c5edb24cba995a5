package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"qbloch/internal/qubit"
	"qbloch/internal/scene"
	"qbloch/internal/session"
)

var errInvalidConfig = errors.New("invalid config")

// Config holds everything settable from the command line.
type Config struct {
	HistorySize  int
	Points       int
	Duration     time.Duration
	Pause        time.Duration
	OpacityFloor float64
	Gate         string
	State        string
	LogFile      string
}

func defaultConfig() Config {
	return Config{
		HistorySize:  session.DefaultHistorySize,
		Points:       scene.DefaultPoints,
		Duration:     2 * time.Second,
		Pause:        time.Second,
		OpacityFloor: scene.DefaultOpacityFloor,
		Gate:         "X",
		State:        "|0>",
	}
}

// parseFlags reads args (without the program name) into a validated Config.
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	cfg := defaultConfig()
	fs := flag.NewFlagSet("qbloch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.HistorySize, "history", cfg.HistorySize, "number of undo snapshots to keep")
	fs.IntVar(&cfg.Points, "points", cfg.Points, "points sampled along the rotation path")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "length of one animation pass")
	fs.DurationVar(&cfg.Pause, "pause", cfg.Pause, "delay before the animation repeats")
	fs.Float64Var(&cfg.OpacityFloor, "opacity-floor", cfg.OpacityFloor, "opacity of the oldest history trail, 0..1")
	fs.StringVar(&cfg.Gate, "gate", cfg.Gate, "initial gate: "+strings.Join(qubit.GateNames(), ", "))
	fs.StringVar(&cfg.State, "state", cfg.State, "initial state: "+strings.Join(qubit.StateNames(), ", "))
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write debug logs to this file")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", errInvalidConfig, fs.Args())
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if c.HistorySize < 1 {
		errs = append(errs, fmt.Errorf("%w: history must be at least 1, got %d", errInvalidConfig, c.HistorySize))
	}
	if c.Points < 1 {
		errs = append(errs, fmt.Errorf("%w: points must be at least 1, got %d", errInvalidConfig, c.Points))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("%w: duration must be positive, got %s", errInvalidConfig, c.Duration))
	}
	if c.Pause < 0 {
		errs = append(errs, fmt.Errorf("%w: pause must not be negative, got %s", errInvalidConfig, c.Pause))
	}
	if c.OpacityFloor < 0 || c.OpacityFloor > 1 {
		errs = append(errs, fmt.Errorf("%w: opacity-floor must be in [0, 1], got %g", errInvalidConfig, c.OpacityFloor))
	}
	if _, err := qubit.GateFromName(c.Gate); err != nil {
		errs = append(errs, fmt.Errorf("%w: gate: %w", errInvalidConfig, err))
	}
	if _, err := qubit.StateFromName(c.State); err != nil {
		errs = append(errs, fmt.Errorf("%w: state: %w", errInvalidConfig, err))
	}
	return errors.Join(errs...)
}

// sceneConfig maps the flags onto the scene sampler.
func (c Config) sceneConfig() scene.Config {
	sc := scene.DefaultConfig()
	sc.Points = c.Points
	sc.OpacityFloor = c.OpacityFloor
	return sc
}
