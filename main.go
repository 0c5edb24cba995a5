// Command qbloch is a terminal Bloch sphere explorer for a single qubit:
// edit a 2×2 unitary and a state, watch the state rotate, apply and undo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run starts the program and returns its exit code. Deferred cleanup runs
// before main exits.
func run(args []string, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeLog()

	m, err := newModel(cfg, logger)
	if err != nil {
		logger.Error("model", "err", err)
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger.Info("starting", "gate", cfg.Gate, "state", cfg.State, "history", cfg.HistorySize)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// newLogger writes debug logs to path. The TUI owns the terminal, so with
// no path everything is discarded.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "qbloch",
		ReportTimestamp: true,
	})
	return logger, func() { f.Close() }, nil
}
