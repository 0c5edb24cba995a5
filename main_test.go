package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"help", []string{"-help"}, 0, "-history"},
		{"bad config", []string{"-history", "0"}, 2, "history must be at least 1"},
		{"unopenable log", []string{"-log", filepath.Join(t.TempDir(), "missing", "q.log")}, 1, "open log file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if got := run(tt.args, &stderr); got != tt.code {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.code)
			}
			if !strings.Contains(stderr.String(), tt.out) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.out)
			}
		})
	}
}

func TestNewLoggerWritesAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbloch.log")
	logger, closeLog, err := newLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("submit saved", "gate", "H")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "submit saved") || !strings.Contains(string(data), "gate=H") {
		t.Errorf("log file = %q", data)
	}

	if _, closeLog, err := newLogger(""); err != nil {
		t.Errorf("newLogger(\"\") = %v", err)
	} else {
		closeLog()
	}
}
