package main

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags(nil): %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("parseFlags(nil) = %+v, want defaults %+v", cfg, defaultConfig())
	}
	if cfg.HistorySize != 4 || cfg.Points != 100 || cfg.Duration != 2*time.Second ||
		cfg.Pause != time.Second || cfg.OpacityFloor != 0.3 || cfg.Gate != "X" || cfg.State != "|0>" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-history", "2", "-points", "30", "-duration", "500ms", "-pause", "0s",
		"-opacity-floor", "0.5", "-gate", "S†", "-state", "+", "-log", "debug.log",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistorySize != 2 || cfg.Points != 30 || cfg.Duration != 500*time.Millisecond ||
		cfg.Pause != 0 || cfg.OpacityFloor != 0.5 || cfg.Gate != "S†" || cfg.State != "+" ||
		cfg.LogFile != "debug.log" {
		t.Errorf("parseFlags = %+v", cfg)
	}

	sc := cfg.sceneConfig()
	if sc.Points != 30 || sc.OpacityFloor != 0.5 {
		t.Errorf("sceneConfig() = %+v", sc)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"history", []string{"-history", "0"}, "history"},
		{"points", []string{"-points", "-1"}, "points"},
		{"duration", []string{"-duration", "0s"}, "duration"},
		{"pause", []string{"-pause", "-1s"}, "pause"},
		{"opacity", []string{"-opacity-floor", "1.5"}, "opacity-floor"},
		{"gate", []string{"-gate", "CNOT"}, "gate"},
		{"state", []string{"-state", "|2>"}, "state"},
		{"extra args", []string{"X"}, "unexpected arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			if !errors.Is(err, errInvalidConfig) {
				t.Fatalf("parseFlags(%v) = %v, want errInvalidConfig", tt.args, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := defaultConfig()
	cfg.HistorySize = 0
	cfg.Gate = "nope"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	for _, want := range []string{"history", "gate"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"-nope"}, io.Discard); err == nil {
		t.Error("unknown flag accepted")
	}
}
