package main

import (
	"math"
	"testing"
)

func TestFormatAngle(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 3, "pi/3"},
		{3 * math.Pi / 4, "3pi/4"},
		{7 * math.Pi / 4, "7pi/4"},
		{-math.Pi, "-pi"},
		{-math.Pi / 2, "-pi/2"},
		{2 * math.Pi, "2pi"},
		{1.5, "1.500"},
		{0, "0"},
		{1e-9, "0"},
		{0.01, "0.010"},
	}

	for _, tt := range tests {
		got := formatAngle(tt.input)
		if got != tt.want {
			t.Errorf("formatAngle(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOverlayAt(t *testing.T) {
	tests := []struct {
		name    string
		bg, ov  string
		x, y    int
		want    string
	}{
		{"inside", "aaaaa\nbbbbb\nccccc", "XY", 1, 1, "aaaaa\nbXYbb\nccccc"},
		{"two lines", "aaaaa\nbbbbb\nccccc", "X\nY", 4, 1, "aaaaa\nbbbbX\nccccY"},
		{"past the end of a line", "ab\ncd", "XY", 4, 0, "ab  XY\ncd"},
		{"below the background", "ab\ncd", "X\nY\nZ", 0, 1, "ab\nXd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlayAt(tt.bg, tt.ov, tt.x, tt.y); got != tt.want {
				t.Errorf("overlayAt = %q, want %q", got, tt.want)
			}
		})
	}
}
