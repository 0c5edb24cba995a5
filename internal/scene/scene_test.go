package scene

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"qbloch/internal/qubit"
	"qbloch/internal/session"
)

const tol = 1e-4

func vecClose(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func frameOf(t *testing.T, gate, state string) session.Frame {
	t.Helper()
	g, err := qubit.GateFromName(gate)
	if err != nil {
		t.Fatal(err)
	}
	s, err := qubit.StateFromName(state)
	if err != nil {
		t.Fatal(err)
	}
	return session.Frame{Gate: g, State: s}
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		i, count int
		floor    float64
		want     float64
	}{
		{0, 4, 0.3, 0.475},
		{1, 4, 0.3, 0.65},
		{3, 4, 0.3, 1},
		{0, 1, 0.3, 1},
		{0, 2, 0, 0.5},
		{0, 0, 0.3, 1},
	}
	for _, tt := range tests {
		if got := Opacity(tt.i, tt.count, tt.floor); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Opacity(%d, %d, %g) = %g, want %g", tt.i, tt.count, tt.floor, got, tt.want)
		}
	}
}

func TestBuildXOnZero(t *testing.T) {
	sc, err := Build(frameOf(t, "X", "0"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !vecClose(sc.From, r3.Vec{Z: 1}) || !vecClose(sc.To, r3.Vec{Z: -1}) {
		t.Errorf("From/To = %v/%v, want +z/-z", sc.From, sc.To)
	}
	if math.Abs(sc.Angle-math.Pi) > tol {
		t.Errorf("Angle = %g, want pi", sc.Angle)
	}
	if sc.Frames() != DefaultPoints || len(sc.PathColors) != DefaultPoints {
		t.Fatalf("got %d points and %d colours, want %d", sc.Frames(), len(sc.PathColors), DefaultPoints)
	}
	if !vecClose(sc.Path[0], sc.From) || !vecClose(sc.Path[len(sc.Path)-1], sc.To) {
		t.Errorf("path runs %v → %v, want from → to", sc.Path[0], sc.Path[len(sc.Path)-1])
	}
	if sc.PathColors[0] != "#ff0000" || sc.PathColors[len(sc.PathColors)-1] != "#ffff00" {
		t.Errorf("path colours run %s → %s", sc.PathColors[0], sc.PathColors[len(sc.PathColors)-1])
	}
	if len(sc.Trails) != 0 {
		t.Errorf("got %d trails without history", len(sc.Trails))
	}
}

func TestBuildPathEndsAtTarget(t *testing.T) {
	for _, g := range qubit.GateNames() {
		for _, s := range qubit.StateNames() {
			cfg := DefaultConfig()
			cfg.Points = 25
			sc, err := Build(frameOf(t, g, s), cfg)
			if err != nil {
				t.Fatalf("%s on %s: %v", g, s, err)
			}
			if got := sc.Path[len(sc.Path)-1]; !vecClose(got, sc.To) {
				t.Errorf("%s on %s: path ends at %v, want %v", g, s, got, sc.To)
			}
			for k, p := range sc.Path {
				if math.Abs(r3.Norm(p)-1) > tol {
					t.Errorf("%s on %s: point %d off the sphere: %v", g, s, k, p)
				}
			}
		}
	}
}

func TestBuildTrails(t *testing.T) {
	x, _ := qubit.GateFromName("X")
	s := session.New(session.Config{Gate: x, State: qubit.NewState()})
	s.Apply()
	s.Apply()

	frame := s.Frame()
	sc, err := Build(frame, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Trails) != 2 {
		t.Fatalf("got %d trails, want 2", len(sc.Trails))
	}
	for i, tr := range sc.Trails {
		if tr.ID != frame.History[i].ID {
			t.Errorf("trail %d has id %v, want %v", i, tr.ID, frame.History[i].ID)
		}
		if len(tr.Path) != DefaultPoints {
			t.Errorf("trail %d has %d points", i, len(tr.Path))
		}
	}
	if math.Abs(sc.Trails[0].Opacity-0.65) > 1e-12 || math.Abs(sc.Trails[1].Opacity-1) > 1e-12 {
		t.Errorf("opacities = %g, %g; want 0.65, 1", sc.Trails[0].Opacity, sc.Trails[1].Opacity)
	}
	if sc.Trails[1].Color != "#b34d00" {
		t.Errorf("newest trail colour = %s, want the history colour", sc.Trails[1].Color)
	}
	if sc.Trails[0].Color == sc.Trails[1].Color {
		t.Error("older trail is not faded")
	}
}

func TestBuildErrors(t *testing.T) {
	f := frameOf(t, "H", "0")

	t.Run("no points", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Points = 0
		if _, err := Build(f, cfg); err == nil {
			t.Error("Build with 0 points succeeded")
		}
	})

	t.Run("bad colour", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ToColor = "yellow"
		if _, err := Build(f, cfg); err == nil {
			t.Error("Build with a named colour succeeded")
		}
	})

	t.Run("single point", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Points = 1
		sc, err := Build(f, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if sc.Frames() != 1 || !vecClose(sc.Path[0], sc.From) {
			t.Errorf("single-point path = %v", sc.Path)
		}
	})
}

func TestGradient(t *testing.T) {
	a, _ := colorful.Hex("#000000")
	b, _ := colorful.Hex("#ffffff")

	if got := Gradient(a, b, 1); len(got) != 1 || got[0] != "#000000" {
		t.Errorf("Gradient(n=1) = %v", got)
	}
	got := Gradient(a, b, 3)
	if got[0] != "#000000" || got[2] != "#ffffff" {
		t.Errorf("Gradient ends = %s, %s", got[0], got[2])
	}
	if got[1] != "#808080" {
		t.Errorf("Gradient midpoint = %s, want #808080", got[1])
	}
}
