package scene

import (
	"math"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"gonum.org/v1/gonum/spatial/r3"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func TestCameraProject(t *testing.T) {
	cam := DefaultCamera()

	u, w, _ := cam.Project(r3.Vec{Z: 1})
	if math.Abs(u) > 1e-12 || w <= 0 {
		t.Errorf("+z projects to (%g, %g), want straight up", u, w)
	}

	_, _, front := cam.Project(r3.Vec{X: 1, Y: -1})
	_, _, back := cam.Project(r3.Vec{X: -1, Y: 1})
	if front <= 0 || back >= 0 {
		t.Errorf("depths = %g, %g; want the (1,-1,0) side facing the viewer", front, back)
	}

	for _, v := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: 0.6, Y: 0, Z: 0.8}} {
		u, w, d := cam.Project(v)
		if got := math.Sqrt(u*u + w*w + d*d); math.Abs(got-1) > 1e-12 {
			t.Errorf("projection of %v has length %g, want 1", v, got)
		}
	}
}

func TestCameraRotate(t *testing.T) {
	tests := []struct {
		name         string
		dElev, dAzim float64
		wantElev     float64
		wantAzim     float64
	}{
		{"small turn", 5, 10, 35, -35},
		{"elevation clamps high", 100, 0, 90, -45},
		{"elevation clamps low", -200, 0, -90, -45},
		{"azimuth wraps past 180", 0, 230, 30, -175},
		{"azimuth wraps past -180", 0, -140, 30, 175},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultCamera().Rotate(tt.dElev, tt.dAzim)
			if math.Abs(got.Elevation-tt.wantElev) > 1e-9 || math.Abs(got.Azimuth-tt.wantAzim) > 1e-9 {
				t.Errorf("Rotate(%g, %g) = %+v, want {%g %g}", tt.dElev, tt.dAzim, got, tt.wantElev, tt.wantAzim)
			}
		})
	}
}

func TestCanvasDraw(t *testing.T) {
	sc, err := Build(frameOf(t, "H", "0"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	const w, h = 48, 24
	c := NewCanvas(w, h, DefaultCamera())
	c.Draw(sc, sc.Frames()-1, "#c0caf5", "#565f89")
	out := stripANSI(c.String())

	lines := strings.Split(out, "\n")
	if len(lines) != h {
		t.Fatalf("got %d lines, want %d", len(lines), h)
	}
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != w {
			t.Errorf("line %d is %d cells wide, want %d", i, n, w)
		}
	}
	for _, want := range []string{"◆", "●", "x", "y", "0", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("canvas is missing %q:\n%s", want, out)
		}
	}
}

func TestCanvasPartialPath(t *testing.T) {
	sc, err := Build(frameOf(t, "H", "0"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(48, 24, DefaultCamera())
	count := func(frame int) int {
		c.Draw(sc, frame, "", "")
		return strings.Count(c.String(), "●")
	}

	if n := count(-1); n != 0 {
		t.Errorf("%d path cells drawn before the first frame", n)
	}
	half, full := count(sc.Frames()/2), count(sc.Frames()-1)
	if half == 0 || half >= full {
		t.Errorf("path cells at half/full = %d/%d, want 0 < half < full", half, full)
	}
}

func TestCanvasClipsOutside(t *testing.T) {
	c := NewCanvas(10, 5, DefaultCamera())
	c.Plot(r3.Vec{X: 50, Y: -50, Z: 50}, '#', "")
	if strings.Contains(c.String(), "#") {
		t.Error("point far outside the view was drawn")
	}
}

func TestChart(t *testing.T) {
	if got := Chart(nil, 10, 40, 6); got != "" {
		t.Errorf("Chart of an empty path = %q", got)
	}

	sc, err := Build(frameOf(t, "H", "0"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	out := stripANSI(Chart(sc.Path, 50, 40, 6))
	if !strings.Contains(out, "x red") {
		t.Errorf("chart has no caption:\n%s", out)
	}

	xs, ys, zs := Components(sc.Path)
	if len(xs) != len(sc.Path) || len(ys) != len(sc.Path) || len(zs) != len(sc.Path) {
		t.Fatal("component lengths differ from the path")
	}
	if math.Abs(zs[0]-1) > tol || math.Abs(xs[len(xs)-1]-1) > tol {
		t.Errorf("H on |0> should run from +z to +x, got z0=%g xN=%g", zs[0], xs[len(xs)-1])
	}
}
