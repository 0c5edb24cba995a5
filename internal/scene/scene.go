// Package scene turns a session frame into what the sphere view draws:
// the from and to vectors, the rotation axis, the sampled rotation path
// and one faded trail per history snapshot.
package scene

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"qbloch/internal/session"
)

// Defaults for Config.
const (
	DefaultPoints       = 100
	DefaultOpacityFloor = 0.3
)

// Config controls how a Scene is sampled and coloured. Colours are hex
// strings.
type Config struct {
	Points       int
	OpacityFloor float64

	FromColor    string
	ToColor      string
	AxisColor    string
	HistoryColor string
	Background   string
}

// DefaultConfig returns the stock palette: a red start vector blending into
// a yellow end vector, a cyan axis and brown history trails on a dark
// background.
func DefaultConfig() Config {
	return Config{
		Points:       DefaultPoints,
		OpacityFloor: DefaultOpacityFloor,
		FromColor:    "#ff0000",
		ToColor:      "#ffff00",
		AxisColor:    "#00ffff",
		HistoryColor: "#b34d00",
		Background:   "#202020",
	}
}

// Trail is the path an earlier snapshot traced, drawn fainter the older it
// is.
type Trail struct {
	ID      uuid.UUID
	Path    []r3.Vec
	Opacity float64
	Color   string
}

// Scene is everything needed to draw one frame sequence.
type Scene struct {
	From  r3.Vec
	To    r3.Vec
	Axis  r3.Vec
	Angle float64

	Path       []r3.Vec
	PathColors []string

	FromColor string
	ToColor   string
	AxisColor string

	Trails []Trail
}

// Frames returns the number of animation frames.
func (s Scene) Frames() int { return len(s.Path) }

// Opacity returns the alpha of history trail i out of count: the oldest
// gets just above floor, the newest 1.
func Opacity(i, count int, floor float64) float64 {
	if count <= 0 {
		return 1
	}
	return floor + float64(i+1)/float64(count)*(1-floor)
}

// Build samples frame under cfg.
func Build(frame session.Frame, cfg Config) (Scene, error) {
	if cfg.Points < 1 {
		return Scene{}, fmt.Errorf("scene: points must be at least 1, got %d", cfg.Points)
	}
	from, err := colorful.Hex(cfg.FromColor)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: from colour: %w", err)
	}
	to, err := colorful.Hex(cfg.ToColor)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: to colour: %w", err)
	}
	hist, err := colorful.Hex(cfg.HistoryColor)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: history colour: %w", err)
	}
	bg, err := colorful.Hex(cfg.Background)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: background: %w", err)
	}

	axis, angle, err := frame.Gate.Rotation()
	if err != nil {
		return Scene{}, fmt.Errorf("scene: rotation of %v: %w", frame.Gate, err)
	}
	path, err := frame.Gate.Trajectory(frame.State, cfg.Points)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: trajectory: %w", err)
	}

	sc := Scene{
		From:       frame.State.Bloch(),
		To:         frame.Gate.Apply(frame.State).Bloch(),
		Axis:       axis,
		Angle:      angle,
		Path:       path,
		PathColors: Gradient(from, to, len(path)),
		FromColor:  from.Hex(),
		ToColor:    to.Hex(),
		AxisColor:  cfg.AxisColor,
	}

	for i, snap := range frame.History {
		p, err := snap.Gate.Trajectory(snap.State, cfg.Points)
		if err != nil {
			return Scene{}, fmt.Errorf("scene: history %s: %w", snap.ID, err)
		}
		op := Opacity(i, len(frame.History), cfg.OpacityFloor)
		sc.Trails = append(sc.Trails, Trail{
			ID:      snap.ID,
			Path:    p,
			Opacity: op,
			Color:   bg.BlendRgb(hist, op).Clamped().Hex(),
		})
	}
	return sc, nil
}

// Gradient returns n hex colours blending linearly from a to b, ends
// included.
func Gradient(a, b colorful.Color, n int) []string {
	out := make([]string, n)
	for k := range out {
		t := 0.0
		if n > 1 {
			t = float64(k) / float64(n-1)
		}
		out[k] = a.BlendRgb(b, t).Clamped().Hex()
	}
	return out
}
