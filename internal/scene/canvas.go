package scene

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is an orthographic view of the unit sphere. Angles are degrees,
// with the same meaning as a matplotlib 3D axis: azimuth turns about z,
// elevation tilts towards +z.
type Camera struct {
	Elevation float64
	Azimuth   float64
}

// DefaultCamera looks at the sphere from elevation 30°, azimuth -45°.
func DefaultCamera() Camera {
	return Camera{Elevation: 30, Azimuth: -45}
}

// Rotate turns the camera. Elevation is clamped to [-90, 90]; azimuth
// wraps into (-180, 180].
func (c Camera) Rotate(dElev, dAzim float64) Camera {
	c.Elevation = math.Max(-90, math.Min(90, c.Elevation+dElev))
	c.Azimuth = math.Mod(c.Azimuth+dAzim, 360)
	if c.Azimuth > 180 {
		c.Azimuth -= 360
	} else if c.Azimuth <= -180 {
		c.Azimuth += 360
	}
	return c
}

// basis returns the screen right, screen up and towards-viewer directions.
func (c Camera) basis() (right, up, eye r3.Vec) {
	el := c.Elevation * math.Pi / 180
	az := c.Azimuth * math.Pi / 180
	eye = r3.Vec{X: math.Cos(el) * math.Cos(az), Y: math.Cos(el) * math.Sin(az), Z: math.Sin(el)}
	right = r3.Vec{X: -math.Sin(az), Y: math.Cos(az)}
	up = r3.Cross(eye, right)
	return right, up, eye
}

// Project maps v to screen coordinates in [-1, 1] (u right, w up) and its
// depth towards the viewer.
func (c Camera) Project(v r3.Vec) (u, w, depth float64) {
	right, up, eye := c.basis()
	return r3.Dot(v, right), r3.Dot(v, up), r3.Dot(v, eye)
}

type cell struct {
	r     rune
	color string
}

// Canvas is a character grid the sphere is drawn on. Each draw call
// overwrites what is under it, so callers draw back to front.
type Canvas struct {
	width, height int
	cam           Camera
	cells         [][]cell
}

// NewCanvas returns a blank canvas. Terminal cells are about twice as tall
// as wide, so a round sphere needs width ≈ 2·height.
func NewCanvas(width, height int, cam Camera) *Canvas {
	c := &Canvas{width: max(width, 8), height: max(height, 4), cam: cam}
	c.Clear()
	return c
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.width)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
}

// screen maps a point to a cell; the sphere of radius 1.15 fills the grid.
func (c *Canvas) screen(v r3.Vec) (x, y int, depth float64) {
	u, w, d := c.cam.Project(v)
	const extent = 1.15
	sx := float64(c.width-1) / 2
	sy := float64(c.height-1) / 2
	x = int(math.Round(sx + u/extent*sx))
	y = int(math.Round(sy - w/extent*sy))
	return x, y, d
}

// Plot puts r at v.
func (c *Canvas) Plot(v r3.Vec, r rune, color string) {
	x, y, _ := c.screen(v)
	c.set(x, y, r, color)
}

func (c *Canvas) set(x, y int, r rune, color string) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, color: color}
}

// Line draws the segment a→b.
func (c *Canvas) Line(a, b r3.Vec, r rune, color string) {
	ax, ay, _ := c.screen(a)
	bx, by, _ := c.screen(b)
	steps := max(abs(bx-ax), abs(by-ay), 1)
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		c.Plot(r3.Add(a, r3.Scale(t, r3.Sub(b, a))), r, color)
	}
}

// Polyline joins consecutive points. colors, when non-nil, holds one
// colour per point.
func (c *Canvas) Polyline(pts []r3.Vec, r rune, color string, colors []string) {
	for k := range pts {
		col := color
		if colors != nil && k < len(colors) {
			col = colors[k]
		}
		if k == 0 {
			c.Plot(pts[0], r, col)
			continue
		}
		c.Line(pts[k-1], pts[k], r, col)
	}
}

// Sphere draws the equator and two meridians, dimmer on the far side, plus
// the axes. The poles are labelled with their basis states.
func (c *Canvas) Sphere(front, back string) {
	const n = 96
	circles := []func(t float64) r3.Vec{
		func(t float64) r3.Vec { return r3.Vec{X: math.Cos(t), Y: math.Sin(t)} },
		func(t float64) r3.Vec { return r3.Vec{X: math.Cos(t), Z: math.Sin(t)} },
		func(t float64) r3.Vec { return r3.Vec{Y: math.Cos(t), Z: math.Sin(t)} },
	}
	for _, circle := range circles {
		for k := 0; k < n; k++ {
			v := circle(2 * math.Pi * float64(k) / n)
			_, _, d := c.cam.Project(v)
			if d < 0 {
				c.Plot(v, '·', back)
			} else {
				c.Plot(v, '•', front)
			}
		}
	}
	for _, ax := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		c.Line(r3.Scale(-1, ax), ax, '┄', back)
	}
	c.Plot(r3.Vec{X: 1.1}, 'x', front)
	c.Plot(r3.Vec{Y: 1.1}, 'y', front)
	c.Plot(r3.Vec{Z: 1.1}, '0', front)
	c.Plot(r3.Vec{Z: -1.1}, '1', front)
}

// Draw renders the whole scene with the path shown up to frame.
func (c *Canvas) Draw(sc Scene, frame int, front, back string) {
	c.Clear()
	c.Sphere(front, back)
	for _, tr := range sc.Trails {
		c.Polyline(tr.Path, '∙', tr.Color, nil)
	}
	c.Line(r3.Scale(-1, sc.Axis), sc.Axis, '╌', sc.AxisColor)
	c.Line(r3.Vec{}, sc.From, '░', sc.FromColor)
	c.Line(r3.Vec{}, sc.To, '▒', sc.ToColor)

	upto := min(max(frame+1, 0), len(sc.Path))
	c.Polyline(sc.Path[:upto], '●', "", sc.PathColors[:upto])

	c.Plot(sc.From, '◆', sc.FromColor)
	c.Plot(sc.To, '◆', sc.ToColor)
}

// String renders the grid, colouring runs of equal colour together.
func (c *Canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		color := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != color {
				flush()
				color = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
