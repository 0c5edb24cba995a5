package scene

import (
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"
)

// Components splits path into its x, y and z series.
func Components(path []r3.Vec) (xs, ys, zs []float64) {
	xs = make([]float64, len(path))
	ys = make([]float64, len(path))
	zs = make([]float64, len(path))
	for k, p := range path {
		xs[k], ys[k], zs[k] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}

// Chart plots the Bloch components of path[:upto] against the rotation
// parameter, x red, y green, z blue. It returns "" when there is nothing
// to plot.
func Chart(path []r3.Vec, upto, width, height int) string {
	upto = min(upto, len(path))
	if upto < 1 {
		return ""
	}
	xs, ys, zs := Components(path[:upto])
	return asciigraph.PlotMany(
		[][]float64{xs, ys, zs},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(-1),
		asciigraph.UpperBound(1),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("x red  y green  z blue"),
	)
}
