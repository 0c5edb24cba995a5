package edit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	zeroTol = 1e-5
	intTol  = 1e-4
)

// Format renders z in a form ParseComplex reads back: "0", "1", "-i",
// "1/sqrt(2)", "0.5 - 0.25000i", "sqrt(2) + i".
func Format(z complex128) string {
	re, im := real(z), imag(z)
	if scalar.EqualWithinAbs(re, 0, zeroTol) && scalar.EqualWithinAbs(im, 0, zeroTol) {
		return "0"
	}

	rs := formatPart(re)
	is := formatPart(im)
	switch is {
	case "0":
		is = ""
	case "1":
		is = "i"
	case "-1":
		is = "-i"
	default:
		is += "i"
	}
	if rs == "0" {
		rs = ""
	}

	switch {
	case rs == "":
		return is
	case is == "":
		return rs
	case strings.HasPrefix(is, "-"):
		return rs + " - " + is[1:]
	default:
		return rs + " + " + is
	}
}

// formatPart prefers integers, then multiples and fractions of sqrt(2).
func formatPart(v float64) string {
	if n, ok := nearInt(v); ok {
		return strconv.Itoa(n)
	}
	if n, ok := nearInt(v / math.Sqrt2); ok {
		switch n {
		case 1:
			return "sqrt(2)"
		case -1:
			return "-sqrt(2)"
		default:
			return fmt.Sprintf("%d*sqrt(2)", n)
		}
	}
	if n, ok := nearInt(v * math.Sqrt2); ok {
		return fmt.Sprintf("%d/sqrt(2)", n)
	}
	return fmt.Sprintf("%.5f", v)
}

func nearInt(v float64) (int, bool) {
	r := math.Round(v)
	if math.Abs(r) >= 1<<53 || !scalar.EqualWithinAbs(v, r, intTol) {
		return 0, false
	}
	return int(r), true
}
