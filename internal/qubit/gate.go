package qubit

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Gate is a single-qubit operator represented by a 2×2 matrix U.
//
// Unitarity is not enforced on construction. Anything accepting a matrix
// typed by a user must check Matrix().IsUnitary first.
type Gate struct {
	u Matrix
}

// NewGate returns the identity gate.
func NewGate() Gate {
	return Gate{u: Identity()}
}

// GateOf wraps a matrix.
func GateOf(m Matrix) Gate {
	return Gate{u: m}
}

// GateFromMatrix builds a gate from a 2×2 slice matrix.
func GateFromMatrix(m [][]complex128) (Gate, error) {
	if len(m) != 2 {
		return Gate{}, fmt.Errorf("%w: gate matrix needs 2 rows, got %d", ErrInvalidArgument, len(m))
	}
	var u Matrix
	for i, row := range m {
		if len(row) != 2 {
			return Gate{}, fmt.Errorf("%w: gate matrix row %d needs 2 columns, got %d", ErrInvalidArgument, i, len(row))
		}
		u[i][0], u[i][1] = row[0], row[1]
	}
	return Gate{u: u}, nil
}

// GateFromName returns one of I, X, Y, Z, H, S, T, S† or T†.
func GateFromName(name string) (Gate, error) {
	u, ok := lookupGate(name)
	if !ok {
		return Gate{}, fmt.Errorf("%w: unknown gate name %q", ErrInvalidArgument, name)
	}
	return Gate{u: u}, nil
}

// Matrix returns U.
func (g Gate) Matrix() Matrix { return g.u }

// SetMatrix replaces U in place without validation.
func (g *Gate) SetMatrix(m Matrix) {
	g.u = m
}

// Apply returns a new state holding U·s.
func (g Gate) Apply(s State) State {
	return State{amp: g.u.MulVec(s.amp)}
}

// Dagger returns the inverse of a unitary gate.
func (g Gate) Dagger() Gate {
	return Gate{u: g.u.Dagger()}
}

// Compose returns the gate that applies g and then next.
func (g Gate) Compose(next Gate) Gate {
	return Gate{u: next.u.Mul(g.u)}
}

// Rotation returns the Bloch-sphere rotation induced by U: a unit axis and
// a signed angle in [0, 2π). Both come from one eigendecomposition.
//
// With eigenvectors (a,b) and (c,d) as ordered by Matrix.Eigen, the axis is
// (Re w, -Im w, |c|²-|a|²) where w = c·conj(d) - a·conj(b), and the angle
// is arg(λ0) - arg(λ1).
func (g Gate) Rotation() (r3.Vec, float64, error) {
	values, vectors := g.u.Eigen()
	for _, l := range values {
		if cmplx.IsNaN(l) || cmplx.IsInf(l) {
			return r3.Vec{}, 0, fmt.Errorf("%w: eigenvalues of %v are not finite", ErrInvalidState, g.u)
		}
	}

	a, b := vectors[0][0], vectors[0][1]
	c, d := vectors[1][0], vectors[1][1]
	w := c*cmplx.Conj(d) - a*cmplx.Conj(b)
	axis := r3.Vec{
		X: real(w),
		Y: -imag(w),
		Z: abs2(c) - abs2(a),
	}
	if n := r3.Norm(axis); n > 0 {
		axis = r3.Scale(1/n, axis)
	}

	return axis, phase(values[0]) - phase(values[1]), nil
}

// RotationAxis returns the unit axis of Rotation. A matrix that cannot be
// decomposed yields the zero vector.
func (g Gate) RotationAxis() r3.Vec {
	axis, _, _ := g.Rotation()
	return axis
}

// RotationAngle returns the angle of Rotation in radians.
func (g Gate) RotationAngle() (float64, error) {
	_, angle, err := g.Rotation()
	return angle, err
}

// FromRotation builds cos(θ/2)·I - i·sin(θ/2)·(x·σx + y·σy + z·σz) for the
// axis normalised to unit length. A zero axis names no rotation and gives the
// identity.
func FromRotation(axis r3.Vec, angle float64) Gate {
	n := r3.Norm(axis)
	if n == 0 {
		return NewGate()
	}
	axis = r3.Scale(1/n, axis)
	c := complex(math.Cos(angle/2), 0)
	s := complex(0, -math.Sin(angle/2))

	pauli := SigmaX.Scale(complex(axis.X, 0)).
		Add(SigmaY.Scale(complex(axis.Y, 0))).
		Add(SigmaZ.Scale(complex(axis.Z, 0)))

	return Gate{u: Identity().Scale(c).Add(pauli.Scale(s))}
}

// FromAxisAngle is FromRotation for an axis given as a slice, which must
// have exactly three components.
func FromAxisAngle(axis []float64, angle float64) (Gate, error) {
	if len(axis) != 3 {
		return Gate{}, fmt.Errorf("%w: rotation axis needs 3 components, got %d", ErrInvalidArgument, len(axis))
	}
	return FromRotation(r3.Vec{X: axis[0], Y: axis[1], Z: axis[2]}, angle), nil
}

// Trajectory samples the path from's Bloch point follows while the
// rotation angle grows from 0 to the gate's full angle. n points are evenly
// spaced and include both ends; n == 1 yields only the start point.
func (g Gate) Trajectory(from State, n int) ([]r3.Vec, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: trajectory needs at least 1 point, got %d", ErrInvalidArgument, n)
	}
	axis, angle, err := g.Rotation()
	if err != nil {
		return nil, err
	}

	ts := []float64{0}
	if n > 1 {
		ts = floats.Span(make([]float64, n), 0, angle)
	}

	points := make([]r3.Vec, len(ts))
	for k, t := range ts {
		points[k] = FromRotation(axis, t).Apply(from).Bloch()
	}
	return points, nil
}

// Name returns the canonical name of g when U matches a named gate within
// NameTol.
func (g Gate) Name() (string, bool) {
	for _, ng := range namedGates {
		if g.u.EqualApprox(ng.u, NameTol) {
			return ng.name, true
		}
	}
	return "", false
}

func (g Gate) String() string {
	if name, ok := g.Name(); ok {
		return name
	}
	return fmt.Sprintf("U([[%.2f %.2f] [%.2f %.2f]])", g.u[0][0], g.u[0][1], g.u[1][0], g.u[1][1])
}
