package qubit

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is a single-qubit pure state α|0> + β|1>.
//
// A State is a value: assignment copies it. The amplitudes are expected to
// be normalised; Set and SetState do not enforce it, so callers normalise
// first.
type State struct {
	amp Vector
}

// NewState returns |0>.
func NewState() State {
	return State{amp: Vector{1, 0}}
}

// StateOf wraps an amplitude vector.
func StateOf(v Vector) State {
	return State{amp: v}
}

// StateFromVector builds a state from a slice of exactly two amplitudes.
func StateFromVector(v []complex128) (State, error) {
	var s State
	if err := s.Set(v); err != nil {
		return State{}, err
	}
	return s, nil
}

// StateFromName returns one of the basis states "0", "1", "+" or "-",
// also accepted in their ket spellings ("|0>", "|+⟩", ...).
func StateFromName(name string) (State, error) {
	v, ok := lookupState(name)
	if !ok {
		return State{}, fmt.Errorf("%w: unknown state name %q", ErrInvalidArgument, name)
	}
	return State{amp: v}, nil
}

// Set replaces the amplitudes in place.
func (s *State) Set(v []complex128) error {
	if len(v) != 2 {
		return fmt.Errorf("%w: state needs 2 amplitudes, got %d", ErrInvalidArgument, len(v))
	}
	s.amp = Vector{v[0], v[1]}
	return nil
}

// SetState replaces the amplitudes in place with those of o.
func (s *State) SetState(o State) {
	s.amp = o.amp
}

// Vector returns the amplitude vector.
func (s State) Vector() Vector { return s.amp }

// Alpha returns the amplitude of |0>.
func (s State) Alpha() complex128 { return s.amp[0] }

// Beta returns the amplitude of |1>.
func (s State) Beta() complex128 { return s.amp[1] }

// At returns amplitude i, which must be 0 or 1.
func (s State) At(i int) (complex128, error) {
	if i != 0 && i != 1 {
		return 0, fmt.Errorf("%w: amplitude index %d out of range", ErrInvalidArgument, i)
	}
	return s.amp[i], nil
}

// Theta is the polar angle on the Bloch sphere, 2·arccos|α|, in [0, π].
func (s State) Theta() float64 {
	return 2 * math.Acos(math.Min(cmplx.Abs(s.amp[0]), 1))
}

// Phi is the relative phase arg(β) - arg(α).
func (s State) Phi() float64 {
	return cmplx.Phase(s.amp[1]) - cmplx.Phase(s.amp[0])
}

// Probabilities returns the measurement probabilities of |0> and |1>.
func (s State) Probabilities() (p0, p1 float64) {
	return abs2(s.amp[0]), abs2(s.amp[1])
}

// Bloch returns the Cartesian point of s on the Bloch sphere.
func (s State) Bloch() r3.Vec {
	p := s.amp[1] * cmplx.Conj(s.amp[0])
	return r3.Vec{
		X: 2 * real(p),
		Y: 2 * imag(p),
		Z: abs2(s.amp[0]) - abs2(s.amp[1]),
	}
}

// Norm returns sqrt(|α|² + |β|²).
func (s State) Norm() float64 {
	return s.amp.Norm()
}

// IsNormalized reports whether the norm is 1 within a relative tolerance of
// NameTol.
func (s State) IsNormalized() bool {
	return scalar.EqualWithinAbs(s.Norm(), 1, DefaultAbsTol+NameTol)
}

// Normalized returns s divided by its norm.
func (s State) Normalized() (State, error) {
	if !s.amp.Finite() {
		return State{}, fmt.Errorf("%w: amplitudes are not finite", ErrInvalidState)
	}
	n := s.Norm()
	if n == 0 {
		return State{}, fmt.Errorf("%w: cannot normalise the zero vector", ErrInvalidState)
	}
	return State{amp: s.amp.Scale(complex(1/n, 0))}, nil
}

// Equal compares amplitudes with AllClose at the default tolerances
// (rtol 1e-5, atol 1e-8).
func (s State) Equal(o State) bool {
	return AllClose(s.amp[0], o.amp[0], DefaultRelTol, DefaultAbsTol) &&
		AllClose(s.amp[1], o.amp[1], DefaultRelTol, DefaultAbsTol)
}

// EqualApprox compares amplitudes with absolute tolerance tol.
func (s State) EqualApprox(o State, tol float64) bool {
	return cmplx.Abs(s.amp[0]-o.amp[0]) <= tol && cmplx.Abs(s.amp[1]-o.amp[1]) <= tol
}

// Equivalent reports whether s and o describe the same physical state,
// i.e. differ at most by a global phase: |<s|o>| = ‖s‖·‖o‖ within tol.
func (s State) Equivalent(o State, tol float64) bool {
	inner := cmplx.Conj(s.amp[0])*o.amp[0] + cmplx.Conj(s.amp[1])*o.amp[1]
	return math.Abs(cmplx.Abs(inner)-s.Norm()*o.Norm()) <= tol
}

// Name returns the ket label of s when it matches a basis state within
// NameTol.
func (s State) Name() (string, bool) {
	for _, n := range namedStates {
		if s.EqualApprox(State{amp: n.v}, NameTol) {
			return n.label, true
		}
	}
	return "", false
}

func (s State) String() string {
	if name, ok := s.Name(); ok {
		return name
	}
	return formatAmp(s.amp[0]) + " |0> + " + formatAmp(s.amp[1]) + " |1>"
}

// formatAmp renders z as "0.60+0.00i" with two decimals per part.
func formatAmp(z complex128) string {
	return fmt.Sprintf("%.2f%+.2fi", real(z), imag(z))
}
