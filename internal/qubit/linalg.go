package qubit

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// Tolerances shared by the comparisons in this package.
const (
	DefaultRelTol = 1e-5
	DefaultAbsTol = 1e-8

	// NameTol is the absolute tolerance used to recognise named gates and
	// basis states.
	NameTol = 1e-4

	degenerateTol = 1e-10
	phaseWrapTol  = 1e-12
)

// Vector is a length-2 complex column vector.
type Vector [2]complex128

// Matrix is a 2×2 complex matrix in row-major order.
type Matrix [2][2]complex128

// Identity returns the 2×2 identity.
func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// Pauli matrices.
var (
	SigmaX = Matrix{{0, 1}, {1, 0}}
	SigmaY = Matrix{{0, -1i}, {1i, 0}}
	SigmaZ = Matrix{{1, 0}, {0, -1}}
)

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	return cmplxs.Norm(v[:], 2)
}

// Scale returns c·v.
func (v Vector) Scale(c complex128) Vector {
	return Vector{c * v[0], c * v[1]}
}

// Finite reports whether both components are free of NaN and Inf.
func (v Vector) Finite() bool {
	for _, z := range v {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return false
		}
	}
	return true
}

// MulVec returns m·v.
func (m Matrix) MulVec(v Vector) Vector {
	return Vector{
		m[0][0]*v[0] + m[0][1]*v[1],
		m[1][0]*v[0] + m[1][1]*v[1],
	}
}

// Mul returns m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return out
}

// Add returns m+n.
func (m Matrix) Add(n Matrix) Matrix {
	return Matrix{
		{m[0][0] + n[0][0], m[0][1] + n[0][1]},
		{m[1][0] + n[1][0], m[1][1] + n[1][1]},
	}
}

// Scale returns c·m.
func (m Matrix) Scale(c complex128) Matrix {
	return Matrix{
		{c * m[0][0], c * m[0][1]},
		{c * m[1][0], c * m[1][1]},
	}
}

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// Flat returns the entries of m in row-major order.
func (m Matrix) Flat() []complex128 {
	return []complex128{m[0][0], m[0][1], m[1][0], m[1][1]}
}

// EqualApprox reports whether every entry of m is within tol of the
// matching entry of n, absolutely or relatively.
func (m Matrix) EqualApprox(n Matrix, tol float64) bool {
	return cmplxs.EqualApprox(m.Flat(), n.Flat(), tol)
}

// IsUnitary reports whether m·m† is close to the identity with relative
// tolerance rtol and the default absolute tolerance.
func (m Matrix) IsUnitary(rtol float64) bool {
	p := m.Mul(m.Dagger())
	id := Identity()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !AllClose(p[i][j], id[i][j], rtol, DefaultAbsTol) {
				return false
			}
		}
	}
	return true
}

// AllClose reports |a-b| <= atol + rtol·|b|. It is not
// symmetric in a and b.
func AllClose(a, b complex128, rtol, atol float64) bool {
	return cmplx.Abs(a-b) <= atol+rtol*cmplx.Abs(b)
}

// Eigen returns the eigenvalues of m and matching unit eigenvectors.
//
// The pairs are ordered by eigenvalue phase, largest first, with phases
// taken in (-π, π]. When the eigenvalues coincide every vector is an
// eigenvector of a normal matrix and the pair is (|1>, |0>).
func (m Matrix) Eigen() (values [2]complex128, vectors [2]Vector) {
	p, q, r, s := m[0][0], m[0][1], m[1][0], m[1][1]
	half := (p + s) / 2
	disc := cmplx.Sqrt((p-s)*(p-s)/4 + q*r)
	l0, l1 := half+disc, half-disc

	if cmplx.Abs(l0-l1) < degenerateTol {
		return [2]complex128{l0, l1}, [2]Vector{{0, 1}, {1, 0}}
	}

	v0, v1 := m.eigenvector(l0), m.eigenvector(l1)
	if phase(l1) > phase(l0) {
		l0, l1 = l1, l0
		v0, v1 = v1, v0
	}
	return [2]complex128{l0, l1}, [2]Vector{v0, v1}
}

// eigenvector returns a unit vector in the null space of m-λI. Both rows
// of m-λI give a candidate; the longer one is better conditioned.
func (m Matrix) eigenvector(l complex128) Vector {
	a := Vector{m[0][1], l - m[0][0]}
	b := Vector{l - m[1][1], m[1][0]}
	v := a
	if b.Norm() > a.Norm() {
		v = b
	}
	n := v.Norm()
	if n == 0 {
		return Vector{1, 0}
	}
	return v.Scale(complex(1/n, 0))
}

// phase is cmplx.Phase folded into (-π, π] so that -1 computed as
// (-1, -0) does not land on -π.
func phase(z complex128) float64 {
	p := cmplx.Phase(z)
	if p <= -math.Pi+phaseWrapTol {
		p += 2 * math.Pi
	}
	return p
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
