package qubit

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMatrixDaggerAndMul(t *testing.T) {
	m := Matrix{{1, 2i}, {3, 4 - 1i}}
	d := m.Dagger()
	if d[0][1] != 3 || d[1][0] != -2i || d[1][1] != 4+1i {
		t.Fatalf("Dagger() = %v", d)
	}

	if got := Identity().Mul(m); got != m {
		t.Errorf("I·m = %v, want %v", got, m)
	}
	if got := SigmaX.Mul(SigmaX); got != Identity() {
		t.Errorf("X·X = %v, want identity", got)
	}
	if got := SigmaX.MulVec(Vector{1, 0}); got != (Vector{0, 1}) {
		t.Errorf("X|0> = %v, want |1>", got)
	}
}

func TestIsUnitary(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"pauli y", SigmaY, true},
		{"hadamard", Matrix{{1, 1}, {1, -1}}.Scale(complex(1/math.Sqrt2, 0)), true},
		{"shear", Matrix{{1, 1}, {0, 1}}, false},
		{"scaled", Identity().Scale(2), false},
		{"zero", Matrix{}, false},
		{"global phase", SigmaZ.Scale(cmplx.Exp(0.3i)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsUnitary(1e-4); got != tt.want {
				t.Errorf("IsUnitary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEigenOrderingAndResidual(t *testing.T) {
	for _, name := range GateNames() {
		u, _ := lookupGate(name)
		values, vectors := u.Eigen()

		if phase(values[0]) < phase(values[1]) {
			t.Errorf("%s: eigenvalues %v not ordered by descending phase", name, values)
		}
		for k := 0; k < 2; k++ {
			if math.Abs(vectors[k].Norm()-1) > 1e-12 {
				t.Errorf("%s: eigenvector %d not unit: %v", name, k, vectors[k])
			}
			lhs := u.MulVec(vectors[k])
			rhs := vectors[k].Scale(values[k])
			if cmplx.Abs(lhs[0]-rhs[0]) > 1e-12 || cmplx.Abs(lhs[1]-rhs[1]) > 1e-12 {
				t.Errorf("%s: U·v%d = %v, λ·v%d = %v", name, k, lhs, k, rhs)
			}
		}
	}
}

func TestEigenDegenerate(t *testing.T) {
	values, vectors := Identity().Scale(1i).Eigen()
	if values[0] != 1i || values[1] != 1i {
		t.Errorf("values = %v, want [i i]", values)
	}
	if vectors[0] != (Vector{0, 1}) || vectors[1] != (Vector{1, 0}) {
		t.Errorf("vectors = %v, want [|1> |0>]", vectors)
	}
}

func TestPhaseFoldsMinusPi(t *testing.T) {
	if got := phase(complex(-1, math.Copysign(0, -1))); got != math.Pi {
		t.Errorf("phase(-1-0i) = %g, want π", got)
	}
	if got := phase(-1i); math.Abs(got+math.Pi/2) > 1e-15 {
		t.Errorf("phase(-i) = %g, want -π/2", got)
	}
}

func TestAllCloseIsNumpyShaped(t *testing.T) {
	if !AllClose(1+1e-5, 1, 1e-4, 0) {
		t.Error("relative difference 1e-5 should pass rtol 1e-4")
	}
	if AllClose(1e-3, 0, 1e-4, 1e-8) {
		t.Error("1e-3 should not be close to 0 with atol 1e-8")
	}
}
