package qubit

import (
	"math"
	"math/cmplx"
	"strings"
)

type namedGate struct {
	name string
	u    Matrix
}

// namedGates is the fixed table of well-known single-qubit gates, in the
// order they are offered to the user.
var namedGates = []namedGate{
	{"I", Identity()},
	{"X", SigmaX},
	{"Y", SigmaY},
	{"Z", SigmaZ},
	{"H", Matrix{{1, 1}, {1, -1}}.Scale(complex(math.Sqrt(0.5), 0))},
	{"S", Matrix{{1, 0}, {0, 1i}}},
	{"T", Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}},
	{"S†", Matrix{{1, 0}, {0, -1i}}},
	{"T†", Matrix{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}},
}

// gateAliases maps alternative spellings of the dagger gates onto their
// canonical names.
var gateAliases = map[string]string{
	"S^†": "S†", "SDG": "S†", "Sdg": "S†", "sdg": "S†",
	"T^†": "T†", "TDG": "T†", "Tdg": "T†", "tdg": "T†",
}

type namedState struct {
	label    string
	spelling []string
	v        Vector
}

var namedStates = []namedState{
	{"|0>", []string{"0", "|0>", "|0⟩"}, Vector{1, 0}},
	{"|1>", []string{"1", "|1>", "|1⟩"}, Vector{0, 1}},
	{"|+>", []string{"+", "|+>", "|+⟩"}, Vector{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)}},
	{"|->", []string{"-", "|->", "|-⟩", "|−⟩"}, Vector{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)}},
}

// GateNames returns the canonical gate names in table order.
func GateNames() []string {
	names := make([]string, len(namedGates))
	for i, g := range namedGates {
		names[i] = g.name
	}
	return names
}

// StateNames returns the labels of the four basis states.
func StateNames() []string {
	names := make([]string, len(namedStates))
	for i, s := range namedStates {
		names[i] = s.label
	}
	return names
}

func lookupGate(name string) (Matrix, bool) {
	name = strings.TrimSpace(name)
	if canon, ok := gateAliases[name]; ok {
		name = canon
	}
	for _, g := range namedGates {
		if g.name == name {
			return g.u, true
		}
	}
	return Matrix{}, false
}

func lookupState(name string) (Vector, bool) {
	name = strings.TrimSpace(name)
	for _, s := range namedStates {
		for _, sp := range s.spelling {
			if sp == name {
				return s.v, true
			}
		}
	}
	return Vector{}, false
}
