// Package edit turns the text of the six matrix and state fields into a
// validated gate and state and commits them to a session.
package edit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"qbloch/internal/qubit"
)

var (
	// ErrNotUnitary is returned when the submitted matrix fails U·U† ≈ I.
	ErrNotUnitary = errors.New("edit: matrix is not unitary")

	// ErrNotNormalizable is returned for a state that cannot be scaled to
	// unit length.
	ErrNotNormalizable = errors.New("edit: state cannot be normalised")
)

// UnitaryTol is the relative tolerance of the unitarity check.
const UnitaryTol = 1e-4

// matrixLabels and stateLabels name the fields in error messages. Matrix
// index i is row i%2, column i/2.
var (
	matrixLabels = [4]string{"u00", "u10", "u01", "u11"}
	stateLabels  = [2]string{"alpha", "beta"}
)

// Status is the per-group result of a submit.
type Status int

const (
	Untouched Status = iota
	Valid
	Invalid
	Corrected
)

func (s Status) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Corrected:
		return "corrected"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Fields is the raw text of the input fields. Matrix is column-major:
// Matrix[i] holds the entry at row i%2, column i/2.
type Fields struct {
	Matrix [4]string
	State  [2]string
}

// FieldsOf renders the current gate and state.
func FieldsOf(g qubit.Gate, s qubit.State) Fields {
	var f Fields
	m := g.Matrix()
	for i := range f.Matrix {
		f.Matrix[i] = Format(m[i%2][i/2])
	}
	f.State[0] = Format(s.Alpha())
	f.State[1] = Format(s.Beta())
	return f
}

// Target is what an Editor commits to. *session.Session implements it.
type Target interface {
	Gate() qubit.Gate
	State() qubit.State
	UpdateGate(g qubit.Gate, pushHistory bool)
	UpdateState(s qubit.State, pushHistory bool)
}

// Outcome reports what a submit did.
type Outcome struct {
	Matrix Status
	State  Status
	// Noop is set when the text matched the last successful save.
	Noop bool
	// Fields is the text the UI should show afterwards: empty fields are
	// filled in and a corrected state is rewritten.
	Fields Fields
	Err    error
}

// Editor validates submitted fields and commits them.
type Editor struct {
	target Target
	log    *log.Logger

	last    Fields
	hasLast bool
}

// NewEditor returns an editor writing to target. A nil logger discards.
func NewEditor(target Target, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Editor{target: target, log: logger.WithPrefix("edit")}
}

// Remember records f as already saved, so submitting it again is a no-op.
func (e *Editor) Remember(f Fields) {
	e.last, e.hasLast = f, true
}

// Submit validates f and commits what passes. The matrix is checked
// first; a rejected matrix leaves both gate and state untouched. A
// rejected state keeps an accepted matrix.
func (e *Editor) Submit(f Fields) Outcome {
	if e.hasLast && f == e.last {
		e.log.Debug("submit unchanged")
		return Outcome{Matrix: Valid, State: Valid, Noop: true, Fields: f}
	}

	out := Outcome{Fields: f}
	gate := e.target.Gate()
	state := e.target.State()

	var m qubit.Matrix
	var errs []error
	cur := gate.Matrix()
	for i, text := range f.Matrix {
		r, c := i%2, i/2
		v, filled, err := parseField(text, cur[r][c])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", matrixLabels[i], err))
			continue
		}
		m[r][c] = v
		out.Fields.Matrix[i] = filled
	}
	if len(errs) == 0 && !m.IsUnitary(UnitaryTol) {
		errs = append(errs, ErrNotUnitary)
	}
	if len(errs) > 0 {
		out.Matrix, out.State = Invalid, Untouched
		out.Fields = f
		out.Err = errors.Join(errs...)
		e.log.Warn("matrix rejected", "err", out.Err)
		return out
	}
	e.target.UpdateGate(qubit.GateOf(m), false)
	out.Matrix = Valid

	var v qubit.Vector
	amps := [2]complex128{state.Alpha(), state.Beta()}
	for i, text := range f.State {
		a, filled, err := parseField(text, amps[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", stateLabels[i], err))
			continue
		}
		v[i] = a
		out.Fields.State[i] = filled
	}
	if len(errs) > 0 {
		out.State = Invalid
		out.Fields.State = f.State
		out.Err = errors.Join(errs...)
		e.log.Warn("state rejected", "err", out.Err)
		return out
	}

	next := qubit.StateOf(v)
	out.State = Valid
	if !next.IsNormalized() {
		n, err := next.Normalized()
		if err != nil {
			out.State = Invalid
			out.Fields.State = f.State
			out.Err = fmt.Errorf("%w: %w", ErrNotNormalizable, err)
			e.log.Warn("state rejected", "err", out.Err)
			return out
		}
		next = n
		out.State = Corrected
		out.Fields.State = [2]string{Format(next.Alpha()), Format(next.Beta())}
		e.log.Info("state normalised", "state", next)
	}
	e.target.UpdateState(next, false)

	e.Remember(out.Fields)
	e.log.Debug("submit saved", "gate", qubit.GateOf(m), "state", next)
	return out
}

// parseField evaluates text, falling back to cur when it is blank. It
// also returns the text to display for the field.
func parseField(text string, cur complex128) (complex128, string, error) {
	if strings.TrimSpace(text) == "" {
		return cur, Format(cur), nil
	}
	v, err := ParseComplex(text)
	if err != nil {
		return 0, text, err
	}
	return v, text, nil
}
