package qubit

import "errors"

// Domain errors for qubit construction and decomposition.
var (
	// ErrInvalidArgument indicates malformed constructor input: wrong shape or
	// length, an unknown name, or an out-of-range index.
	ErrInvalidArgument = errors.New("qubit: invalid argument")

	// ErrInvalidState indicates a value that cannot be decomposed or
	// normalised (non-finite entries, zero vector).
	ErrInvalidState = errors.New("qubit: invalid state")
)
