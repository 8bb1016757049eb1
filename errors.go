package qsim

import (
	"errors"
	"fmt"
)

// Sentinel errors, match with errors.Is.
var (
	// ErrDimensionMismatch indicates a gate and a state (or two operands)
	// whose sizes are incompatible.
	ErrDimensionMismatch = errors.New("qsim: dimension mismatch")

	// ErrInvalidPrecondition indicates a qubit count, register width or
	// classical function that violates the operation's contract.
	ErrInvalidPrecondition = errors.New("qsim: invalid precondition")

	// ErrNotClassical indicates a one-qubit state that is neither |0> nor |1>.
	ErrNotClassical = errors.New("qsim: state is not classical")

	// ErrNoSolution indicates the sampled data did not determine an answer.
	ErrNoSolution = errors.New("qsim: no solution")
)

func dimensionError(op string, want, got int) error {
	return fmt.Errorf("qsim: %s: dimension %d != %d: %w", op, want, got, ErrDimensionMismatch)
}

func preconditionError(op, format string, args ...any) error {
	return fmt.Errorf("qsim: %s: %s: %w", op, fmt.Sprintf(format, args...), ErrInvalidPrecondition)
}
