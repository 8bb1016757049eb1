package qsim

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
Simon runs the quantum core of Simon (1994). F is the (2n-1)-qubit gate of
f: {0,1}^n -> {0,1}^(n-1) hiding δ, n >= 2. The output register is measured
away, H^⊗n is applied to the input register and the input is read out: the
n returned states spell a uniformly random γ with γ·δ = 0.

The kernel of f must be exactly {0, δ}; this is not checked.
*/
func (s *Simulator) Simon(n int, f Gate) ([]State, error) {
	if n < 2 || f.Qubits() != 2*n-1 {
		return nil, preconditionError("Simon", "n = %d with a %d-qubit gate", n, f.Qubits())
	}

	input, layer, err := hadamardInput(n)
	if err != nil {
		return nil, err
	}
	output, err := Ket0.Power(n - 1)
	if err != nil {
		return nil, err
	}

	state, err := f.Apply(input.Tensor(output))
	if err != nil {
		return nil, err
	}
	if state, err = s.discardLastN(state, n-1); err != nil {
		return nil, err
	}
	if state, err = layer.Apply(state); err != nil {
		return nil, err
	}

	outcomes, _, err := s.measureFirstN(state, n)
	return outcomes, err
}

/*
FindSimonShift repeats Simon until n-1 linearly independent γ have been
sampled, then solves γ·δ = 0 over GF(2) for the nonzero δ. It gives up with
ErrNoSolution after maxRuns runs.
*/
func (s *Simulator) FindSimonShift(n int, f Gate, maxRuns int) (Bits, error) {
	rows := make([]Bits, 0, n-1)
	for run := 1; run <= maxRuns; run++ {
		kets, err := s.Simon(n, f)
		if err != nil {
			return nil, err
		}
		gamma, err := BitsFromStates(kets, s.tolerance)
		if err != nil {
			return nil, err
		}
		if gamma.IsZero() || Rank(append(rows, gamma)) == len(rows) {
			continue
		}

		rows = append(rows, gamma)
		if len(rows) == n-1 {
			delta, err := Nullspace(rows, n)
			if err != nil {
				return nil, err
			}
			errnie.Info("FindSimonShift - δ %s after %d runs", delta, run)
			return delta, nil
		}
	}
	return nil, fmt.Errorf("qsim: FindSimonShift: %d independent rows after %d runs: %w", len(rows), maxRuns, ErrNoSolution)
}
