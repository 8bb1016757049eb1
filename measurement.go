package qsim

import "math"

/*
MeasureFirst measures the first qubit of an n-qubit state, n >= 1. It returns
the classical outcome (Ket0 or Ket1) and the (n-1)-qubit residual.

The first half of the amplitudes is the qubit-0 branch, the second half the
qubit-1 branch. With p0 the squared norm of the first half and u drawn
uniformly from [0,1), the outcome is |0> when u <= p0 and |1> otherwise. The
selected branch is renormalized; a branch whose norm is below the tolerance
is returned as the zero vector instead. A one-dimensional residual is One.
*/
func (s *Simulator) MeasureFirst(state State) (outcome, residual State, err error) {
	if state.Qubits() < 1 {
		return State{}, State{}, preconditionError("MeasureFirst", "%d qubits", state.Qubits())
	}

	half := state.Dim() / 2
	zero := state.amps[:half]
	one := state.amps[half:]

	if s.selectZero(zero) {
		return Ket0, s.branch(zero), nil
	}
	return Ket1, s.branch(one), nil
}

/*
MeasureLast measures the last qubit of an n-qubit state, n >= 1, and returns
the (n-1)-qubit residual followed by the classical outcome. Even basis indices
form the qubit-0 branch, odd indices the qubit-1 branch; otherwise it behaves
like MeasureFirst.
*/
func (s *Simulator) MeasureLast(state State) (residual, outcome State, err error) {
	if state.Qubits() < 1 {
		return State{}, State{}, preconditionError("MeasureLast", "%d qubits", state.Qubits())
	}

	half := state.Dim() / 2
	zero := make([]complex128, half)
	one := make([]complex128, half)
	for i := 0; i < half; i++ {
		zero[i] = state.amps[2*i]
		one[i] = state.amps[2*i+1]
	}

	if s.selectZero(zero) {
		return s.branch(zero), Ket0, nil
	}
	return s.branch(one), Ket1, nil
}

// MeasureAll measures the first qubit repeatedly until none remain.
func (s *Simulator) MeasureAll(state State) ([]State, error) {
	outcomes := make([]State, 0, state.Qubits())
	for state.Qubits() > 0 {
		outcome, residual, err := s.MeasureFirst(state)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
		state = residual
	}
	return outcomes, nil
}

// measureFirstN measures the first qubit k times and returns the outcomes.
func (s *Simulator) measureFirstN(state State, k int) ([]State, State, error) {
	outcomes := make([]State, 0, k)
	for i := 0; i < k; i++ {
		outcome, residual, err := s.MeasureFirst(state)
		if err != nil {
			return nil, State{}, err
		}
		outcomes = append(outcomes, outcome)
		state = residual
	}
	return outcomes, state, nil
}

// discardLastN measures and drops the last qubit k times.
func (s *Simulator) discardLastN(state State, k int) (State, error) {
	for i := 0; i < k; i++ {
		residual, _, err := s.MeasureLast(state)
		if err != nil {
			return State{}, err
		}
		state = residual
	}
	return state, nil
}

func (s *Simulator) selectZero(zero []complex128) bool {
	return s.source.Float64() <= sumSquares(zero)
}

// branch renormalizes one half of a measured state into a fresh residual.
func (s *Simulator) branch(amps []complex128) State {
	if len(amps) == 1 {
		return One
	}

	out := make([]complex128, len(amps))
	sigma := math.Sqrt(sumSquares(amps))
	if sigma < s.tolerance {
		return wrapState(out)
	}

	scale := complex(1/sigma, 0)
	for i, a := range amps {
		out[i] = a * scale
	}
	return wrapState(out)
}
