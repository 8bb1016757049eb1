package qsim

/*
Deutsch runs the algorithm of Deutsch (1985) on the two-qubit gate F of a
function f: {0,1} -> {0,1}. It returns |1> when f is constant and |0> when f
is balanced.
*/
func (s *Simulator) Deutsch(f Gate) (State, error) {
	if f.Qubits() != 2 {
		return State{}, preconditionError("Deutsch", "gate has %d qubits, want 2", f.Qubits())
	}

	layer := H.Tensor(H)
	state, err := applyAll(Ket1.Tensor(Ket1), layer, f, layer)
	if err != nil {
		return State{}, err
	}

	outcome, _, err := s.MeasureFirst(state)
	return outcome, err
}

/*
BernsteinVazirani takes the (n+1)-qubit gate F of f(s) = δ·s mod 2 and
returns n classical one-qubit states spelling δ. The outcome is deterministic.
*/
func (s *Simulator) BernsteinVazirani(n int, f Gate) ([]State, error) {
	if n < 1 || f.Qubits() != n+1 {
		return nil, preconditionError("BernsteinVazirani", "n = %d with a %d-qubit gate", n, f.Qubits())
	}

	input, err := Ket0.Power(n)
	if err != nil {
		return nil, err
	}
	layer, err := H.Power(n + 1)
	if err != nil {
		return nil, err
	}

	state, err := applyAll(input.Tensor(Ket1), layer, f, layer)
	if err != nil {
		return nil, err
	}

	outcomes, _, err := s.measureFirstN(state, n)
	return outcomes, err
}

// applyAll applies the gates left to right.
func applyAll(state State, gates ...Gate) (State, error) {
	var err error
	for _, g := range gates {
		if state, err = g.Apply(state); err != nil {
			return State{}, err
		}
	}
	return state, nil
}

// hadamardInput returns H^⊗n |0>^⊗n together with H^⊗n.
func hadamardInput(n int) (State, Gate, error) {
	zeros, err := Ket0.Power(n)
	if err != nil {
		return State{}, Gate{}, err
	}
	layer, err := H.Power(n)
	if err != nil {
		return State{}, Gate{}, err
	}
	state, err := layer.Apply(zeros)
	return state, layer, err
}
