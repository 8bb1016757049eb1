package qsim

import (
	"math"

	"github.com/theapemachine/errnie"
)

/*
GroverRotations returns round(π/(4t) − 1/2) with t = arcsin(√k · 2^(−n/2)),
the number of amplitude amplification rotations for k marked strings among
2^n. Ties round to even.
*/
func GroverRotations(n, k int) int {
	t := math.Asin(math.Sqrt(float64(k)) * math.Pow(2, -float64(n)/2))
	return int(math.RoundToEven(math.Pi/(4*t) - 0.5))
}

/*
Grover runs the core subroutine of Grover's search. F is the (n+1)-qubit gate
of f: {0,1}^n -> {0,1} with exactly k marked strings. Starting from
H^⊗(n+1)(|0>^⊗n ⊗ |1>), each rotation applies F and then R ⊗ I with
R = 2|ρ><ρ| − I, |ρ> = H^⊗n|0>^⊗n. The n returned states usually spell a
marked string.
*/
func (s *Simulator) Grover(n, k int, f Gate) ([]State, error) {
	if n < 1 || k < 1 || k > 1<<n || f.Qubits() != n+1 {
		return nil, preconditionError("Grover", "n = %d, k = %d with a %d-qubit gate", n, k, f.Qubits())
	}

	zeros, err := Ket0.Power(n)
	if err != nil {
		return nil, err
	}
	layer, err := H.Power(n + 1)
	if err != nil {
		return nil, err
	}
	rho, err := KetPlus.Power(n)
	if err != nil {
		return nil, err
	}
	diffusion := Reflection(rho).Tensor(I)

	state, err := layer.Apply(zeros.Tensor(Ket1))
	if err != nil {
		return nil, err
	}
	for i := GroverRotations(n, k); i > 0; i-- {
		if state, err = applyAll(state, f, diffusion); err != nil {
			return nil, err
		}
	}

	outcomes, _, err := s.measureFirstN(state, n)
	return outcomes, err
}

/*
GroverSearch builds the oracle for f once and runs Grover up to attempts
times, checking every candidate classically. It returns the first marked
string found, the number of runs used, and whether one was found.
*/
func (s *Simulator) GroverSearch(n, k int, f Function, attempts int) (Bits, int, bool, error) {
	gate, err := BuildOracle(n, 1, f)
	if err != nil {
		return nil, 0, false, err
	}

	errnie.Info("GroverSearch - n %d, k %d, %d rotations per run", n, k, GroverRotations(n, k))

	var candidate Bits
	for run := 1; run <= attempts; run++ {
		kets, err := s.Grover(n, k, gate)
		if err != nil {
			return nil, run, false, err
		}
		if candidate, err = BitsFromStates(kets, s.tolerance); err != nil {
			return nil, run, false, err
		}
		if f(candidate)[0] == 1 {
			return candidate, run, true, nil
		}
	}
	return candidate, attempts, false, nil
}
