package qsim

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
Shor runs the quantum core of Shor's algorithm. F is the 2n-qubit gate of
f(l) = k^l mod m on n-bit registers. The output register is measured away,
the Fourier transform is applied to the input register, and the n returned
states spell an integer b whose ratio b/2^n is close to a multiple of 1/r for
the order r of k mod m.
*/
func (s *Simulator) Shor(n int, f Gate) ([]State, error) {
	if n < 1 || f.Qubits() != 2*n {
		return nil, preconditionError("Shor", "n = %d with a %d-qubit gate", n, f.Qubits())
	}

	input, _, err := hadamardInput(n)
	if err != nil {
		return nil, err
	}
	output, err := Ket0.Power(n)
	if err != nil {
		return nil, err
	}
	qft, err := Fourier(n)
	if err != nil {
		return nil, err
	}

	state, err := f.Apply(input.Tensor(output))
	if err != nil {
		return nil, err
	}
	if state, err = s.discardLastN(state, n); err != nil {
		return nil, err
	}
	if state, err = qft.Apply(state); err != nil {
		return nil, err
	}

	outcomes, _, err := s.measureFirstN(state, n)
	return outcomes, err
}

// periodMultiples bounds how many multiples of a convergent denominator
// PeriodCandidate tries.
const periodMultiples = 4

/*
PeriodCandidate turns a Shor read-out b on n qubits into the order of k mod m.
It walks the continued-fraction convergents of b/2^n and tries each
denominator q > 1 and a few of its multiples, up to m, returning the first r
with k^r ≡ 1 (mod m), or 0 when none qualifies.
*/
func PeriodCandidate(b, n, k, m int) int {
	if m < 2 {
		return 0
	}
	if PowerMod(k, 1, m) == 1 {
		return 1
	}
	if b <= 0 {
		return 0
	}

	num, den := b, 1<<n
	q1, q2 := 0, 1
	for den != 0 {
		a := num / den
		q := a*q1 + q2
		q1, q2 = q, q1
		num, den = den, num-a*den

		if q > m {
			break
		}
		if q < 2 {
			continue
		}
		for j := 1; j <= periodMultiples && j*q <= m; j++ {
			if PowerMod(k, j*q, m) == 1 {
				return j * q
			}
		}
	}
	return 0
}

/*
FindPeriod repeats Shor on the prepared gate until PeriodCandidate yields the
order of k mod m, up to the given number of attempts.
*/
func (s *Simulator) FindPeriod(n, k, m int, f Gate, attempts int) (int, error) {
	for attempt := 1; attempt <= attempts; attempt++ {
		kets, err := s.Shor(n, f)
		if err != nil {
			return 0, err
		}
		b, err := BitsFromStates(kets, s.tolerance)
		if err != nil {
			return 0, err
		}
		if r := PeriodCandidate(b.Int(), n, k, m); r > 0 {
			errnie.Info("FindPeriod - order of %d mod %d is %d (b = %d, attempt %d)", k, m, r, b.Int(), attempt)
			return r, nil
		}
	}
	return 0, fmt.Errorf("qsim: FindPeriod: %d attempts: %w", attempts, ErrNoSolution)
}
