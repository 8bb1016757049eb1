package qsim

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"strings"
)

/*
State is an n-qubit state: 2^n complex amplitudes, index i read as an n-bit
big-endian pattern with the first qubit as the most significant bit.

A State is a value. Nothing in this package mutates the amplitudes of a State
after it has been returned; every transformation produces a new State.

The 0-qubit state is a single amplitude tagged with zero qubits. One is the
canonical 0-qubit state and tensoring with it is the identity.
*/
type State struct {
	amps   []complex128
	qubits int
}

// wrapState takes ownership of amps, which must have a power-of-two length.
func wrapState(amps []complex128) State {
	return State{amps: amps, qubits: bits.Len(uint(len(amps))) - 1}
}

/*
NewState copies the amplitudes into a new State. The length must be a power
of two. Normalization is not enforced, so non-normalized intermediates can be
built and combined.
*/
func NewState(amps ...complex128) (State, error) {
	if len(amps) == 0 || len(amps)&(len(amps)-1) != 0 {
		return State{}, preconditionError("NewState", "length %d is not a power of two", len(amps))
	}

	out := make([]complex128, len(amps))
	copy(out, amps)
	return wrapState(out), nil
}

// BasisIndex returns the n-qubit computational basis state |i>.
func BasisIndex(n, i int) (State, error) {
	if n < 0 || i < 0 || i >= 1<<n {
		return State{}, preconditionError("BasisIndex", "index %d outside %d qubits", i, n)
	}

	amps := make([]complex128, 1<<n)
	amps[i] = 1
	return wrapState(amps), nil
}

// Basis returns the computational basis state for the bit pattern b.
func Basis(b Bits) State {
	amps := make([]complex128, 1<<len(b))
	amps[b.Int()] = 1
	return wrapState(amps)
}

// Qubits returns n for an n-qubit state.
func (s State) Qubits() int { return s.qubits }

// Dim returns 2^n.
func (s State) Dim() int { return len(s.amps) }

// At returns the amplitude of basis index i.
func (s State) At(i int) complex128 { return s.amps[i] }

// Amplitudes returns a copy of the amplitudes.
func (s State) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amps))
	copy(out, s.amps)
	return out
}

// IsScalar reports whether s is a 0-qubit state.
func (s State) IsScalar() bool { return s.qubits == 0 && len(s.amps) == 1 }

/*
Tensor returns s ⊗ t, an (n+m)-qubit state whose first n qubits are those of
s. A 0-qubit operand only scales the other one.
*/
func (s State) Tensor(t State) State {
	out := make([]complex128, len(s.amps)*len(t.amps))
	for i, a := range s.amps {
		if a == 0 {
			continue
		}
		row := out[i*len(t.amps):]
		for j, b := range t.amps {
			row[j] = a * b
		}
	}
	return wrapState(out)
}

// Power returns the m-fold tensor power of s, m >= 1.
func (s State) Power(m int) (State, error) {
	if m < 1 {
		return State{}, preconditionError("State.Power", "m = %d", m)
	}

	out := s
	for i := 1; i < m; i++ {
		out = out.Tensor(s)
	}
	return out, nil
}

// Scale returns c·s.
func (s State) Scale(c complex128) State {
	out := make([]complex128, len(s.amps))
	for i, a := range s.amps {
		out[i] = c * a
	}
	return wrapState(out)
}

// Add returns s + t.
func (s State) Add(t State) (State, error) {
	if len(s.amps) != len(t.amps) {
		return State{}, dimensionError("State.Add", len(s.amps), len(t.amps))
	}

	out := make([]complex128, len(s.amps))
	for i := range s.amps {
		out[i] = s.amps[i] + t.amps[i]
	}
	return wrapState(out), nil
}

// Norm returns the Euclidean norm.
func (s State) Norm() float64 {
	return math.Sqrt(sumSquares(s.amps))
}

// Normalize rescales s to unit norm.
func (s State) Normalize() (State, error) {
	norm := s.Norm()
	if norm == 0 {
		return State{}, preconditionError("State.Normalize", "zero vector")
	}
	return s.Scale(complex(1/norm, 0)), nil
}

// Probabilities returns |amplitude|² per basis index.
func (s State) Probabilities() []float64 {
	out := make([]float64, len(s.amps))
	for i, a := range s.amps {
		out[i] = absSquared(a)
	}
	return out
}

/*
Equal reports whether the summed absolute difference of the amplitudes is
below epsilon. Global phase is not factored out: e^{iθ}|ψ> and |ψ> compare
unequal unless θ is a multiple of 2π. States of different dimension are
never equal.
*/
func (s State) Equal(t State, epsilon float64) bool {
	if len(s.amps) != len(t.amps) {
		return false
	}
	return sumAbsDiff(s.amps, t.amps) < epsilon
}

func (s State) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, a := range s.amps {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%.4f", a)
	}
	sb.WriteString("]")
	return sb.String()
}

func absSquared(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}

func sumSquares(amps []complex128) float64 {
	var total float64
	for _, a := range amps {
		total += absSquared(a)
	}
	return total
}

func sumAbsDiff(a, b []complex128) float64 {
	var total float64
	for i := range a {
		total += cmplx.Abs(a[i] - b[i])
	}
	return total
}
