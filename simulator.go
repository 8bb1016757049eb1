package qsim

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
)

// DefaultTolerance is the comparison tolerance used throughout.
const DefaultTolerance = 1e-6

/*
Simulator owns the random source consumed by Uniform and by measurement, and
the tolerance used for classical read-out and degenerate branches.

A Simulator is single-threaded: it must not be shared between goroutines.
Deterministic operations (Gate.Apply, Tensor, Fourier, BuildOracle) are
package-level and need no Simulator.
*/
type Simulator struct {
	source    Source
	tolerance float64
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithSource injects the random source.
func WithSource(source Source) SimulatorOption {
	return func(s *Simulator) {
		if source != nil {
			s.source = source
		}
	}
}

// WithSeed seeds a fresh PCG source, see NewSource.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) {
		s.source = NewSource(seed)
	}
}

// WithTolerance overrides DefaultTolerance.
func WithTolerance(epsilon float64) SimulatorOption {
	return func(s *Simulator) {
		if epsilon > 0 {
			s.tolerance = epsilon
		}
	}
}

/*
NewSimulator returns a Simulator. Without WithSource or WithSeed the source is
seeded from crypto/rand, so runs are only reproducible with an explicit seed.
*/
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		var seed [8]byte
		_, _ = crand.Read(seed[:])
		s.source = NewSource(binary.LittleEndian.Uint64(seed[:]))
	}
	return s
}

// Tolerance returns the comparison tolerance.
func (s *Simulator) Tolerance() float64 { return s.tolerance }

// Source returns the random source.
func (s *Simulator) Source() Source { return s.source }

/*
Uniform returns a uniformly random normalized n-qubit state: 2^n complex
Gaussian components, normalized, redrawn in the (probability zero) case of a
zero norm. Uniform(0) is One.
*/
func (s *Simulator) Uniform(n int) (State, error) {
	if n < 0 {
		return State{}, preconditionError("Uniform", "n = %d", n)
	}
	if n == 0 {
		return One, nil
	}

	dim := 1 << n
	amps := make([]complex128, dim)
	normSq := 0.0
	for normSq == 0 {
		for i := range amps {
			amps[i] = complex(s.source.NormFloat64(), 0)
		}
		for i := range amps {
			amps[i] += complex(0, s.source.NormFloat64())
		}
		normSq = sumSquares(amps)
	}

	scale := complex(1/math.Sqrt(normSq), 0)
	for i := range amps {
		amps[i] *= scale
	}
	return wrapState(amps), nil
}

// Coin returns 0 or 1 with equal probability.
func (s *Simulator) Coin() uint8 {
	return uint8(s.source.IntN(2))
}
