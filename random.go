package qsim

import (
	"math/rand/v2"
)

/*
Source is the uniform random stream consumed by Uniform and by the measurement
engine. *rand.Rand from math/rand/v2 satisfies it.

A Source is not safe for concurrent use. Every goroutine that simulates needs
its own Source, which is what the Pool arranges for its jobs.
*/
type Source interface {
	Float64() float64
	NormFloat64() float64
	IntN(n int) int
}

/*
NewSource returns a reproducible PCG stream for the given seed. The seed is
spread over both PCG words with splitmix64 so that neighbouring seeds give
unrelated streams.
*/
func NewSource(seed uint64) *rand.Rand {
	x := seed ^ 0x9e3779b97f4a7c15
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xda942042e4dd58b5)
	return rand.New(rand.NewPCG(hi, lo))
}

// deriveSeed mixes a base seed with a sequence of counters.
func deriveSeed(base uint64, counters ...uint64) uint64 {
	s := splitmix64(base)
	for _, c := range counters {
		s = splitmix64(s ^ splitmix64(c+0x632be59bd9b4e019))
	}
	return s
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
