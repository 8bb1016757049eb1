package qsim

import (
	"math"
	"math/cmplx"
)

/*
Fourier returns the n-qubit quantum Fourier transform

	T[α,β] = 2^(-n/2) · exp(i·2π·α·β / 2^n)

for n >= 1. Fourier(1) is H.
*/
func Fourier(n int) (Gate, error) {
	if n < 1 {
		return Gate{}, preconditionError("Fourier", "n = %d", n)
	}

	dim := 1 << n
	norm := complex(math.Pow(2, -float64(n)/2), 0)
	m := make([]complex128, dim*dim)
	for alpha := 0; alpha < dim; alpha++ {
		for beta := 0; beta < dim; beta++ {
			// α·β is reduced mod 2^n so the phase argument stays small.
			k := (alpha * beta) % dim
			m[alpha*dim+beta] = norm * cmplx.Exp(complex(0, 2*math.Pi*float64(k)/float64(dim)))
		}
	}
	return wrapGate(m, dim), nil
}
