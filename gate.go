package qsim

import (
	"math/bits"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

/*
Gate is an n-qubit gate: a 2^n × 2^n matrix stored row-major, rows and columns
indexed by the same bit-pattern convention as State. Gates are built once and
never mutated afterwards.
*/
type Gate struct {
	m      []complex128
	dim    int
	qubits int
}

// wrapGate takes ownership of m, a dim × dim row-major matrix.
func wrapGate(m []complex128, dim int) Gate {
	return Gate{m: m, dim: dim, qubits: bits.Len(uint(dim)) - 1}
}

// NewGate copies a square matrix given as rows into a Gate.
func NewGate(rows ...[]complex128) (Gate, error) {
	dim := len(rows)
	if dim == 0 || dim&(dim-1) != 0 {
		return Gate{}, preconditionError("NewGate", "%d rows is not a power of two", dim)
	}

	m := make([]complex128, dim*dim)
	for i, row := range rows {
		if len(row) != dim {
			return Gate{}, dimensionError("NewGate", dim, len(row))
		}
		copy(m[i*dim:], row)
	}
	return wrapGate(m, dim), nil
}

// Identity returns the n-qubit identity gate.
func Identity(n int) Gate {
	dim := 1 << n
	m := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		m[i*dim+i] = 1
	}
	return wrapGate(m, dim)
}

// Outer returns |a><b| for states of equal dimension.
func Outer(a, b State) (Gate, error) {
	if len(a.amps) != len(b.amps) {
		return Gate{}, dimensionError("Outer", len(a.amps), len(b.amps))
	}
	return outer(a, b), nil
}

func outer(a, b State) Gate {
	dim := len(a.amps)
	m := make([]complex128, dim*dim)
	for i, x := range a.amps {
		for j, y := range b.amps {
			m[i*dim+j] = x * cmplx.Conj(y)
		}
	}
	return wrapGate(m, dim)
}

// Reflection returns 2|ρ><ρ| − I, the reflection about |ρ>.
func Reflection(rho State) Gate {
	g := outer(rho, rho)
	for i := range g.m {
		g.m[i] *= 2
	}
	for i := 0; i < g.dim; i++ {
		g.m[i*g.dim+i] -= 1
	}
	return g
}

// Qubits returns n for an n-qubit gate.
func (g Gate) Qubits() int { return g.qubits }

// Dim returns 2^n.
func (g Gate) Dim() int { return g.dim }

// At returns the entry at row i, column j.
func (g Gate) At(i, j int) complex128 { return g.m[i*g.dim+j] }

// Column returns a copy of column j as a State.
func (g Gate) Column(j int) State {
	out := make([]complex128, g.dim)
	for i := range out {
		out[i] = g.m[i*g.dim+j]
	}
	return wrapState(out)
}

// Apply returns g·s.
func (g Gate) Apply(s State) (State, error) {
	if g.dim != len(s.amps) {
		return State{}, dimensionError("Gate.Apply", g.dim, len(s.amps))
	}

	out := make([]complex128, g.dim)
	cblas128.Gemv(blas.NoTrans, 1, g.general(), vector(s.amps), 0, vector(out))
	return wrapState(out), nil
}

// Application is the package-level form of g.Apply(s).
func Application(g Gate, s State) (State, error) {
	return g.Apply(s)
}

// Tensor returns the Kronecker product g ⊗ h.
func (g Gate) Tensor(h Gate) Gate {
	dim := g.dim * h.dim
	m := make([]complex128, dim*dim)
	for i := 0; i < g.dim; i++ {
		for j := 0; j < g.dim; j++ {
			a := g.m[i*g.dim+j]
			if a == 0 {
				continue
			}
			for k := 0; k < h.dim; k++ {
				row := (i*h.dim + k) * dim
				for l := 0; l < h.dim; l++ {
					m[row+j*h.dim+l] = a * h.m[k*h.dim+l]
				}
			}
		}
	}
	return wrapGate(m, dim)
}

// Power returns the m-fold tensor power of g, m >= 1.
func (g Gate) Power(m int) (Gate, error) {
	if m < 1 {
		return Gate{}, preconditionError("Gate.Power", "m = %d", m)
	}

	out := g
	for i := 1; i < m; i++ {
		out = out.Tensor(g)
	}
	return out, nil
}

// Mul returns the matrix product g·h.
func (g Gate) Mul(h Gate) (Gate, error) {
	if g.dim != h.dim {
		return Gate{}, dimensionError("Gate.Mul", g.dim, h.dim)
	}

	out := wrapGate(make([]complex128, g.dim*g.dim), g.dim)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, g.general(), h.general(), 0, out.general())
	return out, nil
}

// Adjoint returns the conjugate transpose.
func (g Gate) Adjoint() Gate {
	m := make([]complex128, len(g.m))
	for i := 0; i < g.dim; i++ {
		for j := 0; j < g.dim; j++ {
			m[j*g.dim+i] = cmplx.Conj(g.m[i*g.dim+j])
		}
	}
	return wrapGate(m, g.dim)
}

// IsUnitary reports whether g*·g equals the identity within epsilon.
func (g Gate) IsUnitary(epsilon float64) bool {
	product, err := g.Adjoint().Mul(g)
	if err != nil {
		return false
	}
	return product.Equal(Identity(g.qubits), epsilon)
}

// Equal compares entrywise like State.Equal. Global phase is not ignored.
func (g Gate) Equal(h Gate, epsilon float64) bool {
	if g.dim != h.dim {
		return false
	}
	return sumAbsDiff(g.m, h.m) < epsilon
}

// general views the row-major storage as a BLAS matrix without copying.
func (g Gate) general() cblas128.General {
	return cblas128.General{Rows: g.dim, Cols: g.dim, Stride: g.dim, Data: g.m}
}

func vector(amps []complex128) cblas128.Vector {
	return cblas128.Vector{N: len(amps), Inc: 1, Data: amps}
}
