package qsim

import (
	"fmt"
	"strings"
)

/*
Bits is an n-bit string, one 0/1 value per element, most significant bit
first. It is bijective with 0..2^n-1 through big-endian binary encoding.
*/
type Bits []uint8

// BitsFromInt encodes v on n bits, padding with leading zeros.
func BitsFromInt(n, v int) Bits {
	b := make(Bits, n)
	for k := n - 1; k >= 0 && v > 0; k-- {
		b[k] = uint8(v & 1)
		v >>= 1
	}
	return b
}

// Int decodes b as a big-endian integer.
func (b Bits) Int() int {
	v := 0
	for _, bit := range b {
		v = v<<1 | int(bit&1)
	}
	return v
}

// Next returns the lexicographic successor of b; after 1…1 comes 0…0.
func (b Bits) Next() Bits {
	out := make(Bits, len(b))
	copy(out, b)

	k := len(out) - 1
	for k >= 0 && out[k] == 1 {
		out[k] = 0
		k--
	}
	if k >= 0 {
		out[k] = 1
	}
	return out
}

// Xor returns the mod-2 sum b ⊕ c with the length of b. Positions past the
// end of c count as 0.
func (b Bits) Xor(c Bits) Bits {
	out := make(Bits, len(b))
	copy(out, b)
	for i := range min(len(b), len(c)) {
		out[i] = (b[i] ^ c[i]) & 1
	}
	return out
}

// Dot returns the mod-2 dot product over the common length of b and c.
func (b Bits) Dot(c Bits) uint8 {
	var acc uint8
	for i := range min(len(b), len(c)) {
		acc ^= b[i] & c[i]
	}
	return acc & 1
}

// Concat returns b‖c.
func (b Bits) Concat(c Bits) Bits {
	out := make(Bits, 0, len(b)+len(c))
	out = append(out, b...)
	return append(out, c...)
}

// IsZero reports whether every bit is 0.
func (b Bits) IsZero() bool {
	for _, bit := range b {
		if bit != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether b and c hold the same bits.
func (b Bits) Equal(c Bits) bool {
	if len(b) != len(c) {
		return false
	}
	for i := range b {
		if b[i] != c[i] {
			return false
		}
	}
	return true
}

// State returns the basis state |b>.
func (b Bits) State() State { return Basis(b) }

func (b Bits) String() string {
	var sb strings.Builder
	for _, bit := range b {
		fmt.Fprintf(&sb, "%d", bit)
	}
	return sb.String()
}

/*
Reduce returns the reduced row echelon form over GF(2) of the m x n binary
matrix whose rows are the given bit strings. The input is left unaltered.
*/
func Reduce(rows []Bits) []Bits {
	b := make([]Bits, len(rows))
	for i, row := range rows {
		b[i] = append(Bits(nil), row...)
	}
	if len(b) == 0 {
		return b
	}

	m, n := len(b), len(b[0])
	rank := 0
	for j := 0; j < n && rank < m; j++ {
		i := rank
		for i < m && b[i][j] == 0 {
			i++
		}
		if i == m {
			continue
		}
		b[i], b[rank] = b[rank], b[i]
		for k := 0; k < m; k++ {
			if k != rank && b[k][j] == 1 {
				b[k] = b[k].Xor(b[rank])
			}
		}
		rank++
	}
	return b
}

// Rank returns the GF(2) rank of the rows.
func Rank(rows []Bits) int {
	rank := 0
	for _, row := range Reduce(rows) {
		if !row.IsZero() {
			rank++
		}
	}
	return rank
}

/*
Nullspace returns the nonzero n-bit string δ with γ·δ = 0 for every row γ,
provided the rows have rank exactly n-1. Otherwise the nullspace is not a
single line and ErrNoSolution is returned.
*/
func Nullspace(rows []Bits, n int) (Bits, error) {
	reduced := Reduce(rows)

	pivots := make([]int, 0, n)
	pivotRows := make([]Bits, 0, n)
	isPivot := make([]bool, n)
	for _, row := range reduced {
		for j, bit := range row {
			if bit == 1 {
				pivots = append(pivots, j)
				pivotRows = append(pivotRows, row)
				isPivot[j] = true
				break
			}
		}
	}
	if len(pivots) != n-1 {
		return nil, fmt.Errorf("qsim: Nullspace: rank %d, want %d: %w", len(pivots), n-1, ErrNoSolution)
	}

	free := 0
	for isPivot[free] {
		free++
	}

	delta := make(Bits, n)
	delta[free] = 1
	for i, p := range pivots {
		delta[p] = pivotRows[i][free]
	}
	return delta, nil
}

/*
BitsFromStates reads each one-qubit state as a classical bit. A state that is
not exactly |0> or |1> within epsilon yields ErrNotClassical.
*/
func BitsFromStates(states []State, epsilon float64) (Bits, error) {
	out := make(Bits, len(states))
	for i, s := range states {
		switch {
		case s.Equal(Ket0, epsilon):
			out[i] = 0
		case s.Equal(Ket1, epsilon):
			out[i] = 1
		default:
			return nil, fmt.Errorf("qsim: BitsFromStates: position %d: %w", i, ErrNotClassical)
		}
	}
	return out, nil
}
