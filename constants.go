package qsim

import "math"

var invSqrt2 = complex(1/math.Sqrt2, 0)

// One is the 0-qubit state, the scalar 1.
var One = wrapState([]complex128{1})

// GateOne is the 0-qubit gate.
var GateOne = wrapGate([]complex128{1}, 1)

// One-qubit states.
var (
	Ket0     = wrapState([]complex128{1, 0})
	Ket1     = wrapState([]complex128{0, 1})
	KetPlus  = wrapState([]complex128{invSqrt2, invSqrt2})
	KetMinus = wrapState([]complex128{invSqrt2, -invSqrt2})
)

// One- and two-qubit gates.
var (
	I = wrapGate([]complex128{
		1, 0,
		0, 1,
	}, 2)
	X = wrapGate([]complex128{
		0, 1,
		1, 0,
	}, 2)
	Y = wrapGate([]complex128{
		0, -1i,
		1i, 0,
	}, 2)
	Z = wrapGate([]complex128{
		1, 0,
		0, -1,
	}, 2)
	H = wrapGate([]complex128{
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	}, 2)
	CNOT = wrapGate([]complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}, 4)
	SWAP = wrapGate([]complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}, 4)
)

// ketBit returns |0> or |1>.
func ketBit(b uint8) State {
	if b == 0 {
		return Ket0
	}
	return Ket1
}
