package qsim

/*
Function is a classical function {0,1}^n -> {0,1}^m. It must be total on
{0,1}^n and pure: BuildOracle calls it once per basis pair.
*/
type Function func(alpha Bits) Bits

/*
BuildOracle returns the (n+m)-qubit permutation gate F with

	F(|α> ⊗ |β>) = |α> ⊗ |β ⊕ f(α)>

for every α in {0,1}^n and β in {0,1}^m. Column α‖β of F is the basis vector
of α‖(β⊕f(α)). The construction visits all 2^(n+m) basis pairs, so it is only
practical for small n+m.
*/
func BuildOracle(n, m int, f Function) (Gate, error) {
	if n < 1 || m < 1 {
		return Gate{}, preconditionError("BuildOracle", "n = %d, m = %d", n, m)
	}
	if f == nil {
		return Gate{}, preconditionError("BuildOracle", "nil function")
	}

	dim := 1 << (n + m)
	gate := make([]complex128, dim*dim)

	alpha := make(Bits, n)
	for i := 0; i < 1<<n; i++ {
		image := f(alpha)
		if len(image) != m {
			return Gate{}, preconditionError("BuildOracle", "f(%s) has %d bits, want %d", alpha, len(image), m)
		}

		beta := make(Bits, m)
		for j := 0; j < 1<<m; j++ {
			column := alpha.Concat(beta).Int()
			row := alpha.Concat(beta.Xor(image)).Int()
			gate[row*dim+column] = 1
			beta = beta.Next()
		}
		alpha = alpha.Next()
	}
	return wrapGate(gate, dim), nil
}

// DotFunction returns f(s) = δ·s mod 2 as a one-bit output.
func DotFunction(delta Bits) Function {
	return func(s Bits) Bits {
		return Bits{delta.Dot(s)}
	}
}

/*
SimonFunction returns a linear f: {0,1}^n -> {0,1}^(n-1) whose kernel is
exactly {0, δ}, for nonzero δ. Let k be the first set bit of δ and M the
identity with column k replaced by δ; f(s) is M·s mod 2 with row k dropped.
*/
func SimonFunction(delta Bits) (Function, error) {
	k := 0
	for k < len(delta) && delta[k] == 0 {
		k++
	}
	if k == len(delta) {
		return nil, preconditionError("SimonFunction", "δ is zero")
	}

	n := len(delta)
	return func(s Bits) Bits {
		full := make(Bits, n)
		for i := 0; i < n; i++ {
			if i == k {
				full[i] = delta[k] & s[k]
			} else {
				full[i] = s[i] ^ (delta[i] & s[k])
			}
		}
		out := make(Bits, 0, n-1)
		out = append(out, full[:k]...)
		return append(out, full[k+1:]...)
	}, nil
}

// PowerModFunction returns f(l) = k^l mod m encoded on n bits.
func PowerModFunction(n, k, m int) (Function, error) {
	if n < 1 || m < 1 || m > 1<<n {
		return nil, preconditionError("PowerModFunction", "n = %d, m = %d", n, m)
	}
	return func(l Bits) Bits {
		return BitsFromInt(n, PowerMod(k, l.Int(), m))
	}, nil
}

// MarkedFunction returns f(α) = 1 iff α is one of the marked strings.
func MarkedFunction(marked ...Bits) Function {
	set := make(map[int]struct{}, len(marked))
	for _, b := range marked {
		set[b.Int()] = struct{}{}
	}
	return func(alpha Bits) Bits {
		if _, ok := set[alpha.Int()]; ok {
			return Bits{1}
		}
		return Bits{0}
	}
}

// PowerMod returns k^l mod m for k, l >= 0 and m >= 1.
func PowerMod(k, l, m int) int {
	result := 1 % m
	cur := k % m
	for l >= 1 {
		if l&1 == 1 {
			result = result * cur % m
		}
		l >>= 1
		cur = cur * cur % m
	}
	return result
}
