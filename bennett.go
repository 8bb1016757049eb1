package qsim

import "github.com/theapemachine/errnie"

/*
BennettRound is one round of Bennett's (1992) key distribution core.
Alpha is Alice's coin: |0> means she sent |0>, |1> means she sent |+>.
Beta is Bob's coin: |1> means he applied H before measuring. Gamma is Bob's
measured outcome.
*/
type BennettRound struct {
	Alpha State
	Beta  State
	Gamma State
}

// Bennett runs one round with coins drawn from the simulator's source.
func (s *Simulator) Bennett() (BennettRound, error) {
	alice, bob := s.Coin(), s.Coin()

	psi := Ket0
	if alice == 1 {
		psi = KetPlus
	}
	if bob == 1 {
		var err error
		if psi, err = H.Apply(psi); err != nil {
			return BennettRound{}, err
		}
	}

	gamma, _, err := s.MeasureFirst(psi.Tensor(Ket0))
	if err != nil {
		return BennettRound{}, err
	}
	return BennettRound{Alpha: ketBit(alice), Beta: ketBit(bob), Gamma: gamma}, nil
}

/*
BennettTally counts rounds by outcome. A |1> read-out is a success: it is a
true success when Alice's and Bob's coins differ and a false success when they
agree (which the protocol never produces). A |0> read-out is a failure: true
when the coins agree, false when they differ.
*/
type BennettTally struct {
	Rounds       int
	TrueSuccess  int
	FalseSuccess int
	TrueFailure  int
	FalseFailure int
}

// Record classifies one round.
func (t *BennettTally) Record(round BennettRound, epsilon float64) {
	t.Rounds++
	agree := round.Alpha.Equal(round.Beta, epsilon)
	if round.Gamma.Equal(Ket1, epsilon) {
		if agree {
			t.FalseSuccess++
		} else {
			t.TrueSuccess++
		}
		return
	}
	if agree {
		t.TrueFailure++
	} else {
		t.FalseFailure++
	}
}

// Merge adds the counts of another tally.
func (t *BennettTally) Merge(other BennettTally) {
	t.Rounds += other.Rounds
	t.TrueSuccess += other.TrueSuccess
	t.FalseSuccess += other.FalseSuccess
	t.TrueFailure += other.TrueFailure
	t.FalseFailure += other.FalseFailure
}

// Frequencies returns true success, false success, true failure and false
// failure as fractions of the rounds.
func (t BennettTally) Frequencies() (trueSuccess, falseSuccess, trueFailure, falseFailure float64) {
	if t.Rounds == 0 {
		return 0, 0, 0, 0
	}
	total := float64(t.Rounds)
	return float64(t.TrueSuccess) / total,
		float64(t.FalseSuccess) / total,
		float64(t.TrueFailure) / total,
		float64(t.FalseFailure) / total
}

// BennettStatistics runs the given number of rounds and tallies them.
func (s *Simulator) BennettStatistics(rounds int) (BennettTally, error) {
	var tally BennettTally
	for i := 0; i < rounds; i++ {
		round, err := s.Bennett()
		if err != nil {
			return tally, err
		}
		tally.Record(round, s.tolerance)
	}

	ts, fs, tf, ff := tally.Frequencies()
	errnie.Info("BennettStatistics - %d rounds: true success %.3f, false success %.3f, true failure %.3f, false failure %.3f",
		rounds, ts, fs, tf, ff)
	return tally, nil
}
