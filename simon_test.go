package qsim

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimon(t *testing.T) {
	Convey("Given a Simon function hiding δ = 011", t, func() {
		sim := NewSimulator(WithSeed(5))
		delta := Bits{0, 1, 1}
		f, err := SimonFunction(delta)
		So(err, ShouldBeNil)
		gate, err := BuildOracle(3, 2, f)
		So(err, ShouldBeNil)

		Convey("Every sampled γ should be orthogonal to δ", func() {
			seen := map[int]bool{}
			for i := 0; i < 50; i++ {
				kets, err := sim.Simon(3, gate)
				So(err, ShouldBeNil)

				gamma, err := BitsFromStates(kets, sim.Tolerance())
				So(err, ShouldBeNil)
				So(gamma.Dot(delta), ShouldEqual, uint8(0))
				seen[gamma.Int()] = true
			}
			So(len(seen), ShouldEqual, 4)
		})

		Convey("FindSimonShift should recover δ", func() {
			found, err := sim.FindSimonShift(3, gate, 50)
			So(err, ShouldBeNil)
			So(found, ShouldResemble, delta)
		})

		Convey("A gate of the wrong size should be rejected", func() {
			_, err := sim.Simon(2, gate)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)

			_, err = sim.Simon(1, GateOne)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})
	})

	Convey("Given too few runs", t, func() {
		sim := NewSimulator(WithSeed(6))
		f, _ := SimonFunction(Bits{1, 0, 1, 1})
		gate, _ := BuildOracle(4, 3, f)

		Convey("FindSimonShift should report no solution", func() {
			_, err := sim.FindSimonShift(4, gate, 1)
			So(errors.Is(err, ErrNoSolution), ShouldBeTrue)
		})
	})
}
