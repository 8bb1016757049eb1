package qsim

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGroverRotations(t *testing.T) {
	Convey("Given search space sizes", t, func() {
		So(GroverRotations(5, 2), ShouldEqual, 3)
		So(GroverRotations(2, 1), ShouldEqual, 1)
		So(GroverRotations(4, 1), ShouldEqual, 3)
	})
}

func TestGrover(t *testing.T) {
	Convey("Given one marked string among four", t, func() {
		sim := NewSimulator(WithSeed(8))

		Convey("A single rotation should find it every time", func() {
			for v := 0; v < 4; v++ {
				marked := BitsFromInt(2, v)
				gate, err := BuildOracle(2, 1, MarkedFunction(marked))
				So(err, ShouldBeNil)

				kets, err := sim.Grover(2, 1, gate)
				So(err, ShouldBeNil)

				b, err := BitsFromStates(kets, sim.Tolerance())
				So(err, ShouldBeNil)
				So(b, ShouldResemble, marked)
			}
		})

		Convey("Invalid arguments should be rejected", func() {
			gate, _ := BuildOracle(2, 1, MarkedFunction(Bits{0, 1}))

			_, err := sim.Grover(3, 1, gate)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)

			_, err = sim.Grover(2, 0, gate)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})
	})

	Convey("Given two marked strings among 32", t, func() {
		sim := NewSimulator(WithSeed(9))
		f := MarkedFunction(Bits{1, 0, 1, 1, 0}, Bits{0, 0, 1, 1, 1})

		Convey("Most single runs should land on a marked string", func() {
			gate, err := BuildOracle(5, 1, f)
			So(err, ShouldBeNil)

			hits := 0
			for i := 0; i < 50; i++ {
				kets, err := sim.Grover(5, 2, gate)
				So(err, ShouldBeNil)

				b, err := BitsFromStates(kets, sim.Tolerance())
				So(err, ShouldBeNil)
				hits += int(f(b)[0])
			}
			So(float64(hits)/50, ShouldBeGreaterThanOrEqualTo, 0.8)
		})

		Convey("GroverSearch should find one within ten runs", func() {
			found, runs, ok, err := sim.GroverSearch(5, 2, f, 10)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(runs, ShouldBeLessThanOrEqualTo, 10)
			So(f(found), ShouldResemble, Bits{1})
		})
	})
}
