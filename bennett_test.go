package qsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBennett(t *testing.T) {
	Convey("Given single Bennett rounds", t, func() {
		sim := NewSimulator(WithSeed(10))

		Convey("Agreeing coins should always read |0>", func() {
			for i := 0; i < 200; i++ {
				round, err := sim.Bennett()
				So(err, ShouldBeNil)
				if round.Alpha.Equal(round.Beta, 1e-9) {
					So(round.Gamma.Equal(Ket0, 1e-9), ShouldBeTrue)
				}
			}
		})
	})

	Convey("Given many rounds", t, func() {
		sim := NewSimulator(WithSeed(11))
		tally, err := sim.BennettStatistics(10000)
		So(err, ShouldBeNil)

		Convey("The frequencies should match the protocol", func() {
			ts, fs, tf, ff := tally.Frequencies()
			So(tally.Rounds, ShouldEqual, 10000)
			So(fs, ShouldEqual, 0.0)
			So(ts, ShouldAlmostEqual, 0.25, 0.02)
			So(tf, ShouldAlmostEqual, 0.5, 0.02)
			So(ff, ShouldAlmostEqual, 0.25, 0.02)
		})

		Convey("Merging should add the counts", func() {
			var total BennettTally
			total.Merge(tally)
			total.Merge(tally)
			So(total.Rounds, ShouldEqual, 20000)
			So(total.TrueSuccess, ShouldEqual, 2*tally.TrueSuccess)
		})
	})

	Convey("Given an empty tally", t, func() {
		ts, fs, tf, ff := BennettTally{}.Frequencies()
		So(ts+fs+tf+ff, ShouldEqual, 0.0)
	})
}
