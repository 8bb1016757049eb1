package qsim

import (
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewState(t *testing.T) {
	Convey("Given amplitude vectors", t, func() {
		Convey("A power-of-two length should make a state", func() {
			s, err := NewState(0.6, 0.8)
			So(err, ShouldBeNil)
			So(s.Qubits(), ShouldEqual, 1)
			So(s.Dim(), ShouldEqual, 2)
			So(s.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("Any other length should be rejected", func() {
			_, err := NewState(1, 0, 0)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)

			_, err = NewState()
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})

		Convey("The input slice should not alias the state", func() {
			amps := []complex128{1, 0}
			s, _ := NewState(amps...)
			amps[0] = 0
			So(s.At(0), ShouldEqual, complex128(1))

			out := s.Amplitudes()
			out[0] = 5
			So(s.At(0), ShouldEqual, complex128(1))
		})
	})
}

func TestBasis(t *testing.T) {
	Convey("Given basis constructors", t, func() {
		Convey("Basis should put all weight on the bit pattern", func() {
			s := Basis(Bits{1, 0, 1})
			So(s.Qubits(), ShouldEqual, 3)
			So(s.At(5), ShouldEqual, complex128(1))
			So(s.Norm(), ShouldEqual, 1.0)
		})

		Convey("BasisIndex should agree with Basis", func() {
			s, err := BasisIndex(3, 5)
			So(err, ShouldBeNil)
			So(s.Equal(Basis(Bits{1, 0, 1}), 1e-12), ShouldBeTrue)

			_, err = BasisIndex(2, 4)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})

		Convey("The empty pattern should be One", func() {
			So(Basis(Bits{}).Equal(One, 1e-12), ShouldBeTrue)
			So(One.IsScalar(), ShouldBeTrue)
		})
	})
}

func TestStateTensor(t *testing.T) {
	Convey("Given one-qubit states", t, func() {
		Convey("|1> ⊗ |0> should be |10>", func() {
			s := Ket1.Tensor(Ket0)
			So(s.Equal(Basis(Bits{1, 0}), 1e-12), ShouldBeTrue)
		})

		Convey("Tensoring with One should change nothing", func() {
			So(One.Tensor(KetPlus).Equal(KetPlus, 1e-12), ShouldBeTrue)
			So(KetMinus.Tensor(One).Equal(KetMinus, 1e-12), ShouldBeTrue)
		})

		Convey("Tensor should be associative", func() {
			a := KetPlus.Tensor(Ket1).Tensor(KetMinus)
			b := KetPlus.Tensor(Ket1.Tensor(KetMinus))
			So(a.Equal(b, 1e-12), ShouldBeTrue)
		})

		Convey("Power should repeat the tensor product", func() {
			p, err := KetPlus.Power(3)
			So(err, ShouldBeNil)
			So(p.Qubits(), ShouldEqual, 3)
			for i := 0; i < p.Dim(); i++ {
				So(real(p.At(i)), ShouldAlmostEqual, 1/math.Sqrt(8), 1e-12)
			}

			_, err = KetPlus.Power(0)
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})
	})
}

func TestStateArithmetic(t *testing.T) {
	Convey("Given the 0.6/0.8 superposition", t, func() {
		s, err := Ket0.Scale(0.6).Add(Ket1.Scale(0.8))
		So(err, ShouldBeNil)

		Convey("Probabilities should be the squared moduli", func() {
			p := s.Probabilities()
			So(p[0], ShouldAlmostEqual, 0.36, 1e-12)
			So(p[1], ShouldAlmostEqual, 0.64, 1e-12)
		})

		Convey("Normalize should rescale to unit norm", func() {
			n, err := s.Scale(3).Normalize()
			So(err, ShouldBeNil)
			So(n.Equal(s, 1e-12), ShouldBeTrue)

			_, err = Ket0.Scale(0).Normalize()
			So(errors.Is(err, ErrInvalidPrecondition), ShouldBeTrue)
		})

		Convey("Adding states of different sizes should fail", func() {
			_, err := s.Add(Basis(Bits{0, 0}))
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestStateEqual(t *testing.T) {
	Convey("Given states to compare", t, func() {
		Convey("Global phase should not be ignored", func() {
			So(Ket1.Scale(-1).Equal(Ket1, 1e-6), ShouldBeFalse)
		})

		Convey("Small differences should be tolerated", func() {
			s, _ := NewState(1, 1e-9)
			So(s.Equal(Ket0, 1e-6), ShouldBeTrue)
		})

		Convey("Different dimensions should never be equal", func() {
			if Ket0.Equal(Basis(Bits{0, 0}), 1) {
				t.Log(spew.Sdump(Ket0))
			}
			So(Ket0.Equal(Basis(Bits{0, 0}), 1), ShouldBeFalse)
		})
	})
}
