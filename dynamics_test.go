package hohmann

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestTwoBodyAcceleration(t *testing.T) {
	tb := NewTwoBody(Earth, DefaultSingularityRadius)
	acc := make([]float64, 3)
	if err := tb.Acceleration(0, []float64{7000, 0, 0}, acc); err != nil {
		t.Fatal(err)
	}
	exp := -Earth.GM() / (7000 * 7000)
	if !scalar.EqualWithinRel(acc[0], exp, 1e-15) || acc[1] != 0 || acc[2] != 0 {
		t.Fatalf("invalid acceleration %+v", acc)
	}
	R := []float64{3000, -4000, 1200}
	if err := tb.Acceleration(0, R, acc); err != nil {
		t.Fatal(err)
	}
	r := Norm(R)
	if !scalar.EqualWithinRel(Norm(acc), Earth.GM()/(r*r), 1e-14) {
		t.Fatal("invalid acceleration magnitude")
	}
	if !scalar.EqualWithinAbs(Dot(Unit(acc), Unit(R)), -1, 1e-14) {
		t.Fatal("acceleration must point to the body center")
	}
}

func TestTwoBodySingularity(t *testing.T) {
	tb := NewTwoBody(Earth, 1)
	acc := make([]float64, 3)
	for _, R := range [][]float64{{0, 0, 0}, {1, 0, 0}, {0.5, 0.5, 0}, {math.NaN(), 0, 0}} {
		err := tb.Acceleration(12, R, acc)
		var sErr *SingularityError
		if !errors.As(err, &sErr) {
			t.Fatalf("R=%+v: expected a singularity error, got %v", R, err)
		}
		if sErr.T != 12 || sErr.Epsilon != 1 {
			t.Fatalf("invalid singularity error %+v", sErr)
		}
	}
	if err := tb.Acceleration(0, []float64{1.001, 0, 0}, acc); err != nil {
		t.Fatalf("unexpected error just outside the singularity radius: %s", err)
	}
}

type constantLaw []float64

func (c constantLaw) Acceleration(t float64, R, acc []float64) error {
	copy(acc, c)
	return nil
}

func TestDynamicsFunc(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5, 6}
	sDot := make([]float64, 6)
	if err := (Dynamics{constantLaw{-1, 0, 1}}).Func(0, s, sDot); err != nil {
		t.Fatal(err)
	}
	if !vectorsEqual(sDot, []float64{4, 5, 6, -1, 0, 1}) {
		t.Fatalf("invalid derivative %+v", sDot)
	}
	if err := (Dynamics{constantLaw{math.NaN(), 0, 0}}).Func(0, s, sDot); err == nil {
		t.Fatal("expected an error on NaN acceleration")
	}
	err := (Dynamics{NewTwoBody(Earth, 1)}).Func(0, make([]float64, 6), sDot)
	var sErr *SingularityError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected a singularity error, got %v", err)
	}
}
