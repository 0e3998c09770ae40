package hohmann

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqual(Cross(i, j), k) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(Cross(j, k), i) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(Cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}) {
		t.Fatal("cross fail")
	}
	// From Vallado
	if !vectorsEqual(Cross([]float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341}), []float64{-4.924667792015100e4, 4.450050424118601e4, 0.246964476137900e4}) {
		t.Fatal("cross fail")
	}
}

func TestNormUnitDot(t *testing.T) {
	if n := Norm([]float64{3, 4, 12}); n != 13 {
		t.Fatalf("norm=%f != 13", n)
	}
	u := Unit([]float64{3, 4, 12})
	if !vectorsEqual(u, []float64{3. / 13, 4. / 13, 12. / 13}) {
		t.Fatalf("invalid unit vector %+v", u)
	}
	if !scalar.EqualWithinAbs(Norm(u), 1, 1e-15) {
		t.Fatal("unit vector is not of norm 1")
	}
	if !vectorsEqual(Unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of zero vector must be the zero vector")
	}
	if d := Dot([]float64{1, 2, 3}, []float64{4, -5, 6}); d != 12 {
		t.Fatalf("dot=%f != 12", d)
	}
}

func TestAngles(t *testing.T) {
	for i := -360.0; i <= 360; i += 0.5 {
		if !scalar.EqualWithinAbs(Rad2deg(Deg2rad(i)), i, 1e-12) {
			t.Fatalf("%f deg round trip fail", i)
		}
	}
	if Deg2rad(180) != math.Pi {
		t.Fatal("180 deg != π")
	}
}
