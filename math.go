package hohmann

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
)

// Norm returns the norm of a given vector.
func Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// Unit returns the unit vector of a given vector.
func Unit(a []float64) (b []float64) {
	b = make([]float64, len(a))
	n := Norm(a)
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return
	}
	floats.ScaleTo(b, 1/n, a)
	return
}

// Dot performs the inner product.
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Cross performs the cross product.
func Cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]} // Cross product R x V.
}

// Deg2rad converts degrees to radians.
func Deg2rad(a float64) float64 {
	return a * deg2rad
}

// Rad2deg converts radians to degrees.
func Rad2deg(a float64) float64 {
	return a / deg2rad
}
