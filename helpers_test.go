package hohmann

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// vectorsEqual returns whether both vectors are equal within 1e-12 relative or absolute tolerance.
func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], 1e-12, 1e-12) {
			return false
		}
	}
	return true
}

// Radii of the default scenario: 200 km parking orbit to GEO.
var (
	leoRadius = Earth.Radius + 200
	geoRadius = Earth.Radius + 35786
)
