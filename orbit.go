package hohmann

import (
	"fmt"
	"math"
	"time"
)

// Orbit defines an osculating orbit from its Cartesian state.
type Orbit struct {
	rVec, vVec []float64
	Origin     CelestialBody // Orbit origin
}

// NewOrbitFromRV returns the osculating orbit of the R (km) and V (km/s) vectors.
// Both vectors are copied.
func NewOrbitFromRV(R, V []float64, c CelestialBody) *Orbit {
	o := Orbit{make([]float64, 3), make([]float64, 3), c}
	copy(o.rVec, R)
	copy(o.vVec, V)
	return &o
}

// NewOrbitFromState returns the osculating orbit of a [x y z vx vy vz] state.
func NewOrbitFromState(s []float64, c CelestialBody) *Orbit {
	return NewOrbitFromRV(s[:3], s[3:6], c)
}

// CircularState returns the state of a circular equatorial orbit of radius r,
// at periapsis on the X axis and moving along +Y.
func CircularState(r float64, c CelestialBody) []float64 {
	return []float64{r, 0, 0, 0, math.Sqrt(c.μ / r), 0}
}

// R returns a copy of the radius vector.
func (o Orbit) R() []float64 {
	return append([]float64(nil), o.rVec...)
}

// V returns a copy of the velocity vector.
func (o Orbit) V() []float64 {
	return append([]float64(nil), o.vVec...)
}

// State returns the [x y z vx vy vz] state.
func (o Orbit) State() []float64 {
	return append(o.R(), o.vVec...)
}

// RNorm returns the norm of the radius vector.
func (o Orbit) RNorm() float64 {
	return Norm(o.rVec)
}

// VNorm returns the norm of the velocity vector.
func (o Orbit) VNorm() float64 {
	return Norm(o.vVec)
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	v := o.VNorm()
	return v*v/2 - o.Origin.μ/o.RNorm()
}

// H returns the orbital angular momentum vector.
func (o Orbit) H() []float64 {
	return Cross(o.rVec, o.vVec)
}

// HNorm returns the norm of orbital angular momentum.
func (o Orbit) HNorm() float64 {
	return Norm(o.H())
}

// SemiMajorAxis returns the semi major axis from the vis-viva equation.
func (o Orbit) SemiMajorAxis() float64 {
	return -o.Origin.μ / (2 * o.Energyξ())
}

// EccentricityVector returns the eccentricity vector, pointing to periapsis.
func (o Orbit) EccentricityVector() []float64 {
	r := o.RNorm()
	v := o.VNorm()
	rv := Dot(o.rVec, o.vVec)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-o.Origin.μ/r)*o.rVec[i] - rv*o.vVec[i]) / o.Origin.μ
	}
	return eVec
}

// Eccentricity returns the eccentricity.
func (o Orbit) Eccentricity() float64 {
	return Norm(o.EccentricityVector())
}

// SemiParameter returns the semi parameter p = h²/μ.
func (o Orbit) SemiParameter() float64 {
	h := o.HNorm()
	return h * h / o.Origin.μ
}

// Apoapsis returns the apoapsis radius.
func (o Orbit) Apoapsis() float64 {
	return o.SemiMajorAxis() * (1 + o.Eccentricity())
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.SemiMajorAxis() * (1 - o.Eccentricity())
}

// FlightPathAngle returns the flight path angle in radians, positive when climbing.
func (o Orbit) FlightPathAngle() float64 {
	return math.Asin(Dot(o.rVec, o.vVec) / (o.RNorm() * o.VNorm()))
}

// Period returns the period of this orbit, or zero if it is not closed.
func (o Orbit) Period() time.Duration {
	a := o.SemiMajorAxis()
	if a <= 0 {
		return 0
	}
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/o.Origin.μ)
	return time.Duration(seconds * float64(time.Second))
}

// String implements the stringer interface (hence the value receiver)
func (o Orbit) String() string {
	return fmt.Sprintf("r=%.3f v=%.6f a=%.3f e=%.6f rP=%.3f rA=%.3f ξ=%.6f", o.RNorm(), o.VNorm(), o.SemiMajorAxis(), o.Eccentricity(), o.Periapsis(), o.Apoapsis(), o.Energyξ())
}
