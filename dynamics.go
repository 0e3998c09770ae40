package hohmann

import (
	"fmt"
	"math"
)

// DefaultSingularityRadius is the position norm, in km, below which two body gravity is undefined.
const DefaultSingularityRadius = 1e-3

// AccelerationLaw writes the acceleration (km/s^2) at position R (km) and time t (s) into acc.
type AccelerationLaw interface {
	Acceleration(t float64, R, acc []float64) error
}

// TwoBody is the point mass gravity of a celestial body.
type TwoBody struct {
	Body    CelestialBody
	Epsilon float64 // Singularity radius in km.
}

// NewTwoBody returns the point mass gravity law of the provided body.
func NewTwoBody(body CelestialBody, ε float64) TwoBody {
	return TwoBody{body, ε}
}

// Acceleration implements the AccelerationLaw interface.
func (tb TwoBody) Acceleration(t float64, R, acc []float64) error {
	r := Norm(R)
	if !(r > tb.Epsilon) {
		return &SingularityError{T: t, R: r, Epsilon: tb.Epsilon}
	}
	bodyAcc := -tb.Body.μ / (r * r * r)
	for i := 0; i < 3; i++ {
		acc[i] = bodyAcc * R[i]
	}
	return nil
}

// Dynamics turns an acceleration law into the first order system d[R V]/dt = [V a(R)].
// It implements integrator.Integrable.
type Dynamics struct {
	Law AccelerationLaw
}

// Func implements the integrator.Integrable interface.
func (d Dynamics) Func(t float64, s, sDot []float64) error {
	// d\vec{R}/dt
	copy(sDot[:3], s[3:6])
	// d\vec{V}/dt
	if err := d.Law.Acceleration(t, s[:3], sDot[3:6]); err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		if math.IsNaN(sDot[i]) {
			return fmt.Errorf("fDot[%d]=NaN @ t=%gs\tR=%+v\tV=%+v", i, t, s[:3], s[3:6])
		}
	}
	return nil
}
