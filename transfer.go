package hohmann

import (
	"fmt"
	"math"
	"time"
)

// TransferResult stores the impulses and period of a Hohmann transfer.
// A positive Δv is a prograde burn, a negative one is retrograde.
type TransferResult struct {
	ΔvInit  float64 // First burn in km/s.
	ΔvFinal float64 // Second burn in km/s.
	Period  float64 // Full period of the transfer ellipse in seconds.
}

// TimeOfFlight returns the transfer duration in seconds, i.e. half the period of the transfer ellipse.
func (r TransferResult) TimeOfFlight() float64 {
	return r.Period / 2
}

// TOF returns the time of flight as a duration.
func (r TransferResult) TOF() time.Duration {
	return time.Duration(r.TimeOfFlight() * float64(time.Second))
}

// String implements the Stringer interface.
func (r TransferResult) String() string {
	tof := r.TOF()
	return fmt.Sprintf("ΔvInit=%f km/s\tΔvFinal=%f km/s\tperiod=%f s\tT.O.F.=%s (~%.3fh)", r.ΔvInit, r.ΔvFinal, r.Period, tof, tof.Hours())
}

// ComputeHohmannImpulses computes the coplanar Hohmann transfer from a circular orbit of
// radius rInit to one of radius rFinal about a body of gravitational parameter μ.
// Radii are in km and μ in km^3/s^2. The returned period is that of the full transfer
// ellipse; see TimeOfFlight for the transfer duration.
func ComputeHohmannImpulses(μ, rInit, rFinal float64) (TransferResult, error) {
	if !(μ > 0) || math.IsInf(μ, 0) {
		return TransferResult{}, fmt.Errorf("%w: μ must be positive and finite (got %g)", ErrInvalidInput, μ)
	}
	if !(rInit > 0) || math.IsInf(rInit, 0) {
		return TransferResult{}, fmt.Errorf("%w: initial radius must be positive and finite (got %g)", ErrInvalidInput, rInit)
	}
	if !(rFinal > 0) || math.IsInf(rFinal, 0) {
		return TransferResult{}, fmt.Errorf("%w: final radius must be positive and finite (got %g)", ErrInvalidInput, rFinal)
	}

	aTransfer := 0.5 * (rInit + rFinal)
	period := 2 * math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/μ)
	if rInit == rFinal {
		// The "transfer" is the circular orbit itself.
		return TransferResult{0, 0, period}, nil
	}

	rPeri := math.Min(rInit, rFinal)
	rApo := math.Max(rInit, rFinal)
	vInit := math.Sqrt(μ / rInit)
	vFinal := math.Sqrt(μ / rFinal)
	vPeri := math.Sqrt((2 * μ / rPeri) - (μ / aTransfer))
	vApo := math.Sqrt((2 * μ / rApo) - (μ / aTransfer))

	if rInit < rFinal {
		return TransferResult{vPeri - vInit, vFinal - vApo, period}, nil
	}
	return TransferResult{vApo - vInit, vFinal - vPeri, period}, nil
}

// Hohmann computes the Hohmann transfer between the two circular orbit radii about the provided body.
func Hohmann(rInit, rFinal float64, body CelestialBody) (TransferResult, error) {
	return ComputeHohmannImpulses(body.GM(), rInit, rFinal)
}
