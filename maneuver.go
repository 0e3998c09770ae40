package hohmann

import (
	"fmt"
	"math"
)

// Maneuver defines an impulsive maneuver in the VNC frame, in km/s.
type Maneuver struct {
	ΔvV, ΔvN, ΔvC float64
}

// NewManeuver returns a new impulsive maneuver from its VNC components.
func NewManeuver(V, N, C float64) Maneuver {
	return Maneuver{V, N, C}
}

// NewPointedManeuver returns a tangential burn of magnitude Δv whose direction is rotated
// in plane by the pointing error (in radians), which adds a conormal component.
// A negative Δv is a retrograde burn.
func NewPointedManeuver(Δv, pointingError float64) Maneuver {
	sinθ, cosθ := math.Sincos(pointingError)
	return Maneuver{Δv * cosθ, 0, Δv * sinθ}
}

// Δv returns the magnitude of this maneuver.
func (m Maneuver) Δv() float64 {
	return Norm([]float64{m.ΔvV, m.ΔvN, m.ΔvC})
}

// Apply returns a copy of the [x y z vx vy vz] state with this maneuver added to its velocity.
func (m Maneuver) Apply(state []float64) []float64 {
	out := make([]float64, len(state))
	copy(out, state)
	Δv := VNC2Inertial(state[:3], state[3:6], []float64{m.ΔvV, m.ΔvN, m.ΔvC})
	for i := 0; i < 3; i++ {
		out[3+i] += Δv[i]
	}
	return out
}

func (m Maneuver) String() string {
	return fmt.Sprintf("burn V=%f N=%f C=%f km/s (Δv=%f km/s)", m.ΔvV, m.ΔvN, m.ΔvC, m.Δv())
}
