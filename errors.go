package hohmann

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for non positive gravitational parameters or radii.
var ErrInvalidInput = errors.New("invalid input")

// SingularityError is returned when the propagated position reaches the center of the body.
type SingularityError struct {
	T       float64 // Time at which the derivative was requested, in seconds.
	R       float64 // Position norm in km.
	Epsilon float64 // Configured singularity radius in km.
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("gravity singularity at t=%gs: |r|=%g km <= ε=%g km", e.T, e.R, e.Epsilon)
}
