package hohmann

import (
	"fmt"
	"strings"
)

// CelestialBody defines the central body of a transfer.
// It is immutable once created and may be shared freely.
type CelestialBody struct {
	Name   string
	Radius float64 // Mean radius in km.
	μ      float64 // Gravitational parameter in km^3/s^2.
}

// NewCelestialBody returns a new body, or an error if the radius or μ are not positive.
func NewCelestialBody(name string, radius, μ float64) (CelestialBody, error) {
	if !(radius > 0) {
		return CelestialBody{}, fmt.Errorf("%w: radius of %s must be positive (got %g km)", ErrInvalidInput, name, radius)
	}
	if !(μ > 0) {
		return CelestialBody{}, fmt.Errorf("%w: μ of %s must be positive (got %g km^3/s^2)", ErrInvalidInput, name, μ)
	}
	return CelestialBody{name, radius, μ}, nil
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialBody) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial body is the same.
func (c CelestialBody) Equals(b CelestialBody) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// CelestialBodyFromString returns the body from its name
func CelestialBodyFromString(name string) (CelestialBody, error) {
	switch strings.ToLower(name) {
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "venus":
		return Venus, nil
	case "mars":
		return Mars, nil
	default:
		return CelestialBody{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Earth is home.
var Earth = CelestialBody{"Earth", 6378.1363, 398600.4418}

// Moon is where we went.
var Moon = CelestialBody{"Moon", 1737.4, 4902.8001}

// Venus is poisonous.
var Venus = CelestialBody{"Venus", 6051.8, 3.24858599e5}

// Mars is the vacation place.
var Mars = CelestialBody{"Mars", 3396.19, 4.28283100e4}
