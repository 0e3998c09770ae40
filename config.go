package hohmann

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChristopherRabotin/hohmann/integrator"
	"github.com/spf13/viper"
)

// Integration methods.
const (
	MethodDopri54 = "dopri54"
	MethodRK4     = "rk4"
)

// Configuration keys.
const (
	KeyCentralBodyName      = "centralBodyName"
	KeyCentralBodyRadius    = "centralBodyRadius"
	KeyCentralBodyMu        = "centralBodyMu"
	KeyInitialAltitude      = "initialAltitude"
	KeyFinalAltitude        = "finalAltitude"
	KeyIntegrationTolerance = "integrationTolerance"
	KeyAbsTolerance         = "absTolerance"
	KeyRelTolerance         = "relTolerance"
	KeyInitialStepSize      = "initialStepSize"
	KeyMaxStepSize          = "maxStepSize"
	KeyMaxRejections        = "maxRejections"
	KeySingularityRadius    = "singularityRadius"
	KeyMethod               = "method"
	KeyFullPeriod           = "fullPeriod"
	KeyPointingError        = "pointingError"
	KeyOutput               = "output"
	KeyCosmographia         = "cosmographia"
	KeySQLite               = "sqlite"
	KeyMetricsFile          = "metricsFile"
	KeyEpoch                = "epoch"
)

// J2000 is the default epoch of t=0.
var J2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// Config defines a transfer scenario.
type Config struct {
	Body              CelestialBody
	InitialAltitude   float64 // km above the body radius
	FinalAltitude     float64 // km above the body radius
	Method            string
	Integrator        integrator.Config
	SingularityRadius float64 // km
	FullPeriod        bool    // Propagate for the full period of the transfer ellipse instead of the time of flight.
	PointingError     float64 // In plane pointing error of the first burn, in degrees.
	Output            string  // CSV output path, empty to disable.
	Cosmographia      string  // Cosmographia .xyzv output path, empty to disable.
	SQLite            string  // SQLite database path, empty to disable.
	MetricsFile       string  // Prometheus textfile path, empty to disable.
	Epoch             time.Time
}

// InitialRadius returns the radius of the parking orbit.
func (c Config) InitialRadius() float64 {
	return c.Body.Radius + c.InitialAltitude
}

// FinalRadius returns the radius of the target orbit.
func (c Config) FinalRadius() float64 {
	return c.Body.Radius + c.FinalAltitude
}

// SetDefaults registers the default scenario: a 200 km Earth parking orbit to GEO.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCentralBodyName, Earth.Name)
	v.SetDefault(KeyCentralBodyRadius, Earth.Radius)
	v.SetDefault(KeyCentralBodyMu, Earth.GM())
	v.SetDefault(KeyInitialAltitude, 200.0)
	v.SetDefault(KeyFinalAltitude, 35786.0)
	v.SetDefault(KeyIntegrationTolerance, 1e-9)
	v.SetDefault(KeyAbsTolerance, 0.0)
	v.SetDefault(KeyRelTolerance, 0.0)
	v.SetDefault(KeyInitialStepSize, 0.1)
	v.SetDefault(KeyMaxStepSize, 0.0)
	v.SetDefault(KeyMaxRejections, integrator.DefaultConfig().MaxRejections)
	v.SetDefault(KeySingularityRadius, DefaultSingularityRadius)
	v.SetDefault(KeyMethod, MethodDopri54)
	v.SetDefault(KeyFullPeriod, false)
	v.SetDefault(KeyPointingError, 0.0)
	v.SetDefault(KeyOutput, "output.csv")
	v.SetDefault(KeyCosmographia, "")
	v.SetDefault(KeySQLite, "")
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyEpoch, J2000)
}

// DefaultConfig returns the default scenario.
func DefaultConfig() Config {
	v := viper.New()
	SetDefaults(v)
	conf, err := LoadConfig(v)
	if err != nil {
		panic(fmt.Errorf("default configuration is invalid: %s", err))
	}
	return conf
}

// LoadConfig reads and validates the scenario from v.
// The absolute and relative tolerances default to the integration tolerance when unset or zero.
func LoadConfig(v *viper.Viper) (Config, error) {
	body, err := NewCelestialBody(v.GetString(KeyCentralBodyName), v.GetFloat64(KeyCentralBodyRadius), v.GetFloat64(KeyCentralBodyMu))
	if err != nil {
		return Config{}, err
	}
	conf := Config{
		Body:              body,
		InitialAltitude:   v.GetFloat64(KeyInitialAltitude),
		FinalAltitude:     v.GetFloat64(KeyFinalAltitude),
		Method:            strings.ToLower(v.GetString(KeyMethod)),
		SingularityRadius: v.GetFloat64(KeySingularityRadius),
		FullPeriod:        v.GetBool(KeyFullPeriod),
		PointingError:     v.GetFloat64(KeyPointingError),
		Output:            v.GetString(KeyOutput),
		Cosmographia:      v.GetString(KeyCosmographia),
		SQLite:            v.GetString(KeySQLite),
		MetricsFile:       v.GetString(KeyMetricsFile),
		Epoch:             v.GetTime(KeyEpoch).UTC(),
	}

	tol := v.GetFloat64(KeyIntegrationTolerance)
	conf.Integrator = integrator.DefaultConfig()
	conf.Integrator.AbsTol = tol
	conf.Integrator.RelTol = tol
	abs, rel := v.GetFloat64(KeyAbsTolerance), v.GetFloat64(KeyRelTolerance)
	if abs < 0 || rel < 0 {
		return Config{}, fmt.Errorf("%w: tolerances may not be negative (abs=%g, rel=%g)", integrator.ErrInvalidConfig, abs, rel)
	}
	if abs > 0 {
		conf.Integrator.AbsTol = abs
	}
	if rel > 0 {
		conf.Integrator.RelTol = rel
	}
	conf.Integrator.InitialStep = v.GetFloat64(KeyInitialStepSize)
	conf.Integrator.MaxStep = v.GetFloat64(KeyMaxStepSize)
	conf.Integrator.MaxRejections = v.GetInt(KeyMaxRejections)

	return conf, conf.Validate()
}

// Validate returns an error if the scenario cannot be run.
func (c Config) Validate() error {
	if _, err := NewCelestialBody(c.Body.Name, c.Body.Radius, c.Body.GM()); err != nil {
		return err
	}
	if !(c.InitialRadius() > 0) {
		return fmt.Errorf("%w: initial radius must be positive (altitude %g km)", ErrInvalidInput, c.InitialAltitude)
	}
	if !(c.FinalRadius() > 0) {
		return fmt.Errorf("%w: final radius must be positive (altitude %g km)", ErrInvalidInput, c.FinalAltitude)
	}
	if c.SingularityRadius < 0 {
		return fmt.Errorf("%w: singularity radius may not be negative (got %g km)", ErrInvalidInput, c.SingularityRadius)
	}
	switch c.Method {
	case MethodDopri54:
		if err := c.Integrator.Validate(); err != nil {
			return err
		}
	case MethodRK4:
		if !(c.Integrator.InitialStep > 0) {
			return fmt.Errorf("%w: RK4 step size must be positive (got %g)", integrator.ErrInvalidConfig, c.Integrator.InitialStep)
		}
	default:
		return fmt.Errorf("%w: unknown integration method '%s'", integrator.ErrInvalidConfig, c.Method)
	}
	return nil
}

// Solver returns a new solver for this configuration.
func (c Config) Solver() (integrator.Solver, error) {
	switch c.Method {
	case MethodDopri54:
		return integrator.NewDopri54(c.Integrator)
	case MethodRK4:
		return integrator.NewRK4(c.Integrator.InitialStep)
	}
	return nil, fmt.Errorf("%w: unknown integration method '%s'", integrator.ErrInvalidConfig, c.Method)
}
