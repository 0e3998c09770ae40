package integrator

import (
	"fmt"
	"math"
)

// Dormand-Prince 5(4) coefficients (Hairer, Nørsett & Wanner, table 5.2).
const (
	c2 = 1 / 5.
	c3 = 3 / 10.
	c4 = 4 / 5.
	c5 = 8 / 9.

	a21 = 1 / 5.

	a31 = 3 / 40.
	a32 = 9 / 40.

	a41 = 44 / 45.
	a42 = -56 / 15.
	a43 = 32 / 9.

	a51 = 19372 / 6561.
	a52 = -25360 / 2187.
	a53 = 64448 / 6561.
	a54 = -212 / 729.

	a61 = 9017 / 3168.
	a62 = -355 / 33.
	a63 = 46732 / 5247.
	a64 = 49 / 176.
	a65 = -5103 / 18656.

	// Fifth order weights, also the last row of the tableau (FSAL).
	b1 = 35 / 384.
	b3 = 500 / 1113.
	b4 = 125 / 192.
	b5 = -2187 / 6784.
	b6 = 11 / 84.

	// Difference between the fifth and the embedded fourth order weights.
	e1 = 71 / 57600.
	e3 = -71 / 16695.
	e4 = 71 / 1920.
	e5 = -17253 / 339200.
	e6 = 22 / 525.
	e7 = -1 / 40.

	// Exponent of the step size controller: 1/(q+1) with q=4 the order of the error estimate.
	errExponent = 1 / 5.
)

// Config configures the adaptive step size controller.
type Config struct {
	AbsTol        float64 // Absolute tolerance, in state units.
	RelTol        float64 // Relative tolerance.
	InitialStep   float64 // First step size attempted.
	MaxStep       float64 // Upper bound on the step size; zero for none.
	Safety        float64 // Safety factor applied to the optimal step size.
	MaxGrowth     float64 // Largest step size growth factor.
	MinShrink     float64 // Smallest step size shrink factor.
	MaxRejections int     // Consecutive rejections allowed before failing.
}

// DefaultConfig returns the controller defaults.
func DefaultConfig() Config {
	return Config{
		AbsTol:        1e-6,
		RelTol:        1e-6,
		InitialStep:   0.1,
		Safety:        0.9,
		MaxGrowth:     5,
		MinShrink:     0.2,
		MaxRejections: 50,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if the configuration cannot be used.
func (c Config) Validate() error {
	switch {
	case c.AbsTol < 0 || c.RelTol < 0 || (c.AbsTol == 0 && c.RelTol == 0):
		return fmt.Errorf("%w: tolerances must be non negative and not both zero (abs=%g, rel=%g)", ErrInvalidConfig, c.AbsTol, c.RelTol)
	case !(c.InitialStep > 0):
		return fmt.Errorf("%w: initial step must be positive (got %g)", ErrInvalidConfig, c.InitialStep)
	case c.MaxStep < 0:
		return fmt.Errorf("%w: max step may not be negative (got %g)", ErrInvalidConfig, c.MaxStep)
	case !(c.Safety > 0 && c.Safety <= 1):
		return fmt.Errorf("%w: safety factor must be in (0, 1] (got %g)", ErrInvalidConfig, c.Safety)
	case c.MaxGrowth < 1:
		return fmt.Errorf("%w: max growth must be at least 1 (got %g)", ErrInvalidConfig, c.MaxGrowth)
	case !(c.MinShrink > 0 && c.MinShrink < 1):
		return fmt.Errorf("%w: min shrink must be in (0, 1) (got %g)", ErrInvalidConfig, c.MinShrink)
	case c.MaxRejections < 1:
		return fmt.Errorf("%w: max rejections must be at least 1 (got %d)", ErrInvalidConfig, c.MaxRejections)
	}
	return nil
}

// Dopri54 is an adaptive Dormand-Prince 5(4) solver.
// It only holds its configuration: each call to Solve owns its own controller state,
// so a single Dopri54 may be shared between goroutines.
type Dopri54 struct {
	cfg Config
}

var _ Solver = (*Dopri54)(nil)

// NewDopri54 returns a new Dormand-Prince solver.
func NewDopri54(cfg Config) (*Dopri54, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dopri54{cfg}, nil
}

// Config returns the configuration of this solver.
func (d *Dopri54) Config() Config {
	return d.cfg
}

// Solve integrates f from t0 to tEnd starting at s0, which is not modified.
// The observer receives the initial state, then every accepted state; the last call is at exactly tEnd.
func (d *Dopri54) Solve(f Integrable, s0 []float64, t0, tEnd float64, obs Observer) (stats Stats, err error) {
	fail := func(e error) (Stats, error) {
		stats.Status = Failed
		return stats, e
	}
	if err = checkSpan(s0, t0, tEnd); err != nil {
		return fail(err)
	}

	n := len(s0)
	y := make([]float64, n)
	copy(y, s0)
	yNew := make([]float64, n)
	yTmp := make([]float64, n)
	var k [7][]float64
	for i := range k {
		k[i] = make([]float64, n)
	}
	eval := func(t float64, s, sDot []float64) error {
		stats.Evaluations++
		return f.Func(t, s, sDot)
	}

	t := t0
	if obs != nil {
		if err = obs(t, y); err != nil {
			return fail(err)
		}
	}
	if t >= tEnd {
		stats.Status = Complete
		return stats, nil
	}
	if err = eval(t, y, k[0]); err != nil {
		return fail(err)
	}

	h := d.cfg.InitialStep
	rejections := 0
	for {
		if d.cfg.MaxStep > 0 && h > d.cfg.MaxStep {
			h = d.cfg.MaxStep
		}
		last := false
		if remaining := tEnd - t; h >= remaining {
			h = remaining
			last = true
		}
		stats.Status = StepAttempt
		stats.LastStep = h
		if t+h == t {
			return fail(&StepConvergenceError{T: t, Step: h, ErrNorm: stats.LastErr, Rejections: rejections})
		}

		for i := range y {
			yTmp[i] = y[i] + h*a21*k[0][i]
		}
		if err = eval(t+c2*h, yTmp, k[1]); err != nil {
			return fail(err)
		}
		for i := range y {
			yTmp[i] = y[i] + h*(a31*k[0][i]+a32*k[1][i])
		}
		if err = eval(t+c3*h, yTmp, k[2]); err != nil {
			return fail(err)
		}
		for i := range y {
			yTmp[i] = y[i] + h*(a41*k[0][i]+a42*k[1][i]+a43*k[2][i])
		}
		if err = eval(t+c4*h, yTmp, k[3]); err != nil {
			return fail(err)
		}
		for i := range y {
			yTmp[i] = y[i] + h*(a51*k[0][i]+a52*k[1][i]+a53*k[2][i]+a54*k[3][i])
		}
		if err = eval(t+c5*h, yTmp, k[4]); err != nil {
			return fail(err)
		}
		for i := range y {
			yTmp[i] = y[i] + h*(a61*k[0][i]+a62*k[1][i]+a63*k[2][i]+a64*k[3][i]+a65*k[4][i])
		}
		if err = eval(t+h, yTmp, k[5]); err != nil {
			return fail(err)
		}
		for i := range y {
			yNew[i] = y[i] + h*(b1*k[0][i]+b3*k[2][i]+b4*k[3][i]+b5*k[4][i]+b6*k[5][i])
		}
		tNew := t + h
		if last {
			tNew = tEnd
		}
		if err = eval(tNew, yNew, k[6]); err != nil {
			return fail(err)
		}

		errNorm := d.errNorm(h, y, yNew, &k)
		stats.LastErr = errNorm
		if errNorm <= 1 {
			t = tNew
			y, yNew = yNew, y
			k[0], k[6] = k[6], k[0] // First same as last.
			rejections = 0
			stats.Accepted++
			stats.Status = Accepted
			if obs != nil {
				if err = obs(t, y); err != nil {
					return fail(err)
				}
			}
			if last {
				stats.Status = Complete
				return stats, nil
			}
		} else {
			rejections++
			stats.Rejected++
			stats.Status = Rejected
			if rejections > d.cfg.MaxRejections {
				return fail(&StepConvergenceError{T: t, Step: h, ErrNorm: errNorm, Rejections: rejections})
			}
		}
		h *= d.factor(errNorm)
	}
}

// errNorm returns the RMS norm of the local error scaled by the mixed tolerance.
func (d *Dopri54) errNorm(h float64, y, yNew []float64, k *[7][]float64) float64 {
	var sum float64
	for i := range y {
		δ := h * (e1*k[0][i] + e3*k[2][i] + e4*k[3][i] + e5*k[4][i] + e6*k[5][i] + e7*k[6][i])
		sc := d.cfg.AbsTol + d.cfg.RelTol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		if sc == 0 {
			// Component is exactly zero with a purely relative tolerance.
			if δ != 0 {
				return math.Inf(1)
			}
			continue
		}
		sum += (δ / sc) * (δ / sc)
	}
	norm := math.Sqrt(sum / float64(len(y)))
	if math.IsNaN(norm) {
		return math.Inf(1)
	}
	return norm
}

// factor returns the step size multiplier for the provided normalized error.
func (d *Dopri54) factor(errNorm float64) float64 {
	if errNorm == 0 {
		return d.cfg.MaxGrowth
	}
	fac := d.cfg.Safety * math.Pow(errNorm, -errExponent)
	return math.Min(d.cfg.MaxGrowth, math.Max(d.cfg.MinShrink, fac))
}
