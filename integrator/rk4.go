package integrator

import (
	"fmt"
	"math"
)

// RK4 defines a fixed step RK4 integrator.
type RK4 struct {
	StepSize float64 // The step size.
}

var _ Solver = (*RK4)(nil)

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(stepSize float64) (*RK4, error) {
	if !(stepSize > 0) {
		return nil, fmt.Errorf("%w: step size must be positive (got %g)", ErrInvalidConfig, stepSize)
	}
	return &RK4{StepSize: stepSize}, nil
}

// Solve solves the configured RK4. The last step is shortened to land on tEnd.
// Every step is accepted, so Stats.Rejected is always zero.
func (r *RK4) Solve(f Integrable, s0 []float64, t0, tEnd float64, obs Observer) (stats Stats, err error) {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)
	fail := func(e error) (Stats, error) {
		stats.Status = Failed
		return stats, e
	}
	if err = checkSpan(s0, t0, tEnd); err != nil {
		return fail(err)
	}

	n := len(s0)
	state := make([]float64, n)
	copy(state, s0)
	// k1 through k4 hold the derivatives, tState the intermediate states.
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	k4 := make([]float64, n)
	tState := make([]float64, n)
	eval := func(t float64, s, sDot []float64) error {
		stats.Evaluations++
		return f.Func(t, s, sDot)
	}

	t := t0
	if obs != nil {
		if err = obs(t, state); err != nil {
			return fail(err)
		}
	}
	for t < tEnd {
		stats.Status = StepAttempt
		h := r.StepSize
		last := false
		if h >= tEnd-t {
			h = tEnd - t
			last = true
		}
		stats.LastStep = h
		if t+h == t {
			return fail(&StepConvergenceError{T: t, Step: h, ErrNorm: math.NaN()})
		}

		if err = eval(t, state, k1); err != nil {
			return fail(err)
		}
		for i := range state {
			tState[i] = state[i] + h*half*k1[i]
		}
		if err = eval(t+h*half, tState, k2); err != nil {
			return fail(err)
		}
		for i := range state {
			tState[i] = state[i] + h*half*k2[i]
		}
		if err = eval(t+h*half, tState, k3); err != nil {
			return fail(err)
		}
		for i := range state {
			tState[i] = state[i] + h*k3[i]
		}
		if err = eval(t+h, tState, k4); err != nil {
			return fail(err)
		}
		for i := range state {
			state[i] += h * (oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i]))
		}

		if last {
			t = tEnd
		} else {
			t += h
		}
		stats.Accepted++
		stats.Status = Accepted
		if obs != nil {
			if err = obs(t, state); err != nil {
				return fail(err)
			}
		}
	}
	stats.Status = Complete
	return stats, nil
}
