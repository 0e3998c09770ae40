package integrator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a solver is configured with unusable tolerances or steps.
var ErrInvalidConfig = errors.New("invalid integrator configuration")

// Integrable defines something which can be integrated, i.e. has a state derivative.
// Func must write ds/dt at time t and state s into sDot, and must not retain either slice.
type Integrable interface {
	Func(t float64, s, sDot []float64) error
}

// Observer is called once per accepted step, with the initial state first.
// The state slice is only valid for the duration of the call.
type Observer func(t float64, s []float64) error

// Solver integrates an Integrable from t0 to tEnd.
type Solver interface {
	Solve(f Integrable, s0 []float64, t0, tEnd float64, obs Observer) (Stats, error)
}

// Status is the state of a step controller.
type Status uint8

const (
	// Idle is the status before the first step attempt.
	Idle Status = iota
	// StepAttempt is set while a candidate step is computed.
	StepAttempt
	// Accepted is set after a step met the tolerance.
	Accepted
	// Rejected is set after a step exceeded the tolerance.
	Rejected
	// Complete is set once tEnd is reached.
	Complete
	// Failed is set when the integration was aborted.
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case StepAttempt:
		return "attempt"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Stats summarizes one integration.
type Stats struct {
	Accepted    uint64  // Number of accepted steps.
	Rejected    uint64  // Total number of rejected attempts.
	Evaluations uint64  // Number of calls to Func.
	LastStep    float64 // Last attempted step size.
	LastErr     float64 // Last normalized local error (1 is the tolerance).
	Status      Status
}

// StepConvergenceError is returned when no acceptable step could be found.
type StepConvergenceError struct {
	T          float64 // Time from which the step was attempted.
	Step       float64 // Last attempted step size.
	ErrNorm    float64 // Normalized local error of that step.
	Rejections int     // Consecutive rejections.
}

func (e *StepConvergenceError) Error() string {
	return fmt.Sprintf("step size control failed at t=%g after %d rejections (dt=%g, err=%g)", e.T, e.Rejections, e.Step, e.ErrNorm)
}

func checkSpan(s0 []float64, t0, tEnd float64) error {
	if len(s0) == 0 {
		return fmt.Errorf("%w: empty initial state", ErrInvalidConfig)
	}
	if tEnd < t0 {
		return fmt.Errorf("%w: tEnd=%g before t0=%g", ErrInvalidConfig, tEnd, t0)
	}
	return nil
}
