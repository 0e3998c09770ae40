package hohmann

import (
	"fmt"

	"github.com/ChristopherRabotin/hohmann/integrator"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Propagator propagates a [x y z vx vy vz] state under an acceleration law.
// It holds no state between calls to Propagate.
type Propagator struct {
	Solver integrator.Solver
	Law    AccelerationLaw
	logger log.Logger
}

// NewPropagator returns a new propagator. A nil logger disables logging.
func NewPropagator(solver integrator.Solver, law AccelerationLaw, logger log.Logger) *Propagator {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Propagator{solver, law, log.With(logger, "subsys", "prop")}
}

// Propagate integrates s0 from t0 to tEnd (in seconds), recording every accepted sample,
// including the initial and final ones, into the sink. The sink may be nil.
func (p *Propagator) Propagate(s0 []float64, t0, tEnd float64, sink Sink) (integrator.Stats, error) {
	if len(s0) != 6 {
		return integrator.Stats{Status: integrator.Failed}, fmt.Errorf("%w: state must be [x y z vx vy vz], got %d components", ErrInvalidInput, len(s0))
	}
	if p.Solver == nil || p.Law == nil {
		return integrator.Stats{Status: integrator.Failed}, fmt.Errorf("%w: propagator requires a solver and an acceleration law", ErrInvalidInput)
	}
	var obs integrator.Observer
	if sink != nil {
		obs = func(t float64, s []float64) error {
			if err := sink.Record(t, s); err != nil {
				return fmt.Errorf("recording sample at t=%gs: %w", t, err)
			}
			return nil
		}
	}
	stats, err := p.Solver.Solve(Dynamics{p.Law}, s0, t0, tEnd, obs)
	if err != nil {
		level.Debug(p.logger).Log("status", stats.Status, "accepted", stats.Accepted, "rejected", stats.Rejected, "dt", stats.LastStep, "err", err)
		return stats, err
	}
	level.Debug(p.logger).Log("status", stats.Status, "accepted", stats.Accepted, "rejected", stats.Rejected, "evaluations", stats.Evaluations)
	return stats, nil
}
