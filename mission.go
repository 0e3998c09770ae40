package hohmann

import (
	"fmt"
	"time"

	"github.com/ChristopherRabotin/hohmann/integrator"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

/* Handles the propagation of a Hohmann transfer. */

// Mission defines a Hohmann transfer from a circular parking orbit and does the propagation.
type Mission struct {
	Transfer  TransferResult
	Departure []float64 // State right after the first burn.
	conf      Config
	burn      Maneuver
	prop      *Propagator
	sink      Sink
	metrics   *Metrics
	logger    log.Logger
}

// MissionResult stores the outcome of a propagated transfer.
type MissionResult struct {
	Transfer     TransferResult
	Duration     float64   // Propagated duration in seconds.
	Arrival      []float64 // Last propagated state.
	ArrivalOrbit *Orbit
	FinalOrbit   *Orbit // Orbit after the nominal second burn at arrival, nil when propagating the full period.
	Stats        integrator.Stats
}

// NewMission computes the transfer described by the configuration and prepares its propagation.
// Samples are recorded into sink, which may be nil. A nil logger disables logging.
func NewMission(conf Config, sink Sink, logger log.Logger) (*Mission, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	rInit, rFinal := conf.InitialRadius(), conf.FinalRadius()
	transfer, err := Hohmann(rInit, rFinal, conf.Body)
	if err != nil {
		return nil, err
	}
	solver, err := conf.Solver()
	if err != nil {
		return nil, err
	}
	burn := NewPointedManeuver(transfer.ΔvInit, Deg2rad(conf.PointingError))
	m := &Mission{
		Transfer:  transfer,
		Departure: burn.Apply(CircularState(rInit, conf.Body)),
		conf:      conf,
		burn:      burn,
		prop:      NewPropagator(solver, NewTwoBody(conf.Body, conf.SingularityRadius), logger),
		sink:      sink,
		logger:    log.With(logger, "subsys", "astro"),
	}
	return m, nil
}

// WithMetrics sets the metrics updated after each propagation.
func (m *Mission) WithMetrics(metrics *Metrics) *Mission {
	m.metrics = metrics
	return m
}

// Duration returns the propagation duration in seconds: the time of flight of the
// transfer, or the full period of the transfer ellipse if so configured.
func (m *Mission) Duration() float64 {
	if m.conf.FullPeriod {
		return m.Transfer.Period
	}
	return m.Transfer.TimeOfFlight()
}

// Propagate propagates the transfer from the first burn until the end of the mission.
func (m *Mission) Propagate() (MissionResult, error) {
	duration := m.Duration()
	durStr := time.Duration(duration * float64(time.Second)).String()
	level.Info(m.logger).Log("status", "started", "body", m.conf.Body.Name, "rInit(km)", m.conf.InitialRadius(), "rFinal(km)", m.conf.FinalRadius(), "ΔvInit(km/s)", m.Transfer.ΔvInit, "ΔvFinal(km/s)", m.Transfer.ΔvFinal, "duration", durStr, "burn", m.burn)
	if m.conf.FullPeriod {
		level.Warn(m.logger).Log("message", "propagating the full transfer period: arrival happens at half of it", "tof", m.Transfer.TOF())
	}

	watch := &arrivalWatch{sink: m.sink, body: m.conf.Body, logger: m.logger}
	stats, err := m.prop.Propagate(m.Departure, 0, duration, watch)
	m.metrics.Observe(stats)
	rslt := MissionResult{Transfer: m.Transfer, Duration: duration, Stats: stats}
	if err != nil {
		level.Error(m.logger).Log("status", "failed", "t(s)", watch.t, "err", err)
		return rslt, fmt.Errorf("propagating transfer: %w", err)
	}

	rslt.Arrival = watch.last
	rslt.ArrivalOrbit = NewOrbitFromState(watch.last, m.conf.Body)
	if !m.conf.FullPeriod {
		circularize := NewPointedManeuver(m.Transfer.ΔvFinal, 0)
		rslt.FinalOrbit = NewOrbitFromState(circularize.Apply(watch.last), m.conf.Body)
	}
	level.Info(m.logger).Log("status", "finished", "duration", durStr, "accepted", stats.Accepted, "rejected", stats.Rejected, "evaluations", stats.Evaluations, "arrival", rslt.ArrivalOrbit)
	if rslt.FinalOrbit != nil {
		level.Info(m.logger).Log("status", "circularized", "orbit", rslt.FinalOrbit)
	}
	return rslt, nil
}

// arrivalWatch forwards samples to the mission sink, keeps the last state and
// reports when the trajectory goes through the central body.
type arrivalWatch struct {
	sink     Sink
	body     CelestialBody
	logger   log.Logger
	t        float64
	last     []float64
	collided bool
}

func (w *arrivalWatch) Record(t float64, state []float64) error {
	if w.last == nil {
		w.last = make([]float64, len(state))
	}
	copy(w.last, state)
	w.t = t
	r := Norm(state[:3])
	if !w.collided && r < w.body.Radius {
		w.collided = true
		level.Error(w.logger).Log("collided", w.body.Name, "t(s)", t, "r", r, "radius", w.body.Radius)
	} else if w.collided && r > w.body.Radius*1.1 {
		// Now further from the 10% dead zone
		w.collided = false
		level.Warn(w.logger).Log("revived", w.body.Name, "t(s)", t)
	}
	if w.sink == nil {
		return nil
	}
	return w.sink.Record(t, state)
}
