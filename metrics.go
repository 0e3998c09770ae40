package hohmann

import (
	"github.com/ChristopherRabotin/hohmann/integrator"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports the integration workload of propagations.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	accepted    prometheus.Counter
	rejected    prometheus.Counter
	evaluations prometheus.Counter
	lastStep    prometheus.Gauge
	runs        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hohmann_steps_accepted_total",
			Help: "Total number of accepted integration steps.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hohmann_steps_rejected_total",
			Help: "Total number of rejected integration step attempts.",
		}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hohmann_derivative_evaluations_total",
			Help: "Total number of equations of motion evaluations.",
		}),
		lastStep: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hohmann_last_step_seconds",
			Help: "Last attempted integration step size.",
		}),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hohmann_runs_total",
				Help: "Total number of propagations by final status.",
			},
			[]string{"status"},
		),
	}
	for _, c := range []prometheus.Collector{m.accepted, m.rejected, m.evaluations, m.lastStep, m.runs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records the statistics of one propagation.
func (m *Metrics) Observe(stats integrator.Stats) {
	if m == nil {
		return
	}
	m.accepted.Add(float64(stats.Accepted))
	m.rejected.Add(float64(stats.Rejected))
	m.evaluations.Add(float64(stats.Evaluations))
	m.lastStep.Set(stats.LastStep)
	m.runs.WithLabelValues(stats.Status.String()).Inc()
}

// WriteMetrics writes the gathered metrics to path in the node exporter textfile format.
func WriteMetrics(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
