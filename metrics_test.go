package hohmann

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChristopherRabotin/hohmann/integrator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	metrics.Observe(integrator.Stats{Accepted: 10, Rejected: 2, Evaluations: 73, LastStep: 12.5, Status: integrator.Complete})
	metrics.Observe(integrator.Stats{Accepted: 1, Rejected: 4, Evaluations: 31, LastStep: 1e-3, Status: integrator.Failed})
	if v := testutil.ToFloat64(metrics.accepted); v != 11 {
		t.Fatalf("accepted=%f", v)
	}
	if v := testutil.ToFloat64(metrics.rejected); v != 6 {
		t.Fatalf("rejected=%f", v)
	}
	if v := testutil.ToFloat64(metrics.evaluations); v != 104 {
		t.Fatalf("evaluations=%f", v)
	}
	if v := testutil.ToFloat64(metrics.lastStep); v != 1e-3 {
		t.Fatalf("last step=%f", v)
	}
	if v := testutil.ToFloat64(metrics.runs.WithLabelValues("complete")); v != 1 {
		t.Fatalf("complete runs=%f", v)
	}
	if v := testutil.ToFloat64(metrics.runs.WithLabelValues("failed")); v != 1 {
		t.Fatalf("failed runs=%f", v)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Fatal("expected an error on duplicate registration")
	}
	var nilMetrics *Metrics
	nilMetrics.Observe(integrator.Stats{Accepted: 1})
}

func TestMetricsMission(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	conf := DefaultConfig()
	conf.FinalAltitude = 1000
	rslt, err := mustMission(t, conf).WithMetrics(metrics).Propagate()
	if err != nil {
		t.Fatal(err)
	}
	if v := testutil.ToFloat64(metrics.accepted); v != float64(rslt.Stats.Accepted) {
		t.Fatalf("accepted=%f != %d", v, rslt.Stats.Accepted)
	}
	path := filepath.Join(t.TempDir(), "hohmann.prom")
	if err = WriteMetrics(path, reg); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"hohmann_steps_accepted_total", "hohmann_derivative_evaluations_total", `hohmann_runs_total{status="complete"} 1`} {
		if !strings.Contains(string(data), name) {
			t.Fatalf("%s not in textfile:\n%s", name, data)
		}
	}
}
