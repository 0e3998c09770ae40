package hohmann

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChristopherRabotin/hohmann/integrator"
	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	if !conf.Body.Equals(Earth) {
		t.Fatalf("default body is %s", conf.Body)
	}
	if conf.InitialRadius() != leoRadius || conf.FinalRadius() != geoRadius {
		t.Fatalf("invalid default radii %f -> %f", conf.InitialRadius(), conf.FinalRadius())
	}
	if conf.Integrator.AbsTol != 1e-9 || conf.Integrator.RelTol != 1e-9 {
		t.Fatalf("invalid default tolerances %+v", conf.Integrator)
	}
	if conf.Integrator.InitialStep != 0.1 || conf.Integrator.MaxRejections != 50 {
		t.Fatalf("invalid default step control %+v", conf.Integrator)
	}
	if conf.Method != MethodDopri54 || conf.FullPeriod || conf.PointingError != 0 {
		t.Fatalf("invalid default %+v", conf)
	}
	if conf.Output != "output.csv" || conf.Cosmographia != "" || conf.SQLite != "" || conf.MetricsFile != "" {
		t.Fatalf("invalid default outputs %+v", conf)
	}
	if !conf.Epoch.Equal(J2000) {
		t.Fatalf("epoch=%s != %s", conf.Epoch, J2000)
	}
	solver, err := conf.Solver()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := solver.(*integrator.Dopri54); !ok {
		t.Fatalf("expected a Dopri54 solver, got %T", solver)
	}
}

func TestLoadConfigScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mars.toml")
	scenario := `centralBodyName = "Mars"
centralBodyRadius = 3396.19
centralBodyMu = 42828.31
initialAltitude = 400
finalAltitude = 17000
integrationTolerance = 1e-10
relTolerance = 1e-8
method = "RK4"
initialStepSize = 2
fullPeriod = true
epoch = 2018-05-01T00:00:00Z
`
	if err := os.WriteFile(path, []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	conf, err := LoadConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Body.Name != "Mars" || conf.Body.GM() != 42828.31 {
		t.Fatalf("invalid body %+v", conf.Body)
	}
	if conf.InitialRadius() != 3396.19+400 {
		t.Fatalf("invalid initial radius %f", conf.InitialRadius())
	}
	if conf.Integrator.AbsTol != 1e-10 || conf.Integrator.RelTol != 1e-8 {
		t.Fatalf("invalid tolerances %+v", conf.Integrator)
	}
	if conf.Method != MethodRK4 || !conf.FullPeriod {
		t.Fatalf("invalid scenario %+v", conf)
	}
	if !conf.Epoch.Equal(time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("invalid epoch %s", conf.Epoch)
	}
	solver, err := conf.Solver()
	if err != nil {
		t.Fatal(err)
	}
	if rk4, ok := solver.(*integrator.RK4); !ok || rk4.StepSize != 2 {
		t.Fatalf("expected an RK4 solver with a 2s step, got %+v", solver)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, tcase := range []struct {
		name string
		key  string
		val  interface{}
		exp  error
	}{
		{"negative mu", KeyCentralBodyMu, -1.0, ErrInvalidInput},
		{"zero radius", KeyCentralBodyRadius, 0.0, ErrInvalidInput},
		{"below center", KeyInitialAltitude, -7000.0, ErrInvalidInput},
		{"negative singularity", KeySingularityRadius, -1.0, ErrInvalidInput},
		{"unknown method", KeyMethod, "euler", integrator.ErrInvalidConfig},
		{"zero tolerance", KeyIntegrationTolerance, 0.0, integrator.ErrInvalidConfig},
		{"zero step", KeyInitialStepSize, 0.0, integrator.ErrInvalidConfig},
		{"negative abs tolerance", KeyAbsTolerance, -1e-9, integrator.ErrInvalidConfig},
		{"negative rel tolerance", KeyRelTolerance, -1e-9, integrator.ErrInvalidConfig},
		{"no rejection", KeyMaxRejections, 0, integrator.ErrInvalidConfig},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tcase.key, tcase.val)
			if _, err := LoadConfig(v); !errors.Is(err, tcase.exp) {
				t.Fatalf("expected %v, got %v", tcase.exp, err)
			}
		})
	}
}
