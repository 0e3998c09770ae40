package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChristopherRabotin/hohmann"
	"github.com/ChristopherRabotin/hohmann/store"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Computes a Hohmann transfer between two circular orbits and propagates it.

var (
	scenario string
	verbose  bool
)

func main() {
	flags := flag.NewFlagSet("hohmann", flag.ExitOnError)
	flags.StringVar(&scenario, "scenario", "", "scenario TOML file (flags and HOHMANN_* env override it)")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flags.String(hohmann.KeyCentralBodyName, hohmann.Earth.Name, "name of the central body")
	flags.Float64(hohmann.KeyCentralBodyRadius, hohmann.Earth.Radius, "radius of the central body (km)")
	flags.Float64(hohmann.KeyCentralBodyMu, hohmann.Earth.GM(), "gravitational parameter of the central body (km^3/s^2)")
	flags.Float64(hohmann.KeyInitialAltitude, 200, "altitude of the parking orbit (km)")
	flags.Float64(hohmann.KeyFinalAltitude, 35786, "altitude of the target orbit (km)")
	flags.Float64(hohmann.KeyIntegrationTolerance, 1e-9, "absolute and relative integration tolerance")
	flags.Float64(hohmann.KeyAbsTolerance, 0, "absolute integration tolerance (0 uses the integration tolerance)")
	flags.Float64(hohmann.KeyRelTolerance, 0, "relative integration tolerance (0 uses the integration tolerance)")
	flags.Float64(hohmann.KeyInitialStepSize, 0.1, "initial (or fixed for rk4) step size (s)")
	flags.Float64(hohmann.KeyMaxStepSize, 0, "maximum step size (s), 0 for unbounded")
	flags.Int(hohmann.KeyMaxRejections, 50, "consecutive step rejections before failing")
	flags.Float64(hohmann.KeySingularityRadius, hohmann.DefaultSingularityRadius, "radius below which gravity is singular (km)")
	flags.String(hohmann.KeyMethod, hohmann.MethodDopri54, "integration method: dopri54 or rk4")
	flags.Bool(hohmann.KeyFullPeriod, false, "propagate the full period of the transfer ellipse")
	flags.Float64(hohmann.KeyPointingError, 0, "in plane pointing error of the first burn (degrees)")
	flags.String(hohmann.KeyOutput, "output.csv", "CSV trajectory file, empty to disable")
	flags.String(hohmann.KeyCosmographia, "", "Cosmographia .xyzv trajectory file")
	flags.String(hohmann.KeySQLite, "", "SQLite database recording the run")
	flags.String(hohmann.KeyMetricsFile, "", "Prometheus textfile to write the run metrics to")
	flags.String(hohmann.KeyEpoch, hohmann.J2000.Format("2006-01-02T15:04:05Z07:00"), "UTC epoch of the departure burn")
	flags.Parse(os.Args[1:])

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	if err := run(flags, logger); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(flags *flag.FlagSet, logger kitlog.Logger) (err error) {
	v := viper.New()
	hohmann.SetDefaults(v)
	if scenario != "" {
		v.SetConfigFile(scenario)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%s: %w", scenario, err)
		}
	}
	v.SetEnvPrefix("HOHMANN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// Only explicitly set flags override the scenario.
	var bindErr error
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "scenario" || f.Name == "verbose" {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}
	var conf hohmann.Config
	conf, err = hohmann.LoadConfig(v)
	if err != nil {
		return err
	}
	if verbose {
		level.Debug(logger).Log("subsys", "conf", "config", fmt.Sprintf("%+v", conf))
	}

	var sinks hohmann.MultiSink
	var closers []io.Closer
	// Buffered sinks only report write errors on close.
	defer func() {
		err = errors.Join(err, closeAll(closers))
	}()
	if conf.Output != "" {
		csv, err := hohmann.CreateCSVSink(conf.Output)
		if err != nil {
			return err
		}
		sinks = append(sinks, csv)
		closers = append(closers, csv)
	}
	if conf.Cosmographia != "" {
		cg, err := hohmann.CreateCosmographiaSink(conf.Cosmographia, "hohmann", conf.Body, conf.Epoch)
		if err != nil {
			return err
		}
		sinks = append(sinks, cg)
		closers = append(closers, cg)
	}

	if conf.SQLite != "" {
		db, err := store.Open(conf.SQLite)
		if err != nil {
			return err
		}
		closers = append(closers, db)
		tr, err := hohmann.Hohmann(conf.InitialRadius(), conf.FinalRadius(), conf.Body)
		if err != nil {
			return err
		}
		if _, err = db.BeginRun(conf.Body, conf.InitialRadius(), conf.FinalRadius(), tr); err != nil {
			return err
		}
		sinks = append(sinks, db)
	}

	var mission *hohmann.Mission
	mission, err = hohmann.NewMission(conf, sinks, logger)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if conf.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		metrics, err := hohmann.NewMetrics(reg)
		if err != nil {
			return err
		}
		mission.WithMetrics(metrics)
	}

	tr := mission.Transfer
	fmt.Printf("\n=== HOHMANN TRANSFER INFO ===\n")
	fmt.Printf("%s: %.1f km -> %.1f km\n", conf.Body, conf.InitialRadius(), conf.FinalRadius())
	fmt.Printf("First burn: %f km/s\n", tr.ΔvInit)
	fmt.Printf("Second burn: %f km/s\n", tr.ΔvFinal)
	fmt.Printf("Transfer orbit period: %f s\n", tr.Period)
	fmt.Printf("Time of flight: %s (~%.3f h)\n\n", tr.TOF(), tr.TOF().Hours())

	var rslt hohmann.MissionResult
	rslt, err = mission.Propagate()
	if reg != nil {
		err = errors.Join(err, hohmann.WriteMetrics(conf.MetricsFile, reg))
	}
	if err != nil {
		return err
	}
	fmt.Printf("\n=== ARRIVAL ===\n%s\n", rslt.ArrivalOrbit)
	if rslt.FinalOrbit != nil {
		fmt.Printf("after second burn: %s\n", rslt.FinalOrbit)
	}
	return nil
}

// closeAll closes every closer, in order, and returns all their errors.
func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
