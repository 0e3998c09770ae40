package hohmann

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Sink records a trajectory, one accepted sample at a time.
// The state slice is only valid for the duration of the call.
type Sink interface {
	Record(t float64, state []float64) error
}

// CSVSink writes `t,x,y,z,vx,vy,vz` records, one per line.
type CSVSink struct {
	w   *bufio.Writer
	c   io.Closer
	buf []byte
}

// NewCSVSink returns a CSV sink writing to w. If w is an io.Closer, Close closes it.
func NewCSVSink(w io.Writer) *CSVSink {
	s := &CSVSink{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

// CreateCSVSink creates (or truncates) the file at path and returns a CSV sink writing to it.
func CreateCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewCSVSink(f), nil
}

// Record implements the Sink interface.
func (s *CSVSink) Record(t float64, state []float64) error {
	s.buf = strconv.AppendFloat(s.buf[:0], t, 'g', -1, 64)
	for _, val := range state {
		s.buf = append(s.buf, ',')
		s.buf = strconv.AppendFloat(s.buf, val, 'g', -1, 64)
	}
	s.buf = append(s.buf, '\n')
	_, err := s.w.Write(s.buf)
	return err
}

// Close flushes the buffered records and closes the underlying writer, if applicable.
func (s *CSVSink) Close() error {
	err := s.w.Flush()
	if s.c != nil {
		if cerr := s.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

// CgItems definition.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState is one record of a Cosmographia interpolated states file.
type CgInterpolatedState struct {
	JD       float64
	Position []float64
	Velocity []float64
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// CosmographiaSink writes a Cosmographia `.xyzv` interpolated states file, and the
// matching catalog (`catalog-<name>.json`, next to it) when closed.
type CosmographiaSink struct {
	f                  *os.File
	w                  *bufio.Writer
	path, name, center string
	epoch              time.Time
	first, last        time.Time
	records            int
}

// CreateCosmographiaSink creates the `.xyzv` file at path. Sample times are seconds past the epoch.
func CreateCosmographiaSink(path, name string, center CelestialBody, epoch time.Time) (*CosmographiaSink, error) {
	if !strings.HasSuffix(path, ".xyzv") {
		return nil, errors.New("Cosmographia interpolated states must use the .xyzv extension")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &CosmographiaSink{f: f, w: bufio.NewWriter(f), path: path, name: name, center: center.Name, epoch: epoch.UTC()}
	// Header
	if _, err = fmt.Fprintf(s.w, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Simulation time start (UTC): %s`, time.Now().UTC(), s.epoch); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Record implements the Sink interface.
func (s *CosmographiaSink) Record(t float64, state []float64) error {
	dt := s.epoch.Add(time.Duration(t * float64(time.Second)))
	if s.records == 0 {
		s.first = dt
	}
	s.last = dt
	s.records++
	asTxt := CgInterpolatedState{JD: julian.TimeToJD(dt), Position: state[:3], Velocity: state[3:6]}
	_, err := s.w.WriteString("\n" + asTxt.ToText())
	return err
}

// Catalog returns the Cosmographia catalog describing the written trajectory.
func (s *CosmographiaSink) Catalog() CgCatalog {
	color := []float64{0.6, 1, 1}
	traj := CgTrajectory{Type: "InterpolatedStates", Source: filepath.Base(s.path)}
	label := CgLabel{Color: color, FadeSize: 1000000, ShowText: true}
	plot := CgTrajectoryPlot{Color: color, LineWidth: 1, Duration: fmt.Sprintf("%d d", int(s.last.Sub(s.first).Hours()/24+1)), Lead: "0 d", Fade: 0, SampleCount: 10}
	item := &CgItems{Class: "spacecraft", Name: s.name, StartTime: s.first.String(), EndTime: s.last.String(), Center: s.center, TrajectoryFrame: "ICRF", Trajectory: &traj, Label: &label, TrajectoryPlot: &plot}
	return CgCatalog{Version: "1.0", Name: s.name, Items: []*CgItems{item}}
}

// Close writes the end of simulation time, closes the states file and writes the catalog.
func (s *CosmographiaSink) Close() error {
	if _, err := fmt.Fprintf(s.w, "\n# Simulation time end (UTC): %s\n", s.last); err != nil {
		s.f.Close()
		return err
	}
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	if err := s.f.Close(); err != nil {
		return err
	}
	marsh, err := json.Marshal(s.Catalog())
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(filepath.Dir(s.path), "catalog-"+s.name+".json"), marsh, 0o644)
}

// Sample is a recorded (time, state) pair.
type Sample struct {
	T     float64
	State []float64
}

// MemorySink records every sample in memory.
type MemorySink struct {
	Samples []Sample
}

// Record implements the Sink interface.
func (m *MemorySink) Record(t float64, state []float64) error {
	m.Samples = append(m.Samples, Sample{t, append([]float64(nil), state...)})
	return nil
}

// MultiSink forwards every sample to all its sinks, in order, stopping at the first error.
type MultiSink []Sink

// Record implements the Sink interface.
func (m MultiSink) Record(t float64, state []float64) error {
	for _, s := range m {
		if err := s.Record(t, state); err != nil {
			return err
		}
	}
	return nil
}
