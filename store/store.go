// Package store persists propagated transfers and their trajectories in SQLite.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/ChristopherRabotin/hohmann"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const batchSize = 2000

// ErrNoRun is returned when recording samples before BeginRun.
var ErrNoRun = errors.New("no run started")

// Run is one propagated transfer.
type Run struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Body      string
	Mu        float64  // km^3/s^2
	RInit     float64  // km
	RFinal    float64  // km
	DvInit    float64  // km/s
	DvFinal   float64  // km/s
	Period    float64  // s, full period of the transfer ellipse
	Samples   []Sample `gorm:"constraint:OnDelete:CASCADE"`
}

// Sample is one accepted integration step of a run.
type Sample struct {
	ID    uint `gorm:"primaryKey"`
	RunID uint `gorm:"index"`
	Seq   int
	T     float64
	X     float64
	Y     float64
	Z     float64
	VX    float64
	VY    float64
	VZ    float64
}

// State returns the [x y z vx vy vz] state of this sample.
func (s Sample) State() []float64 {
	return []float64{s.X, s.Y, s.Z, s.VX, s.VY, s.VZ}
}

// Store writes runs and their samples to a SQLite database.
// Samples are buffered and inserted in batches.
type Store struct {
	db      *gorm.DB
	run     *Run
	seq     int
	pending []Sample
}

var _ hohmann.Sink = (*Store)(nil)

// Open opens (or creates) the SQLite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err = db.AutoMigrate(&Run{}, &Sample{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db, pending: make([]Sample, 0, batchSize)}, nil
}

// BeginRun flushes the current run, if any, and starts recording a new one.
func (s *Store) BeginRun(body hohmann.CelestialBody, rInit, rFinal float64, transfer hohmann.TransferResult) (uint, error) {
	if err := s.Flush(); err != nil {
		return 0, err
	}
	run := Run{Body: body.Name, Mu: body.GM(), RInit: rInit, RFinal: rFinal, DvInit: transfer.ΔvInit, DvFinal: transfer.ΔvFinal, Period: transfer.Period}
	if err := s.db.Create(&run).Error; err != nil {
		return 0, fmt.Errorf("creating run: %w", err)
	}
	s.run = &run
	s.seq = 0
	return run.ID, nil
}

// Record implements the hohmann.Sink interface.
func (s *Store) Record(t float64, state []float64) error {
	if s.run == nil {
		return ErrNoRun
	}
	s.pending = append(s.pending, Sample{RunID: s.run.ID, Seq: s.seq, T: t, X: state[0], Y: state[1], Z: state[2], VX: state[3], VY: state[4], VZ: state[5]})
	s.seq++
	if len(s.pending) >= batchSize {
		return s.Flush()
	}
	return nil
}

// Flush inserts the buffered samples.
func (s *Store) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.db.CreateInBatches(s.pending, batchSize).Error; err != nil {
		return fmt.Errorf("inserting %d samples: %w", len(s.pending), err)
	}
	s.pending = s.pending[:0]
	return nil
}

// Runs returns all the recorded runs, without their samples.
func (s *Store) Runs() ([]Run, error) {
	var runs []Run
	err := s.db.Order("id").Find(&runs).Error
	return runs, err
}

// Samples returns the samples of a run in recording order.
func (s *Store) Samples(runID uint) ([]Sample, error) {
	var samples []Sample
	err := s.db.Where("run_id = ?", runID).Order("seq").Find(&samples).Error
	return samples, err
}

// Close flushes the buffered samples and closes the database.
func (s *Store) Close() error {
	ferr := s.Flush()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err = sqlDB.Close(); err != nil {
		return err
	}
	return ferr
}
