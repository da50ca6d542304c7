package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/orbiter/physics"
	"github.com/lixenwraith/orbiter/trail"
	"github.com/lixenwraith/orbiter/viewport"
	"github.com/lixenwraith/orbiter/vmath"
)

// Options configures a Simulation
type Options struct {
	PathCapacity        int
	ThresholdPixels     float64
	TimeScaleIndex      int
	MaxFrameDeltaMillis float64
	MaxSubStepSeconds   float64
	PhantomMassKg       float64
	PhantomRadiusMeters float64
}

// LapListener is notified when body completes a revolution around its primary, lap counts from 1
type LapListener func(body, lap int)

// Simulation owns the bodies, their trails and the frame pipeline
// Frame order: clock budget -> sub-steps (every body once per sub-step) -> trail decimation
// Not safe for concurrent use; the host calls it from a single loop
type Simulation struct {
	System *physics.System
	Paths  []*trail.PathBuffer
	Mapper *viewport.Mapper
	Clock  *SimulationClock

	integrator *physics.Integrator
	threshold  float64
	deltas     []float64

	phantomEnabled bool
	phantom        physics.Body

	laps      []lapTracker
	onLap     LapListener
	elapsed   float64 // simulated seconds
	frames    uint64
	pathsShow bool

	logger *zap.Logger
}

// lapTracker accumulates unwrapped angle of a body around its primary
type lapTracker struct {
	primary int
	prev    float64
	swept   float64
	count   int
}

// NewSimulation wires an already built system, velocities are expected to be initialized
func NewSimulation(sys *physics.System, mapper *viewport.Mapper, opts Options, logger *zap.Logger) (*Simulation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := sys.Validate(); err != nil {
		return nil, fmt.Errorf("system: %w", err)
	}
	if !(opts.ThresholdPixels > 0) {
		return nil, fmt.Errorf("threshold must be positive, got %g", opts.ThresholdPixels)
	}

	s := &Simulation{
		System:     sys,
		Paths:      make([]*trail.PathBuffer, sys.Len()),
		Mapper:     mapper,
		Clock:      NewSimulationClock(opts.TimeScaleIndex, opts.MaxFrameDeltaMillis, opts.MaxSubStepSeconds),
		integrator: physics.NewIntegrator(),
		threshold:  opts.ThresholdPixels,
		deltas:     make([]float64, sys.Len()),
		phantom:    physics.NewBody(0, 0, opts.PhantomRadiusMeters, opts.PhantomMassKg),
		laps:       make([]lapTracker, sys.Len()),
		pathsShow:  true,
		logger:     logger,
	}

	for i := range s.Paths {
		p, err := trail.New(opts.PathCapacity)
		if err != nil {
			return nil, err
		}
		s.Paths[i] = p
	}
	if err := s.ResetPaths(); err != nil {
		return nil, err
	}
	s.resetLaps()

	logger.Info("Simulation ready",
		zap.Int("bodies", sys.Len()),
		zap.Int("path_capacity", opts.PathCapacity),
		zap.String("time_scale", s.Clock.Label()))
	return s, nil
}

// OnLap registers the revolution listener
func (s *Simulation) OnLap(fn LapListener) {
	s.onLap = fn
}

// Frame advances the simulation by one host frame of rawDeltaMillis wall-clock milliseconds
// The first error aborts the frame and is returned to the caller
func (s *Simulation) Frame(rawDeltaMillis float64) error {
	budget := s.Clock.Budget(rawDeltaMillis)
	clear(s.deltas)

	var extra []physics.Body
	if s.phantomEnabled {
		extra = []physics.Body{s.phantom}
	}

	steps := 0
	for dt := range s.Clock.SubSteps(budget) {
		if err := s.integrator.StepAll(s.System, dt, s.deltas, extra...); err != nil {
			return fmt.Errorf("frame %d sub-step %d: %w", s.frames, steps, err)
		}
		s.trackLaps()
		steps++
	}

	for i := range s.System.Bodies {
		if len(s.System.Bodies[i].Influences) == 0 {
			continue
		}
		body := &s.System.Bodies[i]
		if _, err := trail.Record(s.Paths[i], s.Mapper, body.Position.X, body.Position.Y, s.deltas[i], s.threshold); err != nil {
			return fmt.Errorf("frame %d body %q: %w", s.frames, s.System.Meta[i].Name, err)
		}
	}

	s.elapsed += budget
	s.frames++
	return nil
}

// Run advances frames of frameMillis until simulated duration seconds have elapsed
// Used by headless runs; observe is called after each frame when non-nil
func (s *Simulation) Run(duration, frameMillis float64, observe func(*Simulation)) error {
	if !(s.Clock.Budget(frameMillis) > 0) {
		return errors.New("frame budget must be positive")
	}
	target := s.elapsed + duration
	for s.elapsed < target {
		if err := s.Frame(frameMillis); err != nil {
			return err
		}
		if observe != nil {
			observe(s)
		}
	}
	return nil
}

// Resize updates the viewport and clears every trail
func (s *Simulation) Resize(width, height int) error {
	if err := s.Mapper.Resize(width, height); err != nil {
		return err
	}
	s.logger.Debug("Viewport resized", zap.Int("width", width), zap.Int("height", height))
	return s.ResetPaths()
}

// Zoom scales the field of view; trails are kept since they are stored in meters
func (s *Simulation) Zoom(factor float64) error {
	if err := s.Mapper.Zoom(factor); err != nil {
		return err
	}
	s.logger.Debug("Zoom", zap.Float64("field_width_m", s.Mapper.FieldWidth()))
	return nil
}

// ResetPaths clears every trail and seeds it with the body's current position
func (s *Simulation) ResetPaths(capacity ...int) error {
	for i, p := range s.Paths {
		if err := p.Reset(capacity...); err != nil {
			return err
		}
		pos := s.System.Bodies[i].Position
		if err := p.AddPoint(pos.X, pos.Y); err != nil {
			return fmt.Errorf("body %q: %w", s.System.Meta[i].Name, err)
		}
	}
	return nil
}

// TogglePaths flips trail visibility for renderers and returns the new state
func (s *Simulation) TogglePaths() bool {
	s.pathsShow = !s.pathsShow
	return s.pathsShow
}

func (s *Simulation) PathsVisible() bool {
	return s.pathsShow
}

// SetPhantomDisplay places the probe at a display position, mapped back to meters
func (s *Simulation) SetPhantomDisplay(px, py float64) {
	s.phantom.Position.Set(s.Mapper.InverseScaleX(px), s.Mapper.InverseScaleY(py))
}

// TogglePhantom flips whether the probe pulls bodies and returns the new state
func (s *Simulation) TogglePhantom() bool {
	s.phantomEnabled = !s.phantomEnabled
	s.logger.Debug("Phantom", zap.Bool("enabled", s.phantomEnabled))
	return s.phantomEnabled
}

func (s *Simulation) PhantomEnabled() bool {
	return s.phantomEnabled
}

func (s *Simulation) Phantom() physics.Body {
	return s.phantom
}

// Elapsed returns simulated seconds since start
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

func (s *Simulation) Frames() uint64 {
	return s.frames
}

// Laps returns completed revolutions of body i around its primary
func (s *Simulation) Laps(i int) int {
	return s.laps[i].count
}

func (s *Simulation) resetLaps() {
	for i := range s.laps {
		primary := s.System.Primary(i)
		s.laps[i] = lapTracker{primary: primary}
		if primary >= 0 {
			s.laps[i].prev = s.angleAround(i, primary)
		}
	}
}

func (s *Simulation) angleAround(i, primary int) float64 {
	var rel vmath.Vector
	rel.SetVector(s.System.Bodies[i].Position).Subtract(s.System.Bodies[primary].Position)
	return math.Atan2(rel.Y, rel.X)
}

// trackLaps unwraps each body's angle around its primary and fires the listener per full turn
// Bodies move far less than half a turn per sub-step, so unwrapping by nearest branch is exact
func (s *Simulation) trackLaps() {
	for i := range s.laps {
		lt := &s.laps[i]
		if lt.primary < 0 {
			continue
		}
		angle := s.angleAround(i, lt.primary)
		d := angle - lt.prev
		if d > math.Pi {
			d -= 2 * math.Pi
		} else if d < -math.Pi {
			d += 2 * math.Pi
		}
		lt.prev = angle
		lt.swept += d

		if math.Abs(lt.swept) >= 2*math.Pi {
			lt.swept -= math.Copysign(2*math.Pi, lt.swept)
			lt.count++
			s.logger.Debug("Orbit completed",
				zap.String("body", s.System.Meta[i].Name),
				zap.Int("lap", lt.count),
				zap.Float64("elapsed_s", s.elapsed))
			if s.onLap != nil {
				s.onLap(i, lt.count)
			}
		}
	}
}
