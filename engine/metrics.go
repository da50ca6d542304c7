package engine

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/vmath"
)

// BodyMetric is the per-body row of the metrics panel
type BodyMetric struct {
	Name      string
	Primary   string  // empty for anchors
	Speed     float64 // m/s
	Distance  float64 // meters to primary
	Laps      int
	Anchor    bool
	PathSize  int
	PathLimit int
}

// Snapshot is a point-in-time view of the simulation for display
type Snapshot struct {
	Elapsed   float64 // simulated seconds
	Frames    uint64
	TimeScale string
	Paused    bool
	Phantom   bool
	Bodies    []BodyMetric
}

// ElapsedDays returns simulated days
func (s Snapshot) ElapsedDays() float64 {
	return s.Elapsed / parameter.Day
}

// Snapshot computes current metrics
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Elapsed:   s.elapsed,
		Frames:    s.frames,
		TimeScale: s.Clock.Label(),
		Phantom:   s.phantomEnabled,
		Bodies:    make([]BodyMetric, s.System.Len()),
	}

	var rel vmath.Vector
	for i := range s.System.Bodies {
		b := &s.System.Bodies[i]
		m := BodyMetric{
			Name:      s.System.Meta[i].Name,
			Speed:     b.Velocity.Length(),
			Laps:      s.laps[i].count,
			PathSize:  s.Paths[i].Len(),
			PathLimit: s.Paths[i].Cap(),
		}
		if p := s.System.Primary(i); p >= 0 {
			m.Primary = s.System.Meta[p].Name
			m.Distance = rel.SetVector(b.Position).Subtract(s.System.Bodies[p].Position).Length()
		} else {
			m.Anchor = true
		}
		snap.Bodies[i] = m
	}
	return snap
}

// MetricsBoard caches a Snapshot refreshed at most once per interval
type MetricsBoard struct {
	sometimes rate.Sometimes
	last      Snapshot
}

// NewMetricsBoard creates a board refreshing no more often than interval
func NewMetricsBoard(interval time.Duration) *MetricsBoard {
	if interval <= 0 {
		interval = parameter.MetricsUpdatePeriod
	}
	return &MetricsBoard{sometimes: rate.Sometimes{Interval: interval}}
}

// Refresh recomputes the snapshot when the interval has passed and returns the cached value
func (mb *MetricsBoard) Refresh(sim *Simulation, paused bool) Snapshot {
	mb.sometimes.Do(func() {
		mb.last = sim.Snapshot()
	})
	mb.last.Paused = paused
	return mb.last
}
