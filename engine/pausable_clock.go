package engine

import (
	"time"
)

// PausableClock provides simulation frame time that freezes while paused
// Paused intervals are subtracted so resuming never produces a large frame delta
type PausableClock struct {
	source TimeProvider

	realStartTime time.Time

	// Pause state
	isPaused        bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a running clock on the given source
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{
		source:        source,
		realStartTime: source.Now(),
	}
}

// Now returns elapsed unpaused time since the clock was created
func (pc *PausableClock) Now() time.Duration {
	if pc.isPaused {
		return pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime
	}
	return pc.source.Now().Sub(pc.realStartTime) - pc.totalPausedTime
}

// Pause stops time advancement, no-op when already paused
func (pc *PausableClock) Pause() {
	if pc.isPaused {
		return
	}
	pc.isPaused = true
	pc.pauseStartTime = pc.source.Now()
}

// Resume continues time advancement, no-op when running
func (pc *PausableClock) Resume() {
	if !pc.isPaused {
		return
	}
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.isPaused = false
}

// Toggle flips pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.isPaused {
		pc.Resume()
	} else {
		pc.Pause()
	}
	return pc.isPaused
}

func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused
}

// TotalPauseDuration returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	total := pc.totalPausedTime
	if pc.isPaused {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
