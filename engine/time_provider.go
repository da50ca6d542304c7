package engine

import (
	"sync"
	"time"
)

// TimeProvider is the frame timestamp source
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns wall time with its monotonic reading
type MonotonicTimeProvider struct{}

func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualTimeProvider only moves when told to, used by headless runs and tests
type ManualTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualTimeProvider starts at the given instant
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{now: start}
}

func (m *ManualTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves time forward by d and returns the new instant
func (m *ManualTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
