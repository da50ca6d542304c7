package engine

import (
	"testing"
	"time"
)

func TestPausableClockExcludesPauses(t *testing.T) {
	src := NewManualTimeProvider(time.Unix(0, 0))
	pc := NewPausableClock(src)

	src.Advance(100 * time.Millisecond)
	if got := pc.Now(); got != 100*time.Millisecond {
		t.Fatalf("running: got %v, want 100ms", got)
	}

	if !pc.Toggle() {
		t.Fatal("Toggle should report paused")
	}
	src.Advance(5 * time.Second)
	if got := pc.Now(); got != 100*time.Millisecond {
		t.Errorf("paused: got %v, want frozen 100ms", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("pause in progress: got %v, want 5s", got)
	}

	if pc.Toggle() {
		t.Fatal("Toggle should report running")
	}
	src.Advance(20 * time.Millisecond)
	if got := pc.Now(); got != 120*time.Millisecond {
		t.Errorf("resumed: got %v, want 120ms", got)
	}
}

func TestPausableClockIdempotentTransitions(t *testing.T) {
	src := NewManualTimeProvider(time.Unix(0, 0))
	pc := NewPausableClock(src)

	pc.Resume()
	if pc.IsPaused() {
		t.Fatal("Resume on a running clock must not pause")
	}

	pc.Pause()
	src.Advance(time.Second)
	pc.Pause()
	src.Advance(time.Second)
	pc.Resume()

	if got := pc.TotalPauseDuration(); got != 2*time.Second {
		t.Errorf("second Pause must keep the first start, got %v", got)
	}
	if got := pc.Now(); got != 0 {
		t.Errorf("no unpaused time passed, got %v", got)
	}
}
