package engine

import (
	"sync"
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	var provider TimeProvider = MonotonicTimeProvider{}

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestManualTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	manual := NewManualTimeProvider(start)

	if now := manual.Now(); !now.Equal(start) {
		t.Errorf("Expected initial time to be %v, got %v", start, now)
	}

	got := manual.Advance(time.Hour)
	if want := start.Add(time.Hour); !got.Equal(want) || !manual.Now().Equal(want) {
		t.Errorf("Expected time to be %v after Advance, got %v", want, got)
	}

	manual.Advance(30 * time.Minute)
	manual.Advance(15 * time.Minute)
	if want := start.Add(time.Hour + 45*time.Minute); !manual.Now().Equal(want) {
		t.Errorf("Expected time to be %v after multiple advances, got %v", want, manual.Now())
	}
}

func TestManualTimeProviderConcurrency(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	manual := NewManualTimeProvider(start)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = manual.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				manual.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if want := start.Add(1000 * time.Millisecond); !manual.Now().Equal(want) {
		t.Errorf("Expected %v after concurrent advances, got %v", want, manual.Now())
	}
}
