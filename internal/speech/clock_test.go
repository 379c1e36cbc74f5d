package speech

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRecordingClockAccumulatesAcrossRestarts(t *testing.T) {
	t.Parallel()

	clock := newRecordingClock(2 * time.Millisecond)
	var ticks atomic.Int32
	clock.start(func(time.Duration) { ticks.Add(1) })
	time.Sleep(20 * time.Millisecond)
	clock.stop()

	first := clock.Elapsed()
	if first <= 0 {
		t.Fatalf("expected elapsed time after ticking")
	}
	if int(ticks.Load())*2 != int(first/time.Millisecond) {
		t.Fatalf("expected one callback per tick, got %d for %s", ticks.Load(), first)
	}

	time.Sleep(10 * time.Millisecond)
	if clock.Elapsed() != first {
		t.Fatalf("expected elapsed to hold while stopped")
	}

	clock.start(nil)
	time.Sleep(20 * time.Millisecond)
	clock.stop()
	if clock.Elapsed() <= first {
		t.Fatalf("expected elapsed to keep accumulating after restart")
	}

	clock.reset()
	if clock.Elapsed() != 0 {
		t.Fatalf("expected reset to clear elapsed")
	}
}

func TestRecordingClockStopIsIdempotent(t *testing.T) {
	t.Parallel()

	clock := newRecordingClock(time.Millisecond)
	clock.stop()
	clock.start(nil)
	clock.start(nil)
	clock.stop()
	clock.stop()
}
