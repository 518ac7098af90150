// playback_clock_test.go - Tests for the tick clock state machine and pacing

package main

import (
	"testing"
	"time"
)

// runTicks drives the clock with fixed dt slices until n ticks fire or the
// clock finishes, returning the fired tick indices.
func runTicks(t *testing.T, clock *PlaybackClock, dt time.Duration, maxFrames int) []int {
	t.Helper()
	var fired []int
	for frame := 0; frame < maxFrames && !clock.Finished(); frame++ {
		if tick, idx := clock.Advance(dt); tick {
			fired = append(fired, idx)
		}
	}
	return fired
}

// TestClockFirstTickImmediate verifies that tick 0 fires on the first
// Advance after Start, not a full period later.
func TestClockFirstTickImmediate(t *testing.T) {
	clock := NewPlaybackClock(5, 100*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	fired, idx := clock.Advance(time.Millisecond)
	if !fired || idx != 0 {
		t.Fatalf("first Advance fired=%v idx=%d, expected tick 0 immediately", fired, idx)
	}
}

// TestClockFiresEveryIndexOnce verifies that a full run fires exactly the
// indices 0..N-1 in order and then reports Finished.
func TestClockFiresEveryIndexOnce(t *testing.T) {
	const total = 4
	clock := NewPlaybackClock(total, 50*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	fired := runTicks(t, clock, 10*time.Millisecond, 1000)
	if len(fired) != total {
		t.Fatalf("fired %d ticks, expected %d: %v", len(fired), total, fired)
	}
	for i, idx := range fired {
		if idx != i {
			t.Fatalf("ticks fired out of order: %v", fired)
		}
	}
	if !clock.Finished() {
		t.Error("clock not Finished after last tick")
	}
}

// TestClockOddFrameSlices verifies pacing is preserved when the frame dt
// does not divide the tick period: total tick count is unchanged.
func TestClockOddFrameSlices(t *testing.T) {
	const total = 6
	clock := NewPlaybackClock(total, 100*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	fired := runTicks(t, clock, 33*time.Millisecond, 1000)
	if len(fired) != total {
		t.Errorf("odd dt slices fired %d ticks, expected %d", len(fired), total)
	}
}

// TestClockNoBurstAfterStall verifies that a single huge dt (a stalled
// frame) fires at most one tick, never a catch-up burst.
func TestClockNoBurstAfterStall(t *testing.T) {
	clock := NewPlaybackClock(10, 100*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	clock.Advance(time.Millisecond) // tick 0

	fired, _ := clock.Advance(5 * time.Second)
	if !fired {
		t.Fatal("stalled frame should still fire one tick")
	}
	// The leftover credit is capped: after one more normal frame at most
	// one further tick may fire, then the clock settles to normal pacing.
	burst := 0
	for i := 0; i < 3; i++ {
		if tick, _ := clock.Advance(time.Millisecond); tick {
			burst++
		}
	}
	if burst > 1 {
		t.Errorf("%d ticks fired in 3ms after a stall, pacing not restored", burst)
	}
}

// TestClockStateTransitions walks Idle -> Running -> Paused -> Running ->
// Finished and checks each transition gate.
func TestClockStateTransitions(t *testing.T) {
	clock := NewPlaybackClock(2, 10*time.Millisecond)
	if clock.State() != ClockIdle {
		t.Fatalf("new clock in %v, expected Idle", clock.State())
	}

	// Advance while Idle is a no-op.
	if fired, _ := clock.Advance(time.Hour); fired {
		t.Error("Idle clock fired a tick")
	}

	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := clock.Start(); err == nil {
		t.Error("second Start succeeded, expected error")
	}

	clock.Pause()
	if clock.State() != ClockPaused {
		t.Fatalf("after Pause state is %v", clock.State())
	}
	if fired, _ := clock.Advance(time.Hour); fired {
		t.Error("Paused clock fired a tick")
	}

	clock.TogglePause()
	if clock.State() != ClockRunning {
		t.Fatalf("after TogglePause state is %v", clock.State())
	}

	runTicks(t, clock, 10*time.Millisecond, 100)
	if !clock.Finished() {
		t.Fatal("clock did not finish")
	}

	// Finished is absorbing.
	if fired, _ := clock.Advance(time.Hour); fired {
		t.Error("Finished clock fired a tick")
	}
}

// TestClockPauseFreezesCursor verifies that wall time spent paused does not
// accumulate toward the next tick.
func TestClockPauseFreezesCursor(t *testing.T) {
	clock := NewPlaybackClock(5, 100*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	clock.Advance(time.Millisecond) // tick 0
	before := clock.Cursor()

	clock.Pause()
	clock.Advance(10 * time.Second)
	after := clock.Cursor()
	if after != before {
		t.Errorf("cursor moved while paused: %+v -> %+v", before, after)
	}

	// Resume picks up where it left off.
	clock.Resume()
	if fired, _ := clock.Advance(time.Millisecond); fired {
		t.Error("tick fired immediately on resume, paused time leaked into the accumulator")
	}
}

// TestClockReset verifies Reset returns to Idle at tick zero and that the
// clock can be started again.
func TestClockReset(t *testing.T) {
	clock := NewPlaybackClock(3, 10*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	runTicks(t, clock, 10*time.Millisecond, 100)

	clock.Reset()
	if clock.State() != ClockIdle || clock.TickIndex() != 0 {
		t.Fatalf("after Reset state=%v tick=%d, expected Idle/0", clock.State(), clock.TickIndex())
	}
	if err := clock.Start(); err != nil {
		t.Errorf("Start after Reset failed: %v", err)
	}
}

// TestClockMonotonicIndex verifies the tick index never decreases across an
// entire run.
func TestClockMonotonicIndex(t *testing.T) {
	clock := NewPlaybackClock(8, 20*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	last := -1
	for i := 0; i < 500 && !clock.Finished(); i++ {
		clock.Advance(7 * time.Millisecond)
		if idx := clock.TickIndex(); idx < last {
			t.Fatalf("tick index went backwards: %d after %d", idx, last)
		} else {
			last = idx
		}
	}
}

// TestClockEmptySeries verifies that starting a clock over zero ticks lands
// directly in Finished.
func TestClockEmptySeries(t *testing.T) {
	clock := NewPlaybackClock(0, 10*time.Millisecond)
	if err := clock.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !clock.Finished() {
		t.Error("zero-tick clock should finish immediately")
	}
}
