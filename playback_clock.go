// playback_clock.go - Cooperative tick clock decoupling playback rate from frame rate

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"time"
)

type ClockState int

const (
	ClockIdle ClockState = iota
	ClockRunning
	ClockPaused
	ClockFinished
)

func (s ClockState) String() string {
	switch s {
	case ClockRunning:
		return "running"
	case ClockPaused:
		return "paused"
	case ClockFinished:
		return "finished"
	default:
		return "idle"
	}
}

// PlaybackCursor is the shared playback position: one tick per price
// sample. Owned exclusively by the clock; everything downstream sees it
// read-only through the emitted event bundles.
type PlaybackCursor struct {
	TickIndex int
	Elapsed   time.Duration
}

// PlaybackClock advances the cursor at one tick per fixed period,
// independently of how often the render loop calls Advance. The frame loop
// hands it wall-clock dt slices; an internal accumulator decides when a
// tick actually fires. Advance never blocks and never fires more than one
// tick per call, so a long frame stall cannot burst a run of tones.
type PlaybackClock struct {
	state       ClockState
	tickIndex   int
	totalTicks  int
	tickPeriod  time.Duration
	accumulated time.Duration
	elapsed     time.Duration
	firstFired  bool
}

// NewPlaybackClock builds an Idle clock over totalTicks samples.
func NewPlaybackClock(totalTicks int, tickPeriod time.Duration) *PlaybackClock {
	if tickPeriod <= 0 {
		tickPeriod = time.Duration(DEFAULT_TICK_MS) * time.Millisecond
	}
	return &PlaybackClock{
		totalTicks: totalTicks,
		tickPeriod: tickPeriod,
	}
}

// Start moves Idle to Running. The first tick (index 0) fires on the next
// Advance call rather than after a full period, so playback is audible and
// visible immediately.
func (c *PlaybackClock) Start() error {
	if c.state != ClockIdle {
		return fmt.Errorf("playback clock: cannot start from %s", c.state)
	}
	if c.totalTicks <= 0 {
		c.state = ClockFinished
		return nil
	}
	c.state = ClockRunning
	c.accumulated = c.tickPeriod
	return nil
}

// Pause suspends tick accumulation. No-op unless Running.
func (c *PlaybackClock) Pause() {
	if c.state == ClockRunning {
		c.state = ClockPaused
	}
}

// Resume continues a Paused clock.
func (c *PlaybackClock) Resume() {
	if c.state == ClockPaused {
		c.state = ClockRunning
	}
}

// TogglePause flips between Running and Paused.
func (c *PlaybackClock) TogglePause() {
	switch c.state {
	case ClockRunning:
		c.state = ClockPaused
	case ClockPaused:
		c.state = ClockRunning
	}
}

// Reset returns the clock to Idle with the cursor at zero. Used for replay
// and when a session is discarded.
func (c *PlaybackClock) Reset() {
	c.state = ClockIdle
	c.tickIndex = 0
	c.accumulated = 0
	c.elapsed = 0
	c.firstFired = false
}

// Advance feeds one frame's worth of wall time into the clock. Returns
// whether a tick fired and the tick index it fired at. Once Finished (or
// while Idle/Paused) it is a no-op that reports the current index.
func (c *PlaybackClock) Advance(dt time.Duration) (bool, int) {
	if c.state != ClockRunning {
		return false, c.tickIndex
	}
	if dt < 0 {
		dt = 0
	}

	c.elapsed += dt
	c.accumulated += dt
	if c.accumulated < c.tickPeriod {
		return false, c.tickIndex
	}
	c.accumulated -= c.tickPeriod
	// At most one tick per frame; cap the leftover so a stalled frame
	// resumes at normal pace instead of catching up in a burst.
	if c.accumulated > c.tickPeriod {
		c.accumulated = c.tickPeriod
	}

	if !c.firstFired {
		c.firstFired = true
		return true, 0
	}
	if c.tickIndex+1 >= c.totalTicks {
		c.state = ClockFinished
		return false, c.tickIndex
	}
	c.tickIndex++
	return true, c.tickIndex
}

func (c *PlaybackClock) State() ClockState {
	return c.state
}

func (c *PlaybackClock) TickIndex() int {
	return c.tickIndex
}

func (c *PlaybackClock) Finished() bool {
	return c.state == ClockFinished
}

// Cursor snapshots the current playback position.
func (c *PlaybackClock) Cursor() PlaybackCursor {
	return PlaybackCursor{TickIndex: c.tickIndex, Elapsed: c.elapsed}
}
