// session.go - Playback session lifecycle: one asset, one series, one cursor

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"time"

	"go.uber.org/zap"
)

// PlaybackSession aggregates everything one playback run owns: the fetched
// series, the clock, the sync engine and the current trend. It is created
// when an asset is selected and discarded whole when the user cancels or
// picks another asset; nothing in it is reused across sessions.
//
// The session is an explicit owned object passed into the frame update,
// not ambient global state, so tests can run many of them side by side.
type PlaybackSession struct {
	series *PriceSeries
	clock  *PlaybackClock
	engine *SyncEngine
	audio  AudioSink
	log    *zap.Logger

	cancelled bool
}

// NewPlaybackSession wires a session over an already-fetched series. The
// chart and animation sinks come from the frontend; the audio sink is the
// shared tone voice.
func NewPlaybackSession(series *PriceSeries, cfg *Config, chart ChartSink, audio AudioSink,
	anim AnimationSink, log *zap.Logger) *PlaybackSession {
	if log == nil {
		log = zap.NewNop()
	}
	clock := NewPlaybackClock(series.Len(), time.Duration(cfg.Playback.TickMs)*time.Millisecond)
	mapper := NewToneMapper(cfg.Tone, series.Range())
	engine := NewSyncEngine(series, clock, mapper, cfg.Playback.Epsilon, chart, audio, anim, log)
	return &PlaybackSession{
		series: series,
		clock:  clock,
		engine: engine,
		audio:  audio,
		log:    log,
	}
}

// Start moves the clock into Running. Fails if the session was cancelled
// or the clock is not Idle.
func (s *PlaybackSession) Start() error {
	if s.cancelled {
		return &DataUnavailableError{Symbol: s.series.Symbol(), Reason: "session cancelled"}
	}
	return s.clock.Start()
}

// Update runs one frame. On an engine invariant violation the session is
// cancelled (audio silenced, cursor discarded) and the error is returned;
// the caller decides what to show the user.
func (s *PlaybackSession) Update(dt time.Duration) error {
	if s.cancelled {
		return nil
	}
	if err := s.engine.Advance(dt); err != nil {
		s.log.Error("playback aborted on engine invariant violation", zap.Error(err))
		s.Cancel()
		return err
	}
	return nil
}

// TogglePause flips the clock between Running and Paused.
func (s *PlaybackSession) TogglePause() {
	s.clock.TogglePause()
}

// Cancel deterministically stops the session: the voice goes silent at
// once (no dangling tone continues) and the cursor state is discarded.
// Idempotent.
func (s *PlaybackSession) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	s.audio.Silence()
	s.clock.Reset()
}

func (s *PlaybackSession) Cancelled() bool {
	return s.cancelled
}

func (s *PlaybackSession) Finished() bool {
	return s.clock.Finished()
}

func (s *PlaybackSession) Paused() bool {
	return s.clock.State() == ClockPaused
}

func (s *PlaybackSession) Cursor() PlaybackCursor {
	return s.clock.Cursor()
}

func (s *PlaybackSession) Series() *PriceSeries {
	return s.series
}

func (s *PlaybackSession) CurrentTrend() TrendState {
	return s.engine.CurrentTrend()
}
