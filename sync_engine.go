// sync_engine.go - Tick-synchronized dispatch to chart, audio and animation sinks

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

// ChartSink consumes "extend the drawn path to tick k" commands. Must be
// idempotent: the same k twice is visually a no-op.
type ChartSink interface {
	ExtendTo(tick int) error
}

// AudioSink consumes one tone request per tick. PlayTone must truncate any
// in-flight tone immediately (the one-tone-at-a-time policy); Silence cuts
// playback outright. Implementations must not block the tick loop.
type AudioSink interface {
	PlayTone(spec ToneSpec) error
	Silence()
	IsPlaying() bool
}

// AnimationSink consumes trend states. Redundant identical states are
// no-ops.
type AnimationSink interface {
	SetTrend(trend TrendState) error
}

// EventBundle is what one tick emits: every field derives from the same
// tick index, which is the whole point of the engine.
type EventBundle struct {
	Tick    int
	Price   float64
	Tone    ToneSpec
	HasTone bool // false on tick 0, which has no prior sample
	Trend   TrendState
}

// SyncEngine owns the per-frame pipeline: clock -> series lookup -> tone
// and trend derivation -> one ordered dispatch to all three sinks. It is
// the only writer of the playback cursor (via the clock it drives), and it
// runs entirely on the caller's update goroutine.
//
// Tone overlap policy: truncate. Queuing would let audio drift behind the
// visual cursor over a long series; the stated goal is that the drawn
// index, the sounding tone and the displayed trend always share a tick, so
// a new tick cuts the previous tone.
type SyncEngine struct {
	series  *PriceSeries
	clock   *PlaybackClock
	mapper  *ToneMapper
	epsilon float64

	chart ChartSink
	audio AudioSink
	anim  AnimationSink
	log   *zap.Logger

	trend      TrendState
	dispatches int
}

func NewSyncEngine(series *PriceSeries, clock *PlaybackClock, mapper *ToneMapper, epsilon float64,
	chart ChartSink, audio AudioSink, anim AnimationSink, log *zap.Logger) *SyncEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncEngine{
		series:  series,
		clock:   clock,
		mapper:  mapper,
		epsilon: epsilon,
		chart:   chart,
		audio:   audio,
		anim:    anim,
		log:     log,
	}
}

// Advance feeds one frame of wall time through the clock and, if a tick
// fired, dispatches exactly one event bundle. A sample lookup failure is an
// engine invariant violation and is returned to abort the session; sink
// delivery failures are logged and skipped for this tick only.
func (e *SyncEngine) Advance(dt time.Duration) error {
	fired, tick := e.clock.Advance(dt)
	if !fired {
		return nil
	}

	sample, err := e.series.SampleAt(tick)
	if err != nil {
		return err
	}

	bundle := EventBundle{Tick: tick, Price: sample.Price, Trend: TrendFlat}
	if tick > 0 {
		delta, err := e.series.DeltaAt(tick)
		if err != nil {
			return err
		}
		bundle.Tone = e.mapper.MapDelta(delta)
		bundle.HasTone = true
		bundle.Trend = ClassifyTrend(delta, e.epsilon)
	}

	e.dispatch(bundle)
	return nil
}

// dispatch delivers one bundle to all three sinks in a single pass. Sink
// order is chart, audio, animation; a failure in one never suppresses the
// others and never halts the clock.
func (e *SyncEngine) dispatch(b EventBundle) {
	e.dispatches++

	if err := e.chart.ExtendTo(b.Tick); err != nil {
		e.log.Warn("chart sink delivery failed, tick skipped",
			zap.Int("tick", b.Tick), zap.Error(err))
	}

	if b.HasTone {
		if err := e.audio.PlayTone(b.Tone); err != nil {
			e.log.Warn("audio sink delivery failed, tone dropped",
				zap.Int("tick", b.Tick),
				zap.Float64("frequency_hz", b.Tone.FrequencyHz),
				zap.Error(err))
		}
	}

	// Tick 0 has no delta: chart only, no trend to announce.
	if b.Tick > 0 {
		e.trend = b.Trend
		if err := e.anim.SetTrend(b.Trend); err != nil {
			e.log.Warn("animation sink delivery failed, trend skipped",
				zap.Int("tick", b.Tick), zap.Stringer("trend", b.Trend), zap.Error(err))
		}
	}
}

// CurrentTrend reports the trend of the most recent dispatch. Only the
// latest value is retained; there is no trend history.
func (e *SyncEngine) CurrentTrend() TrendState {
	return e.trend
}

// Dispatches reports how many bundles have been emitted so far.
func (e *SyncEngine) Dispatches() int {
	return e.dispatches
}
