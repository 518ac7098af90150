// animation.go - Presentation state for the chart path and trend figure

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import "math"

const (
	BULL_FRAME_COUNT = 7
	BEAR_FRAME_COUNT = 4

	FIGURE_ANIM_SPEED      = 8.0
	FIGURE_FLOAT_SPEED     = 2.0
	FIGURE_FLOAT_AMPLITUDE = 10.0

	FIGURE_POP_SCALE    = 0.8 // Scale a freshly shown figure pops in from
	FIGURE_FULL_SCALE   = 1.0
	FIGURE_FULL_OPACITY = 1.0
)

// ChartProgress is the chart sink's state: the highest tick the path has
// been extended to. ExtendTo is idempotent and monotonic, so replaying a
// dispatch changes nothing visually.
type ChartProgress struct {
	drawn int
}

func NewChartProgress() *ChartProgress {
	return &ChartProgress{drawn: -1}
}

func (c *ChartProgress) ExtendTo(tick int) error {
	if tick > c.drawn {
		c.drawn = tick
	}
	return nil
}

// Drawn reports the last tick the path covers, -1 before the first tick.
func (c *ChartProgress) Drawn() int {
	return c.drawn
}

// ImageSequencer cycles through the bull and bear artwork frames so
// consecutive rallies (or crashes) don't show the same picture twice.
type ImageSequencer struct {
	bullIndex int
	bearIndex int
}

func (s *ImageSequencer) NextBull() int {
	index := s.bullIndex
	s.bullIndex = (s.bullIndex + 1) % BULL_FRAME_COUNT
	return index
}

func (s *ImageSequencer) NextBear() int {
	index := s.bearIndex
	s.bearIndex = (s.bearIndex + 1) % BEAR_FRAME_COUNT
	return index
}

// TrendFigure is the animation sink: the currently displayed trend plus
// the pop-in/float easing state around it. Only the current trend is kept,
// never a history.
type TrendFigure struct {
	trend TrendState
	frame int

	scale         float64
	targetScale   float64
	opacity       float64
	targetOpacity float64
	floatOffset   float64
	floatTime     float64

	sequencer ImageSequencer
}

func NewTrendFigure() *TrendFigure {
	return &TrendFigure{
		scale:         FIGURE_POP_SCALE,
		targetScale:   FIGURE_FULL_SCALE,
		targetOpacity: FIGURE_FULL_OPACITY,
	}
}

// SetTrend updates the displayed trend. A redundant identical state is a
// no-op: the figure neither re-pops nor advances its artwork frame.
func (f *TrendFigure) SetTrend(trend TrendState) error {
	if trend == f.trend {
		return nil
	}
	f.trend = trend
	switch trend {
	case TrendBull:
		f.frame = f.sequencer.NextBull()
	case TrendBear:
		f.frame = f.sequencer.NextBear()
	}
	// Restart the pop-in
	f.scale = FIGURE_POP_SCALE
	f.opacity = 0
	return nil
}

// Animate eases scale and opacity toward their targets and advances the
// floating bob. dt is the frame delta in seconds.
func (f *TrendFigure) Animate(dt float64) {
	f.scale += (f.targetScale - f.scale) * dt * FIGURE_ANIM_SPEED
	f.opacity += (f.targetOpacity - f.opacity) * dt * FIGURE_ANIM_SPEED

	f.floatTime += dt * FIGURE_FLOAT_SPEED
	f.floatOffset = FIGURE_FLOAT_AMPLITUDE * math.Sin(f.floatTime)
}

func (f *TrendFigure) Trend() TrendState {
	return f.trend
}

// Frame reports which artwork frame of the current trend to show.
func (f *TrendFigure) Frame() int {
	return f.frame
}

func (f *TrendFigure) Scale() float64 {
	return f.scale
}

func (f *TrendFigure) Opacity() float64 {
	return f.opacity
}

func (f *TrendFigure) FloatOffset() float64 {
	return f.floatOffset
}
