// animation_test.go - Tests for chart progress and trend figure state

package main

import "testing"

// TestChartProgressMonotonic verifies ExtendTo never moves backwards and
// is idempotent for repeated ticks.
func TestChartProgressMonotonic(t *testing.T) {
	chart := NewChartProgress()
	if chart.Drawn() != -1 {
		t.Fatalf("fresh chart drawn = %d, expected -1", chart.Drawn())
	}

	chart.ExtendTo(0)
	chart.ExtendTo(1)
	chart.ExtendTo(2)
	if chart.Drawn() != 2 {
		t.Fatalf("drawn = %d after extending to 2", chart.Drawn())
	}

	// Replay and regress attempts do nothing.
	chart.ExtendTo(2)
	chart.ExtendTo(0)
	if chart.Drawn() != 2 {
		t.Errorf("drawn regressed to %d", chart.Drawn())
	}
}

// TestSequencerCycling verifies the bull and bear artwork indices cycle
// through their full sets independently.
func TestSequencerCycling(t *testing.T) {
	var seq ImageSequencer
	for round := 0; round < 2; round++ {
		for want := 0; want < BULL_FRAME_COUNT; want++ {
			if got := seq.NextBull(); got != want {
				t.Fatalf("bull frame %d, expected %d", got, want)
			}
		}
	}
	for round := 0; round < 2; round++ {
		for want := 0; want < BEAR_FRAME_COUNT; want++ {
			if got := seq.NextBear(); got != want {
				t.Fatalf("bear frame %d, expected %d", got, want)
			}
		}
	}
}

// TestTrendFigureRedundantStateNoOp verifies that repeating the current
// trend neither re-pops the figure nor advances its artwork.
func TestTrendFigureRedundantStateNoOp(t *testing.T) {
	figure := NewTrendFigure()
	figure.SetTrend(TrendBull)
	frame := figure.Frame()

	// Let the pop-in settle.
	for i := 0; i < 100; i++ {
		figure.Animate(1.0 / 60)
	}
	scale := figure.Scale()

	figure.SetTrend(TrendBull)
	if figure.Frame() != frame {
		t.Error("redundant SetTrend advanced the artwork frame")
	}
	if figure.Scale() != scale {
		t.Error("redundant SetTrend restarted the pop-in")
	}
}

// TestTrendFigureTransitionPops verifies that a genuine trend change
// restarts the pop-in easing and switches artwork sets.
func TestTrendFigureTransitionPops(t *testing.T) {
	figure := NewTrendFigure()
	figure.SetTrend(TrendBull)
	for i := 0; i < 100; i++ {
		figure.Animate(1.0 / 60)
	}
	if figure.Scale() < 0.99 {
		t.Fatalf("pop-in never settled: scale %v", figure.Scale())
	}

	figure.SetTrend(TrendBear)
	if figure.Trend() != TrendBear {
		t.Fatalf("trend is %v after SetTrend(Bear)", figure.Trend())
	}
	if figure.Scale() != FIGURE_POP_SCALE {
		t.Errorf("scale %v after transition, expected pop restart at %v", figure.Scale(), FIGURE_POP_SCALE)
	}
	if figure.Opacity() != 0 {
		t.Errorf("opacity %v after transition, expected fade-in from 0", figure.Opacity())
	}
}

// TestTrendFigureAnimateConverges verifies the easing approaches full
// scale and opacity without overshooting.
func TestTrendFigureAnimateConverges(t *testing.T) {
	figure := NewTrendFigure()
	figure.SetTrend(TrendBear)
	for i := 0; i < 300; i++ {
		figure.Animate(1.0 / 60)
		if figure.Scale() > FIGURE_FULL_SCALE+1e-9 {
			t.Fatalf("scale overshot to %v", figure.Scale())
		}
		if figure.Opacity() > FIGURE_FULL_OPACITY+1e-9 {
			t.Fatalf("opacity overshot to %v", figure.Opacity())
		}
	}
	if figure.Scale() < 0.999 || figure.Opacity() < 0.999 {
		t.Errorf("easing never converged: scale %v opacity %v", figure.Scale(), figure.Opacity())
	}
}

// TestTrendFigureFloatBounded verifies the idle bob stays within its
// configured amplitude.
func TestTrendFigureFloatBounded(t *testing.T) {
	figure := NewTrendFigure()
	for i := 0; i < 1000; i++ {
		figure.Animate(1.0 / 60)
		offset := figure.FloatOffset()
		if offset > FIGURE_FLOAT_AMPLITUDE || offset < -FIGURE_FLOAT_AMPLITUDE {
			t.Fatalf("float offset %v outside amplitude %v", offset, float64(FIGURE_FLOAT_AMPLITUDE))
		}
	}
}

// TestTrendFigureSequencerVariation verifies consecutive bull markets show
// different artwork.
func TestTrendFigureSequencerVariation(t *testing.T) {
	figure := NewTrendFigure()
	figure.SetTrend(TrendBull)
	first := figure.Frame()
	figure.SetTrend(TrendBear)
	figure.SetTrend(TrendBull)
	second := figure.Frame()
	if first == second {
		t.Errorf("consecutive bull trends showed the same frame %d", first)
	}
}
