// trend_classifier.go - Price delta to bull/bear/flat classification

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

// TrendState tags one playback tick as rising, falling, or negligible.
// The actual artwork lookup is the renderer's business; the engine only
// deals in the tag.
type TrendState int

const (
	TrendFlat TrendState = iota
	TrendBull
	TrendBear
)

func (t TrendState) String() string {
	switch t {
	case TrendBull:
		return "bull"
	case TrendBear:
		return "bear"
	default:
		return "flat"
	}
}

// ClassifyTrend maps a price delta to a trend state. The epsilon deadband
// stops the figure flapping between bull and bear on negligible noise:
// Flat iff |delta| < epsilon, otherwise the sign decides.
func ClassifyTrend(delta, epsilon float64) TrendState {
	if delta < epsilon && delta > -epsilon {
		return TrendFlat
	}
	if delta > 0 {
		return TrendBull
	}
	if delta < 0 {
		return TrendBear
	}
	// delta == 0 with a zero epsilon
	return TrendFlat
}
