// tone_mapper.go - Price delta to tone specification mapping

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

const (
	TONE_BASE_HZ    = 440.0 // A4 reference pitch
	TONE_MIN_HZ     = 110.0
	TONE_MAX_HZ     = 1760.0
	TONE_PITCH_SPAN = 2.0 // Full-range delta scales pitch by (1 + span)

	TONE_DURATION_MS         = 2000
	TONE_MIN_DURATION_MS     = 400
	TONE_NEUTRAL_DURATION_MS = 250

	TONE_AMPLITUDE = 0.20
	TONE_AMP_FLOOR = 0.5 // Fraction of full amplitude a near-zero delta gets
)

// ToneSpec is one audio event. Ephemeral: built per tick, consumed once by
// the audio sink, never retained.
type ToneSpec struct {
	FrequencyHz float64
	DurationMs  int
	Amplitude   float64
}

// ToneMapper turns price deltas into tone specifications.
//
// The pitch mapping is deliberately inverted: a price rise lowers the
// frequency and a fall raises it. This is the product's signature sound
// (a crash screams, a rally hums) and must not be "fixed".
type ToneMapper struct {
	BaseHz     float64
	MinHz      float64
	MaxHz      float64
	DurationMs int
	Amplitude  float64

	// PriceRange is the observed max-min spread of the series being played,
	// used to normalize delta magnitudes into [0,1].
	PriceRange float64

	// NeutralSilence emits the neutral tone at zero amplitude instead of
	// an audible heartbeat.
	NeutralSilence bool
}

// NewToneMapper builds a mapper for one series. priceRange may be zero
// (flat series); every delta is then treated as neutral magnitude.
func NewToneMapper(cfg ToneConfig, priceRange float64) *ToneMapper {
	return &ToneMapper{
		BaseHz:         cfg.BaseHz,
		MinHz:          cfg.MinHz,
		MaxHz:          cfg.MaxHz,
		DurationMs:     cfg.DurationMs,
		Amplitude:      cfg.Amplitude,
		PriceRange:     priceRange,
		NeutralSilence: cfg.NeutralSilence,
	}
}

// MapDelta maps one price delta to a tone. Pure: same delta, same tone.
//
// Zero delta is an explicit neutral case, never a division hazard: the
// mapper emits the base pitch at a short fixed duration (or the same tone
// at zero amplitude when configured for silence).
func (m *ToneMapper) MapDelta(delta float64) ToneSpec {
	if delta == 0 {
		amp := clampAmplitude(m.Amplitude * TONE_AMP_FLOOR)
		if m.NeutralSilence {
			amp = 0
		}
		return ToneSpec{
			FrequencyHz: m.clampFrequency(m.BaseHz),
			DurationMs:  TONE_NEUTRAL_DURATION_MS,
			Amplitude:   amp,
		}
	}

	magnitude := 0.0
	if m.PriceRange > 0 {
		magnitude = delta / m.PriceRange
		if magnitude < 0 {
			magnitude = -magnitude
		}
		if magnitude > 1 {
			magnitude = 1
		}
	}

	// Inverse pitch law: rise divides, fall multiplies.
	stretch := 1.0 + magnitude*TONE_PITCH_SPAN
	freq := m.BaseHz
	if delta > 0 {
		freq = m.BaseHz / stretch
	} else {
		freq = m.BaseHz * stretch
	}

	duration := TONE_MIN_DURATION_MS + int(magnitude*float64(m.DurationMs-TONE_MIN_DURATION_MS))
	amp := m.Amplitude * (TONE_AMP_FLOOR + (1.0-TONE_AMP_FLOOR)*magnitude)

	return ToneSpec{
		FrequencyHz: m.clampFrequency(freq),
		DurationMs:  duration,
		Amplitude:   clampAmplitude(amp),
	}
}

func (m *ToneMapper) clampFrequency(hz float64) float64 {
	if hz < m.MinHz {
		return m.MinHz
	}
	if hz > m.MaxHz {
		return m.MaxHz
	}
	return hz
}

func clampAmplitude(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
