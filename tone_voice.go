// tone_voice.go - Monophonic sine voice with latest-wins tone mailbox

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"math"
	"sync/atomic"
)

const (
	SAMPLE_RATE = 44100

	// Attack/release ramp applied to every tone so truncation never clicks.
	TONE_RAMP_SAMPLES = SAMPLE_RATE / 200 // 5ms
)

// toneState is the playback state of one tone. A new tone allocates a
// fresh state and swaps it in; position and phase are then mutated only by
// the single consumer (the audio backend's sample pull), so the pair
// behaves as a single-producer/single-consumer mailbox of capacity one.
// An unconsumed older tone is superseded, never queued.
type toneState struct {
	phaseInc     float64
	amplitude    float64
	totalSamples int

	phase float64
	pos   int
}

// ToneVoice is the engine's audio sink: a single sine oscillator that
// plays at most one tone at a time. PlayTone implements the truncate
// policy by replacing the active tone immediately; the old tone's tail is
// cut (modulo the 5ms anti-click ramp on the new tone's attack).
type ToneVoice struct {
	sampleRate int
	active     atomic.Pointer[toneState]
}

func NewToneVoice(sampleRate int) *ToneVoice {
	if sampleRate <= 0 {
		sampleRate = SAMPLE_RATE
	}
	return &ToneVoice{sampleRate: sampleRate}
}

// PlayTone starts spec immediately, truncating any in-flight tone. Never
// blocks: the swap is a single atomic pointer store.
func (v *ToneVoice) PlayTone(spec ToneSpec) error {
	if spec.FrequencyHz <= 0 {
		return &AudioError{Operation: "play tone", Details: "non-positive frequency"}
	}
	if spec.DurationMs <= 0 {
		return &AudioError{Operation: "play tone", Details: "non-positive duration"}
	}

	total := spec.DurationMs * v.sampleRate / 1000
	if total < TONE_RAMP_SAMPLES*2 {
		total = TONE_RAMP_SAMPLES * 2
	}
	v.active.Store(&toneState{
		phaseInc:     2 * math.Pi * spec.FrequencyHz / float64(v.sampleRate),
		amplitude:    clampAmplitude(spec.Amplitude),
		totalSamples: total,
	})
	return nil
}

// Silence cuts playback outright. Used on cancel and asset switch.
func (v *ToneVoice) Silence() {
	v.active.Store(nil)
}

// IsPlaying reports whether a tone is currently sounding. This is the
// explicit poll the engine consults instead of any completion callback.
func (v *ToneVoice) IsPlaying() bool {
	st := v.active.Load()
	return st != nil && st.pos < st.totalSamples
}

// ReadSample produces the next output sample. Called only from the audio
// backend's pull goroutine; returns 0 when no tone is active or the
// current tone has run out.
func (v *ToneVoice) ReadSample() float32 {
	st := v.active.Load()
	if st == nil || st.pos >= st.totalSamples {
		return 0
	}

	env := 1.0
	if st.pos < TONE_RAMP_SAMPLES {
		env = float64(st.pos) / TONE_RAMP_SAMPLES
	} else if remaining := st.totalSamples - st.pos; remaining < TONE_RAMP_SAMPLES {
		env = float64(remaining) / TONE_RAMP_SAMPLES
	}

	sample := math.Sin(st.phase) * st.amplitude * env
	st.phase += st.phaseInc
	if st.phase >= 2*math.Pi {
		st.phase -= 2 * math.Pi
	}
	st.pos++
	return float32(sample)
}

// SampleRate reports the voice's output rate.
func (v *ToneVoice) SampleRate() int {
	return v.sampleRate
}
