// audio_interface.go - Audio output backend abstraction

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import "fmt"

// AudioError provides detailed error context for audio operations
type AudioError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *AudioError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("audio %s failed: %s", e.Operation, e.Details)
}

func (e *AudioError) Unwrap() error {
	return e.Err
}

// AudioOutput is the minimal interface a playback backend must implement.
// The backend pulls samples from the tone voice on its own realtime
// goroutine; the engine side never calls into the device directly.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// Predefined audio backend types
const (
	AUDIO_BACKEND_OTO = iota // oto/v3 backend (headless builds get a stub)
)

// NewAudioOutput creates an audio output for the given backend, attached
// to the voice it will pull samples from.
func NewAudioOutput(backend int, sampleRate int, voice *ToneVoice) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		player, err := NewOtoPlayer(sampleRate)
		if err != nil {
			return nil, &AudioError{Operation: "backend creation", Details: "oto context", Err: err}
		}
		player.SetupPlayer(voice)
		return player, nil
	}
	return nil, &AudioError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
