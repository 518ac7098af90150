// session_test.go - Tests for playback session lifecycle

package main

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(t *testing.T, prices ...float64) (*PlaybackSession, *recordingChart, *recordingAudio, *recordingAnim) {
	t.Helper()
	series, err := NewPriceSeries("testcoin", makeSamples(prices...))
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Playback.TickMs = 10
	chart := &recordingChart{}
	audio := &recordingAudio{}
	anim := &recordingAnim{}
	return NewPlaybackSession(series, cfg, chart, audio, anim, nil), chart, audio, anim
}

func runSession(t *testing.T, session *PlaybackSession) {
	t.Helper()
	for i := 0; i < 10000 && !session.Finished(); i++ {
		if err := session.Update(10 * time.Millisecond); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if !session.Finished() {
		t.Fatal("session never finished")
	}
}

// TestSessionFullRun verifies a complete playback: every sample charted,
// one tone per delta, session lands in Finished.
func TestSessionFullRun(t *testing.T) {
	session, chart, audio, _ := newTestSession(t, 100, 105, 95, 95)
	if err := session.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	runSession(t, session)

	if len(chart.ticks) != 4 {
		t.Errorf("charted %d ticks, expected 4", len(chart.ticks))
	}
	if len(audio.tones) != 3 {
		t.Errorf("played %d tones, expected 3", len(audio.tones))
	}
}

// TestSessionCancelSilencesImmediately verifies the mid-tone cancel path:
// Silence is called at once and the cursor is discarded rather than
// retained for resume.
func TestSessionCancelSilencesImmediately(t *testing.T) {
	session, _, audio, _ := newTestSession(t, 100, 105, 95, 95)
	if err := session.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Advance into the run so a tone is sounding.
	for i := 0; i < 3; i++ {
		if err := session.Update(10 * time.Millisecond); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	if !audio.IsPlaying() {
		t.Fatal("expected a tone to be sounding before cancel")
	}

	session.Cancel()
	if audio.IsPlaying() {
		t.Error("tone still sounding after cancel")
	}
	if !session.Cancelled() {
		t.Error("session does not report cancelled")
	}
	if cursor := session.Cursor(); cursor.TickIndex != 0 || cursor.Elapsed != 0 {
		t.Errorf("cursor retained after cancel: %+v", cursor)
	}
}

// TestSessionCancelledCannotRestart verifies that Start on a cancelled
// session fails with DataUnavailableError.
func TestSessionCancelledCannotRestart(t *testing.T) {
	session, _, _, _ := newTestSession(t, 100, 105)
	if err := session.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session.Cancel()

	err := session.Start()
	if err == nil {
		t.Fatal("Start succeeded on a cancelled session")
	}
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("got %T, expected DataUnavailableError", err)
	}
}

// TestSessionCancelIdempotent verifies that Cancel can be called more than
// once without side effects.
func TestSessionCancelIdempotent(t *testing.T) {
	session, _, _, _ := newTestSession(t, 100, 105)
	if err := session.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session.Cancel()
	session.Cancel()
	if !session.Cancelled() {
		t.Error("session not cancelled after double Cancel")
	}
}

// TestSessionTogglePause verifies that pause stops the cursor and toggle
// resumes it.
func TestSessionTogglePause(t *testing.T) {
	session, chart, _, _ := newTestSession(t, 100, 105, 95)
	if err := session.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session.Update(time.Millisecond) // tick 0
	session.TogglePause()
	if !session.Paused() {
		t.Fatal("session not paused after toggle")
	}

	drawnBefore := len(chart.ticks)
	for i := 0; i < 10; i++ {
		session.Update(time.Second)
	}
	if len(chart.ticks) != drawnBefore {
		t.Error("chart advanced while paused")
	}

	session.TogglePause()
	if session.Paused() {
		t.Fatal("session still paused after second toggle")
	}
	runSession(t, session)
}

// TestSessionFinishedStaysQuiet verifies that updates after completion
// dispatch nothing further.
func TestSessionFinishedStaysQuiet(t *testing.T) {
	session, chart, audio, _ := newTestSession(t, 100, 105)
	if err := session.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	runSession(t, session)

	ticksBefore, tonesBefore := len(chart.ticks), len(audio.tones)
	for i := 0; i < 10; i++ {
		if err := session.Update(time.Second); err != nil {
			t.Fatalf("Update after finish failed: %v", err)
		}
	}
	if len(chart.ticks) != ticksBefore || len(audio.tones) != tonesBefore {
		t.Error("dispatches continued after the session finished")
	}
}
