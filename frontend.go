// frontend.go - Frontend abstraction and application wiring

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Frontend runs the user-facing loop: asset selection, playback screen,
// controls. Exactly one Run per process.
type Frontend interface {
	Run() error
}

// Predefined frontend types
const (
	FRONTEND_EBITEN = iota // Ebiten game loop (headless builds get a driver stub)
)

// App is the wiring shared by every frontend: configuration, logging, the
// market fetcher and the audio path. Frontends own the chart/animation
// sinks; the app owns the voice and the device behind it.
type App struct {
	Config  *Config
	Log     *zap.Logger
	Fetcher *MarketFetcher
	Voice   *ToneVoice
	Audio   AudioOutput

	// PreselectedSymbol skips the selection screen when set (-symbol flag).
	PreselectedSymbol string
}

// NewApp wires the shared pieces. The audio device is created but not
// started; the frontend starts it when playback begins.
func NewApp(cfg *Config, log *zap.Logger) (*App, error) {
	voice := NewToneVoice(SAMPLE_RATE)
	audio, err := NewAudioOutput(AUDIO_BACKEND_OTO, SAMPLE_RATE, voice)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:  cfg,
		Log:     log,
		Fetcher: NewMarketFetcher(cfg.DataSource),
		Voice:   voice,
		Audio:   audio,
	}, nil
}

// StartSession fetches the asset's history and builds a ready-to-start
// session over the given presentation sinks. A fetch or validation failure
// surfaces as DataUnavailableError and no session (or clock) exists.
func (a *App) StartSession(ctx context.Context, assetID string, chart ChartSink, anim AnimationSink) (*PlaybackSession, error) {
	series, err := a.Fetcher.FetchSeries(ctx, assetID)
	if err != nil {
		a.Log.Warn("market fetch failed", zap.String("asset", assetID), zap.Error(err))
		return nil, err
	}
	a.Log.Info("market fetch complete",
		zap.String("asset", assetID),
		zap.Int("samples", series.Len()),
		zap.Float64("range", series.Range()))
	return NewPlaybackSession(series, a.Config, chart, a.Voice, anim, a.Log), nil
}

// Shutdown silences and releases the audio device.
func (a *App) Shutdown() {
	a.Voice.Silence()
	a.Audio.Close()
}

// NewFrontend creates a frontend instance using the specified backend.
func NewFrontend(backend int, app *App) (Frontend, error) {
	switch backend {
	case FRONTEND_EBITEN:
		return NewEbitenFrontend(app)
	}
	return nil, fmt.Errorf("unknown frontend backend: %d", backend)
}
