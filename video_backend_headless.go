//go:build headless

package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// HeadlessFrontend fetches the preselected asset and drives the session to
// completion with synthetic frame deltas. No window, no input.
type HeadlessFrontend struct {
	app *App
}

func NewEbitenFrontend(app *App) (Frontend, error) {
	return &HeadlessFrontend{app: app}, nil
}

func (f *HeadlessFrontend) Run() error {
	defer f.app.Shutdown()

	assetID := f.app.PreselectedSymbol
	if assetID == "" {
		assetID = DefaultAssets()[0].ID
	}

	chart := NewChartProgress()
	figure := NewTrendFigure()
	session, err := f.app.StartSession(context.Background(), assetID, chart, figure)
	if err != nil {
		return err
	}

	f.app.Audio.Start()
	if err := session.Start(); err != nil {
		return err
	}

	start := time.Now()
	const step = time.Second / 60
	for !session.Finished() {
		if err := session.Update(step); err != nil {
			return err
		}
		figure.Animate(step.Seconds())
		time.Sleep(step)
	}

	f.app.Log.Info("headless playback complete",
		zap.String("asset", assetID),
		zap.Int("days", session.Series().Len()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
