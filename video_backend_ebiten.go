//go:build !headless

// video_backend_ebiten.go - Ebiten frontend: selection, chart and trend display

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	_ "image/png"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

type frontendPage int

const (
	pageSelection frontendPage = iota
	pageLoading
	pageChart
)

const (
	FIGURE_BASE_SIZE   = 400.0 // Pixel size of the trend figure at scale 1.0
	FIGURE_MARGIN      = 20.0
	CHART_MARGIN_LEFT  = 70
	CHART_MARGIN_RIGHT = 40
	CHART_MARGIN_TOP   = 60
	CHART_MARGIN_BOT   = 50
)

var (
	colBackground = color.RGBA{24, 24, 24, 255}
	colPanel      = color.RGBA{18, 18, 18, 255}
	colGold       = color.RGBA{255, 215, 0, 255}
	colLightGray  = color.RGBA{190, 190, 190, 255}
	colGray       = color.RGBA{120, 120, 120, 255}
	colWhite      = color.RGBA{255, 255, 255, 255}
	colRise       = color.RGBA{46, 189, 89, 255}
	colFall       = color.RGBA{255, 88, 88, 255}
	colError      = color.RGBA{255, 88, 88, 255}

	assetColors = []color.RGBA{
		{114, 137, 218, 255}, // Ethereum
		{247, 147, 26, 255},  // Bitcoin
		{0, 153, 204, 255},   // Ripple
	}
)

type loadResult struct {
	session *PlaybackSession
	err     error
}

// EbitenFrontend is the interactive frontend: an ebiten game whose Update
// runs the playback session once per frame and whose Draw renders the
// progressive chart, the trend figure and the overlays.
type EbitenFrontend struct {
	app    *App
	assets []Asset

	page         frontendPage
	frame        int
	errMsg       string
	loadingAsset string
	loadCh       chan loadResult
	cancelFetch  context.CancelFunc

	session *PlaybackSession
	chart   *ChartProgress
	figure  *TrendFigure

	bullImages []*ebiten.Image
	bearImages []*ebiten.Image
	artLoaded  bool
}

func NewEbitenFrontend(app *App) (Frontend, error) {
	return &EbitenFrontend{
		app:        app,
		assets:     DefaultAssets(),
		bullImages: make([]*ebiten.Image, BULL_FRAME_COUNT),
		bearImages: make([]*ebiten.Image, BEAR_FRAME_COUNT),
	}, nil
}

func (f *EbitenFrontend) Run() error {
	ebiten.SetWindowSize(f.app.Config.Window.Width, f.app.Config.Window.Height)
	ebiten.SetWindowTitle("SoniChart (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	defer f.app.Shutdown()

	if f.app.PreselectedSymbol != "" {
		f.beginFetch(f.app.PreselectedSymbol)
	}
	return ebiten.RunGame(f)
}

// frameDT is the logical frame delta handed to the playback clock. Update
// is called at the fixed TPS, so wall time per call is 1/TPS regardless of
// the display refresh rate.
func frameDT() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

func (f *EbitenFrontend) Update() error {
	f.frame++

	switch f.page {
	case pageSelection:
		return f.updateSelection()
	case pageLoading:
		return f.updateLoading()
	case pageChart:
		return f.updateChart()
	}
	return nil
}

func (f *EbitenFrontend) updateSelection() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	digitKeys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}
	for i, key := range digitKeys {
		if i < len(f.assets) && inpututil.IsKeyJustPressed(key) {
			f.beginFetch(f.assets[i].ID)
			return nil
		}
	}
	return nil
}

func (f *EbitenFrontend) updateLoading() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if f.cancelFetch != nil {
			f.cancelFetch()
		}
		f.page = pageSelection
		return nil
	}

	select {
	case res := <-f.loadCh:
		if f.cancelFetch != nil {
			f.cancelFetch()
			f.cancelFetch = nil
		}
		if res.err != nil {
			var unavailable *DataUnavailableError
			if errors.As(res.err, &unavailable) {
				f.errMsg = fmt.Sprintf("Could not load %s data — try again or pick another asset", f.loadingAsset)
			} else {
				f.errMsg = res.err.Error()
			}
			f.page = pageSelection
			return nil
		}
		f.session = res.session
		f.app.Audio.Start()
		if err := f.session.Start(); err != nil {
			f.app.Log.Error("session start failed", zap.Error(err))
			f.errMsg = "Playback could not start"
			f.session = nil
			f.page = pageSelection
			return nil
		}
		f.errMsg = ""
		f.page = pageChart
	default:
	}
	return nil
}

func (f *EbitenFrontend) updateChart() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		f.leaveChart()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		f.leaveChart()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		f.session.TogglePause()
	}

	dt := frameDT()
	if err := f.session.Update(dt); err != nil {
		// Invariant violation: the session has already cancelled itself.
		f.errMsg = "Playback aborted: internal error"
		f.session = nil
		f.page = pageSelection
		return nil
	}
	f.figure.Animate(dt.Seconds())
	return nil
}

// beginFetch kicks off the one-shot history fetch on its own goroutine and
// switches to the loading page. The chart and figure sinks are created
// fresh per session; nothing survives from a previous one.
func (f *EbitenFrontend) beginFetch(assetID string) {
	f.chart = NewChartProgress()
	f.figure = NewTrendFigure()
	f.loadingAsset = assetID
	f.loadCh = make(chan loadResult, 1)

	ctx, cancel := context.WithCancel(context.Background())
	f.cancelFetch = cancel

	chart, figure, ch := f.chart, f.figure, f.loadCh
	go func() {
		session, err := f.app.StartSession(ctx, assetID, chart, figure)
		ch <- loadResult{session: session, err: err}
	}()

	f.page = pageLoading
}

// leaveChart cancels the running session (immediate silence, cursor
// discarded) and returns to the selection page.
func (f *EbitenFrontend) leaveChart() {
	if f.session != nil {
		f.session.Cancel()
		f.session = nil
	}
	f.app.Audio.Stop()
	f.page = pageSelection
}

func (f *EbitenFrontend) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	switch f.page {
	case pageSelection:
		f.drawSelection(screen)
	case pageLoading:
		f.drawLoading(screen)
	case pageChart:
		f.drawChart(screen)
	}
}

func (f *EbitenFrontend) Layout(_, _ int) (int, int) {
	return f.app.Config.Window.Width, f.app.Config.Window.Height
}

func drawCenteredText(screen *ebiten.Image, msg string, centerX, baselineY int, clr color.Color) {
	face := basicfont.Face7x13
	width := text.BoundString(face, msg).Dx()
	text.Draw(screen, msg, face, centerX-width/2, baselineY, clr)
}

func (f *EbitenFrontend) drawSelection(screen *ebiten.Image) {
	w := f.app.Config.Window.Width
	centerX := w / 2

	drawCenteredText(screen, "S O N I C H A R T", centerX, 80, colGold)
	drawCenteredText(screen, "Experience price movements through sound and visuals.", centerX, 110, colLightGray)
	drawCenteredText(screen, "Watch and listen as the market evolves over the last 30 days.", centerX, 126, colLightGray)
	drawCenteredText(screen, "Choose Your Side", centerX, 180, colWhite)

	cardW, cardH := 220.0, 140.0
	gap := 40.0
	total := cardW*float64(len(f.assets)) + gap*float64(len(f.assets)-1)
	x := float64(centerX) - total/2
	y := 220.0

	for i, asset := range f.assets {
		clr := colGray
		if i < len(assetColors) {
			clr = assetColors[i]
		}
		ebitenutil.DrawRect(screen, x, y, cardW, cardH, colPanel)
		ebitenutil.DrawRect(screen, x, y, cardW, 4, clr)
		cardCenter := int(x + cardW/2)
		drawCenteredText(screen, asset.Display, cardCenter, int(y)+50, clr)
		drawCenteredText(screen, asset.Blurb, cardCenter, int(y)+74, colLightGray)
		drawCenteredText(screen, fmt.Sprintf("[ %d ]", i+1), cardCenter, int(y)+110, colWhite)
		x += cardW + gap
	}

	drawCenteredText(screen, "Press 1-3 to start the sonification, Q to quit", centerX, int(y)+200, colGray)
	if f.errMsg != "" {
		drawCenteredText(screen, f.errMsg, centerX, int(y)+230, colError)
	}
}

func (f *EbitenFrontend) drawLoading(screen *ebiten.Image) {
	w := f.app.Config.Window.Width
	h := f.app.Config.Window.Height
	ebitenutil.DrawRect(screen, 0, 0, float64(w), float64(h), color.RGBA{0, 0, 0, 192})

	dots := ""
	for i := 0; i < (f.frame/30)%4; i++ {
		dots += "."
	}
	drawCenteredText(screen, fmt.Sprintf("Fetching %s price data%s", f.loadingAsset, dots), w/2, h/2, colWhite)
	drawCenteredText(screen, "[Esc] cancel", w/2, h/2+24, colGray)
}

func (f *EbitenFrontend) drawChart(screen *ebiten.Image) {
	if f.session == nil {
		return
	}
	f.loadArtworkOnce()

	w := f.app.Config.Window.Width
	h := f.app.Config.Window.Height
	series := f.session.Series()

	text.Draw(screen, "< Back to Home [Esc]", basicfont.Face7x13, 10, 20, colGold)

	cursor := f.session.Cursor()
	status := fmt.Sprintf("%s  day %d/%d", series.Symbol(), cursor.TickIndex+1, series.Len())
	if sample, err := series.SampleAt(f.chart.Drawn()); err == nil {
		status += fmt.Sprintf("  price(usd) %.2f", sample.Price)
	}
	status += "  trend " + f.session.CurrentTrend().String()
	if f.session.Paused() {
		status += "  [PAUSED]"
	} else if f.session.Finished() {
		status += "  [DONE]"
	}
	drawCenteredText(screen, status, w/2, 20, colLightGray)
	text.Draw(screen, "[Space] pause", basicfont.Face7x13, w-110, 20, colGray)

	plotX := float64(CHART_MARGIN_LEFT)
	plotY := float64(CHART_MARGIN_TOP)
	plotW := float64(w - CHART_MARGIN_LEFT - CHART_MARGIN_RIGHT)
	plotH := float64(h - CHART_MARGIN_TOP - CHART_MARGIN_BOT)

	// Baseline at zero, headroom above the observed maximum.
	yMax := series.MaxPrice() * 1.05
	if yMax <= 0 {
		yMax = 1
	}
	px := func(i int) float64 {
		if series.Len() == 1 {
			return plotX
		}
		return plotX + float64(i)/float64(series.Len()-1)*plotW
	}
	py := func(price float64) float64 {
		return plotY + plotH - price/yMax*plotH
	}

	// Axis labels
	face := basicfont.Face7x13
	for step := 0; step <= 4; step++ {
		price := yMax * float64(step) / 4
		y := int(py(price))
		text.Draw(screen, fmt.Sprintf("%.0f", price), face, 8, y+4, colGray)
		ebitenutil.DrawLine(screen, plotX, float64(y), plotX+plotW, float64(y), color.RGBA{40, 40, 40, 255})
	}
	labelEvery := series.Len() / 6
	if labelEvery < 1 {
		labelEvery = 1
	}
	for i := 0; i < series.Len(); i += labelEvery {
		if sample, err := series.SampleAt(i); err == nil {
			label := sample.Timestamp.Format("02/01")
			text.Draw(screen, label, face, int(px(i))-14, h-CHART_MARGIN_BOT+20, colGray)
		}
	}

	// Progressive path: green rising segments, red falling, white points.
	drawn := f.chart.Drawn()
	for i := 1; i <= drawn && i < series.Len(); i++ {
		prev, err1 := series.SampleAt(i - 1)
		cur, err2 := series.SampleAt(i)
		if err1 != nil || err2 != nil {
			continue
		}
		clr := colRise
		if prev.Price > cur.Price {
			clr = colFall
		}
		ebitenutil.DrawLine(screen, px(i-1), py(prev.Price), px(i), py(cur.Price), clr)
	}
	for i := 0; i <= drawn && i < series.Len(); i++ {
		if sample, err := series.SampleAt(i); err == nil {
			ebitenutil.DrawRect(screen, px(i)-1.5, py(sample.Price)-1.5, 3, 3, colWhite)
		}
	}

	f.drawTrendFigure(screen)
}

// drawTrendFigure renders the bull/bear artwork (or a drawn placeholder if
// the asset files are missing) in the lower right, with the pop/float
// easing applied.
func (f *EbitenFrontend) drawTrendFigure(screen *ebiten.Image) {
	trend := f.figure.Trend()
	if trend == TrendFlat {
		return
	}

	w := float64(f.app.Config.Window.Width)
	h := float64(f.app.Config.Window.Height)
	size := FIGURE_BASE_SIZE * f.figure.Scale()
	x := w - size - FIGURE_MARGIN
	y := h - size - FIGURE_MARGIN + f.figure.FloatOffset()
	opacity := f.figure.Opacity()

	var img *ebiten.Image
	if trend == TrendBull {
		img = f.bullImages[f.figure.Frame()%BULL_FRAME_COUNT]
	} else {
		img = f.bearImages[f.figure.Frame()%BEAR_FRAME_COUNT]
	}

	if img != nil {
		op := &ebiten.DrawImageOptions{}
		bounds := img.Bounds()
		op.GeoM.Scale(size/float64(bounds.Dx()), size/float64(bounds.Dy()))
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleAlpha(float32(opacity))
		screen.DrawImage(img, op)
		return
	}

	// Placeholder: a tinted block with the trend spelled out.
	clr := colRise
	if trend == TrendBear {
		clr = colFall
	}
	alpha := uint8(opacity * 90)
	ebitenutil.DrawRect(screen, x, y, size, size, color.RGBA{clr.R, clr.G, clr.B, alpha})
	drawCenteredText(screen, trend.String(), int(x+size/2), int(y+size/2), colWhite)
}

// loadArtworkOnce loads bull1..bull7.png and bear1..bear4.png from the
// assets directory. Missing files are logged once and drawn as
// placeholders; artwork is cosmetic, never fatal.
func (f *EbitenFrontend) loadArtworkOnce() {
	if f.artLoaded {
		return
	}
	f.artLoaded = true

	for i := 0; i < BULL_FRAME_COUNT; i++ {
		path := filepath.Join("assets", fmt.Sprintf("bull%d.png", i+1))
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			f.app.Log.Warn("bull artwork missing, using placeholder", zap.String("path", path), zap.Error(err))
			continue
		}
		f.bullImages[i] = img
	}
	for i := 0; i < BEAR_FRAME_COUNT; i++ {
		path := filepath.Join("assets", fmt.Sprintf("bear%d.png", i+1))
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			f.app.Log.Warn("bear artwork missing, using placeholder", zap.String("path", path), zap.Error(err))
			continue
		}
		f.bearImages[i] = img
	}
}
