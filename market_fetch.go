// market_fetch.go - One-shot historical price fetch from CoinGecko

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	COINGECKO_BASE_URL = "https://api.coingecko.com/api/v3"
	FETCH_WINDOW_DAYS  = 30
	FETCH_TIMEOUT_SEC  = 30
)

// DataUnavailableError reports a failed or unusable price fetch. It blocks
// entry into playback and is recoverable: the user can retry or pick a
// different asset.
type DataUnavailableError struct {
	Symbol string
	Reason string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("price data unavailable for %q: %s: %v", e.Symbol, e.Reason, e.Err)
	}
	return fmt.Sprintf("price data unavailable for %q: %s", e.Symbol, e.Reason)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// Asset is one selectable instrument on the home screen.
type Asset struct {
	ID      string // Provider identifier, e.g. "ethereum"
	Display string // e.g. "Ethereum (ETH)"
	Blurb   string
}

// DefaultAssets mirrors the launch lineup. The home screen renders these in
// order; -symbol accepts any provider ID, listed or not.
func DefaultAssets() []Asset {
	return []Asset{
		{ID: "ethereum", Display: "Ethereum (ETH)", Blurb: "Smart contracts pioneer"},
		{ID: "bitcoin", Display: "Bitcoin (BTC)", Blurb: "Digital gold & store of value"},
		{ID: "ripple", Display: "Ripple (XRP)", Blurb: "Global payments solution"},
	}
}

// marketChart is the provider response shape: [ms-timestamp, price] pairs.
type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// MarketFetcher performs the one-shot historical fetch that precedes
// playback. It is not a streaming source: one call, one immutable series.
type MarketFetcher struct {
	client     *http.Client
	baseURL    string
	windowDays int
	now        func() time.Time // Injectable for tests
}

func NewMarketFetcher(cfg DataSourceConfig) *MarketFetcher {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = FETCH_TIMEOUT_SEC * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = COINGECKO_BASE_URL
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = FETCH_WINDOW_DAYS
	}
	return &MarketFetcher{
		client:     &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// FetchSeries fetches the trailing window of prices for one asset,
// collapses the provider's intraday points to one sample per UTC day, and
// returns a validated series. Every failure mode (network, HTTP status,
// parse, too few samples) surfaces as DataUnavailableError.
func (f *MarketFetcher) FetchSeries(ctx context.Context, assetID string) (*PriceSeries, error) {
	end := f.now()
	start := end.AddDate(0, 0, -f.windowDays)

	url := fmt.Sprintf("%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		f.baseURL, assetID, start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DataUnavailableError{Symbol: assetID, Reason: "building request", Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DataUnavailableError{Symbol: assetID, Reason: "fetching market chart", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &DataUnavailableError{
			Symbol: assetID,
			Reason: fmt.Sprintf("provider returned HTTP %d", resp.StatusCode),
		}
	}

	var chart marketChart
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, &DataUnavailableError{Symbol: assetID, Reason: "parsing market chart", Err: err}
	}

	samples := make([]PriceSample, 0, len(chart.Prices))
	for _, point := range chart.Prices {
		ms := int64(point[0])
		samples = append(samples, PriceSample{
			Timestamp: time.UnixMilli(ms).UTC(),
			Price:     point[1],
		})
	}

	series, err := NewPriceSeries(assetID, CollapseDaily(samples))
	if err != nil {
		return nil, &DataUnavailableError{Symbol: assetID, Reason: "series too short or malformed", Err: err}
	}
	return series, nil
}
