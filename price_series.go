// price_series.go - Immutable historical price series and delta access

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"time"
)

// InsufficientDataError reports a series that is too short to sonify.
// A delta needs two points, so anything below two samples is unusable.
type InsufficientDataError struct {
	Symbol string // Asset the series was built for
	Count  int    // Number of samples actually supplied
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("price series for %q needs at least 2 samples, got %d", e.Symbol, e.Count)
}

// IndexOutOfRangeError reports a sample or delta lookup outside the series.
// During playback this is an invariant violation (clock/series mismatch),
// never an expected condition.
type IndexOutOfRangeError struct {
	Operation string // "sample" or "delta"
	Index     int
	Length    int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("price series %s index %d out of range [0,%d)", e.Operation, e.Index, e.Length)
}

// PriceSample is one observed price at one instant.
type PriceSample struct {
	Timestamp time.Time
	Price     float64
}

// PriceSeries is an ordered, immutable sequence of price samples for one
// asset. Constructed once from the market data fetch; shared by reference for
// reading only, so no locking is needed anywhere downstream.
type PriceSeries struct {
	symbol  string
	samples []PriceSample
	minPx   float64
	maxPx   float64
}

// NewPriceSeries validates and copies the raw samples. Timestamps must be
// strictly increasing; fewer than two samples yields InsufficientDataError.
func NewPriceSeries(symbol string, samples []PriceSample) (*PriceSeries, error) {
	if len(samples) < 2 {
		return nil, &InsufficientDataError{Symbol: symbol, Count: len(samples)}
	}

	owned := make([]PriceSample, len(samples))
	copy(owned, samples)

	minPx := owned[0].Price
	maxPx := owned[0].Price
	for i := 1; i < len(owned); i++ {
		if !owned[i].Timestamp.After(owned[i-1].Timestamp) {
			return nil, fmt.Errorf("price series for %q: timestamps not strictly increasing at index %d", symbol, i)
		}
		if owned[i].Price < minPx {
			minPx = owned[i].Price
		}
		if owned[i].Price > maxPx {
			maxPx = owned[i].Price
		}
	}

	return &PriceSeries{
		symbol:  symbol,
		samples: owned,
		minPx:   minPx,
		maxPx:   maxPx,
	}, nil
}

func (s *PriceSeries) Symbol() string {
	return s.symbol
}

func (s *PriceSeries) Len() int {
	return len(s.samples)
}

// SampleAt returns the sample at index i.
func (s *PriceSeries) SampleAt(i int) (PriceSample, error) {
	if i < 0 || i >= len(s.samples) {
		return PriceSample{}, &IndexOutOfRangeError{Operation: "sample", Index: i, Length: len(s.samples)}
	}
	return s.samples[i], nil
}

// DeltaAt returns samples[i].Price - samples[i-1].Price. Index 0 has no
// prior sample and is rejected.
func (s *PriceSeries) DeltaAt(i int) (float64, error) {
	if i < 1 || i >= len(s.samples) {
		return 0, &IndexOutOfRangeError{Operation: "delta", Index: i, Length: len(s.samples)}
	}
	return s.samples[i].Price - s.samples[i-1].Price, nil
}

// Range returns the observed max-min price spread. Used by the tone mapper
// to normalize delta magnitudes; zero for a perfectly flat series.
func (s *PriceSeries) Range() float64 {
	return s.maxPx - s.minPx
}

// MinPrice returns the lowest observed price.
func (s *PriceSeries) MinPrice() float64 {
	return s.minPx
}

// MaxPrice returns the highest observed price.
func (s *PriceSeries) MaxPrice() float64 {
	return s.maxPx
}

// CollapseDaily reduces provider intraday samples to the first sample of
// each UTC day. Providers return hourly (or finer) points over the fetch
// window; playback ticks once per day.
func CollapseDaily(samples []PriceSample) []PriceSample {
	out := make([]PriceSample, 0, len(samples))
	lastDay := ""
	for _, sample := range samples {
		day := sample.Timestamp.UTC().Format("2006-01-02")
		if day != lastDay {
			out = append(out, sample)
			lastDay = day
		}
	}
	return out
}
