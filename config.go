// config.go - YAML configuration with environment overrides

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_TICK_MS = 2000 // One price sample every two seconds, as shipped
	DEFAULT_EPSILON = 0.5  // Deadband in price units before bull/bear flips

	DEFAULT_WINDOW_WIDTH  = 1000
	DEFAULT_WINDOW_HEIGHT = 660
)

// ToneConfig parameterizes the delta-to-tone mapping.
type ToneConfig struct {
	BaseHz         float64 `yaml:"base_hz"`
	MinHz          float64 `yaml:"min_hz"`
	MaxHz          float64 `yaml:"max_hz"`
	DurationMs     int     `yaml:"duration_ms"`
	Amplitude      float64 `yaml:"amplitude"`
	NeutralSilence bool    `yaml:"neutral_silence"`
}

// DataSourceConfig points at the market data provider.
type DataSourceConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
	WindowDays int    `yaml:"window_days"`
}

// Config holds all application configuration.
type Config struct {
	Playback struct {
		TickMs  int     `yaml:"tick_ms"`
		Epsilon float64 `yaml:"epsilon"`
	} `yaml:"playback"`
	Tone       ToneConfig       `yaml:"tone"`
	DataSource DataSourceConfig `yaml:"data_source"`
	Window     struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// DefaultConfig returns the shipped defaults: the product's canonical tick
// rate, tone constants and window geometry.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Playback.TickMs = DEFAULT_TICK_MS
	cfg.Playback.Epsilon = DEFAULT_EPSILON
	cfg.Tone = ToneConfig{
		BaseHz:     TONE_BASE_HZ,
		MinHz:      TONE_MIN_HZ,
		MaxHz:      TONE_MAX_HZ,
		DurationMs: TONE_DURATION_MS,
		Amplitude:  TONE_AMPLITUDE,
	}
	cfg.DataSource = DataSourceConfig{
		BaseURL:    COINGECKO_BASE_URL,
		TimeoutSec: FETCH_TIMEOUT_SEC,
		WindowDays: FETCH_WINDOW_DAYS,
	}
	cfg.Window.Width = DEFAULT_WINDOW_WIDTH
	cfg.Window.Height = DEFAULT_WINDOW_HEIGHT
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// LoadConfig reads config from a YAML file (missing file is fine: defaults
// apply), then applies environment variable overrides, then validates.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SONICHART_API_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SONICHART_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SONICHART_TICK_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Playback.TickMs = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Playback.TickMs <= 0 {
		return fmt.Errorf("config: playback.tick_ms must be positive, got %d", c.Playback.TickMs)
	}
	if c.Playback.Epsilon < 0 {
		return fmt.Errorf("config: playback.epsilon must be non-negative, got %g", c.Playback.Epsilon)
	}
	if c.Tone.MinHz <= 0 || c.Tone.MaxHz <= c.Tone.MinHz {
		return fmt.Errorf("config: tone range [%g,%g] is not a valid audible range", c.Tone.MinHz, c.Tone.MaxHz)
	}
	if c.Tone.BaseHz < c.Tone.MinHz || c.Tone.BaseHz > c.Tone.MaxHz {
		return fmt.Errorf("config: tone.base_hz %g outside [%g,%g]", c.Tone.BaseHz, c.Tone.MinHz, c.Tone.MaxHz)
	}
	if c.Tone.DurationMs <= 0 {
		return fmt.Errorf("config: tone.duration_ms must be positive, got %d", c.Tone.DurationMs)
	}
	if c.Tone.Amplitude < 0 || c.Tone.Amplitude > 1 {
		return fmt.Errorf("config: tone.amplitude %g outside [0,1]", c.Tone.Amplitude)
	}
	if c.DataSource.WindowDays <= 0 {
		return fmt.Errorf("config: data_source.window_days must be positive, got %d", c.DataSource.WindowDays)
	}
	return nil
}
