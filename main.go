// main.go - Main entry point for SoniChart

/*
SoniChart - hear the market move.

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/SoniChart
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;215;0mSoniChart - hear the market move.\033[0m")
	fmt.Println("\nThirty days of crypto price history, replayed as chart, tone and trend.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/SoniChart")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	boilerPlate()

	var (
		configPath string
		symbol     string
		logLevel   string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "Path to YAML config file")
	flagSet.StringVar(&symbol, "symbol", "", "Skip the selection screen and play this asset (ethereum, bitcoin, ripple)")
	flagSet.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./sonichart [-config sonichart.yaml] [-symbol bitcoin] [-log-level debug]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	app, err := NewApp(cfg, log)
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	app.PreselectedSymbol = symbol

	frontend, err := NewFrontend(FRONTEND_EBITEN, app)
	if err != nil {
		fmt.Printf("Failed to initialize frontend: %v\n", err)
		os.Exit(1)
	}

	if err := frontend.Run(); err != nil {
		log.Error("frontend exited with error", zap.Error(err))
		os.Exit(1)
	}
}
