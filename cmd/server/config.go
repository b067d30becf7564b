package main

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/pflag"
)

type config struct {
	Addr      string
	StaticDir string
	Origins   []string

	// Workers and TileSize configure the grid generator.
	Workers  int
	TileSize int

	// MaxPixels bounds width*height of a single request.
	MaxPixels int
	// MaxRenders bounds grids computed at the same time across all sessions.
	MaxRenders int

	LogLevel slog.Level
}

func defaultConfig() config {
	return config{
		Addr:       ":8080",
		StaticDir:  "./static",
		Workers:    runtime.GOMAXPROCS(0),
		TileSize:   64,
		MaxPixels:  4096 * 4096,
		MaxRenders: 2,
		LogLevel:   slog.LevelInfo,
	}
}

func parseFlags(args []string) (config, error) {
	cfg := defaultConfig()

	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "http listen address")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "directory served at /")
	fs.StringSliceVar(&cfg.Origins, "origins", cfg.Origins, "extra origin patterns accepted by the websocket endpoint")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines per grid")
	fs.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "tile edge in pixels")
	fs.IntVar(&cfg.MaxPixels, "max-pixels", cfg.MaxPixels, "largest grid (width*height) served")
	fs.IntVar(&cfg.MaxRenders, "max-renders", cfg.MaxRenders, "grids computed concurrently")
	level := fs.String("log-level", cfg.LogLevel.String(), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(*level)); err != nil {
		return config{}, fmt.Errorf("--log-level: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("--workers must be positive, got %d", c.Workers))
	}
	if c.TileSize < 1 {
		errs = append(errs, fmt.Errorf("--tile-size must be positive, got %d", c.TileSize))
	}
	if c.MaxPixels < 1 {
		errs = append(errs, fmt.Errorf("--max-pixels must be positive, got %d", c.MaxPixels))
	}
	if c.MaxRenders < 1 {
		errs = append(errs, fmt.Errorf("--max-renders must be positive, got %d", c.MaxRenders))
	}
	return errors.Join(errs...)
}
