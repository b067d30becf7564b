// Command server computes Mandelbrot and Julia grids for viewers.
// Browsers connect to /ws and drive a view with commands; scripts can fetch
// single grids from /grid.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/marben/fraktaly"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	fraktaly.SetLogger(logger)

	gen := &fraktaly.Generator{Workers: cfg.Workers, TileSize: cfg.TileSize}
	srv := newServer(cfg, gen, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	logger.Info("listening", "addr", cfg.Addr, "static", cfg.StaticDir, "workers", cfg.Workers)

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpServer.Shutdown: %w", err)
	}
	return nil
}

// errStale is returned for renders superseded before they started.
var errStale = errors.New("render superseded")

type server struct {
	cfg      config
	renderer fraktaly.Renderer
	renders  *semaphore.Weighted
	log      *slog.Logger

	sessions atomic.Int64
}

func newServer(cfg config, renderer fraktaly.Renderer, logger *slog.Logger) *server {
	return &server{
		cfg:      cfg,
		renderer: renderer,
		renders:  semaphore.NewWeighted(int64(cfg.MaxRenders)),
		log:      logger,
	}
}

// render computes p once a render slot is free. stale is checked after the
// slot is acquired; if it reports true the render is skipped with errStale.
func (s *server) render(ctx context.Context, p fraktaly.Params, stale func() bool) (*fraktaly.Grid, error) {
	w, h := p.Resolution.Width, p.Resolution.Height
	// the per-side checks keep w*h from overflowing
	if w > s.cfg.MaxPixels || h > s.cfg.MaxPixels || w*h > s.cfg.MaxPixels {
		return nil, &fraktaly.ParamError{
			Param:  "resolution",
			Value:  fmt.Sprintf("%dx%d", w, h),
			Reason: fmt.Sprintf("exceeds %d pixels", s.cfg.MaxPixels),
		}
	}

	if err := s.renders.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.renders.Release(1)

	if stale != nil && stale() {
		return nil, errStale
	}
	return s.renderer.Generate(p)
}

func (s *server) sessionStarted() {
	s.log.Info("session started", "sessions", s.sessions.Add(1))
}

func (s *server) sessionEnded() {
	s.log.Info("session ended", "sessions", s.sessions.Add(-1))
}
