package main

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/marben/fraktaly/view"
)

const writeTimeout = 10 * time.Second

// session serves one websocket viewer. It owns the viewer's view.State and
// replies to every command with a frame. Renders run in the background; a
// finished render is only sent if no newer render was started meanwhile, so
// a viewer zooming quickly never receives outdated grids.
type session struct {
	srv  *server
	conn *websocket.Conn
	log  *slog.Logger

	state view.State
	seq   uint64      // commands received; owned by writeLoop
	last  *view.Frame // newest frame sent with a grid

	// latest is the seq of the newest started render.
	latest atomic.Uint64
}

func newSession(srv *server, conn *websocket.Conn, logger *slog.Logger) *session {
	return &session{
		srv:   srv,
		conn:  conn,
		log:   logger,
		state: view.Default(),
	}
}

func (ss *session) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	cmds := make(chan view.Command)

	g.Go(func() error {
		return ss.readLoop(ctx, cmds)
	})
	g.Go(func() error {
		return ss.writeLoop(ctx, cmds)
	})

	return g.Wait()
}

func (ss *session) readLoop(ctx context.Context, cmds chan<- view.Command) error {
	defer close(cmds)
	for {
		var cmd view.Command
		if err := wsjson.Read(ctx, ss.conn, &cmd); err != nil {
			return err
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (ss *session) writeLoop(ctx context.Context, cmds <-chan view.Command) error {
	frames := make(chan view.Frame)
	for {
		select {
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			if err := ss.handle(ctx, cmd, frames); err != nil {
				return err
			}

		case f := <-frames:
			if f.Seq != ss.latest.Load() {
				ss.log.Debug("dropping stale frame", "seq", f.Seq, "latest", ss.latest.Load())
				continue
			}
			if f.Grid != nil {
				ss.last = &f
			}
			if err := ss.write(ctx, f); err != nil {
				return err
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handle applies cmd and either answers right away or starts a render.
func (ss *session) handle(ctx context.Context, cmd view.Command, frames chan<- view.Frame) error {
	ss.seq++
	seq := ss.seq

	changed, err := ss.state.Apply(cmd)
	if err != nil {
		ss.log.Debug("command rejected", "seq", seq, "op", cmd.Op, "err", err)
		return ss.write(ctx, view.Frame{Seq: seq, State: ss.state, Error: err.Error()})
	}

	if !changed && ss.last != nil && ss.last.State == ss.state {
		f := *ss.last
		f.Seq = seq
		f.ElapsedMs = 0
		return ss.write(ctx, f)
	}

	ss.latest.Store(seq)
	go ss.render(ctx, seq, ss.state, frames)
	return nil
}

func (ss *session) render(ctx context.Context, seq uint64, st view.State, frames chan<- view.Frame) {
	start := time.Now()
	stale := func() bool { return ss.latest.Load() != seq }

	f := view.Frame{Seq: seq, State: st}
	grid, err := ss.srv.render(ctx, st.Params(), stale)
	switch {
	case errors.Is(err, errStale):
		ss.log.Debug("skipping stale render", "seq", seq)
		return
	case err != nil:
		f.Error = err.Error()
	default:
		f.Grid = grid
		f.ElapsedMs = time.Since(start).Milliseconds()
	}

	select {
	case frames <- f:
	case <-ctx.Done():
	}
}

func (ss *session) write(ctx context.Context, f view.Frame) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, ss.conn, f)
}
