package main

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/marben/fraktaly/view"
)

// frameReadLimit allows grids well above the default 800x800 view.
const frameReadLimit = 256 << 20

// client drives a server session over a websocket.
type client struct {
	conn *websocket.Conn
	seq  uint64
}

func dialServer(ctx context.Context, url string) (*client, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", url, err)
	}
	c.SetReadLimit(frameReadLimit)
	return &client{conn: c}, nil
}

// send applies cmds in order and returns the frame answering the last one.
// Grids of earlier commands are skipped; the server may drop them anyway.
// A rejected command fails the whole batch.
func (c *client) send(ctx context.Context, cmds ...view.Command) (view.Frame, error) {
	if len(cmds) == 0 {
		cmds = []view.Command{{Op: view.OpRender}}
	}
	first := c.seq + 1
	for _, cmd := range cmds {
		if err := wsjson.Write(ctx, c.conn, cmd); err != nil {
			return view.Frame{}, fmt.Errorf("send %s: %w", cmd.Op, err)
		}
		c.seq++
	}

	for {
		var f view.Frame
		if err := wsjson.Read(ctx, c.conn, &f); err != nil {
			return view.Frame{}, fmt.Errorf("read frame: %w", err)
		}
		if f.Seq < first || f.Seq > c.seq {
			continue
		}
		if f.Error != "" {
			return f, fmt.Errorf("command %d (%s): %s", f.Seq, cmds[f.Seq-first].Op, f.Error)
		}
		if f.Seq == c.seq {
			return f, nil
		}
	}
}

func (c *client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

// commandsFor lists the commands that turn the server's default view into st.
func commandsFor(st view.State) []view.Command {
	region := st.Region
	return []view.Command{
		{Op: view.OpSetResolution, Width: st.Resolution.Width, Height: st.Resolution.Height},
		{Op: view.OpSetMode, Mode: st.Mode},
		{Op: view.OpSetRegion, Region: &region},
		{Op: view.OpSetIterations, Iterations: st.MaxIter},
		{Op: view.OpSetJulia, Re: st.JuliaRe, Im: st.JuliaIm},
		{Op: view.OpRender},
	}
}
