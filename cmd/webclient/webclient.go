//go:build js && wasm

// webclient.go is a WASM web client for the fractal viewer.
// It opens a view session on the server, forwards user actions as commands
// and paints every frame it receives onto the page canvas.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"syscall/js"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/marben/fraktaly/render"
	"github.com/marben/fraktaly/view"
)

// frameReadLimit fits an 800x800 grid with room for larger canvases.
const frameReadLimit = 64 << 20

func main() {
	logScreenf("Starting WASM web client...")

	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"

	ctx := context.Background()
	logScreenf("Connecting to server at %s...", websocketUrl)
	conn, _, err := websocket.Dial(ctx, websocketUrl, nil)
	if err != nil {
		logFatalf("websocket.Dial: %v", err)
	}
	conn.SetReadLimit(frameReadLimit)
	logScreenf("WebSocket connected.")

	v := &viewer{conn: conn, cmds: make(chan view.Command, 16), state: view.Default()}
	initCanvas(v.state.Resolution.Width, v.state.Resolution.Height, "#3a3a6e")
	v.bindControls()

	go v.sendLoop(ctx)
	v.cmds <- view.Command{Op: view.OpRender}

	if err := v.frameLoop(ctx); err != nil {
		logFatalf("frameLoop: %v", err)
	}
}

// viewer mirrors the server's view of this page.
type viewer struct {
	conn *websocket.Conn
	cmds chan view.Command

	mu    sync.Mutex
	state view.State
}

// send queues a command. It is called from DOM callbacks, which must not
// block, so a full queue drops the command.
func (v *viewer) send(cmd view.Command) {
	select {
	case v.cmds <- cmd:
	default:
		logScreenf("busy, dropped %s", cmd.Op)
	}
}

func (v *viewer) sendLoop(ctx context.Context) {
	for cmd := range v.cmds {
		if err := wsjson.Write(ctx, v.conn, cmd); err != nil {
			logScreenf("send %s: %v", cmd.Op, err)
			return
		}
	}
}

// frameLoop paints frames as they arrive until the connection ends.
func (v *viewer) frameLoop(ctx context.Context) error {
	for {
		var f view.Frame
		if err := wsjson.Read(ctx, v.conn, &f); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}
		if f.Error != "" {
			logScreenf("command %d: %s", f.Seq, f.Error)
			continue
		}

		v.mu.Lock()
		v.state = f.State
		v.mu.Unlock()

		img, err := render.Frame(f, render.Hot)
		if err != nil {
			return fmt.Errorf("frame %d: %w", f.Seq, err)
		}
		displayImage(img)
		hudSetFrame(f)
	}
}

func (v *viewer) currentState() view.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

// hudSetFrame shows what the canvas currently displays.
func hudSetFrame(f view.Frame) {
	doc := js.Global().Get("document")
	doc.Call("getElementById", "title").Set("textContent", render.Title(f.State))
	doc.Call("getElementById", "region").Set("textContent", f.State.Region.String())
	doc.Call("getElementById", "elapsed").Set("textContent", fmt.Sprintf("%d ms", f.ElapsedMs))
	doc.Call("getElementById", "iterValue").Set("textContent", f.State.MaxIter)
	doc.Call("getElementById", "juliaValue").Set("textContent", fmt.Sprintf("%.2f%+.2fi", f.State.JuliaRe, f.State.JuliaIm))
}
