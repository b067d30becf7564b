//go:build js && wasm

package main

import (
	"strconv"
	"syscall/js"

	"github.com/marben/fraktaly/view"
)

func element(id string) js.Value {
	return js.Global().Get("document").Call("getElementById", id)
}

// listen registers fn for DOM events. The callbacks live as long as the
// page, so they are never released.
func listen(id, event string, fn func(event js.Value)) {
	element(id).Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	}))
}

// bindControls turns page interactions into view commands: dragging on the
// canvas zooms, the buttons toggle the mode and reset the zoom, the sliders
// set iterations and the Julia constant.
func (v *viewer) bindControls() {
	var (
		dragging       bool
		x0, y0, x1, y1 float64
		snapshot       js.Value
	)
	listen("myCanvas", "mousedown", func(e js.Value) {
		dragging = true
		x0, y0 = canvasPoint(e)
		x1, y1 = x0, y0
		snapshot = snapshotCanvas()
	})
	listen("myCanvas", "mousemove", func(e js.Value) {
		if !dragging {
			return
		}
		x1, y1 = canvasPoint(e)
		drawSelection(snapshot, x0, y0, x1, y1)
	})
	listen("myCanvas", "mouseup", func(e js.Value) {
		if !dragging {
			return
		}
		dragging = false
		x1, y1 = canvasPoint(e)
		canvas().Call("getContext", "2d").Call("putImageData", snapshot, 0, 0)

		st := v.currentState()
		re0, im0 := st.ImageToPlane(x0, y0)
		re1, im1 := st.ImageToPlane(x1, y1)
		v.send(view.Command{Op: view.OpZoom, X0: re0, Y0: im0, X1: re1, Y1: im1})
	})

	listen("toggle", "click", func(js.Value) {
		v.send(view.Command{Op: view.OpToggleMode})
	})
	listen("reset", "click", func(js.Value) {
		v.send(view.Command{Op: view.OpResetZoom})
	})

	listen("iter", "change", func(js.Value) {
		n, err := strconv.Atoi(element("iter").Get("value").String())
		if err != nil {
			logScreenf("iterations: %v", err)
			return
		}
		v.send(view.Command{Op: view.OpSetIterations, Iterations: n})
	})
	julia := func(js.Value) {
		re, errRe := strconv.ParseFloat(element("re").Get("value").String(), 64)
		im, errIm := strconv.ParseFloat(element("im").Get("value").String(), 64)
		if errRe != nil || errIm != nil {
			logScreenf("julia constant: invalid slider value")
			return
		}
		v.send(view.Command{Op: view.OpSetJulia, Re: re, Im: im})
	}
	listen("re", "change", julia)
	listen("im", "change", julia)
}
