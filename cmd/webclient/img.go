//go:build js && wasm

package main

import (
	"image"
	"math"
	"syscall/js"
	"time"
)

func canvas() js.Value {
	return js.Global().Get("document").Call("getElementById", "myCanvas")
}

// displayImage replaces the canvas content with img, resizing the canvas
// when the resolution changed.
func displayImage(img *image.RGBA) {
	start := time.Now()
	c := canvas()
	width := img.Rect.Dx()
	height := img.Rect.Dy()
	if c.Get("width").Int() != width || c.Get("height").Int() != height {
		c.Set("width", width)
		c.Set("height", height)
	}

	// ImageData wants a Uint8ClampedArray of width*height*4 bytes
	jsData := js.Global().Get("Uint8ClampedArray").New(len(img.Pix))
	js.CopyBytesToJS(jsData, img.Pix)

	imageData := js.Global().Get("ImageData").New(jsData, width, height)
	c.Call("getContext", "2d").Call("putImageData", imageData, 0, 0)
	logScreenf("draw took %s", time.Since(start))
}

func initCanvas(width, height int, color string) {
	c := canvas()
	c.Set("width", width)
	c.Set("height", height)

	ctx := c.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// canvasPoint converts a mouse event position into canvas pixels. The
// canvas may be scaled by CSS.
func canvasPoint(event js.Value) (x, y float64) {
	c := canvas()
	rect := c.Call("getBoundingClientRect")
	sx := c.Get("width").Float() / rect.Get("width").Float()
	sy := c.Get("height").Float() / rect.Get("height").Float()
	x = (event.Get("clientX").Float() - rect.Get("left").Float()) * sx
	y = (event.Get("clientY").Float() - rect.Get("top").Float()) * sy
	return x, y
}

// drawSelection outlines the zoom rectangle being dragged.
func drawSelection(snapshot js.Value, x0, y0, x1, y1 float64) {
	ctx := canvas().Call("getContext", "2d")
	ctx.Call("putImageData", snapshot, 0, 0)
	ctx.Set("strokeStyle", "#ffffff")
	ctx.Set("lineWidth", 1)
	ctx.Call("strokeRect", min(x0, x1), min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0))
}

// snapshotCanvas copies the current canvas pixels so a selection outline
// can be drawn over them and later removed.
func snapshotCanvas() js.Value {
	c := canvas()
	return c.Call("getContext", "2d").Call("getImageData", 0, 0, c.Get("width"), c.Get("height"))
}
