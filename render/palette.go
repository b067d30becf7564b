package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"
)

// Palette maps an escape count in [0, maxIter] to a color.
type Palette interface {
	Color(n, maxIter int) color.RGBA
}

// PaletteFunc adapts a function to Palette.
type PaletteFunc func(n, maxIter int) color.RGBA

func (f PaletteFunc) Color(n, maxIter int) color.RGBA { return f(n, maxIter) }

// Hot is the black-red-yellow-white ramp. Points that never escaped are white.
var Hot Palette = PaletteFunc(func(n, maxIter int) color.RGBA {
	t := fraction(n, maxIter)
	return color.RGBA{
		R: channel(ramp(t, 0, 0.365079, 0.0416)),
		G: channel(ramp(t, 0.365079, 0.746032, 0)),
		B: channel(ramp(t, 0.746032, 1, 0)),
		A: 255,
	}
})

// HSV cycles the hue with the escape count. Points that never escaped are black.
var HSV Palette = PaletteFunc(func(n, maxIter int) color.RGBA {
	if n >= maxIter {
		return color.RGBA{A: 255}
	}
	return hsv(float64(n)*0.02, 1, 1)
})

// Gray is a linear black to white ramp.
var Gray Palette = PaletteFunc(func(n, maxIter int) color.RGBA {
	v := channel(fraction(n, maxIter))
	return color.RGBA{R: v, G: v, B: v, A: 255}
})

var palettes = map[string]Palette{
	"hot":  Hot,
	"hsv":  HSV,
	"gray": Gray,
}

// PaletteNames lists the names accepted by PaletteByName.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PaletteByName returns a named palette.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (known: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

func fraction(n, maxIter int) float64 {
	if maxIter <= 0 {
		return 0
	}
	return math.Min(math.Max(float64(n)/float64(maxIter), 0), 1)
}

// ramp is 0 below lo, rises linearly from start at lo to 1 at hi, then stays 1.
func ramp(t, lo, hi, start float64) float64 {
	switch {
	case t < lo:
		return 0
	case t >= hi:
		return 1
	}
	return start + (1-start)*(t-lo)/(hi-lo)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{channel(r), channel(g), channel(b), 255}
}
