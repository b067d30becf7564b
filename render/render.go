// Package render turns escape grids into images for the clients.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/marben/fraktaly"
	"github.com/marben/fraktaly/view"
)

// Image converts g to an RGBA image. Grid row 0 (Ymin) is the bottom line of
// the image, so the imaginary axis points up.
func Image(g *fraktaly.Grid, maxIter int, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height; row++ {
		y := g.Height - 1 - row
		for col, n := range g.Row(row) {
			img.SetRGBA(col, y, p.Color(n, maxIter))
		}
	}
	return img
}

// Frame renders a server frame and labels it with its title.
func Frame(f view.Frame, p Palette) (*image.RGBA, error) {
	if f.Error != "" {
		return nil, errors.New(f.Error)
	}
	if f.Grid == nil {
		return nil, fmt.Errorf("frame %d carries no grid", f.Seq)
	}
	if err := f.Grid.Check(); err != nil {
		return nil, fmt.Errorf("frame %d: %w", f.Seq, err)
	}
	img := Image(f.Grid, f.State.MaxIter, p)
	Label(img, Title(f.State))
	return img, nil
}

// Title describes the view, e.g. "Julia c=-0.400+0.600i, 100 iterations".
func Title(s view.State) string {
	// Casers are stateful and must not be shared between goroutines.
	t := cases.Title(language.English).String(string(s.Mode))
	if s.Mode == view.Julia {
		t += fmt.Sprintf(" c=%.3f%+.3fi", s.JuliaRe, s.JuliaIm)
	}
	return fmt.Sprintf("%s, %d iterations", t, s.MaxIter)
}

// Label draws text in the top left corner of dst with a drop shadow.
func Label(dst draw.Image, text string) {
	face := basicfont.Face7x13
	x := dst.Bounds().Min.X + 6
	y := dst.Bounds().Min.Y + 6 + face.Ascent

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x+1, y+1),
	}
	d.DrawString(text)

	d.Src = image.White
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
