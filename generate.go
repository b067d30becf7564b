package fraktaly

import (
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTileSize is the edge of the square tiles a grid is split into.
const DefaultTileSize = 64

// Resolution is the output grid size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Params is one grid generation request.
type Params struct {
	Region     Region
	Resolution Resolution
	MaxIter    int

	// Julia is the fixed constant of a Julia set. nil selects the Mandelbrot set.
	Julia *complex128
}

// Validate checks the parameters at the generation boundary.
// Every failure matches ErrInvalidParameter.
func (p Params) Validate() error {
	if p.Resolution.Width < 0 {
		return &ParamError{Param: "width", Value: p.Resolution.Width, Reason: "must not be negative"}
	}
	if p.Resolution.Height < 0 {
		return &ParamError{Param: "height", Value: p.Resolution.Height, Reason: "must not be negative"}
	}
	if p.MaxIter < 0 {
		return &ParamError{Param: "max_iter", Value: p.MaxIter, Reason: "must not be negative"}
	}
	if err := p.Region.Validate(); err != nil {
		return err
	}
	if p.Julia != nil && (!finite(real(*p.Julia)) || !finite(imag(*p.Julia))) {
		return &ParamError{Param: "julia", Value: *p.Julia, Reason: "must be finite"}
	}
	return nil
}

// Point maps pixel (row, col) to the complex plane. Column 0 maps to Xmin and
// row 0 to Ymin; the step is extent/pixels, so the last column and row stop
// one step short of Xmax and Ymax.
func (p Params) Point(row, col int) complex128 {
	r := p.Region
	re := r.Xmin + float64(col)*(r.Xmax-r.Xmin)/float64(p.Resolution.Width)
	im := r.Ymin + float64(row)*(r.Ymax-r.Ymin)/float64(p.Resolution.Height)
	return complex(re, im)
}

// Generator fills grids in parallel, one tile per task.
// The zero value uses GOMAXPROCS workers and DefaultTileSize tiles.
// Worker count and tile size never change the produced grid.
type Generator struct {
	Workers  int
	TileSize int
}

var _ Renderer = (*Generator)(nil)

func (g *Generator) workers() int {
	if g.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return g.Workers
}

func (g *Generator) tileSize() int {
	if g.TileSize <= 0 {
		return DefaultTileSize
	}
	return g.TileSize
}

// Generate validates p and computes its grid. The returned grid is owned by
// the caller.
func (g *Generator) Generate(p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	w, h := p.Resolution.Width, p.Resolution.Height
	grid := NewGrid(w, h)
	ts := g.tileSize()
	tiles := splitRectNoClip(image.Rect(0, 0, w, h), ts, ts)

	// tiles are disjoint, so workers share grid without locking
	var eg errgroup.Group
	eg.SetLimit(g.workers())
	for _, tile := range tiles {
		eg.Go(func() error {
			return RenderTile(p, tile, grid)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	Logger().Debug("grid generated",
		"width", w, "height", h, "max_iter", p.MaxIter, "julia", p.Julia != nil,
		"tiles", len(tiles), "workers", g.workers(), "elapsed", time.Since(start))
	return grid, nil
}

// RenderTile evaluates the pixels of tile, given in global grid coordinates,
// and stores them in dst. dst must have p's resolution.
func RenderTile(p Params, tile image.Rectangle, dst *Grid) error {
	if dst.Width != p.Resolution.Width || dst.Height != p.Resolution.Height {
		return fmt.Errorf("grid %dx%d does not match resolution %dx%d",
			dst.Width, dst.Height, p.Resolution.Width, p.Resolution.Height)
	}
	if !tile.In(image.Rect(0, 0, dst.Width, dst.Height)) {
		return fmt.Errorf("tile %v outside grid %dx%d", tile, dst.Width, dst.Height)
	}

	for row := tile.Min.Y; row < tile.Max.Y; row++ {
		cells := dst.Row(row)
		for col := tile.Min.X; col < tile.Max.X; col++ {
			pt := p.Point(row, col)
			if p.Julia != nil {
				cells[col] = Julia(pt, *p.Julia, p.MaxIter)
			} else {
				cells[col] = Mandelbrot(pt, p.MaxIter)
			}
		}
	}
	return nil
}

var defaultGenerator = &Generator{}

// Generate computes p with the default Generator.
func Generate(p Params) (*Grid, error) {
	return defaultGenerator.Generate(p)
}

// ComputeMandelbrotGrid computes the Mandelbrot escape grid of region.
func ComputeMandelbrotGrid(region Region, res Resolution, maxIter int) (*Grid, error) {
	return Generate(Params{Region: region, Resolution: res, MaxIter: maxIter})
}

// ComputeJuliaGrid computes the escape grid of the Julia set for constant c.
func ComputeJuliaGrid(c complex128, region Region, res Resolution, maxIter int) (*Grid, error) {
	return Generate(Params{Region: region, Resolution: res, MaxIter: maxIter, Julia: &c})
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)

		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)

			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}

	return tiles
}
