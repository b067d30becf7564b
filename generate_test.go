package fraktaly

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var square4 = Region{Xmin: -2, Xmax: 2, Ymin: -2, Ymax: 2}

func TestParamsPoint(t *testing.T) {
	p := Params{Region: square4, Resolution: Resolution{Width: 4, Height: 4}}
	tests := []struct {
		row, col int
		want     complex128
	}{
		{0, 0, complex(-2, -2)},
		{0, 1, complex(-1, -2)},
		{1, 0, complex(-2, -1)},
		{2, 3, complex(1, 0)},
		// the mapping is exclusive of xmax/ymax
		{3, 3, complex(1, 1)},
	}
	for _, tt := range tests {
		if got := p.Point(tt.row, tt.col); got != tt.want {
			t.Errorf("Point(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestGenerateShapeAndRange(t *testing.T) {
	c := complex(-0.4, 0.6)
	for _, p := range []Params{
		{Region: DefaultRegion, Resolution: Resolution{Width: 37, Height: 23}, MaxIter: 50},
		{Region: DefaultRegion, Resolution: Resolution{Width: 1, Height: 1}, MaxIter: 1},
		{Region: square4, Resolution: Resolution{Width: 65, Height: 130}, MaxIter: 30, Julia: &c},
		{Region: SeahorseValley, Resolution: Resolution{Width: 20, Height: 10}, MaxIter: 0},
	} {
		g, err := Generate(p)
		if err != nil {
			t.Fatalf("Generate(%+v): %v", p, err)
		}
		if g.Width != p.Resolution.Width || g.Height != p.Resolution.Height {
			t.Errorf("grid is %dx%d, want %dx%d", g.Width, g.Height, p.Resolution.Width, p.Resolution.Height)
		}
		rows := g.Rows()
		if len(rows) != p.Resolution.Height {
			t.Fatalf("got %d rows, want %d", len(rows), p.Resolution.Height)
		}
		for r, row := range rows {
			if len(row) != p.Resolution.Width {
				t.Fatalf("row %d has %d cells, want %d", r, len(row), p.Resolution.Width)
			}
			for col, v := range row {
				if v < 0 || v > p.MaxIter {
					t.Errorf("cell (%d, %d) = %d outside [0, %d]", r, col, v, p.MaxIter)
				}
			}
		}
	}
}

func TestGenerateMatchesPointwise(t *testing.T) {
	c := complex(0.285, 0.01)
	for _, julia := range []*complex128{nil, &c} {
		p := Params{Region: DefaultRegion, Resolution: Resolution{Width: 40, Height: 30}, MaxIter: 80, Julia: julia}
		g, err := Generate(p)
		if err != nil {
			t.Fatal(err)
		}
		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				pt := p.Point(row, col)
				want := Mandelbrot(pt, p.MaxIter)
				if julia != nil {
					want = Julia(pt, *julia, p.MaxIter)
				}
				if got := g.At(row, col); got != want {
					t.Fatalf("cell (%d, %d) = %d, want %d", row, col, got, want)
				}
			}
		}
	}
}

func TestGenerateWorkersAndTilesDoNotChangeOutput(t *testing.T) {
	p := Params{Region: DefaultRegion, Resolution: Resolution{Width: 131, Height: 77}, MaxIter: 120}
	want, err := (&Generator{Workers: 1, TileSize: 1 << 10}).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, gen := range []*Generator{
		{},
		{Workers: 2, TileSize: 1},
		{Workers: 8, TileSize: 7},
		{Workers: 3, TileSize: 64},
		{Workers: 64, TileSize: 16},
	} {
		got, err := gen.Generate(p)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Generator%+v mismatch (-want +got):\n%s", *gen, diff)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	c := complex(-0.4, 0.6)
	a, err := ComputeJuliaGrid(c, DefaultRegion, Resolution{Width: 64, Height: 48}, 100)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeJuliaGrid(c, DefaultRegion, Resolution{Width: 64, Height: 48}, 100)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two identical calls differ (-first +second):\n%s", diff)
	}
}

func TestMandelbrotGridMirrorSymmetry(t *testing.T) {
	// Steps of 0.25 and 0.375 are exact, so row r and row height-r sample
	// conjugate points. Row 0 (Ymin) has no mirror since Ymax is excluded.
	region := Region{Xmin: -2, Xmax: 1, Ymin: -1.5, Ymax: 1.5}
	g, err := ComputeMandelbrotGrid(region, Resolution{Width: 12, Height: 8}, 200)
	if err != nil {
		t.Fatal(err)
	}
	for r := 1; r < g.Height; r++ {
		if diff := cmp.Diff(g.Row(r), g.Row(g.Height-r)); diff != "" {
			t.Errorf("row %d is not the mirror of row %d:\n%s", r, g.Height-r, diff)
		}
	}
	// the real axis row sits at the middle
	if got := imag(Params{Region: region, Resolution: Resolution{Width: 12, Height: 8}}.Point(4, 0)); got != 0 {
		t.Errorf("row 4 imag = %g, want 0", got)
	}
}

func TestGenerateClassicView(t *testing.T) {
	g, err := ComputeMandelbrotGrid(DefaultRegion, Resolution{Width: 70, Height: 60}, 100)
	if err != nil {
		t.Fatal(err)
	}
	// column 40 → real -2 + 40*3.5/70 = 0, row 30 → imag 0: c = 0.
	if got := g.At(30, 40); got != 100 {
		t.Errorf("At(30, 40) = %d, want 100 (c = 0)", got)
	}
	// column 20 → real -1: c = -1 cycles.
	if got := g.At(30, 20); got != 100 {
		t.Errorf("At(30, 20) = %d, want 100 (c = -1)", got)
	}
	// column 0, row 0 → c = -2-1.5i escapes right away.
	if got := g.At(0, 0); got != 1 {
		t.Errorf("At(0, 0) = %d, want 1", got)
	}
}

func TestGenerateZeroResolution(t *testing.T) {
	for _, res := range []Resolution{{0, 0}, {0, 5}, {5, 0}} {
		g, err := ComputeMandelbrotGrid(DefaultRegion, res, 10)
		if err != nil {
			t.Fatalf("%+v: %v", res, err)
		}
		if g.Width != res.Width || g.Height != res.Height || len(g.Cells) != 0 {
			t.Errorf("%+v: got %dx%d with %d cells", res, g.Width, g.Height, len(g.Cells))
		}
		if len(g.Rows()) != res.Height {
			t.Errorf("%+v: got %d rows", res, len(g.Rows()))
		}
	}
}

func TestGenerateInvalidParameter(t *testing.T) {
	nan := complex(math.NaN(), 0)
	res := Resolution{Width: 4, Height: 4}
	tests := []struct {
		name  string
		p     Params
		param string
	}{
		{"xmin equals xmax", Params{Region: Region{Xmin: 1, Xmax: 1, Ymin: 0, Ymax: 1}, Resolution: res, MaxIter: 1}, "xmin"},
		{"xmin above xmax", Params{Region: Region{Xmin: 2, Xmax: 1, Ymin: 0, Ymax: 1}, Resolution: res, MaxIter: 1}, "xmin"},
		{"ymin above ymax", Params{Region: Region{Xmin: 0, Xmax: 1, Ymin: 1, Ymax: -1}, Resolution: res, MaxIter: 1}, "ymin"},
		{"negative width", Params{Region: DefaultRegion, Resolution: Resolution{Width: -1, Height: 4}, MaxIter: 1}, "width"},
		{"negative height", Params{Region: DefaultRegion, Resolution: Resolution{Width: 4, Height: -3}, MaxIter: 1}, "height"},
		{"negative cap", Params{Region: DefaultRegion, Resolution: res, MaxIter: -1}, "max_iter"},
		{"nan bound", Params{Region: Region{Xmin: math.NaN(), Xmax: 1, Ymin: 0, Ymax: 1}, Resolution: res}, "xmin"},
		{"infinite bound", Params{Region: Region{Xmin: 0, Xmax: 1, Ymin: 0, Ymax: math.Inf(1)}, Resolution: res}, "ymax"},
		{"nan julia", Params{Region: DefaultRegion, Resolution: res, Julia: &nan}, "julia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Generate(tt.p)
			if g != nil {
				t.Errorf("got grid %+v, want nil", g)
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *ParamError", err)
			}
			if pe.Param != tt.param {
				t.Errorf("Param = %q, want %q", pe.Param, tt.param)
			}
		})
	}
}

func TestRenderTileErrors(t *testing.T) {
	p := Params{Region: DefaultRegion, Resolution: Resolution{Width: 8, Height: 8}, MaxIter: 10}
	if err := RenderTile(p, image.Rect(0, 0, 4, 4), NewGrid(4, 8)); err == nil {
		t.Error("mismatched grid: want error")
	}
	if err := RenderTile(p, image.Rect(4, 4, 9, 8), NewGrid(8, 8)); err == nil {
		t.Error("tile outside grid: want error")
	}
}

func TestRenderTileFillsOnlyTile(t *testing.T) {
	p := Params{Region: DefaultRegion, Resolution: Resolution{Width: 8, Height: 8}, MaxIter: 10}
	g := NewGrid(8, 8)
	for i := range g.Cells {
		g.Cells[i] = -1
	}
	tile := image.Rect(2, 3, 5, 7)
	if err := RenderTile(p, tile, g); err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			inside := image.Pt(col, row).In(tile)
			if got := g.At(row, col); inside != (got >= 0) {
				t.Errorf("cell (%d, %d) = %d, inside tile = %v", row, col, got, inside)
			}
		}
	}
}

func TestSplitRectNoClip(t *testing.T) {
	tests := []struct {
		w, h, tw, th int
		tiles        int
	}{
		{128, 128, 64, 64, 4},
		{130, 65, 64, 64, 6},
		{1, 1, 64, 64, 1},
		{0, 10, 64, 64, 0},
		{10, 10, 3, 4, 12},
	}
	for _, tt := range tests {
		r := image.Rect(0, 0, tt.w, tt.h)
		tiles := splitRectNoClip(r, tt.tw, tt.th)
		if len(tiles) != tt.tiles {
			t.Errorf("%dx%d by %dx%d: %d tiles, want %d", tt.w, tt.h, tt.tw, tt.th, len(tiles), tt.tiles)
		}
		covered := make(map[image.Point]int)
		for _, tile := range tiles {
			if !tile.In(r) {
				t.Errorf("tile %v outside %v", tile, r)
			}
			for y := tile.Min.Y; y < tile.Max.Y; y++ {
				for x := tile.Min.X; x < tile.Max.X; x++ {
					covered[image.Pt(x, y)]++
				}
			}
		}
		if len(covered) != tt.w*tt.h {
			t.Errorf("%dx%d: %d pixels covered, want %d", tt.w, tt.h, len(covered), tt.w*tt.h)
		}
		for pt, n := range covered {
			if n != 1 {
				t.Errorf("pixel %v covered %d times", pt, n)
			}
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	p := Params{Region: DefaultRegion, Resolution: Resolution{Width: 800, Height: 800}, MaxIter: 100}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(p); err != nil {
			b.Fatal(err)
		}
	}
}
