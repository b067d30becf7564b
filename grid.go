package fraktaly

import "fmt"

// Grid is a row-major grid of escape counts with Height rows of Width cells.
// Cell (row, col) lives at Cells[row*Width+col]. Row 0 corresponds to Ymin.
type Grid struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Cells  []int `json:"cells"`
}

// NewGrid allocates a zeroed width x height grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]int, width*height),
	}
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) int {
	return g.Cells[row*g.Width+col]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col, v int) {
	g.Cells[row*g.Width+col] = v
}

// Row returns row r as a slice sharing the grid's storage.
func (g *Grid) Row(r int) []int {
	return g.Cells[r*g.Width : (r+1)*g.Width]
}

// Rows returns a (Height, Width) 2D view of the grid sharing its storage.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Height)
	for r := range rows {
		rows[r] = g.Row(r)
	}
	return rows
}

// Max returns the largest cell value, or 0 for an empty grid.
func (g *Grid) Max() int {
	m := 0
	for _, v := range g.Cells {
		m = max(m, v)
	}
	return m
}

// Check reports whether the grid storage matches its dimensions.
// Grids decoded from the wire should be checked before use.
func (g *Grid) Check() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("grid: negative dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("grid: %d cells for %dx%d", len(g.Cells), g.Width, g.Height)
	}
	return nil
}
