// Package view holds the presentation state of an interactive fractal viewer:
// the visible region, fractal mode and control values. It is changed only
// through discrete commands, so a server session or a UI owns exactly one
// State and replays user actions onto it.
package view

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/marben/fraktaly"
)

// Mode selects the fractal family.
type Mode string

const (
	Mandelbrot Mode = "mandelbrot"
	Julia      Mode = "julia"
)

// Control ranges of the viewer.
const (
	MinIterations     = 10
	MaxIterations     = 300
	IterationStep     = 10
	DefaultIterations = 100

	// MinJulia and MaxJulia bound each component of the Julia constant.
	MinJulia = -1.0
	MaxJulia = 1.0

	// MinZoomSize is the smallest selection side, in plane units, that zooms.
	MinZoomSize = 0.01

	DefaultSize = 800
)

// DefaultJulia is the initial Julia constant.
const DefaultJulia = complex(-0.4, 0.6)

// State is the viewer's current view.
type State struct {
	Mode       Mode                `json:"mode"`
	Region     fraktaly.Region     `json:"region"`
	Resolution fraktaly.Resolution `json:"resolution"`
	MaxIter    int                 `json:"max_iter"`
	JuliaRe    float64             `json:"julia_re"`
	JuliaIm    float64             `json:"julia_im"`
}

// Default returns the initial view: Mandelbrot over the classic region.
func Default() State {
	return State{
		Mode:       Mandelbrot,
		Region:     fraktaly.DefaultRegion,
		Resolution: fraktaly.Resolution{Width: DefaultSize, Height: DefaultSize},
		MaxIter:    DefaultIterations,
		JuliaRe:    real(DefaultJulia),
		JuliaIm:    imag(DefaultJulia),
	}
}

// Params converts the view into a generation request.
func (s State) Params() fraktaly.Params {
	p := fraktaly.Params{
		Region:     s.Region,
		Resolution: s.Resolution,
		MaxIter:    s.MaxIter,
	}
	if s.Mode == Julia {
		c := complex(s.JuliaRe, s.JuliaIm)
		p.Julia = &c
	}
	return p
}

// SetRegion replaces the visible region.
func (s *State) SetRegion(r fraktaly.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.Region = r
	return nil
}

// Zoom narrows the region to the rectangle spanned by two corners given in
// plane coordinates, in any order. Selections with a side not larger than
// MinZoomSize are ignored and Zoom returns false.
func (s *State) Zoom(x0, y0, x1, y1 float64) bool {
	if !(math.Abs(x1-x0) > MinZoomSize && math.Abs(y1-y0) > MinZoomSize) {
		return false
	}
	s.Region = fraktaly.Region{
		Xmin: min(x0, x1),
		Xmax: max(x0, x1),
		Ymin: min(y0, y1),
		Ymax: max(y0, y1),
	}
	return true
}

// ResetZoom restores the default region.
func (s *State) ResetZoom() {
	s.Region = fraktaly.DefaultRegion
}

// ToggleMode switches between Mandelbrot and Julia.
func (s *State) ToggleMode() {
	if s.Mode == Julia {
		s.Mode = Mandelbrot
	} else {
		s.Mode = Julia
	}
}

// SetMode selects a mode explicitly.
func (s *State) SetMode(m Mode) error {
	switch m {
	case Mandelbrot, Julia:
		s.Mode = m
		return nil
	}
	return fmt.Errorf("unknown mode %q", m)
}

// SetIterations snaps n to the iteration slider: the nearest multiple of
// IterationStep within [MinIterations, MaxIterations].
func (s *State) SetIterations(n int) {
	snapped := int(math.Round(float64(n)/IterationStep)) * IterationStep
	s.MaxIter = lo.Clamp(snapped, MinIterations, MaxIterations)
}

// SetJulia sets the Julia constant, clamping each component to [-1, 1].
func (s *State) SetJulia(re, im float64) error {
	if math.IsNaN(re) || math.IsNaN(im) {
		return &fraktaly.ParamError{Param: "julia", Value: complex(re, im), Reason: "must be finite"}
	}
	s.JuliaRe = lo.Clamp(re, MinJulia, MaxJulia)
	s.JuliaIm = lo.Clamp(im, MinJulia, MaxJulia)
	return nil
}

// SetResolution changes the output grid size.
func (s *State) SetResolution(width, height int) error {
	if width < 1 {
		return &fraktaly.ParamError{Param: "width", Value: width, Reason: "must be positive"}
	}
	if height < 1 {
		return &fraktaly.ParamError{Param: "height", Value: height, Reason: "must be positive"}
	}
	s.Resolution = fraktaly.Resolution{Width: width, Height: height}
	return nil
}

// ImageToPlane maps a position on the rendered image to the complex plane.
// x grows to the right and y downwards, both in pixels of s.Resolution; the
// bottom edge of the image is Ymin.
func (s State) ImageToPlane(x, y float64) (re, im float64) {
	r := s.Region
	re = r.Xmin + x/float64(s.Resolution.Width)*r.Width()
	im = r.Ymax - y/float64(s.Resolution.Height)*r.Height()
	return re, im
}
