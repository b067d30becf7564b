package view

import (
	"fmt"

	"github.com/marben/fraktaly"
)

// Op names a view command.
type Op string

const (
	OpRender        Op = "render"
	OpSetRegion     Op = "set_region"
	OpZoom          Op = "zoom"
	OpToggleMode    Op = "toggle_mode"
	OpSetMode       Op = "set_mode"
	OpResetZoom     Op = "reset_zoom"
	OpSetIterations Op = "set_iterations"
	OpSetJulia      Op = "set_julia"
	OpSetResolution Op = "set_resolution"
)

// Command is a single user action as sent by clients. Only the fields of
// its Op are read.
type Command struct {
	Op Op `json:"op"`

	// set_region
	Region *fraktaly.Region `json:"region,omitempty"`

	// zoom: two corners of the selection in plane coordinates
	X0 float64 `json:"x0,omitempty"`
	Y0 float64 `json:"y0,omitempty"`
	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`

	// set_mode
	Mode Mode `json:"mode,omitempty"`

	// set_iterations
	Iterations int `json:"iterations,omitempty"`

	// set_julia
	Re float64 `json:"re,omitempty"`
	Im float64 `json:"im,omitempty"`

	// set_resolution
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Apply executes cmd on s. changed reports whether the view differs
// afterwards; render always reports true so the caller redraws.
func (s *State) Apply(cmd Command) (changed bool, err error) {
	before := *s

	switch cmd.Op {
	case OpRender:
		return true, nil
	case OpSetRegion:
		if cmd.Region == nil {
			return false, fmt.Errorf("%s: missing region", cmd.Op)
		}
		err = s.SetRegion(*cmd.Region)
	case OpZoom:
		s.Zoom(cmd.X0, cmd.Y0, cmd.X1, cmd.Y1)
	case OpToggleMode:
		s.ToggleMode()
	case OpSetMode:
		err = s.SetMode(cmd.Mode)
	case OpResetZoom:
		s.ResetZoom()
	case OpSetIterations:
		s.SetIterations(cmd.Iterations)
	case OpSetJulia:
		err = s.SetJulia(cmd.Re, cmd.Im)
	case OpSetResolution:
		err = s.SetResolution(cmd.Width, cmd.Height)
	default:
		return false, fmt.Errorf("unknown op %q", cmd.Op)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", cmd.Op, err)
	}
	return *s != before, nil
}
