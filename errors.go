package fraktaly

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched (via errors.Is) by every parameter
// validation failure of Generate and its wrappers.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError identifies which generation parameter failed its constraint.
type ParamError struct {
	Param  string // width, height, max_iter, xmin, ymin, xmax, ymax, julia
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Param, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidParameter) hold for any *ParamError.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}
