package fraktaly

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Region is a rectangular window of the complex plane.
// Xmin/Xmax bound the real axis, Ymin/Ymax the imaginary axis.
type Region struct {
	Xmin float64 `json:"xmin"`
	Xmax float64 `json:"xmax"`
	Ymin float64 `json:"ymin"`
	Ymax float64 `json:"ymax"`
}

// DefaultRegion covers the classic Mandelbrot view.
var DefaultRegion = Region{
	Xmin: -2.0,
	Xmax: 1.5,
	Ymin: -1.5,
	Ymax: 1.5,
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: 0.25,
		Xmax: 0.35,
		Ymin: -0.05,
		Ymax: 0.05,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot on the needle of the real axis
	NeedleMinibrot = Region{
		Xmin: -1.7890,
		Xmax: -1.7470,
		Ymin: -0.0210,
		Ymax: 0.0210,
	}
)

var namedRegions = map[string]Region{
	"default":         DefaultRegion,
	"seahorse":        SeahorseValley,
	"elephant":        ElephantValley,
	"spiral-minibrot": SpiralMinibrot,
	"triple-spiral":   TripleSpiral,
	"dragon":          ValleyOfTheDragon,
	"needle":          NeedleMinibrot,
}

// RegionNames returns the names accepted by RegionByName, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(namedRegions))
	for n := range namedRegions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RegionByName looks up a landmark region. Lookup is case insensitive.
func RegionByName(name string) (Region, error) {
	r, ok := namedRegions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (known: %s)", name, strings.Join(RegionNames(), ", "))
	}
	return r, nil
}

// Width is the extent of the region along the real axis.
func (r Region) Width() float64 { return r.Xmax - r.Xmin }

// Height is the extent of the region along the imaginary axis.
func (r Region) Height() float64 { return r.Ymax - r.Ymin }

// Validate reports an *ParamError if a bound is not finite or the bounds
// are not strictly ordered.
func (r Region) Validate() error {
	for _, b := range []struct {
		name string
		v    float64
	}{{"xmin", r.Xmin}, {"xmax", r.Xmax}, {"ymin", r.Ymin}, {"ymax", r.Ymax}} {
		if !finite(b.v) {
			return &ParamError{Param: b.name, Value: b.v, Reason: "must be finite"}
		}
	}
	if r.Xmin >= r.Xmax {
		return &ParamError{Param: "xmin", Value: r.Xmin, Reason: fmt.Sprintf("must be less than xmax (%g)", r.Xmax)}
	}
	if r.Ymin >= r.Ymax {
		return &ParamError{Param: "ymin", Value: r.Ymin, Reason: fmt.Sprintf("must be less than ymax (%g)", r.Ymax)}
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", r.Xmin, r.Xmax, r.Ymin, r.Ymax)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
