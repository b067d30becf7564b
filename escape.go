package fraktaly

// escapeRadius2 is the squared escape radius: |z| > 2 ⇔ |z|^2 > 4.
const escapeRadius2 = 4.0

// Escape runs the quadratic escape-time iteration z ← z² + c starting from z0.
// It returns the index n of the first iteration whose |z| exceeds 2, checked
// before each squaring, or maxIter if z never escapes. maxIter <= 0 returns 0.
func Escape(z0, c complex128, maxIter int) int {
	if maxIter <= 0 {
		return 0
	}
	z := z0
	for n := 0; n < maxIter; n++ {
		if abs2(z) > escapeRadius2 {
			return n
		}
		z = square(z) + c
	}
	return maxIter
}

// Mandelbrot iterates from z0 = 0 with c the plane coordinate.
func Mandelbrot(c complex128, maxIter int) int {
	return Escape(0, c, maxIter)
}

// Julia iterates from z0 = z with the fixed constant c.
func Julia(z, c complex128, maxIter int) int {
	return Escape(z, c, maxIter)
}

// The explicit float64 conversions below round every product, which keeps
// the compiler from fusing multiply-adds. Results are bit-identical on
// every architecture.

// abs2 is the squared magnitude of z.
func abs2(z complex128) float64 {
	r, i := real(z), imag(z)
	return float64(r*r) + float64(i*i)
}

// square is z² expanded as (a²-b²) + 2abi.
func square(z complex128) complex128 {
	r, i := real(z), imag(z)
	return complex(float64(r*r)-float64(i*i), float64(2*r*i))
}
