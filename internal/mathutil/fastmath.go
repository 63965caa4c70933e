package mathutil

import "math"

// FastInvert returns 1/x. The hardware path uses an approximate reciprocal;
// an exact divide is well within its error bounds.
func FastInvert(x float32) float32 {
	return 1 / x
}

// FasterPow2 approximates 2^p by building the float's exponent bits
// directly. Inputs below -126 are clamped to avoid denormal garbage.
func FasterPow2(p float32) float32 {
	if p < -126 {
		p = -126
	}
	return math.Float32frombits(uint32(float32(1<<23) * (p + 126.94269504)))
}

// FasterLog2 approximates log2(x) from the float's bit pattern. x must be
// positive.
func FasterLog2(x float32) float32 {
	y := float32(math.Float32bits(x)) * 1.1920928955078125e-7
	return y - 126.94269504
}

// FasterPow approximates x^p via FasterPow2(p * FasterLog2(x)). A zero base
// yields zero.
func FasterPow(x, p float32) float32 {
	if x <= 0 {
		return 0
	}
	return FasterPow2(p * FasterLog2(x))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
