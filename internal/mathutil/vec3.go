package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Normalize returns v scaled to unit length. Degenerate vectors come back
// unchanged rather than as NaNs.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l2 := v.Dot(v)
	if l2 < 1e-24 {
		return v
	}
	inv := float32(1 / math.Sqrt(float64(l2)))
	return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// MaxZero clamps negative dot products to zero.
func MaxZero(f float32) float32 {
	if f < 0 {
		return 0
	}
	return f
}
