package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFasterPow(t *testing.T) {
	tests := []struct {
		x, p float32
		want float64
		tol  float64
	}{
		{0.5, 2, 0.25, 0.05},
		{0.9, 8, math.Pow(0.9, 8), 0.1},
		{0.25, 0.5, 0.5, 0.05},
		{0, 10, 0, 0},
	}
	for _, tt := range tests {
		got := float64(FasterPow(tt.x, tt.p))
		if math.Abs(got-tt.want) > tt.tol {
			t.Errorf("FasterPow(%v, %v) = %v, want %v±%v", tt.x, tt.p, got, tt.want, tt.tol)
		}
	}
	if got := FasterPow2(-1000); got <= 0 || got > 1e-37 {
		t.Errorf("FasterPow2(-1000) = %v, want tiny positive", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(mgl32.Vec3{3, 0, 4})
	if math.Abs(float64(got.Len())-1) > 1e-6 {
		t.Errorf("len = %v", got.Len())
	}
	if z := Normalize(mgl32.Vec3{}); z != (mgl32.Vec3{}) {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestNormalMatrix(t *testing.T) {
	// Non-uniform scale: normals scale by the inverse.
	m := mgl32.Scale3D(2, 1, 1)
	n := TransformNormal(NormalMatrix(m), [3]float32{1, 1, 0})
	if math.Abs(float64(n[0])-0.5) > 1e-6 || math.Abs(float64(n[1])-1) > 1e-6 {
		t.Errorf("normal = %v, want (0.5, 1, 0)", n)
	}

	// Translation does not affect normals.
	n = TransformNormal(NormalMatrix(mgl32.Translate3D(5, 6, 7)), [3]float32{0, 0, -1})
	if n != [3]float32{0, 0, -1} {
		t.Errorf("translated normal = %v", n)
	}

	p, w := TransformPoint4(mgl32.Translate3D(1, 2, 3), [3]float32{1, 1, 1}, 1)
	if p != [3]float32{2, 3, 4} || w != 1 {
		t.Errorf("TransformPoint4 = %v, %v", p, w)
	}
}
