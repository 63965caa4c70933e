package mathutil

import "github.com/go-gl/mathgl/mgl32"

// NormalMatrix returns the inverse-transpose of the upper 3×3 of m, the
// matrix that carries normals into the same space as positions under m.
// A singular m yields the plain upper 3×3.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	m3 := m.Mat3()
	if m3.Det() == 0 {
		return m3
	}
	return m3.Inv().Transpose()
}

// TransformNormal applies a normal matrix to n.
func TransformNormal(m mgl32.Mat3, n [3]float32) [3]float32 {
	return [3]float32(m.Mul3x1(mgl32.Vec3(n)))
}

// TransformPoint4 applies m to the homogeneous point (p, w).
func TransformPoint4(m mgl32.Mat4, p [3]float32, w float32) ([3]float32, float32) {
	r := m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], w})
	return [3]float32{r[0], r[1], r[2]}, r[3]
}
