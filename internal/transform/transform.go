// Package transform moves vertex runs between coordinate spaces: object to
// eye or clip space by matrix, normals to eye space, and clip space to
// device space by the perspective divide.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/mathutil"
	"pvrgl/internal/pvr"
	"pvrgl/internal/submit"
)

// Vertices replaces each (XYZ, W) with m·(XYZ, W).
func Vertices(vs []pvr.Vertex, m mgl32.Mat4) {
	for i := range vs {
		v := &vs[i]
		v.XYZ, v.W = mathutil.TransformPoint4(m, v.XYZ, v.W)
	}
}

// Normals writes nm·N for every extra into dst. The vertex run is not
// touched.
func Normals(dst [][3]float32, ex []submit.Extra, nm mgl32.Mat3) {
	for i := range ex {
		dst[i] = mathutil.TransformNormal(nm, ex[i].N)
	}
}

// FillNormals sets every entry of dst to n.
func FillNormals(dst [][3]float32, n [3]float32) {
	for i := range dst {
		dst[i] = n
	}
}

// Origin selects where device-space y = 0 lies on the output surface.
type Origin int

const (
	// OriginTopLeft flips y so that row 0 is the top of the surface.
	OriginTopLeft Origin = iota
	OriginBottomLeft
)

// Viewport maps normalized device coordinates onto the output surface.
type Viewport struct {
	X, Y, Width, Height int
	// SurfaceHeight is the height of the whole render target, used for the
	// top-left flip.
	SurfaceHeight int
	Origin        Origin
}

// Divide converts clip-space vertices to device space: x and y are scaled
// onto the viewport and z is mapped so that nearer is larger and never
// reaches zero.
func (vp Viewport) Divide(vs []pvr.Vertex) {
	hw := float32(vp.Width) * 0.5
	hh := float32(vp.Height) * 0.5
	xoff := float32(vp.X) + hw
	yoff := float32(vp.Y) + hh
	h := float32(vp.SurfaceHeight)

	for i := range vs {
		v := &vs[i]
		f := mathutil.FastInvert(v.W)

		v.XYZ[0] = hw*(v.XYZ[0]*f) + xoff
		y := hh*(v.XYZ[1]*f) + yoff
		if vp.Origin == OriginTopLeft {
			y = h - y
		}
		v.XYZ[1] = y

		z := 1 - (v.XYZ[2]*f*0.5 + 0.5)
		if z < pvr.MinZ {
			z = pvr.MinZ
		}
		v.XYZ[2] = z
	}
}
