package raster

import (
	"image"
	"math"

	"pvrgl/internal/pvr"
)

// punchThroughRef is the alpha below which punch-through fragments are
// discarded.
const punchThroughRef = 8

// State is the decoded polygon header of the batch being drawn plus its
// resolved texture.
type State struct {
	pvr.PolyContext
	Tex *image.NRGBA
}

func (st *State) textured() bool { return st.Txr.Enable && st.Tex != nil }

func depthPass(cmp uint32, z, stored float64) bool {
	switch cmp {
	case pvr.DepthNever:
		return false
	case pvr.DepthLess:
		return z < stored
	case pvr.DepthEqual:
		return z == stored
	case pvr.DepthLEqual:
		return z <= stored
	case pvr.DepthGreater:
		return z > stored
	case pvr.DepthNotEqual:
		return z != stored
	case pvr.DepthGEqual:
		return z >= stored
	}
	return true
}

// factor returns the blend weights of one side. "Dest color" names the
// other side's color, so as a destination factor it reads the source.
func factor(f uint32, src, dst [4]float64, srcSide bool) [4]float64 {
	other := dst
	if !srcSide {
		other = src
	}
	switch f {
	case pvr.BlendZero:
		return [4]float64{}
	case pvr.BlendDestColor:
		return other
	case pvr.BlendInvDestColor:
		return [4]float64{1 - other[0], 1 - other[1], 1 - other[2], 1 - other[3]}
	case pvr.BlendSrcAlpha:
		a := src[3]
		return [4]float64{a, a, a, a}
	case pvr.BlendInvSrcAlpha:
		a := 1 - src[3]
		return [4]float64{a, a, a, a}
	case pvr.BlendDestAlpha:
		a := dst[3]
		return [4]float64{a, a, a, a}
	case pvr.BlendInvDestAlpha:
		a := 1 - dst[3]
		return [4]float64{a, a, a, a}
	}
	return [4]float64{1, 1, 1, 1}
}

func vertexColor(v *pvr.Vertex) [4]float64 {
	c := v.BGRA
	return [4]float64{float64(c[pvr.R]), float64(c[pvr.G]), float64(c[pvr.B]), float64(c[pvr.A])}
}

// RasterizeTriangle draws one device-space triangle with Gouraud (or flat)
// color, optional texturing, depth test and, for translucent batches,
// blending. It reports false when the triangle was culled or degenerate.
//
// Flat shading takes its color from the last vertex.
func RasterizeTriangle(fb *FrameBuffer, tri [3]*pvr.Vertex, st *State) bool {
	x0, y0, z0 := float64(tri[0].XYZ[0]), float64(tri[0].XYZ[1]), float64(tri[0].XYZ[2])
	x1, y1, z1 := float64(tri[1].XYZ[0]), float64(tri[1].XYZ[1]), float64(tri[1].XYZ[2])
	x2, y2, z2 := float64(tri[2].XYZ[0]), float64(tri[2].XYZ[1]), float64(tri[2].XYZ[2])

	// Barycentric setup; det > 0 is clockwise on screen.
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return false
	}
	switch st.Gen.Culling {
	case pvr.CullCW:
		if det > 0 {
			return false
		}
	case pvr.CullCCW:
		if det < 0 {
			return false
		}
	}
	invDet := 1.0 / det

	c0, c1, c2 := vertexColor(tri[0]), vertexColor(tri[1]), vertexColor(tri[2])
	if st.Gen.Shading == pvr.ShadeFlat {
		c0, c1 = c2, c2
	}

	textured := st.textured()
	u0, v0 := float64(tri[0].UV[0]), float64(tri[0].UV[1])
	u1, v1 := float64(tri[1].UV[0]), float64(tri[1].UV[1])
	u2, v2 := float64(tri[2].UV[0]), float64(tri[2].UV[1])

	// Bounding box
	minX := max(int(math.Floor(min(x0, x1, x2))), 0)
	maxX := min(int(math.Ceil(max(x0, x1, x2))), fb.Width-1)
	minY := max(int(math.Floor(min(y0, y1, y2))), 0)
	maxY := min(int(math.Ceil(max(y0, y1, y2))), fb.Height-1)
	if minX > maxX || minY > maxY {
		return true
	}

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	translucent := st.ListType == pvr.ListTranslucent
	punch := st.ListType == pvr.ListPunchThrough

	// Pixel loop: no allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if !depthPass(st.Depth.Comparison, z, fb.ZBuf[zIdx]) {
				continue
			}

			var col [4]float64
			for k := range col {
				col[k] = w0*c0[k] + w1*c1[k] + w2*c2[k]
			}
			if textured {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0 + w1*v1 + w2*v2
				col = st.texel(col, u, v)
			}
			if !st.Gen.Alpha {
				col[3] = 255
			}
			if punch && col[3] < punchThroughRef {
				continue
			}
			if st.Depth.Write {
				fb.ZBuf[zIdx] = z
			}

			pxIdx := zIdx * 4
			if translucent {
				col = st.blend(col, fb.Color[pxIdx:pxIdx+4:pxIdx+4])
			}
			fb.Color[pxIdx] = clamp255(col[0])
			fb.Color[pxIdx+1] = clamp255(col[1])
			fb.Color[pxIdx+2] = clamp255(col[2])
			fb.Color[pxIdx+3] = clamp255(col[3])
		}
	}
	return true
}

// texel combines the interpolated color with the texture under the
// batch's texture environment.
func (st *State) texel(col [4]float64, u, v float64) [4]float64 {
	var r, g, b, a uint8
	if st.Txr.Filter == 0 {
		r, g, b, a = SampleNearest(st.Tex, u, v)
	} else {
		r, g, b, a = SampleTexture(st.Tex, u, v)
	}
	if !st.Txr.Alpha {
		a = 255
	}
	t := [4]float64{float64(r), float64(g), float64(b), float64(a)}

	switch st.Txr.Env {
	case pvr.TxrEnvReplace:
		return t
	case pvr.TxrEnvDecal:
		ta := t[3] / 255
		return [4]float64{
			t[0]*ta + col[0]*(1-ta),
			t[1]*ta + col[1]*(1-ta),
			t[2]*ta + col[2]*(1-ta),
			col[3],
		}
	case pvr.TxrEnvModulateAlpha:
		return [4]float64{t[0] * col[0] / 255, t[1] * col[1] / 255, t[2] * col[2] / 255, t[3] * col[3] / 255}
	}
	return [4]float64{t[0] * col[0] / 255, t[1] * col[1] / 255, t[2] * col[2] / 255, t[3]}
}

// blend mixes a source fragment (0..255) into the destination pixel.
func (st *State) blend(col [4]float64, dst []uint8) [4]float64 {
	var s, d [4]float64
	for k := range s {
		s[k] = col[k] / 255
		d[k] = float64(dst[k]) / 255
	}
	fs := factor(st.Blend.Src, s, d, true)
	fd := factor(st.Blend.Dst, s, d, false)
	var out [4]float64
	for k := range out {
		out[k] = (s[k]*fs[k] + d[k]*fd[k]) * 255
	}
	return out
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
