package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/mathutil"
	"pvrgl/internal/pvr"
)

// NormalBuffer returns scratch space for n eye-space normals. The buffer
// grows on demand and is reused by later calls; its contents are only valid
// until the next call.
func (e *Engine) NormalBuffer(n int) [][3]float32 {
	if n > cap(e.normals) {
		e.normals = make([][3]float32, n, n+n/2)
	}
	return e.normals[:n]
}

// updateColorMaterial copies the vertex color into the tracked material
// colors and refreshes the products that depend on them.
func (e *Engine) updateColorMaterial(c [4]float32) {
	m := &e.material
	switch e.colorMaterialMode {
	case Ambient:
		m.Ambient = c
	case Diffuse:
		m.Diffuse = c
	case AmbientAndDiffuse:
		m.Ambient, m.Diffuse = c, c
	case Emission:
		m.Emission = c
	}
	e.precalc(e.colorMaterialMask)
}

// Perform lights every vertex of vs. Vertex positions must be in eye space
// and normals[i] must hold the eye-space normal of vs[i]. The vertex color
// is replaced by the material base color plus the saturating sum of each
// enabled light's contribution; alpha comes from the base color alone.
func (e *Engine) Perform(vs []pvr.Vertex, normals [][3]float32) {
	e.flush()

	for i := range vs {
		v := &vs[i]
		if e.colorMaterial {
			e.updateColorMaterial(v.BGRA.Floats())
		}
		v.BGRA = e.material.base

		pos := mgl32.Vec3(v.XYZ)
		view := mathutil.Normalize(pos.Mul(-1))
		n := mgl32.Vec3(normals[i])

		for li := 0; li < MaxLights; li++ {
			if e.enabled&(1<<uint(li)) == 0 {
				continue
			}
			l := &e.lights[li]
			toLight := mgl32.Vec3{l.Position[0], l.Position[1], l.Position[2]}.Sub(pos)

			if l.Directional() {
				h := mathutil.Normalize(toLight.Add(mgl32.Vec3{0, 0, 1}))
				ldir := mathutil.Normalize(toLight)
				e.accumulate(&v.BGRA, l, n.Dot(ldir), n.Dot(h), 1)
				continue
			}

			d := toLight.Len()
			att := mathutil.FastInvert(l.Constant + l.Linear*d + l.Quadratic*d*d)
			if !(att >= attenuationThreshold) {
				continue
			}
			h := mathutil.Normalize(toLight.Add(view))
			ldir := mathutil.Normalize(toLight)
			e.accumulate(&v.BGRA, l, n.Dot(ldir), n.Dot(h), att)
		}
	}
}

// accumulate adds one light's contribution to the R, G and B channels of c
// with saturation.
func (e *Engine) accumulate(c *pvr.Color, l *Light, ldotn, ndoth, att float32) {
	ldotn = mathutil.MaxZero(ldotn)
	ndoth = mathutil.MaxZero(ndoth)

	fi := float32(1)
	if exp := e.material.Exponent; exp != 0 {
		base := ndoth
		if ldotn == 0 {
			base = 0
		}
		fi = mathutil.FasterPow(base, exp)
	}

	for ch, j := range [3]int{pvr.R, pvr.G, pvr.B} {
		f := ldotn*l.diffuseMat[ch] + l.ambientMat[ch] + fi*l.specularMat[ch]
		c.AddSat(j, pvr.FloatToByte(f*att))
	}
}
