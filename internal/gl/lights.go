package gl

import (
	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/glerr"
)

func lightIndex(light Enum) int {
	if light < Light0 || light > Light7 {
		return -1
	}
	return int(light - Light0)
}

// Lightfv sets a vector parameter of light. Positions are carried into eye
// space by the current modelview; a w of 0 leaves only the rotation.
func (c *Context) Lightfv(light Enum, p Param, v []float32) error {
	i := lightIndex(light)
	if i < 0 {
		return c.reportf(glerr.InvalidEnum, "Lightfv light %#x", uint32(light))
	}
	if p == Position && len(v) >= 4 {
		eye := c.matrices.ModelView().Mul4x1(mgl32.Vec4{v[0], v[1], v[2], v[3]})
		v = eye[:]
	}
	return c.report(c.light.SetLightfv(i, p, v))
}

// Lightf sets a scalar parameter of light.
func (c *Context) Lightf(light Enum, p Param, v float32) error {
	i := lightIndex(light)
	if i < 0 {
		return c.reportf(glerr.InvalidEnum, "Lightf light %#x", uint32(light))
	}
	return c.report(c.light.SetLightf(i, p, v))
}

// Materialfv sets a material color or the shininess.
func (c *Context) Materialfv(face Face, p Param, v []float32) error {
	return c.report(c.light.SetMaterialfv(face, p, v))
}

// Materialf sets the shininess.
func (c *Context) Materialf(face Face, p Param, v float32) error {
	return c.report(c.light.SetMaterialf(face, p, v))
}

// LightModelfv sets the scene ambient color or the local viewer flag.
func (c *Context) LightModelfv(p Param, v []float32) error {
	return c.report(c.light.SetLightModelfv(p, v))
}

// LightModeli sets an integer light model parameter.
func (c *Context) LightModeli(p Param, v int32) error {
	return c.report(c.light.SetLightModeli(p, v))
}

// ColorMaterial selects which material colors track the vertex color while
// ColorMaterial is enabled.
func (c *Context) ColorMaterial(face Face, mode Param) error {
	return c.report(c.light.SetColorMaterial(face, mode))
}
