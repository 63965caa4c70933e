package gl

import (
	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/glerr"
	"pvrgl/internal/matrix"
)

// MatrixMode selects the stack later matrix calls operate on.
func (c *Context) MatrixMode(m matrix.Mode) error { return c.report(c.mat.SetMode(m)) }

// PushMatrix duplicates the top of the current stack.
func (c *Context) PushMatrix() error { return c.report(c.mat.Push()) }

// PopMatrix discards the top of the current stack.
func (c *Context) PopMatrix() error { return c.report(c.mat.Pop()) }

// LoadIdentity replaces the current matrix with the identity.
func (c *Context) LoadIdentity() { c.mat.LoadIdentity() }

// LoadMatrix replaces the current matrix with m, given in column-major order.
func (c *Context) LoadMatrix(m mgl32.Mat4) { c.mat.Load(m) }

// MultMatrix post-multiplies the current matrix by m.
func (c *Context) MultMatrix(m mgl32.Mat4) { c.mat.Mult(m) }

// Translate post-multiplies the current matrix by a translation.
func (c *Context) Translate(x, y, z float32) { c.mat.Translate(x, y, z) }

// Scale post-multiplies the current matrix by a scale.
func (c *Context) Scale(x, y, z float32) { c.mat.Scale(x, y, z) }

// Rotate post-multiplies the current matrix by a rotation of angle degrees
// about (x, y, z).
func (c *Context) Rotate(angle, x, y, z float32) error {
	if x == 0 && y == 0 && z == 0 {
		return c.reportf(glerr.InvalidValue, "Rotate: zero axis")
	}
	c.mat.Rotate(angle, x, y, z)
	return nil
}

// Ortho post-multiplies the current matrix by a parallel projection.
func (c *Context) Ortho(left, right, bottom, top, near, far float32) error {
	if left == right || bottom == top || near == far {
		return c.reportf(glerr.InvalidValue, "Ortho: empty volume")
	}
	c.mat.Ortho(left, right, bottom, top, near, far)
	return nil
}

// Frustum post-multiplies the current matrix by a perspective projection.
func (c *Context) Frustum(left, right, bottom, top, near, far float32) error {
	if near <= 0 || far <= 0 || left == right || bottom == top || near == far {
		return c.reportf(glerr.InvalidValue, "Frustum: bad volume")
	}
	c.mat.Frustum(left, right, bottom, top, near, far)
	return nil
}

// Perspective post-multiplies the current matrix by a symmetric
// perspective projection with a vertical field of view of fovy degrees.
func (c *Context) Perspective(fovy, aspect, near, far float32) error {
	if near <= 0 || far <= near || aspect == 0 {
		return c.reportf(glerr.InvalidValue, "Perspective: bad volume")
	}
	c.mat.Perspective(fovy, aspect, near, far)
	return nil
}

// Matrix returns the top of the stack for mode.
func (c *Context) Matrix(mode matrix.Mode) mgl32.Mat4 {
	switch mode {
	case matrix.ModelView, matrix.Projection, matrix.Texture:
		return c.mat.Top(mode)
	}
	return mgl32.Ident4()
}
