package gl

import (
	"image"
	"image/draw"

	"pvrgl/internal/glerr"
	"pvrgl/internal/texture"
)

// ActiveTexture selects the server-side texture unit that BindTexture,
// TexEnv and Enable(Texture2D) refer to.
func (c *Context) ActiveTexture(unit Enum) error {
	if unit != Texture0 && unit != Texture1 {
		return c.reportf(glerr.InvalidEnum, "ActiveTexture(%#x)", uint32(unit))
	}
	c.activeUnit = int(unit - Texture0)
	return nil
}

// GenTextures allocates n texture names.
func (c *Context) GenTextures(n int) []uint32 {
	if n < 0 {
		c.reportf(glerr.InvalidValue, "GenTextures(%d)", n)
		return nil
	}
	return c.textures.Gen(n)
}

// DeleteTextures releases names and unbinds them from every unit.
func (c *Context) DeleteTextures(names ...uint32) {
	for _, n := range names {
		for i := range c.units {
			if c.units[i].bound == n {
				c.units[i].bound = 0
			}
		}
	}
	c.textures.Delete(names...)
}

// BindTexture binds name to the active unit. Name 0 unbinds.
func (c *Context) BindTexture(target Enum, name uint32) error {
	if target != Texture2D {
		return c.reportf(glerr.InvalidEnum, "BindTexture target %#x", uint32(target))
	}
	c.textures.Object(name)
	c.units[c.activeUnit].bound = name
	return nil
}

// TexImage2D uploads img to the texture bound to the active unit. Both
// dimensions must be powers of two between 8 and 1024.
func (c *Context) TexImage2D(img image.Image) error {
	u := &c.units[c.activeUnit]
	if u.bound == 0 {
		return c.reportf(glerr.InvalidOperation, "TexImage2D: no texture bound")
	}
	b := img.Bounds()
	if _, ok := texture.SizeCode(b.Dx()); !ok {
		return c.reportf(glerr.InvalidValue, "TexImage2D: width %d", b.Dx())
	}
	if _, ok := texture.SizeCode(b.Dy()); !ok {
		return c.reportf(glerr.InvalidValue, "TexImage2D: height %d", b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	c.textures.Object(u.bound).Image = dst
	return nil
}

// TexParameter sets the filter of the texture bound to the active unit.
// The hardware has one filter for both directions; the last call wins.
func (c *Context) TexParameter(target, pname, value Enum) error {
	if target != Texture2D {
		return c.reportf(glerr.InvalidEnum, "TexParameter target %#x", uint32(target))
	}
	if pname != TextureMinFilter && pname != TextureMagFilter {
		return c.reportf(glerr.InvalidEnum, "TexParameter pname %#x", uint32(pname))
	}
	if value != Nearest && value != Linear {
		return c.reportf(glerr.InvalidEnum, "TexParameter value %#x", uint32(value))
	}
	o := c.textures.Object(c.units[c.activeUnit].bound)
	if o == nil {
		return c.reportf(glerr.InvalidOperation, "TexParameter: no texture bound")
	}
	o.Linear = value == Linear
	return nil
}

// TexEnv sets the texture environment of the active unit.
func (c *Context) TexEnv(pname, mode Enum) error {
	if pname != TextureEnvMode {
		return c.reportf(glerr.InvalidEnum, "TexEnv pname %#x", uint32(pname))
	}
	switch mode {
	case Modulate, Decal, Replace:
	default:
		return c.reportf(glerr.InvalidEnum, "TexEnv mode %#x", uint32(mode))
	}
	c.units[c.activeUnit].env = mode
	return nil
}
