package gl

import (
	"pvrgl/internal/attrib"
	"pvrgl/internal/glerr"
)

// VertexPointer describes the position array. A zero stride means the
// elements are tightly packed.
func (c *Context) VertexPointer(size int, typ Type, stride int, data []byte) error {
	return c.report(c.attrs.SetPointer(attrib.Position, size, typ, stride, data))
}

// ColorPointer describes the color array. size may be 3, 4 or BGRA.
func (c *Context) ColorPointer(size int, typ Type, stride int, data []byte) error {
	return c.report(c.attrs.SetPointer(attrib.Color, size, typ, stride, data))
}

// TexCoordPointer describes the texture coordinate array of the active
// client texture unit.
func (c *Context) TexCoordPointer(size int, typ Type, stride int, data []byte) error {
	return c.report(c.attrs.SetPointer(c.texCoordAttrib(), size, typ, stride, data))
}

// NormalPointer describes the normal array.
func (c *Context) NormalPointer(typ Type, stride int, data []byte) error {
	return c.report(c.attrs.SetNormalPointer(typ, stride, data))
}

func (c *Context) texCoordAttrib() attrib.Attribute {
	if c.clientUnit == 1 {
		return attrib.TexCoord1
	}
	return attrib.TexCoord0
}

func (c *Context) clientAttrib(array Enum) (attrib.Attribute, bool) {
	switch array {
	case VertexArray:
		return attrib.Position, true
	case ColorArray:
		return attrib.Color, true
	case NormalArray:
		return attrib.Normal, true
	case TextureCoordArray:
		return c.texCoordAttrib(), true
	}
	return 0, false
}

// EnableClientState turns on a client array.
func (c *Context) EnableClientState(array Enum) error {
	a, ok := c.clientAttrib(array)
	if !ok {
		return c.reportf(glerr.InvalidEnum, "EnableClientState(%#x)", uint32(array))
	}
	c.attrs.Enable(a)
	return nil
}

// DisableClientState turns off a client array.
func (c *Context) DisableClientState(array Enum) error {
	a, ok := c.clientAttrib(array)
	if !ok {
		return c.reportf(glerr.InvalidEnum, "DisableClientState(%#x)", uint32(array))
	}
	c.attrs.Disable(a)
	return nil
}

// ClientActiveTexture selects which texture coordinate set
// TexCoordPointer and the TextureCoordArray client state refer to.
func (c *Context) ClientActiveTexture(unit Enum) error {
	if unit != Texture0 && unit != Texture1 {
		return c.reportf(glerr.InvalidEnum, "ClientActiveTexture(%#x)", uint32(unit))
	}
	c.clientUnit = int(unit - Texture0)
	return nil
}
