package scene

import (
	"fmt"

	"pvrgl/internal/gl"
)

// clientArray pairs a client array name with its pointer call.
type clientArray struct {
	name    string
	array   *Array
	def     int
	unit    gl.Enum
	client  gl.Enum
	pointer func(c *gl.Context, e encoded) error
}

func (d *Draw) arrays() []clientArray {
	return []clientArray{
		{"position", d.Position, 3, gl.Texture0, gl.VertexArray, func(c *gl.Context, e encoded) error {
			return c.VertexPointer(e.size, e.typ, 0, e.data)
		}},
		{"color", d.Color, 4, gl.Texture0, gl.ColorArray, func(c *gl.Context, e encoded) error {
			return c.ColorPointer(e.size, e.typ, 0, e.data)
		}},
		{"normal", d.Normal, 3, gl.Texture0, gl.NormalArray, func(c *gl.Context, e encoded) error {
			return c.NormalPointer(e.typ, 0, e.data)
		}},
		{"texcoord", d.TexCoord, 2, gl.Texture0, gl.TextureCoordArray, func(c *gl.Context, e encoded) error {
			return c.TexCoordPointer(e.size, e.typ, 0, e.data)
		}},
		{"texcoord2", d.TexCoord2, 2, gl.Texture1, gl.TextureCoordArray, func(c *gl.Context, e encoded) error {
			return c.TexCoordPointer(e.size, e.typ, 0, e.data)
		}},
	}
}

// apply sets up the draw's arrays and textures and issues it. A draw
// transform is applied on a pushed modelview and popped afterwards;
// enable and disable lists persist like any other state change.
func (d *Draw) apply(c *gl.Context, texs map[string]boundTexture) error {
	for _, name := range d.Enable {
		if err := c.Enable(capabilities[name]); err != nil {
			return err
		}
	}
	for _, name := range d.Disable {
		if err := c.Disable(capabilities[name]); err != nil {
			return err
		}
	}

	vertices := 0
	for _, a := range d.arrays() {
		if err := c.ClientActiveTexture(a.unit); err != nil {
			return err
		}
		if a.array == nil {
			if err := c.DisableClientState(a.client); err != nil {
				return err
			}
			continue
		}
		e, err := a.array.encode(a.def)
		if err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
		if err := a.pointer(c, e); err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
		if err := c.EnableClientState(a.client); err != nil {
			return err
		}
		if a.name == "position" {
			vertices = e.count
		}
	}
	if err := c.ClientActiveTexture(gl.Texture0); err != nil {
		return err
	}

	if err := bind(c, gl.Texture1, d.Texture2, texs); err != nil {
		return err
	}
	if err := bind(c, gl.Texture0, d.Texture, texs); err != nil {
		return err
	}

	if len(d.Transform) > 0 {
		if err := c.MatrixMode(gl.ModelView); err != nil {
			return err
		}
		if err := c.PushMatrix(); err != nil {
			return err
		}
		defer c.PopMatrix()
		if err := applyOps(c, d.Transform); err != nil {
			return fmt.Errorf("transform: %w", err)
		}
	}

	mode := modes[d.Mode]
	if d.Indices != nil {
		typ, idx, err := packIndices(d.IndexType, d.Indices)
		if err != nil {
			return err
		}
		count := d.Count
		if count == 0 {
			count = len(d.Indices)
		}
		return c.DrawElements(mode, count, typ, idx)
	}
	count := d.Count
	if count == 0 {
		count = vertices - d.First
	}
	return c.DrawArrays(mode, d.First, count)
}

// bind makes texture the one sampled by unit, or turns the unit off when
// texture is empty. Unit 0 is left active.
func bind(c *gl.Context, unit gl.Enum, texture string, texs map[string]boundTexture) error {
	if err := c.ActiveTexture(unit); err != nil {
		return err
	}
	if texture == "" {
		if err := c.Disable(gl.Texture2D); err != nil {
			return err
		}
		return c.ActiveTexture(gl.Texture0)
	}
	t := texs[texture]
	if err := c.BindTexture(gl.Texture2D, t.name); err != nil {
		return err
	}
	if err := c.TexEnv(gl.TextureEnvMode, t.env); err != nil {
		return err
	}
	if err := c.Enable(gl.Texture2D); err != nil {
		return err
	}
	return c.ActiveTexture(gl.Texture0)
}
