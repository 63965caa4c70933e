package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/gl"
	"pvrgl/internal/texture"
)

// boundTexture is a scene texture uploaded to the context.
type boundTexture struct {
	name uint32
	env  gl.Enum
}

// Apply replays the scene against c: matrices, render state, lights,
// material, texture uploads, then every draw in order. Texture files are
// resolved through res, which may be nil for untextured scenes. The first
// failing call stops the replay.
func (s *Scene) Apply(c *gl.Context, res texture.Resolver) error {
	if err := s.applyState(c); err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	texs, err := s.upload(c, res)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	for i := range s.Draws {
		if err := s.Draws[i].apply(c, texs); err != nil {
			return fmt.Errorf("scene %s: draw %d: %w", s.Name, i, err)
		}
	}
	return nil
}

func applyOps(c *gl.Context, ops []Op) error {
	for i, op := range ops {
		if err := applyOp(c, op); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}

func want(v []float32, n int, what string) error {
	if len(v) != n {
		return fmt.Errorf("%s takes %d values, got %d", what, n, len(v))
	}
	return nil
}

func applyOp(c *gl.Context, op Op) error {
	switch {
	case op.Identity:
		c.LoadIdentity()
	case op.Translate != nil:
		if err := want(op.Translate, 3, "translate"); err != nil {
			return err
		}
		c.Translate(op.Translate[0], op.Translate[1], op.Translate[2])
	case op.Scale != nil:
		if err := want(op.Scale, 3, "scale"); err != nil {
			return err
		}
		c.Scale(op.Scale[0], op.Scale[1], op.Scale[2])
	case op.Rotate != nil:
		if err := want(op.Rotate, 4, "rotate"); err != nil {
			return err
		}
		return c.Rotate(op.Rotate[0], op.Rotate[1], op.Rotate[2], op.Rotate[3])
	case op.Ortho != nil:
		if err := want(op.Ortho, 6, "ortho"); err != nil {
			return err
		}
		v := op.Ortho
		return c.Ortho(v[0], v[1], v[2], v[3], v[4], v[5])
	case op.Frustum != nil:
		if err := want(op.Frustum, 6, "frustum"); err != nil {
			return err
		}
		v := op.Frustum
		return c.Frustum(v[0], v[1], v[2], v[3], v[4], v[5])
	case op.Perspective != nil:
		if err := want(op.Perspective, 4, "perspective"); err != nil {
			return err
		}
		v := op.Perspective
		return c.Perspective(v[0], v[1], v[2], v[3])
	case op.Matrix != nil:
		if err := want(op.Matrix, 16, "matrix"); err != nil {
			return err
		}
		var m mgl32.Mat4
		copy(m[:], op.Matrix)
		c.MultMatrix(m)
	default:
		return fmt.Errorf("empty matrix op")
	}
	return nil
}

func (s *Scene) applyState(c *gl.Context) error {
	if err := c.MatrixMode(gl.Projection); err != nil {
		return err
	}
	c.LoadIdentity()
	if err := applyOps(c, s.Projection); err != nil {
		return fmt.Errorf("projection: %w", err)
	}
	if err := c.MatrixMode(gl.ModelView); err != nil {
		return err
	}
	c.LoadIdentity()
	if err := applyOps(c, s.ModelView); err != nil {
		return fmt.Errorf("modelview: %w", err)
	}

	for _, name := range s.Enable {
		if err := c.Enable(capabilities[name]); err != nil {
			return err
		}
	}
	if s.ShadeModel != "" {
		m := map[string]gl.Enum{"flat": gl.Flat, "smooth": gl.Smooth}
		v, err := lookup(m, "shade model", s.ShadeModel)
		if err != nil {
			return err
		}
		if err := c.ShadeModel(v); err != nil {
			return err
		}
	}
	if s.FrontFace != "" {
		v, err := lookup(map[string]gl.Enum{"cw": gl.CW, "ccw": gl.CCW}, "front face", s.FrontFace)
		if err != nil {
			return err
		}
		if err := c.FrontFace(v); err != nil {
			return err
		}
	}
	if s.DepthFunc != "" {
		v, err := lookup(depthFuncs, "depth func", s.DepthFunc)
		if err != nil {
			return err
		}
		if err := c.DepthFunc(v); err != nil {
			return err
		}
	}
	if s.DepthMask != nil {
		c.DepthMask(*s.DepthMask)
	}
	if len(s.Blend) > 0 {
		if len(s.Blend) != 2 {
			return fmt.Errorf("blend takes a source and a destination factor")
		}
		src, err := lookup(blendFactors, "blend factor", s.Blend[0])
		if err != nil {
			return err
		}
		dst, err := lookup(blendFactors, "blend factor", s.Blend[1])
		if err != nil {
			return err
		}
		if err := c.BlendFunc(src, dst); err != nil {
			return err
		}
	}
	if err := s.applyLighting(c); err != nil {
		return fmt.Errorf("lighting: %w", err)
	}
	return nil
}

func (s *Scene) applyLighting(c *gl.Context) error {
	if s.LightModel.Ambient != nil {
		if err := c.LightModelfv(gl.LightModelAmbient, s.LightModel.Ambient); err != nil {
			return err
		}
	}
	if lv := s.LightModel.LocalViewer; lv != nil {
		var v int32
		if *lv {
			v = 1
		}
		if err := c.LightModeli(gl.LightModelLocalViewer, v); err != nil {
			return err
		}
	}
	for _, l := range s.Lights {
		if err := l.apply(c); err != nil {
			return fmt.Errorf("light %d: %w", l.Index, err)
		}
	}
	if m := s.Material; m != nil {
		for _, p := range []struct {
			param gl.Param
			v     []float32
		}{
			{gl.Ambient, m.Ambient},
			{gl.Diffuse, m.Diffuse},
			{gl.Specular, m.Specular},
			{gl.Emission, m.Emission},
		} {
			if p.v == nil {
				continue
			}
			if err := c.Materialfv(gl.FrontAndBack, p.param, p.v); err != nil {
				return err
			}
		}
		if m.Shininess != nil {
			if err := c.Materialf(gl.FrontAndBack, gl.Shininess, *m.Shininess); err != nil {
				return err
			}
		}
	}
	if s.ColorMaterial != "" {
		mode, err := lookup(colorMaterialModes, "color material mode", s.ColorMaterial)
		if err != nil {
			return err
		}
		if err := c.ColorMaterial(gl.FrontAndBack, mode); err != nil {
			return err
		}
	}
	return nil
}

func (l *Light) apply(c *gl.Context) error {
	light := gl.Light0 + gl.Enum(l.Index)
	for _, p := range []struct {
		param gl.Param
		v     []float32
	}{
		{gl.Ambient, l.Ambient},
		{gl.Diffuse, l.Diffuse},
		{gl.Specular, l.Specular},
		{gl.Position, l.Position},
		{gl.SpotDirection, l.SpotDirection},
	} {
		if p.v == nil {
			continue
		}
		if err := c.Lightfv(light, p.param, p.v); err != nil {
			return err
		}
	}
	for _, p := range []struct {
		param gl.Param
		v     *float32
	}{
		{gl.SpotExponent, l.SpotExponent},
		{gl.SpotCutoff, l.SpotCutoff},
		{gl.ConstantAttenuation, l.Constant},
		{gl.LinearAttenuation, l.Linear},
		{gl.QuadraticAttenuation, l.Quadratic},
	} {
		if p.v == nil {
			continue
		}
		if err := c.Lightf(light, p.param, *p.v); err != nil {
			return err
		}
	}
	return nil
}

// upload decodes every scene texture and gives it a texture name. Filters
// are texture state and set here; environments are unit state and set when
// a draw binds the texture.
func (s *Scene) upload(c *gl.Context, res texture.Resolver) (map[string]boundTexture, error) {
	texs := make(map[string]boundTexture, len(s.Textures))
	if len(s.Textures) == 0 {
		return texs, nil
	}
	if res == nil {
		return nil, fmt.Errorf("scene has textures but no resolver")
	}
	if err := c.ActiveTexture(gl.Texture0); err != nil {
		return nil, err
	}
	for _, t := range s.Textures {
		filter, err := lookup(filters, "filter", t.Filter)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", t.Name, err)
		}
		env, err := lookup(envs, "texture env", t.Env)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", t.Name, err)
		}
		img, err := res.Resolve(t.File)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", t.Name, err)
		}
		name := c.GenTextures(1)[0]
		if err := c.BindTexture(gl.Texture2D, name); err != nil {
			return nil, err
		}
		if err := c.TexImage2D(img); err != nil {
			return nil, fmt.Errorf("texture %s: %w", t.Name, err)
		}
		if err := c.TexParameter(gl.Texture2D, gl.TextureMinFilter, filter); err != nil {
			return nil, err
		}
		texs[t.Name] = boundTexture{name: name, env: env}
	}
	return texs, c.BindTexture(gl.Texture2D, 0)
}
