package gl

import (
	"pvrgl/internal/attrib"
	"pvrgl/internal/pvr"
)

// blendFactor maps a blend enumerant to the hardware factor. The hardware
// has one "other color" slot, so the source-color factors share it with the
// destination-color ones.
func blendFactor(f Enum) (uint32, bool) {
	switch f {
	case Zero:
		return pvr.BlendZero, true
	case One:
		return pvr.BlendOne, true
	case DstColor, SrcColor:
		return pvr.BlendDestColor, true
	case OneMinusDstColor, OneMinusSrcColor:
		return pvr.BlendInvDestColor, true
	case SrcAlpha:
		return pvr.BlendSrcAlpha, true
	case OneMinusSrcAlpha:
		return pvr.BlendInvSrcAlpha, true
	case DstAlpha:
		return pvr.BlendDestAlpha, true
	case OneMinusDstAlpha:
		return pvr.BlendInvDestAlpha, true
	}
	return 0, false
}

// depthCompare maps a depth function to the hardware comparison. The
// hardware stores 1/w, so larger values are nearer and every ordered
// comparison is reversed.
func depthCompare(f Enum) (uint32, bool) {
	switch f {
	case Never:
		return pvr.DepthNever, true
	case Less:
		return pvr.DepthGreater, true
	case Equal:
		return pvr.DepthEqual, true
	case LEqual:
		return pvr.DepthGEqual, true
	case Greater:
		return pvr.DepthLess, true
	case NotEqual:
		return pvr.DepthNotEqual, true
	case GEqual:
		return pvr.DepthLEqual, true
	case Always:
		return pvr.DepthAlways, true
	}
	return 0, false
}

func textureEnv(e Enum) uint32 {
	switch e {
	case Replace:
		return pvr.TxrEnvReplace
	case Decal:
		return pvr.TxrEnvDecal
	}
	return pvr.TxrEnvModulate
}

// polyContext builds the header state of the next batch for list from the
// current render state and the texture bound to unit.
func (c *Context) polyContext(list uint32, unit int) pvr.PolyContext {
	cxt := pvr.DefaultContext()
	cxt.ListType = list

	if c.shadeModel == Flat {
		cxt.Gen.Shading = pvr.ShadeFlat
	}
	if c.caps.cullFace {
		cxt.Gen.Culling = pvr.CullCW
		if c.frontFace == CW {
			cxt.Gen.Culling = pvr.CullCCW
		}
	}

	cxt.Depth.Comparison = pvr.DepthAlways
	if c.caps.depthTest {
		cxt.Depth.Comparison, _ = depthCompare(c.depthFunc)
	}
	cxt.Depth.Write = c.depthMask

	if c.caps.blend {
		cxt.Gen.Alpha = true
		cxt.Blend.Src, _ = blendFactor(c.blendSrc)
		cxt.Blend.Dst, _ = blendFactor(c.blendDst)
	} else {
		cxt.Blend.Src, cxt.Blend.Dst = pvr.BlendOne, pvr.BlendZero
	}
	if c.caps.alphaTest {
		cxt.Gen.Alpha = true
	}

	c.bindTexture(&cxt.Txr, unit)
	return cxt
}

// bindTexture fills t from the texture bound to unit. A unit that is off,
// unbound or holds no image leaves texturing disabled.
func (c *Context) bindTexture(t *pvr.TxrState, unit int) {
	u := &c.units[unit]
	if !u.enabled || u.bound == 0 {
		return
	}
	o := c.textures.Object(u.bound)
	if o == nil || o.Image == nil {
		return
	}
	t.Enable = true
	t.Width, t.Height = o.Width(), o.Height()
	t.Base = o.Name
	t.Alpha = o.HasAlpha()
	t.Env = textureEnv(u.env)
	t.Filter = 0
	if o.Linear {
		t.Filter = 1
	}
}

// multitextureActive reports whether a draw gets a second, modulated pass
// with the secondary texture coordinates.
func (c *Context) multitextureActive() bool {
	u := &c.units[1]
	if !u.enabled || u.bound == 0 || !c.attrs.Enabled(attrib.TexCoord1) {
		return false
	}
	return c.textures.Lookup(u.bound) != nil
}
