package pvr

import "math/bits"

// Polygon list types.
const (
	ListOpaque uint32 = iota
	ListOpaqueMod
	ListTranslucent
	ListTranslucentMod
	ListPunchThrough
)

// Blend factors.
const (
	BlendZero uint32 = iota
	BlendOne
	BlendDestColor
	BlendInvDestColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDestAlpha
	BlendInvDestAlpha
)

// Depth comparisons.
const (
	DepthNever uint32 = iota
	DepthLess
	DepthEqual
	DepthLEqual
	DepthGreater
	DepthNotEqual
	DepthGEqual
	DepthAlways
)

// Shading modes.
const (
	ShadeFlat uint32 = iota
	ShadeGouraud
)

// Culling modes.
const (
	CullNone uint32 = iota
	CullSmall
	CullCCW
	CullCW
)

// Texture environments.
const (
	TxrEnvReplace uint32 = iota
	TxrEnvModulate
	TxrEnvDecal
	TxrEnvModulateAlpha
)

// PolyHeader is the 32-byte polygon header that precedes a vertex run in a
// command list.
type PolyHeader struct {
	Cmd   uint32
	Mode1 uint32
	Mode2 uint32
	Mode3 uint32
	D1    uint32
	D2    uint32
	D3    uint32
	D4    uint32
}

// AsVertex reinterprets the header as a command-list record.
func (h PolyHeader) AsVertex() Vertex {
	return fromWords([8]uint32{h.Cmd, h.Mode1, h.Mode2, h.Mode3, h.D1, h.D2, h.D3, h.D4})
}

// HeaderFromVertex reinterprets a command-list record as a header.
func HeaderFromVertex(v *Vertex) PolyHeader {
	w := v.words()
	return PolyHeader{w[0], w[1], w[2], w[3], w[4], w[5], w[6], w[7]}
}

// IsHeader reports whether a command-list record holds a polygon header.
func IsHeader(v *Vertex) bool {
	return v.Flags&0xe0000000 == 0x80000000
}

type GenState struct {
	Alpha      bool
	Shading    uint32
	Culling    uint32
	ColorClamp bool
	ClipMode   uint32
	FogType    uint32
}

type BlendState struct {
	Src       uint32
	Dst       uint32
	SrcEnable bool
	DstEnable bool
}

type DepthState struct {
	Comparison uint32
	Write      bool
}

// TxrState describes the bound texture. Base carries the texture name; the
// preview rasterizer resolves it back to an image.
type TxrState struct {
	Enable bool
	Filter uint32
	Mipmap bool
	Alpha  bool
	Env    uint32
	Width  int
	Height int
	Format uint32
	Base   uint32
}

// PolyContext is the render state a header is compiled from.
type PolyContext struct {
	ListType uint32
	Gen      GenState
	Blend    BlendState
	Depth    DepthState
	Txr      TxrState
}

// DefaultContext returns the state of a freshly initialized opaque context.
func DefaultContext() PolyContext {
	return PolyContext{
		ListType: ListOpaque,
		Gen: GenState{
			Shading:    ShadeGouraud,
			Culling:    CullNone,
			ColorClamp: true,
		},
		Blend: BlendState{
			Src: BlendOne,
			Dst: BlendZero,
		},
		Depth: DepthState{
			Comparison: DepthGEqual,
			Write:      true,
		},
		Txr: TxrState{Env: TxrEnvModulate},
	}
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// sizeCode encodes a power-of-two texture size as log2(size)-3.
func sizeCode(n int) uint32 {
	if n < 8 {
		return 0
	}
	return uint32(bits.Len(uint(n))-1-3) & 7
}

// Compile packs cxt into hdr.
func Compile(hdr *PolyHeader, cxt *PolyContext) {
	hdr.Cmd = CmdPolyHeader |
		(cxt.ListType&7)<<24 |
		(cxt.Gen.ClipMode&3)<<16 |
		b2u(cxt.Txr.Enable)<<3 |
		(cxt.Gen.Shading&1)<<1

	hdr.Mode1 = (cxt.Depth.Comparison&7)<<29 |
		(cxt.Gen.Culling&3)<<27 |
		b2u(!cxt.Depth.Write)<<26 |
		b2u(cxt.Txr.Enable)<<25

	hdr.Mode2 = (cxt.Blend.Src&7)<<29 |
		(cxt.Blend.Dst&7)<<26 |
		b2u(cxt.Blend.SrcEnable)<<25 |
		b2u(cxt.Blend.DstEnable)<<24 |
		(cxt.Gen.FogType&3)<<22 |
		b2u(cxt.Gen.ColorClamp)<<21 |
		b2u(cxt.Gen.Alpha)<<20

	hdr.Mode3 = 0
	if cxt.Txr.Enable {
		hdr.Mode2 |= b2u(!cxt.Txr.Alpha)<<19 |
			(cxt.Txr.Filter&3)<<13 |
			(cxt.Txr.Env&3)<<6 |
			sizeCode(cxt.Txr.Width)<<3 |
			sizeCode(cxt.Txr.Height)
		hdr.Mode3 = b2u(cxt.Txr.Mipmap)<<31 |
			(cxt.Txr.Format&0x1f)<<26 |
			cxt.Txr.Base&0x1fffff
	}

	hdr.D1, hdr.D2, hdr.D3, hdr.D4 = 0xffffffff, 0xffffffff, 0, 0
}

// Decode recovers the fields of a compiled header that a consumer of the
// command list needs to draw it.
func (h PolyHeader) Decode() PolyContext {
	var c PolyContext
	c.ListType = (h.Cmd >> 24) & 7
	c.Gen.ClipMode = (h.Cmd >> 16) & 3
	c.Gen.Shading = (h.Cmd >> 1) & 1
	c.Depth.Comparison = (h.Mode1 >> 29) & 7
	c.Gen.Culling = (h.Mode1 >> 27) & 3
	c.Depth.Write = (h.Mode1>>26)&1 == 0
	c.Blend.Src = (h.Mode2 >> 29) & 7
	c.Blend.Dst = (h.Mode2 >> 26) & 7
	c.Blend.SrcEnable = (h.Mode2>>25)&1 == 1
	c.Blend.DstEnable = (h.Mode2>>24)&1 == 1
	c.Gen.FogType = (h.Mode2 >> 22) & 3
	c.Gen.ColorClamp = (h.Mode2>>21)&1 == 1
	c.Gen.Alpha = (h.Mode2>>20)&1 == 1
	c.Txr.Enable = (h.Cmd>>3)&1 == 1
	if c.Txr.Enable {
		c.Txr.Alpha = (h.Mode2>>19)&1 == 0
		c.Txr.Filter = (h.Mode2 >> 13) & 3
		c.Txr.Env = (h.Mode2 >> 6) & 3
		c.Txr.Width = 8 << ((h.Mode2 >> 3) & 7)
		c.Txr.Height = 8 << (h.Mode2 & 7)
		c.Txr.Mipmap = h.Mode3>>31 == 1
		c.Txr.Format = (h.Mode3 >> 26) & 0x1f
		c.Txr.Base = h.Mode3 & 0x1fffff
	}
	return c
}
