// Package gl is the legacy fixed-function API surface over the vertex
// pipeline. A Context owns all rendering state; draw calls convert client
// arrays into hardware vertex records and append them, under a compiled
// polygon header, to one of three command lists.
//
// A Context is not safe for concurrent use. Independent contexts share no
// state and may run on different goroutines.
package gl

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/attrib"
	"pvrgl/internal/clip"
	"pvrgl/internal/glerr"
	"pvrgl/internal/lighting"
	"pvrgl/internal/matrix"
	"pvrgl/internal/polylist"
	"pvrgl/internal/pvr"
	"pvrgl/internal/submit"
	"pvrgl/internal/texture"
	"pvrgl/internal/transform"
	"pvrgl/internal/vertex"
)

// Matrices supplies the matrices the draw path loads.
type Matrices interface {
	ModelView() mgl32.Mat4
	Projection() mgl32.Mat4
	ModelViewProjection() mgl32.Mat4
	NormalMatrix() mgl32.Mat3
}

// Clipper trims the target's clip-space vertex run and returns the new
// count.
type Clipper interface {
	Clip(t *submit.Target, flat bool) int
}

// HeaderCompiler packs render state into a polygon header.
type HeaderCompiler func(h *pvr.PolyHeader, cxt *pvr.PolyContext)

// Option configures a Context.
type Option func(*Context)

// WithClipper replaces the near-plane culler.
func WithClipper(c Clipper) Option { return func(ctx *Context) { ctx.clipper = c } }

// WithHeaderCompiler replaces the header compiler.
func WithHeaderCompiler(f HeaderCompiler) Option { return func(ctx *Context) { ctx.compile = f } }

// WithSurface sets the output surface size; the viewport starts covering it.
func WithSurface(width, height int) Option {
	return func(ctx *Context) {
		ctx.surfaceW, ctx.surfaceH = width, height
	}
}

// WithOrigin selects where device-space row 0 lies.
func WithOrigin(o transform.Origin) Option {
	return func(ctx *Context) { ctx.viewport.Origin = o }
}

// WithErrorSink sets the sink every reported error goes to in addition to
// the context's own GetError state.
func WithErrorSink(r glerr.Reporter) Option { return func(ctx *Context) { ctx.sink = r } }

type textureUnit struct {
	enabled bool
	bound   uint32
	env     Enum
}

type caps struct {
	lighting      bool
	normalize     bool
	colorMaterial bool
	depthTest     bool
	blend         bool
	alphaTest     bool
	cullFace      bool
	clipping      bool
}

// Context is one rendering context.
type Context struct {
	attrs    *attrib.State
	gen      *vertex.Generator
	light    *lighting.Engine
	mat      *matrix.Stack
	matrices Matrices
	clipper  Clipper
	compile  HeaderCompiler
	target   *submit.Target

	textures     *texture.Registry
	units        [2]textureUnit
	activeUnit   int
	clientUnit   int
	opaque       *polylist.List
	punchThrough *polylist.List
	translucent  *polylist.List

	caps       caps
	shadeModel Enum
	frontFace  Enum
	blendSrc   Enum
	blendDst   Enum
	depthFunc  Enum
	depthMask  bool
	viewport   transform.Viewport
	surfaceW   int
	surfaceH   int

	errs glerr.Sticky
	sink glerr.Reporter

	fanIdx []byte
}

// New returns a context in its initial state. The default surface is
// 640×480.
func New(opts ...Option) *Context {
	attrs := attrib.NewState()
	c := &Context{
		attrs:        attrs,
		gen:          vertex.New(attrs),
		light:        lighting.New(),
		mat:          matrix.New(),
		clipper:      &clip.NearCuller{},
		compile:      pvr.Compile,
		target:       submit.NewTarget(),
		textures:     texture.NewRegistry(),
		opaque:       polylist.New(pvr.ListOpaque),
		punchThrough: polylist.New(pvr.ListPunchThrough),
		translucent:  polylist.New(pvr.ListTranslucent),
		surfaceW:     640,
		surfaceH:     480,
	}
	c.matrices = c.mat
	for _, o := range opts {
		o(c)
	}
	c.resetState()
	return c
}

func (c *Context) resetState() {
	c.caps = caps{clipping: true}
	c.shadeModel = Smooth
	c.frontFace = CCW
	c.blendSrc, c.blendDst = One, Zero
	c.depthFunc = Less
	c.depthMask = true
	for i := range c.units {
		c.units[i] = textureUnit{env: Modulate}
	}
	c.activeUnit, c.clientUnit = 0, 0
	c.viewport = transform.Viewport{
		Width:         c.surfaceW,
		Height:        c.surfaceH,
		SurfaceHeight: c.surfaceH,
		Origin:        c.viewport.Origin,
	}
}

// Reset returns every piece of state to its initial value and empties the
// command lists. Texture objects survive.
func (c *Context) Reset() {
	c.attrs.Reset()
	c.light.Reset()
	c.mat.Reset()
	c.gen.Normalize = false
	c.resetState()
	c.ClearLists()
	c.errs.Take()
}

// report records an error for GetError and forwards it to the sink.
func (c *Context) report(err error) error {
	if err == nil {
		return nil
	}
	kind, op := glerr.InvalidOperation, err.Error()
	var e *glerr.Error
	if errors.As(err, &e) {
		kind, op = e.Kind, e.Op
	}
	c.errs.Logger = Logger()
	c.errs.Report(kind, op)
	if c.sink != nil {
		c.sink.Report(kind, op)
	}
	return err
}

func (c *Context) reportf(kind glerr.Kind, format string, args ...any) error {
	return c.report(glerr.New(kind, fmt.Sprintf(format, args...)))
}

// GetError returns and clears the first error recorded since the last call.
func (c *Context) GetError() glerr.Kind { return c.errs.Take() }

// Enable turns a capability on.
func (c *Context) Enable(e Enum) error { return c.setCap(e, true) }

// Disable turns a capability off.
func (c *Context) Disable(e Enum) error { return c.setCap(e, false) }

func (c *Context) setCap(e Enum, on bool) error {
	if e >= Light0 && e <= Light7 {
		return c.report(c.light.EnableLight(int(e-Light0), on))
	}
	switch e {
	case Lighting:
		c.caps.lighting = on
	case Normalize:
		c.caps.normalize = on
		c.gen.Normalize = on
	case ColorMaterial:
		c.caps.colorMaterial = on
		c.light.EnableColorMaterial(on)
	case DepthTest:
		c.caps.depthTest = on
	case Blend:
		c.caps.blend = on
	case AlphaTest:
		c.caps.alphaTest = on
	case CullFace:
		c.caps.cullFace = on
	case NearZClipping:
		c.caps.clipping = on
	case Texture2D:
		c.units[c.activeUnit].enabled = on
	default:
		return c.reportf(glerr.InvalidEnum, "Enable(%#x)", uint32(e))
	}
	return nil
}

// IsEnabled reports a capability.
func (c *Context) IsEnabled(e Enum) bool {
	if e >= Light0 && e <= Light7 {
		return c.light.LightEnabled(int(e - Light0))
	}
	switch e {
	case Lighting:
		return c.caps.lighting
	case Normalize:
		return c.caps.normalize
	case ColorMaterial:
		return c.caps.colorMaterial
	case DepthTest:
		return c.caps.depthTest
	case Blend:
		return c.caps.blend
	case AlphaTest:
		return c.caps.alphaTest
	case CullFace:
		return c.caps.cullFace
	case NearZClipping:
		return c.caps.clipping
	case Texture2D:
		return c.units[c.activeUnit].enabled
	}
	return false
}

// ShadeModel selects flat or smooth shading.
func (c *Context) ShadeModel(mode Enum) error {
	if mode != Flat && mode != Smooth {
		return c.reportf(glerr.InvalidEnum, "ShadeModel(%#x)", uint32(mode))
	}
	c.shadeModel = mode
	return nil
}

// FrontFace selects the winding of front-facing polygons.
func (c *Context) FrontFace(mode Enum) error {
	if mode != CW && mode != CCW {
		return c.reportf(glerr.InvalidEnum, "FrontFace(%#x)", uint32(mode))
	}
	c.frontFace = mode
	return nil
}

// BlendFunc sets the blend factors.
func (c *Context) BlendFunc(src, dst Enum) error {
	if _, ok := blendFactor(src); !ok {
		return c.reportf(glerr.InvalidEnum, "BlendFunc src %#x", uint32(src))
	}
	if _, ok := blendFactor(dst); !ok {
		return c.reportf(glerr.InvalidEnum, "BlendFunc dst %#x", uint32(dst))
	}
	c.blendSrc, c.blendDst = src, dst
	return nil
}

// DepthFunc sets the depth comparison.
func (c *Context) DepthFunc(f Enum) error {
	if _, ok := depthCompare(f); !ok {
		return c.reportf(glerr.InvalidEnum, "DepthFunc(%#x)", uint32(f))
	}
	c.depthFunc = f
	return nil
}

// DepthMask enables or disables depth writes.
func (c *Context) DepthMask(on bool) { c.depthMask = on }

// Viewport sets the rectangle normalized device coordinates map onto.
func (c *Context) Viewport(x, y, width, height int) error {
	if width < 0 || height < 0 {
		return c.reportf(glerr.InvalidValue, "Viewport(%d, %d)", width, height)
	}
	c.viewport.X, c.viewport.Y = x, y
	c.viewport.Width, c.viewport.Height = width, height
	return nil
}

// Surface returns the output surface size.
func (c *Context) Surface() (width, height int) {
	return c.surfaceW, c.surfaceH
}

// Lists returns the opaque, punch-through and translucent command lists.
func (c *Context) Lists() (opaque, punchThrough, translucent *polylist.List) {
	return c.opaque, c.punchThrough, c.translucent
}

// ClearLists empties every command list, keeping their storage.
func (c *Context) ClearLists() {
	c.opaque.Clear()
	c.punchThrough.Clear()
	c.translucent.Clear()
}

// Textures returns the context's texture objects.
func (c *Context) Textures() *texture.Registry { return c.textures }

// activeList picks the list a draw goes to from the blend and alpha-test
// state.
func (c *Context) activeList() *polylist.List {
	switch {
	case c.caps.blend:
		return c.translucent
	case c.caps.alphaTest:
		return c.punchThrough
	}
	return c.opaque
}
