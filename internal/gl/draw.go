package gl

import (
	"encoding/binary"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/attrib"
	"pvrgl/internal/glerr"
	"pvrgl/internal/primitive"
	"pvrgl/internal/pvr"
	"pvrgl/internal/submit"
	"pvrgl/internal/transform"
	"pvrgl/internal/vertex"
)

// generateFunc fills a batch's leading vertices and extras from client
// arrays, transforming positions by m on the fast path.
type generateFunc func(out []pvr.Vertex, ex []submit.Extra, m mgl32.Mat4) error

// resolveFunc maps input vertex i of a draw to its client element index.
type resolveFunc func(i int) int

// DrawArrays draws count sequential elements starting at first.
func (c *Context) DrawArrays(mode Mode, first, count int) error {
	if first < 0 || count < 0 {
		return c.reportf(glerr.InvalidValue, "DrawArrays(%s, %d, %d)", mode, first, count)
	}
	return c.draw(mode, count,
		func(out []pvr.Vertex, ex []submit.Extra, m mgl32.Mat4) error {
			return c.gen.Arrays(out, ex, first, m)
		},
		func(i int) int { return first + i },
	)
}

// DrawElements draws count elements named by indices, a little-endian
// buffer of itype (UnsignedByte, UnsignedShort or UnsignedInt).
func (c *Context) DrawElements(mode Mode, count int, itype Type, indices []byte) error {
	switch itype {
	case UnsignedByte, UnsignedShort, UnsignedInt:
	default:
		return c.reportf(glerr.InvalidEnum, "DrawElements index type %s", itype)
	}
	if count < 0 || len(indices) < count*attrib.ByteSize(itype) {
		return c.reportf(glerr.InvalidValue, "DrawElements(%s, %d): index buffer holds %d bytes", mode, count, len(indices))
	}
	return c.draw(mode, count,
		func(out []pvr.Vertex, ex []submit.Extra, m mgl32.Mat4) error {
			return c.gen.Elements(out, ex, indices, itype, m)
		},
		func(i int) int { return vertex.Index(indices, itype, i) },
	)
}

func (c *Context) draw(mode Mode, count int, gen generateFunc, resolve resolveFunc) error {
	if mode > Polygon {
		return c.reportf(glerr.InvalidEnum, "draw mode %#x", uint32(mode))
	}
	if !c.attrs.Enabled(attrib.Position) || count == 0 {
		return nil
	}
	switch mode {
	case Lines, LineLoop, LineStrip, Points, QuadStrip:
		Logger().Warn("gl: topology skipped",
			slog.String("mode", mode.String()),
			slog.String("kind", glerr.UnsupportedOperation.String()),
		)
		return nil
	}

	mode = primitive.NormalizePolygon(mode, count)
	fast := c.attrs.RecalcFastPath()
	Logger().Debug("gl: draw",
		slog.String("mode", mode.String()),
		slog.Int("count", count),
		slog.Bool("fast", fast),
	)

	if mode == primitive.TriangleFan && count > primitive.MaxFan {
		return c.drawFanChunks(count, resolve)
	}
	return c.submit(mode, count, gen)
}

// drawFanChunks splits a fan too long for the packed primitive count into
// indexed sub-fans that share the apex. Consecutive sub-fans overlap by one
// rim vertex so no triangle is lost. A failing sub-fan rolls back the ones
// already committed.
func (c *Context) drawFanChunks(count int, resolve resolveFunc) error {
	const rim = primitive.MaxFan - 1
	list := c.activeList()
	listSize, trSize := list.Size(), c.translucent.Size()
	apex := resolve(0)
	for start := 1; start+1 < count; start += rim - 1 {
		n := min(rim, count-start)
		c.fanIdx = c.fanIdx[:0]
		c.fanIdx = binary.LittleEndian.AppendUint32(c.fanIdx, uint32(apex))
		for j := 0; j < n; j++ {
			c.fanIdx = binary.LittleEndian.AppendUint32(c.fanIdx, uint32(resolve(start+j)))
		}
		idx := c.fanIdx
		err := c.submit(primitive.TriangleFan, n+1, func(out []pvr.Vertex, ex []submit.Extra, m mgl32.Mat4) error {
			return c.gen.Elements(out, ex, idx, attrib.UnsignedInt, m)
		})
		if err != nil {
			list.Resize(listSize)
			c.translucent.Resize(trSize)
			return err
		}
	}
	return nil
}

// submit runs one batch of n input vertices through the pipeline into the
// active list. Any failure removes the batch again.
func (c *Context) submit(mode Mode, n int, gen generateFunc) error {
	total := primitive.TargetCount(mode, n)
	if total == 0 {
		return nil
	}
	generated := n
	if mode == primitive.Triangles || mode == primitive.Quads {
		generated = total
	}

	list := c.activeList()
	tg := c.target
	tg.Begin(list, total)
	fail := func(err error) error {
		tg.Abort()
		return c.report(err)
	}

	m := c.matrices.ModelViewProjection()
	if c.caps.lighting {
		m = c.matrices.ModelView()
	}

	vs, ex := tg.Vertices(), tg.ExtraSlice()
	if err := gen(vs[:generated], ex[:generated], m); err != nil {
		return fail(err)
	}
	if err := primitive.Assemble(vs, ex, mode, generated); err != nil {
		return fail(err)
	}
	if !c.attrs.FastPath() {
		transform.Vertices(vs, m)
	}

	if c.caps.lighting {
		normals := c.light.NormalBuffer(total)
		if c.attrs.Enabled(attrib.Normal) {
			transform.Normals(normals, ex, c.matrices.NormalMatrix())
		} else {
			transform.FillNormals(normals, vertex.DefaultNormal)
		}
		c.light.Perform(vs, normals)
		transform.Vertices(vs, c.matrices.Projection())
	}

	if c.caps.clipping {
		k := c.clipper.Clip(tg, c.shadeModel == Flat)
		if k == 0 {
			tg.Abort()
			return nil
		}
		tg.SetCount(k)
		vs = tg.Vertices()
	}
	c.viewport.Divide(vs)

	var hdr pvr.PolyHeader
	cxt := c.polyContext(list.Type, 0)
	c.compile(&hdr, &cxt)
	tg.SetHeader(hdr)

	if c.multitextureActive() {
		c.multitexture(tg)
	}
	Logger().Debug("gl: batch", slog.Uint64("list", uint64(list.Type)), slog.Int("vertices", tg.Count))
	return nil
}

// multitexture appends a copy of the finished batch to the translucent list
// under a header that modulates the framebuffer by the secondary texture
// where depth is equal. The copy's texture coordinates come from the
// secondary set.
func (c *Context) multitexture(tg *submit.Target) {
	cxt := c.polyContext(pvr.ListTranslucent, 1)
	cxt.Gen.Alpha = true
	cxt.Txr.Alpha = true
	cxt.Blend.Src, cxt.Blend.Dst = pvr.BlendZero, pvr.BlendDestColor
	cxt.Depth.Comparison = pvr.DepthEqual

	var hdr pvr.PolyHeader
	c.compile(&hdr, &cxt)

	out := c.translucent
	out.PushBack(hdr.AsVertex())
	start := out.PushBack(tg.Vertices()...)
	vs := out.Slice(start, tg.Count)
	for i, e := range tg.ExtraSlice() {
		vs[i].UV = e.ST
	}
}
