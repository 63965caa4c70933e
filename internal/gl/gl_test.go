package gl

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"

	"pvrgl/internal/glerr"
	"pvrgl/internal/pvr"
)

func floats(v ...float32) []byte {
	b := make([]byte, 0, len(v)*4)
	for _, f := range v {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// triangle is a small triangle with vertex 0 at the eye-space origin.
var triangle = floats(
	0, 0, 0,
	0.5, 0, 0,
	0, 0.5, 0,
)

func newLitContext(t *testing.T) *Context {
	t.Helper()
	c := New()
	must(t, c.Enable(Lighting))
	must(t, c.Enable(Light0))
	must(t, c.VertexPointer(3, Float, 0, triangle))
	must(t, c.EnableClientState(VertexArray))
	return c
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// batch returns the header and vertices of the only batch in l.
func batch(t *testing.T, recs []pvr.Vertex) (pvr.PolyContext, []pvr.Vertex) {
	t.Helper()
	if len(recs) == 0 || !pvr.IsHeader(&recs[0]) {
		t.Fatalf("list does not start with a header: %d records", len(recs))
	}
	return pvr.HeaderFromVertex(&recs[0]).Decode(), recs[1:]
}

func TestDirectionalLightEndToEnd(t *testing.T) {
	c := newLitContext(t)
	must(t, c.NormalPointer(Float, 0, floats(0, 0, 1, 0, 0, 1, 0, 0, 1)))
	must(t, c.EnableClientState(NormalArray))
	must(t, c.DrawArrays(Triangles, 0, 3))

	opaque, _, _ := c.Lists()
	_, vs := batch(t, opaque.Records())
	if len(vs) != 3 {
		t.Fatalf("got %d vertices", len(vs))
	}
	// ambient 0.2*0.2 plus diffuse 0.8 with the light straight overhead
	if want := pvr.RGBA(214, 214, 214, 255); vs[0].BGRA != want {
		t.Errorf("apex color = %v, want %v", vs[0].BGRA, want)
	}
	if !vs[2].EndOfStrip() || vs[0].EndOfStrip() {
		t.Errorf("end-of-strip flags wrong: %#x %#x", vs[0].Flags, vs[2].Flags)
	}
	if k := c.GetError(); k != glerr.NoError {
		t.Errorf("GetError = %v", k)
	}
}

func TestDisabledNormalArrayUsesDefault(t *testing.T) {
	c := newLitContext(t)
	// Stale normals facing the light; the array is never enabled.
	must(t, c.NormalPointer(Float, 0, floats(0, 0, 1, 0, 0, 1, 0, 0, 1)))
	must(t, c.DrawArrays(Triangles, 0, 3))

	opaque, _, _ := c.Lists()
	_, vs := batch(t, opaque.Records())
	if want := pvr.RGBA(10, 10, 10, 255); vs[0].BGRA != want {
		t.Errorf("apex color = %v, want base color %v", vs[0].BGRA, want)
	}
}

func TestTwoLightsSaturate(t *testing.T) {
	c := newLitContext(t)
	must(t, c.NormalPointer(Float, 0, floats(0, 0, 1, 0, 0, 1, 0, 0, 1)))
	must(t, c.EnableClientState(NormalArray))
	must(t, c.Enable(Light0+1))
	d := float32(200) / 255 / 0.8
	for _, l := range []Enum{Light0, Light0 + 1} {
		must(t, c.Lightfv(l, Diffuse, []float32{d, d, d, 1}))
	}
	must(t, c.LightModelfv(LightModelAmbient, []float32{0, 0, 0, 1}))
	must(t, c.DrawArrays(Triangles, 0, 3))

	opaque, _, _ := c.Lists()
	_, vs := batch(t, opaque.Records())
	for _, ch := range []int{pvr.R, pvr.G, pvr.B} {
		if vs[0].BGRA[ch] != 255 {
			t.Errorf("channel %d = %d, want 255", ch, vs[0].BGRA[ch])
		}
	}
}

func TestFarPointLightContributesNothing(t *testing.T) {
	c := newLitContext(t)
	must(t, c.NormalPointer(Float, 0, floats(0, 0, 1, 0, 0, 1, 0, 0, 1)))
	must(t, c.EnableClientState(NormalArray))
	must(t, c.LightModelfv(LightModelAmbient, []float32{0, 0, 0, 1}))
	must(t, c.Lightfv(Light0, Position, []float32{0, 0, 1000, 1}))
	must(t, c.Lightf(Light0, LinearAttenuation, 1))
	must(t, c.DrawArrays(Triangles, 0, 3))

	opaque, _, _ := c.Lists()
	_, vs := batch(t, opaque.Records())
	for i, v := range vs {
		if v.BGRA[pvr.R] != 0 || v.BGRA[pvr.G] != 0 || v.BGRA[pvr.B] != 0 {
			t.Errorf("vertex %d lit by far light: %v", i, v.BGRA)
		}
	}
}

func TestLightPositionFollowsModelView(t *testing.T) {
	c := New()
	must(t, c.MatrixMode(ModelView))
	must(t, c.Rotate(90, 0, 1, 0))
	c.Translate(0, 0, 5)
	must(t, c.Lightfv(Light0, Position, []float32{0, 0, 1, 0}))

	p := c.light.Light(0).Position
	if math.Abs(float64(p[0]-1)) > 1e-5 || math.Abs(float64(p[2])) > 1e-5 || p[3] != 0 {
		t.Errorf("directional light position = %v, want (1, 0, 0, 0)", p)
	}
}

func TestMultitextureDuplicatesIntoTranslucentList(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, triangle))
	must(t, c.EnableClientState(VertexArray))

	must(t, c.ActiveTexture(Texture1))
	names := c.GenTextures(1)
	must(t, c.BindTexture(Texture2D, names[0]))
	must(t, c.TexImage2D(image.NewNRGBA(image.Rect(0, 0, 8, 8))))
	must(t, c.Enable(Texture2D))

	must(t, c.ClientActiveTexture(Texture1))
	must(t, c.TexCoordPointer(2, Float, 0, floats(0.25, 0.5, 0.75, 0.5, 0.25, 1)))
	must(t, c.EnableClientState(TextureCoordArray))

	must(t, c.DrawArrays(Triangles, 0, 3))

	opaque, _, translucent := c.Lists()
	base, bvs := batch(t, opaque.Records())
	if base.Txr.Enable {
		t.Errorf("base pass textured although unit 0 is off")
	}
	hdr, vs := batch(t, translucent.Records())
	if len(vs) != len(bvs) {
		t.Fatalf("copy has %d vertices, base has %d", len(vs), len(bvs))
	}
	if hdr.Depth.Comparison != pvr.DepthEqual {
		t.Errorf("depth = %d, want equal", hdr.Depth.Comparison)
	}
	if hdr.Blend.Src != pvr.BlendZero || hdr.Blend.Dst != pvr.BlendDestColor {
		t.Errorf("blend = %d/%d, want zero/dest color", hdr.Blend.Src, hdr.Blend.Dst)
	}
	if !hdr.Txr.Enable || hdr.Txr.Base != names[0] {
		t.Errorf("second pass texture = %+v", hdr.Txr)
	}
	if vs[1].UV != [2]float32{0.75, 0.5} {
		t.Errorf("copy UV = %v, want secondary coordinates", vs[1].UV)
	}
	if vs[1].XYZ != bvs[1].XYZ {
		t.Errorf("copy position %v differs from base %v", vs[1].XYZ, bvs[1].XYZ)
	}
}

func TestUnsupportedTopologySkipped(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, triangle))
	must(t, c.EnableClientState(VertexArray))

	for _, m := range []Mode{Lines, LineStrip, LineLoop} {
		if err := c.DrawArrays(m, 0, 2); err != nil {
			t.Errorf("%s: err = %v", m, err)
		}
		if k := c.GetError(); k != glerr.NoError {
			t.Errorf("%s: GetError = %v, want no error", m, k)
		}
	}
	opaque, pt, tr := c.Lists()
	if opaque.Size()+pt.Size()+tr.Size() != 0 {
		t.Errorf("lines produced records")
	}
}

func TestFailedLongFanRollsBack(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, circle(280)))
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawArrays(Triangles, 0, 3))
	opaque, _, _ := c.Lists()
	before := opaque.Size()

	err := c.DrawArrays(TriangleFan, 0, 300)
	if !errors.Is(err, glerr.InvalidValue) {
		t.Fatalf("err = %v, want InvalidValue", err)
	}
	if opaque.Size() != before {
		t.Errorf("list holds %d records after a failed fan, want %d", opaque.Size(), before)
	}
}

func TestResetRestoresViewport(t *testing.T) {
	c := New(WithSurface(64, 32))
	must(t, c.Viewport(8, 8, 16, 16))
	c.Reset()
	must(t, c.VertexPointer(3, Float, 0, floats(1, 1, 0, -1, 1, 0, 1, -1, 0)))
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawArrays(Triangles, 0, 3))

	opaque, _, _ := c.Lists()
	_, vs := batch(t, opaque.Records())
	if x := vs[0].XYZ[0]; x != 64 {
		t.Errorf("x = %v after reset, want the full 64-wide surface edge", x)
	}
	if w, h := c.Surface(); w != 64 || h != 32 {
		t.Errorf("Surface = %dx%d", w, h)
	}
}

func TestNoOpDraws(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, triangle))
	must(t, c.DrawArrays(Triangles, 0, 3)) // position array disabled
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawArrays(Triangles, 0, 0))
	must(t, c.DrawArrays(Triangles, 0, 2)) // incomplete triangle
	if opaque, _, _ := c.Lists(); opaque.Size() != 0 {
		t.Errorf("no-op draws produced %d records", opaque.Size())
	}
}

func circle(n int) []byte {
	v := make([]float32, 0, n*3)
	v = append(v, 0, 0, 0)
	for i := 1; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		v = append(v, float32(math.Cos(a))*0.5, float32(math.Sin(a))*0.5, 0)
	}
	return floats(v...)
}

func TestLongFanIsChunked(t *testing.T) {
	const n = 300
	c := New()
	must(t, c.VertexPointer(3, Float, 0, circle(n)))
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawArrays(TriangleFan, 0, n))

	opaque, _, _ := c.Lists()
	recs := opaque.Records()
	headers, tris := 0, 0
	apex := recs[1].XYZ
	for i := range recs {
		switch {
		case pvr.IsHeader(&recs[i]):
			headers++
		case recs[i].EndOfStrip():
			tris++
			if recs[i-2].XYZ != apex {
				t.Fatalf("triangle ending at %d does not start at the apex", i)
			}
		}
	}
	if headers != 2 {
		t.Errorf("headers = %d, want 2", headers)
	}
	if tris != n-2 {
		t.Errorf("triangles = %d, want %d", tris, n-2)
	}
	if want := headers + 3*(n-2); len(recs) != want {
		t.Errorf("records = %d, want %d", len(recs), want)
	}
}

func TestDrawElementsFan(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, circle(6)))
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawElements(TriangleFan, 5, UnsignedShort, []byte{0, 0, 2, 0, 3, 0, 4, 0, 5, 0}))

	opaque, _, _ := c.Lists()
	_, vs := batch(t, opaque.Records())
	if len(vs) != 9 {
		t.Fatalf("got %d vertices, want 9", len(vs))
	}
	if vs[3].XYZ != vs[0].XYZ || vs[6].XYZ != vs[0].XYZ {
		t.Errorf("fan triangles do not share the apex")
	}
}

func TestQuadsAndPolygons(t *testing.T) {
	quad := floats(
		-1, -1, 0,
		1, -1, 0,
		1, 1, 0,
		-1, 1, 0,
	)
	tests := []struct {
		name  string
		mode  Mode
		count int
		want  int
	}{
		{"quads", Quads, 4, 4},
		{"polygon triangle", Polygon, 3, 3},
		{"polygon quad", Polygon, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			must(t, c.VertexPointer(3, Float, 0, quad))
			must(t, c.EnableClientState(VertexArray))
			must(t, c.DrawArrays(tt.mode, 0, tt.count))
			opaque, _, _ := c.Lists()
			_, vs := batch(t, opaque.Records())
			if len(vs) != tt.want {
				t.Fatalf("got %d vertices, want %d", len(vs), tt.want)
			}
			if !vs[len(vs)-1].EndOfStrip() {
				t.Errorf("last vertex not flagged")
			}
		})
	}

	t.Run("quad swap", func(t *testing.T) {
		c := New()
		must(t, c.VertexPointer(3, Float, 0, quad))
		must(t, c.EnableClientState(VertexArray))
		must(t, c.DrawArrays(Quads, 0, 4))
		opaque, _, _ := c.Lists()
		_, vs := batch(t, opaque.Records())
		// x = -1 maps to 0 and x = 1 to 640 on the default surface.
		if vs[2].XYZ[0] != 0 || vs[3].XYZ[0] != 640 {
			t.Errorf("quad not reordered: x2=%v x3=%v", vs[2].XYZ[0], vs[3].XYZ[0])
		}
		if vs[2].EndOfStrip() {
			t.Errorf("third quad vertex flagged")
		}
	})
}

func TestUnconvertibleColorRollsBack(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, triangle))
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawArrays(Triangles, 0, 3))
	opaque, _, _ := c.Lists()
	before := opaque.Size()

	must(t, c.ColorPointer(4, Short, 0, make([]byte, 3*4*2)))
	must(t, c.EnableClientState(ColorArray))
	if err := c.DrawArrays(Triangles, 0, 3); err == nil {
		t.Fatal("short color draw succeeded")
	}
	if opaque.Size() != before {
		t.Errorf("list size = %d, want %d", opaque.Size(), before)
	}
	if k := c.GetError(); k != glerr.NotImplemented {
		t.Errorf("GetError = %v", k)
	}

	must(t, c.DisableClientState(ColorArray))
	must(t, c.DrawArrays(Triangles, 0, 3))
	if opaque.Size() != before+4 {
		t.Errorf("draw after failure: size = %d", opaque.Size())
	}
}

func TestShortArrayIsRejected(t *testing.T) {
	c := New()
	must(t, c.VertexPointer(3, Float, 0, triangle))
	must(t, c.EnableClientState(VertexArray))
	if err := c.DrawArrays(Triangles, 1, 3); err == nil {
		t.Fatal("read past the end of the array")
	}
	if k := c.GetError(); k != glerr.InvalidValue {
		t.Errorf("GetError = %v", k)
	}
}

func TestListRouting(t *testing.T) {
	tests := []struct {
		name string
		caps []Enum
		list uint32
	}{
		{"opaque", nil, pvr.ListOpaque},
		{"punch-through", []Enum{AlphaTest}, pvr.ListPunchThrough},
		{"translucent", []Enum{Blend}, pvr.ListTranslucent},
		{"blend wins", []Enum{AlphaTest, Blend}, pvr.ListTranslucent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			must(t, c.VertexPointer(3, Float, 0, triangle))
			must(t, c.EnableClientState(VertexArray))
			for _, e := range tt.caps {
				must(t, c.Enable(e))
			}
			must(t, c.DrawArrays(Triangles, 0, 3))

			opaque, pt, tr := c.Lists()
			var got uint32
			var recs []pvr.Vertex
			for _, l := range []struct {
				typ uint32
				n   int
				r   []pvr.Vertex
			}{
				{pvr.ListOpaque, opaque.Size(), opaque.Records()},
				{pvr.ListPunchThrough, pt.Size(), pt.Records()},
				{pvr.ListTranslucent, tr.Size(), tr.Records()},
			} {
				if l.n > 0 {
					got, recs = l.typ, l.r
				}
			}
			if got != tt.list {
				t.Fatalf("batch went to list %d, want %d", got, tt.list)
			}
			hdr, _ := batch(t, recs)
			if hdr.ListType != tt.list {
				t.Errorf("header list type = %d", hdr.ListType)
			}
		})
	}
}

func TestHeaderState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Context) error
		check func(h pvr.PolyContext) bool
	}{
		{
			"depth test off is always",
			func(c *Context) error { return nil },
			func(h pvr.PolyContext) bool { return h.Depth.Comparison == pvr.DepthAlways },
		},
		{
			"less is inverted",
			func(c *Context) error { return c.Enable(DepthTest) },
			func(h pvr.PolyContext) bool { return h.Depth.Comparison == pvr.DepthGreater },
		},
		{
			"lequal is inverted",
			func(c *Context) error {
				if err := c.Enable(DepthTest); err != nil {
					return err
				}
				return c.DepthFunc(LEqual)
			},
			func(h pvr.PolyContext) bool { return h.Depth.Comparison == pvr.DepthGEqual },
		},
		{
			"depth mask",
			func(c *Context) error { c.DepthMask(false); return nil },
			func(h pvr.PolyContext) bool { return !h.Depth.Write },
		},
		{
			"flat shading",
			func(c *Context) error { return c.ShadeModel(Flat) },
			func(h pvr.PolyContext) bool { return h.Gen.Shading == pvr.ShadeFlat },
		},
		{
			"cull ccw front",
			func(c *Context) error { return c.Enable(CullFace) },
			func(h pvr.PolyContext) bool { return h.Gen.Culling == pvr.CullCW },
		},
		{
			"cull cw front",
			func(c *Context) error {
				if err := c.Enable(CullFace); err != nil {
					return err
				}
				return c.FrontFace(CW)
			},
			func(h pvr.PolyContext) bool { return h.Gen.Culling == pvr.CullCCW },
		},
		{
			"blend factors",
			func(c *Context) error {
				if err := c.Enable(Blend); err != nil {
					return err
				}
				return c.BlendFunc(SrcAlpha, OneMinusSrcAlpha)
			},
			func(h pvr.PolyContext) bool {
				return h.Gen.Alpha && h.Blend.Src == pvr.BlendSrcAlpha && h.Blend.Dst == pvr.BlendInvSrcAlpha
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			must(t, c.VertexPointer(3, Float, 0, triangle))
			must(t, c.EnableClientState(VertexArray))
			must(t, tt.setup(c))
			must(t, c.DrawArrays(Triangles, 0, 3))
			opaque, _, tr := c.Lists()
			recs := opaque.Records()
			if len(recs) == 0 {
				recs = tr.Records()
			}
			hdr, _ := batch(t, recs)
			if !tt.check(hdr) {
				t.Errorf("header = %+v", hdr)
			}
		})
	}
}

func TestNearPlaneCulling(t *testing.T) {
	behind := floats(
		0, 0, -2,
		1, 0, -2,
		0, 1, -2,
	)
	c := New()
	must(t, c.VertexPointer(3, Float, 0, behind))
	must(t, c.EnableClientState(VertexArray))
	must(t, c.DrawArrays(Triangles, 0, 3))
	if opaque, _, _ := c.Lists(); opaque.Size() != 0 {
		t.Errorf("culled batch left %d records", opaque.Size())
	}

	must(t, c.Disable(NearZClipping))
	must(t, c.DrawArrays(Triangles, 0, 3))
	if opaque, _, _ := c.Lists(); opaque.Size() != 4 {
		t.Errorf("unclipped batch has %d records", opaque.Size())
	}
}

func TestStateErrors(t *testing.T) {
	c := New()
	tests := []struct {
		name string
		call func() error
		want glerr.Kind
	}{
		{"bad capability", func() error { return c.Enable(0x1234) }, glerr.InvalidEnum},
		{"bad client array", func() error { return c.EnableClientState(0x1234) }, glerr.InvalidEnum},
		{"bad vertex size", func() error { return c.VertexPointer(5, Float, 0, nil) }, glerr.InvalidValue},
		{"bad texture unit", func() error { return c.ActiveTexture(0x84C2) }, glerr.InvalidEnum},
		{"bad light", func() error { return c.Lightf(Light7+1, ConstantAttenuation, 1) }, glerr.InvalidEnum},
		{"back material", func() error { return c.Materialf(Back, Shininess, 1) }, glerr.InvalidEnum},
		{"bad blend", func() error { return c.BlendFunc(0x1234, Zero) }, glerr.InvalidEnum},
		{"pop empty stack", c.PopMatrix, glerr.InvalidOperation},
		{"upload unbound", func() error { return c.TexImage2D(image.NewNRGBA(image.Rect(0, 0, 8, 8))) }, glerr.InvalidOperation},
		{"bad draw mode", func() error { return c.DrawArrays(42, 0, 3) }, glerr.InvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Fatal("no error")
			}
			if k := c.GetError(); k != tt.want {
				t.Errorf("GetError = %v, want %v", k, tt.want)
			}
		})
	}
}

type recorder struct{ kinds []glerr.Kind }

func (r *recorder) Report(kind glerr.Kind, op string) { r.kinds = append(r.kinds, kind) }

func TestErrorSink(t *testing.T) {
	r := &recorder{}
	c := New(WithErrorSink(r))
	_ = c.ShadeModel(0x1234)
	_ = c.FrontFace(0x1234)
	if len(r.kinds) != 2 {
		t.Fatalf("sink saw %d reports", len(r.kinds))
	}
	// GetError keeps only the first.
	if k := c.GetError(); k != glerr.InvalidEnum {
		t.Errorf("GetError = %v", k)
	}
	if k := c.GetError(); k != glerr.NoError {
		t.Errorf("second GetError = %v", k)
	}
}
