// Package vertex reads client attribute arrays into hardware vertex records
// and their parallel extras.
//
// Two paths exist. The slow path resolves one converter per attribute and
// fills the output one attribute stream at a time, leaving positions
// untransformed. The fast path is taken when every enabled array already has
// the hardware encoding; it copies all attributes in a single pass and folds
// the position transform into the copy.
package vertex

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"pvrgl/internal/attrib"
	"pvrgl/internal/convert"
	"pvrgl/internal/glerr"
	"pvrgl/internal/mathutil"
	"pvrgl/internal/pvr"
	"pvrgl/internal/submit"
)

// DefaultNormal is the view-facing normal used when the normal array is
// disabled.
var DefaultNormal = [3]float32{0, 0, -1}

// Generator reads from the attribute state of one context.
type Generator struct {
	attrs *attrib.State

	// Normalize renormalizes generated normals.
	Normalize bool
}

// New returns a generator over s.
func New(s *attrib.State) *Generator {
	return &Generator{attrs: s}
}

// source resolves the client element index of output vertex i.
type source struct {
	first   int
	indices []byte
	itype   attrib.Type
}

func (s *source) at(i int) int {
	if s.indices == nil {
		return s.first + i
	}
	return Index(s.indices, s.itype, s.first+i)
}

// Index decodes entry i of a little-endian index buffer of itype.
func Index(indices []byte, itype attrib.Type, i int) int {
	switch itype {
	case attrib.UnsignedByte:
		return int(indices[i])
	case attrib.UnsignedShort:
		return int(binary.LittleEndian.Uint16(indices[i*2:]))
	}
	return int(binary.LittleEndian.Uint32(indices[i*4:]))
}

// maxIndex returns the largest client index referenced by n outputs.
func (s *source) maxIndex(n int) int {
	if s.indices == nil {
		return s.first + n - 1
	}
	hi := 0
	for i := 0; i < n; i++ {
		if idx := s.at(i); idx > hi {
			hi = idx
		}
	}
	return hi
}

// stream is one enabled client array with its resolved stride.
type stream struct {
	data   []byte
	stride int
}

func (st stream) elem(idx int) []byte { return st.data[idx*st.stride:] }

func (g *Generator) stream(a attrib.Attribute) stream {
	p := g.attrs.Pointer(a)
	return stream{data: p.Data, stride: p.ElemStride()}
}

// check verifies every enabled array holds element hi.
func (g *Generator) check(hi int) error {
	for a := attrib.Position; a < attrib.NumAttributes; a++ {
		if !g.attrs.Enabled(a) {
			continue
		}
		p := g.attrs.Pointer(a)
		need := hi*p.ElemStride() + p.Components()*attrib.ByteSize(p.Type)
		if len(p.Data) < need {
			return glerr.New(glerr.InvalidValue, fmt.Sprintf("%s array holds %d bytes, need %d", a, len(p.Data), need))
		}
	}
	return nil
}

// Arrays fills out and ex from client elements [first, first+len(out)).
// On the fast path positions are transformed by m; otherwise they are left
// in object space with W = 1.
func (g *Generator) Arrays(out []pvr.Vertex, ex []submit.Extra, first int, m mgl32.Mat4) error {
	if first < 0 {
		return glerr.New(glerr.InvalidValue, "DrawArrays: negative first")
	}
	return g.generate(out, ex, &source{first: first}, m)
}

// Elements fills out and ex from the client elements named by indices,
// which hold len(out) entries of itype (ubyte, ushort or uint).
func (g *Generator) Elements(out []pvr.Vertex, ex []submit.Extra, indices []byte, itype attrib.Type, m mgl32.Mat4) error {
	switch itype {
	case attrib.UnsignedByte, attrib.UnsignedShort, attrib.UnsignedInt:
	default:
		return glerr.New(glerr.InvalidEnum, "DrawElements: index type "+itype.String())
	}
	if len(indices) < len(out)*attrib.ByteSize(itype) {
		return glerr.New(glerr.InvalidValue, "DrawElements: index buffer too short")
	}
	return g.generate(out, ex, &source{indices: indices, itype: itype}, m)
}

func (g *Generator) generate(out []pvr.Vertex, ex []submit.Extra, src *source, m mgl32.Mat4) error {
	n := len(out)
	if n == 0 {
		return nil
	}
	if err := g.check(src.maxIndex(n)); err != nil {
		return err
	}
	if g.attrs.FastPath() {
		g.fast(out, ex, src, m)
	} else if err := g.slow(out, ex, src); err != nil {
		return err
	}
	if g.Normalize && g.attrs.Enabled(attrib.Normal) {
		for i := range ex[:n] {
			ex[i].N = mathutil.Normalize(mgl32.Vec3(ex[i].N))
		}
	}
	return nil
}

func loadF32(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func (g *Generator) fast(out []pvr.Vertex, ex []submit.Extra, src *source, m mgl32.Mat4) {
	en := g.attrs.EnabledMask()
	pos, uv, col := g.stream(attrib.Position), g.stream(attrib.TexCoord0), g.stream(attrib.Color)
	st, nrm := g.stream(attrib.TexCoord1), g.stream(attrib.Normal)

	for i := range out {
		idx := src.at(i)
		v := &out[i]
		e := &ex[i]
		v.Flags = pvr.CmdVertex

		if en.Has(attrib.Position) {
			b := pos.elem(idx)
			v.XYZ, v.W = mathutil.TransformPoint4(m, [3]float32{loadF32(b, 0), loadF32(b, 1), loadF32(b, 2)}, 1)
		} else {
			v.XYZ, v.W = [3]float32{}, 1
		}

		if en.Has(attrib.TexCoord0) {
			b := uv.elem(idx)
			v.UV = [2]float32{loadF32(b, 0), loadF32(b, 1)}
		} else {
			v.UV = [2]float32{}
		}

		if en.Has(attrib.Color) {
			copy(v.BGRA[:], col.elem(idx)[:4])
		} else {
			v.BGRA = pvr.White
		}

		if en.Has(attrib.TexCoord1) {
			b := st.elem(idx)
			e.ST = [2]float32{loadF32(b, 0), loadF32(b, 1)}
		} else {
			e.ST = [2]float32{}
		}

		if en.Has(attrib.Normal) {
			b := nrm.elem(idx)
			e.N = [3]float32{loadF32(b, 0), loadF32(b, 1), loadF32(b, 2)}
		} else {
			e.N = DefaultNormal
		}
	}
}

func (g *Generator) slow(out []pvr.Vertex, ex []submit.Extra, src *source) error {
	s := g.attrs
	crd, err := convert.ColorReader(s.Pointer(attrib.Color), s.Enabled(attrib.Color))
	if err != nil {
		return err
	}
	prd := convert.PositionReader(s.Pointer(attrib.Position))
	uvrd := convert.TexCoordReader(s.Pointer(attrib.TexCoord0), s.Enabled(attrib.TexCoord0))
	strd := convert.TexCoordReader(s.Pointer(attrib.TexCoord1), s.Enabled(attrib.TexCoord1))
	nrd := convert.NormalReader(s.Pointer(attrib.Normal), s.Enabled(attrib.Normal))

	pos := g.stream(attrib.Position)
	hasPos := s.Enabled(attrib.Position)
	for i := range out {
		out[i].Flags = pvr.CmdVertex
		out[i].W = 1
		if !hasPos {
			out[i].XYZ = [3]float32{}
			continue
		}
		out[i].XYZ = prd.Read3(pos.elem(src.at(i)))
	}

	col := g.stream(attrib.Color)
	for i := range out {
		if crd.Fill() {
			out[i].BGRA = pvr.White
			continue
		}
		out[i].BGRA = crd.ReadColor(col.elem(src.at(i)))
	}

	uv := g.stream(attrib.TexCoord0)
	for i := range out {
		if uvrd.Fill() {
			out[i].UV = [2]float32{}
			continue
		}
		out[i].UV = uvrd.Read2(uv.elem(src.at(i)))
	}

	st := g.stream(attrib.TexCoord1)
	for i := range out {
		if strd.Fill() {
			ex[i].ST = [2]float32{}
			continue
		}
		ex[i].ST = strd.Read2(st.elem(src.at(i)))
	}

	nrm := g.stream(attrib.Normal)
	for i := range out {
		if nrd.Fill() {
			ex[i].N = DefaultNormal
			continue
		}
		ex[i].N = nrd.Read3(nrm.elem(src.at(i)))
	}
	return nil
}
