// Package convert turns client attribute elements of any supported encoding
// into the canonical in-memory vertex encoding: float32 triples and pairs,
// and packed 8-bit color.
//
// A Reader is resolved once per attribute per draw call from the attribute
// descriptor, and then applied to every element of the stream.
package convert

import (
	"encoding/binary"
	"math"

	"pvrgl/internal/attrib"
	"pvrgl/internal/glerr"
	"pvrgl/internal/pvr"
)

// Kind selects how a Reader produces its output.
type Kind uint8

const (
	// FillZero writes (0, 0); used for disabled texcoord sets.
	FillZero Kind = iota
	// FillNegZ writes the view-facing normal (0, 0, -1).
	FillNegZ
	// FillWhite writes opaque white.
	FillWhite
	// Widen converts each component to float32 without normalization.
	Widen
	// Normalized maps unsigned bytes to [0,1] by 1/255.
	Normalized
	// Packed unpacks a signed 10:10:10:2 word, dropping w.
	Packed
	// ColorRGBA packs color given in R, G, B[, A] order.
	ColorRGBA
	// ColorBGRA packs color already stored in B, G, R, A order.
	ColorBGRA
)

// Reader is a resolved conversion for one attribute stream.
type Reader struct {
	Kind Kind
	Type attrib.Type
	// N is the number of input components consumed.
	N int
}

// Fill reports whether the reader ignores its input.
func (r Reader) Fill() bool {
	return r.Kind == FillZero || r.Kind == FillNegZ || r.Kind == FillWhite
}

func numeric(t attrib.Type, n int) Reader {
	switch t {
	case attrib.Byte, attrib.UnsignedByte:
		return Reader{Kind: Normalized, Type: attrib.UnsignedByte, N: n}
	case attrib.Short, attrib.UnsignedShort:
		return Reader{Kind: Widen, Type: attrib.UnsignedShort, N: n}
	case attrib.Int, attrib.UnsignedInt:
		return Reader{Kind: Widen, Type: attrib.UnsignedInt, N: n}
	case attrib.Double:
		return Reader{Kind: Widen, Type: attrib.Double, N: n}
	}
	return Reader{Kind: Widen, Type: attrib.Float, N: n}
}

// PositionReader resolves the position conversion. Two-component positions
// get z = 0; a fourth component is ignored.
func PositionReader(p attrib.Pointer) Reader {
	n := p.Components()
	if n > 3 {
		n = 3
	}
	return numeric(p.Type, n)
}

// TexCoordReader resolves a texcoord conversion; disabled sets read as zero.
func TexCoordReader(p attrib.Pointer, enabled bool) Reader {
	if !enabled {
		return Reader{Kind: FillZero, N: 2}
	}
	n := p.Components()
	if n > 2 {
		n = 2
	}
	return numeric(p.Type, n)
}

// NormalReader resolves the normal conversion; a disabled array reads as the
// view-facing (0, 0, -1).
func NormalReader(p attrib.Pointer, enabled bool) Reader {
	if !enabled {
		return Reader{Kind: FillNegZ, N: 3}
	}
	if p.Type == attrib.UnsignedInt2101010Rev {
		return Reader{Kind: Packed, Type: p.Type, N: 1}
	}
	return numeric(p.Type, 3)
}

// ColorReader resolves the color conversion; a disabled array reads as
// opaque white. Short and int color arrays have no converter and yield
// glerr.NotImplemented.
func ColorReader(p attrib.Pointer, enabled bool) (Reader, error) {
	if !enabled {
		return Reader{Kind: FillWhite, N: 4}, nil
	}
	kind := ColorRGBA
	if p.Size == attrib.SizeBGRA {
		kind = ColorBGRA
	}
	switch p.Type {
	case attrib.Float, attrib.Double:
		return Reader{Kind: kind, Type: p.Type, N: p.Components()}, nil
	case attrib.Byte, attrib.UnsignedByte:
		return Reader{Kind: kind, Type: attrib.UnsignedByte, N: p.Components()}, nil
	}
	return Reader{}, glerr.New(glerr.NotImplemented, "color array of type "+p.Type.String())
}

// component reads component i of an element as a float32.
func component(t attrib.Type, in []byte, i int) float32 {
	switch t {
	case attrib.UnsignedByte:
		return float32(in[i])
	case attrib.UnsignedShort:
		return float32(binary.LittleEndian.Uint16(in[i*2:]))
	case attrib.UnsignedInt:
		return float32(binary.LittleEndian.Uint32(in[i*4:]))
	case attrib.Double:
		return float32(math.Float64frombits(binary.LittleEndian.Uint64(in[i*8:])))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(in[i*4:]))
}

// unpack1010102 decodes the x, y, z fields of a signed 2_10_10_10 word.
func unpack1010102(w uint32) [3]float32 {
	const mul = 1.0 / 1023.0
	x := int32(w<<22) >> 22
	y := int32(w<<12) >> 22
	z := int32(w<<2) >> 22
	return [3]float32{
		(2*float32(x) + 1) * mul,
		(2*float32(y) + 1) * mul,
		(2*float32(z) + 1) * mul,
	}
}

// Read3 converts one element into a float triple.
func (r Reader) Read3(in []byte) [3]float32 {
	var out [3]float32
	switch r.Kind {
	case FillZero:
	case FillNegZ:
		out[2] = -1
	case Packed:
		out = unpack1010102(binary.LittleEndian.Uint32(in))
	case Normalized:
		const inv = 1.0 / 255.0
		for i := 0; i < r.N; i++ {
			out[i] = float32(in[i]) * inv
		}
	default:
		for i := 0; i < r.N; i++ {
			out[i] = component(r.Type, in, i)
		}
	}
	return out
}

// Read2 converts one element into a float pair.
func (r Reader) Read2(in []byte) [2]float32 {
	var out [2]float32
	switch r.Kind {
	case FillZero, FillNegZ:
	case Normalized:
		const inv = 1.0 / 255.0
		for i := 0; i < r.N; i++ {
			out[i] = float32(in[i]) * inv
		}
	default:
		for i := 0; i < r.N; i++ {
			out[i] = component(r.Type, in, i)
		}
	}
	return out
}

// ReadColor converts one element into packed color. Three-component input
// is opaque.
func (r Reader) ReadColor(in []byte) pvr.Color {
	if r.Kind == FillWhite {
		return pvr.White
	}
	var c pvr.Color
	if r.Type == attrib.UnsignedByte {
		if r.Kind == ColorBGRA {
			copy(c[:], in[:4])
			return c
		}
		c[pvr.R], c[pvr.G], c[pvr.B] = in[0], in[1], in[2]
		c[pvr.A] = 255
		if r.N == 4 {
			c[pvr.A] = in[3]
		}
		return c
	}

	if r.Kind == ColorBGRA {
		for i := 0; i < 4; i++ {
			c[i] = pvr.FloatToByte(component(r.Type, in, i))
		}
		return c
	}
	c[pvr.R] = pvr.FloatToByte(component(r.Type, in, 0))
	c[pvr.G] = pvr.FloatToByte(component(r.Type, in, 1))
	c[pvr.B] = pvr.FloatToByte(component(r.Type, in, 2))
	c[pvr.A] = 255
	if r.N == 4 {
		c[pvr.A] = pvr.FloatToByte(component(r.Type, in, 3))
	}
	return c
}
