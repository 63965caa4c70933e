package pvr

import (
	"encoding/binary"
	"math"
)

// Command words carried in the first 32 bits of every record.
const (
	CmdPolyHeader uint32 = 0x80840000
	CmdVertex     uint32 = 0xe0000000
	CmdVertexEOL  uint32 = 0xf0000000
)

// MinZ is the smallest depth the hardware accepts; zero depth is invalid.
const MinZ float32 = 0.0001

// RecordSize is the byte size of one command-list record (vertex or header).
const RecordSize = 32

// Vertex is the hardware vertex record. Field order and widths are the
// on-the-wire layout: flags, x, y, z, u, v, packed color, w.
type Vertex struct {
	Flags uint32
	XYZ   [3]float32
	UV    [2]float32
	BGRA  Color
	W     float32
}

// IsVertex reports whether the record is a vertex rather than a header.
func (v *Vertex) IsVertex() bool {
	return v.Flags == CmdVertex || v.Flags == CmdVertexEOL
}

// EndOfStrip reports whether the record closes a primitive.
func (v *Vertex) EndOfStrip() bool { return v.Flags == CmdVertexEOL }

// words returns the record as eight 32-bit little-endian words.
func (v *Vertex) words() [8]uint32 {
	return [8]uint32{
		v.Flags,
		math.Float32bits(v.XYZ[0]),
		math.Float32bits(v.XYZ[1]),
		math.Float32bits(v.XYZ[2]),
		math.Float32bits(v.UV[0]),
		math.Float32bits(v.UV[1]),
		binary.LittleEndian.Uint32(v.BGRA[:]),
		math.Float32bits(v.W),
	}
}

func fromWords(w [8]uint32) Vertex {
	var v Vertex
	v.Flags = w[0]
	v.XYZ[0] = math.Float32frombits(w[1])
	v.XYZ[1] = math.Float32frombits(w[2])
	v.XYZ[2] = math.Float32frombits(w[3])
	v.UV[0] = math.Float32frombits(w[4])
	v.UV[1] = math.Float32frombits(w[5])
	binary.LittleEndian.PutUint32(v.BGRA[:], w[6])
	v.W = math.Float32frombits(w[7])
	return v
}

// AppendBinary appends the 32-byte little-endian encoding of v to b.
func (v *Vertex) AppendBinary(b []byte) ([]byte, error) {
	for _, w := range v.words() {
		b = binary.LittleEndian.AppendUint32(b, w)
	}
	return b, nil
}

// DecodeRecord reads one 32-byte record from b.
func DecodeRecord(b []byte) Vertex {
	var w [8]uint32
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return fromWords(w)
}
