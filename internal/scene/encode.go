package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"pvrgl/internal/gl"
)

// encoded is an array ready for a Pointer call.
type encoded struct {
	size  int
	typ   gl.Type
	data  []byte
	count int // vertices
}

// encode packs a's values tightly as its element type. def is the
// component count used when the array does not give one.
func (a *Array) encode(def int) (encoded, error) {
	name := a.Type
	if name == "" {
		name = "float"
	}
	typ, err := lookup(types, "type", name)
	if err != nil {
		return encoded{}, err
	}
	size := a.Size
	if size == 0 {
		size = def
	}
	comps := size
	if a.BGRA {
		size, comps = gl.BGRA, 4
	}
	if typ == gl.UnsignedInt2101010Rev {
		// One packed word per vertex.
		comps = 1
	}
	if len(a.Data)%comps != 0 {
		return encoded{}, fmt.Errorf("%d values do not divide into %d components", len(a.Data), comps)
	}
	data, err := pack(typ, a.Data)
	if err != nil {
		return encoded{}, err
	}
	return encoded{size: size, typ: typ, data: data, count: len(a.Data) / comps}, nil
}

type bounds struct{ lo, hi float64 }

var intRanges = map[gl.Type]bounds{
	gl.Byte:                  {math.MinInt8, math.MaxInt8},
	gl.UnsignedByte:          {0, math.MaxUint8},
	gl.Short:                 {math.MinInt16, math.MaxInt16},
	gl.UnsignedShort:         {0, math.MaxUint16},
	gl.Int:                   {math.MinInt32, math.MaxInt32},
	gl.UnsignedInt:           {0, math.MaxUint32},
	gl.UnsignedInt2101010Rev: {0, math.MaxUint32},
}

func pack(typ gl.Type, vals []float64) ([]byte, error) {
	if r, ok := intRanges[typ]; ok {
		for _, v := range vals {
			if v != math.Trunc(v) || v < r.lo || v > r.hi {
				return nil, fmt.Errorf("value %v does not fit %v", v, typ)
			}
		}
	}
	var b []byte
	le := binary.LittleEndian
	for _, v := range vals {
		switch typ {
		case gl.Byte:
			b = append(b, byte(int8(v)))
		case gl.UnsignedByte:
			b = append(b, uint8(v))
		case gl.Short:
			b = le.AppendUint16(b, uint16(int16(v)))
		case gl.UnsignedShort:
			b = le.AppendUint16(b, uint16(v))
		case gl.Int:
			b = le.AppendUint32(b, uint32(int32(v)))
		case gl.UnsignedInt, gl.UnsignedInt2101010Rev:
			b = le.AppendUint32(b, uint32(v))
		case gl.Float:
			b = le.AppendUint32(b, math.Float32bits(float32(v)))
		case gl.Double:
			b = le.AppendUint64(b, math.Float64bits(v))
		}
	}
	return b, nil
}

// packIndices encodes an index list as ubyte, ushort or uint.
func packIndices(name string, idx []uint32) (gl.Type, []byte, error) {
	if name == "" {
		name = "ushort"
	}
	typ, err := lookup(types, "index type", name)
	if err != nil {
		return 0, nil, err
	}
	switch typ {
	case gl.UnsignedByte, gl.UnsignedShort, gl.UnsignedInt:
	default:
		return 0, nil, fmt.Errorf("index type %v", typ)
	}
	vals := make([]float64, len(idx))
	for i, v := range idx {
		vals[i] = float64(v)
	}
	b, err := pack(typ, vals)
	return typ, b, err
}
