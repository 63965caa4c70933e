package attrib

import (
	"fmt"

	"pvrgl/internal/glerr"
)

// Type is the element encoding of a client array. Values match the legacy
// API's enumerants so callers can pass them straight through.
type Type uint32

const (
	Byte                  Type = 0x1400
	UnsignedByte          Type = 0x1401
	Short                 Type = 0x1402
	UnsignedShort         Type = 0x1403
	Int                   Type = 0x1404
	UnsignedInt           Type = 0x1405
	Float                 Type = 0x1406
	Double                Type = 0x140A
	UnsignedInt2101010Rev Type = 0x8368
)

// SizeBGRA is the component-count sentinel for 4 components stored in
// reversed (B, G, R, A) order.
const SizeBGRA = 0x80E1

func (t Type) String() string {
	switch t {
	case Byte:
		return "byte"
	case UnsignedByte:
		return "ubyte"
	case Short:
		return "short"
	case UnsignedShort:
		return "ushort"
	case Int:
		return "int"
	case UnsignedInt:
		return "uint"
	case Float:
		return "float"
	case Double:
		return "double"
	case UnsignedInt2101010Rev:
		return "uint_2_10_10_10_rev"
	}
	return fmt.Sprintf("type(%#x)", uint32(t))
}

// Valid reports whether t is a known element type.
func (t Type) Valid() bool {
	switch t {
	case Byte, UnsignedByte, Short, UnsignedShort, Int, UnsignedInt, Float, Double, UnsignedInt2101010Rev:
		return true
	}
	return false
}

// ByteSize returns the width of one component of type t.
func ByteSize(t Type) int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Double:
		return 8
	}
	return 4
}

// Attribute names one of the five client arrays.
type Attribute int

const (
	Position Attribute = iota
	Color
	TexCoord0
	TexCoord1
	Normal

	NumAttributes
)

func (a Attribute) String() string {
	switch a {
	case Position:
		return "position"
	case Color:
		return "color"
	case TexCoord0:
		return "texcoord0"
	case TexCoord1:
		return "texcoord1"
	case Normal:
		return "normal"
	}
	return fmt.Sprintf("attribute(%d)", int(a))
}

// Mask is a set of enabled attributes.
type Mask uint8

// Bit returns the mask bit of a.
func (a Attribute) Bit() Mask { return 1 << uint(a) }

// Has reports whether a is in the set.
func (m Mask) Has(a Attribute) bool { return m&a.Bit() != 0 }

// Pointer describes one client array.
type Pointer struct {
	Data   []byte
	Stride int
	Type   Type
	Size   int
}

// Components returns the number of components per element.
func (p Pointer) Components() int {
	if p.Size == SizeBGRA {
		return 4
	}
	return p.Size
}

// ElemStride returns the byte distance between elements; a zero stride
// means tightly packed.
func (p Pointer) ElemStride() int {
	if p.Stride != 0 {
		return p.Stride
	}
	return p.Components() * ByteSize(p.Type)
}

// State is the attribute-pointer state of one rendering context.
type State struct {
	ptrs     [NumAttributes]Pointer
	enabled  Mask
	fastPath bool
}

// NewState returns state initialized to the context-start defaults.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores every pointer to float defaults and disables all arrays.
func (s *State) Reset() {
	for a := range s.ptrs {
		s.ptrs[a] = Pointer{Type: Float, Size: 4}
	}
	s.ptrs[Normal].Size = 3
	s.enabled = 0
	s.fastPath = false
}

func validSize(a Attribute, size int) bool {
	switch a {
	case Position:
		return size >= 2 && size <= 4
	case Color:
		return size == 3 || size == 4 || size == SizeBGRA
	case TexCoord0, TexCoord1:
		return size >= 1 && size <= 4
	}
	return false
}

// SetPointer replaces the descriptor of a. On error the previous descriptor
// is kept.
func (s *State) SetPointer(a Attribute, size int, typ Type, stride int, data []byte) error {
	const op = "SetPointer"
	if a == Normal {
		return s.SetNormalPointer(typ, stride, data)
	}
	if a < 0 || a >= NumAttributes {
		return glerr.New(glerr.InvalidEnum, op)
	}
	if !validSize(a, size) || stride < 0 {
		return glerr.New(glerr.InvalidValue, op)
	}
	if !typ.Valid() {
		return glerr.New(glerr.InvalidEnum, op)
	}
	s.ptrs[a] = Pointer{Data: data, Stride: stride, Type: typ, Size: size}
	return nil
}

// SetNormalPointer replaces the normal descriptor. The component count
// follows from the type: one packed word for 2_10_10_10, three otherwise.
func (s *State) SetNormalPointer(typ Type, stride int, data []byte) error {
	const op = "SetNormalPointer"
	if !typ.Valid() {
		return glerr.New(glerr.InvalidEnum, op)
	}
	if stride < 0 {
		return glerr.New(glerr.InvalidValue, op)
	}
	size := 3
	if typ == UnsignedInt2101010Rev {
		size = 1
	}
	s.ptrs[Normal] = Pointer{Data: data, Stride: stride, Type: typ, Size: size}
	return nil
}

// Pointer returns the descriptor of a.
func (s *State) Pointer(a Attribute) Pointer { return s.ptrs[a] }

// Enable turns on the client array a.
func (s *State) Enable(a Attribute) { s.enabled |= a.Bit() }

// Disable turns off the client array a.
func (s *State) Disable(a Attribute) { s.enabled &^= a.Bit() }

// Enabled reports whether a is enabled.
func (s *State) Enabled(a Attribute) bool { return s.enabled.Has(a) }

// EnabledMask returns the enabled set.
func (s *State) EnabledMask() Mask { return s.enabled }

// FastPath returns the result of the last RecalcFastPath.
func (s *State) FastPath() bool { return s.fastPath }

// RecalcFastPath decides whether every enabled array already matches the
// hardware vertex layout. Pointer state can change between draws, so this
// runs once per draw rather than being maintained eagerly.
func (s *State) RecalcFastPath() bool {
	s.fastPath = IsFastPathCompatible(s.enabled, &s.ptrs)
	return s.fastPath
}

// IsFastPathCompatible reports whether each enabled array in m has the
// canonical encoding: 3 floats of position, 2 floats per texcoord set,
// 4 reversed-order bytes of color, 3 floats of normal.
func IsFastPathCompatible(m Mask, ptrs *[NumAttributes]Pointer) bool {
	if m.Has(Position) && (ptrs[Position].Size != 3 || ptrs[Position].Type != Float) {
		return false
	}
	if m.Has(TexCoord0) && (ptrs[TexCoord0].Size != 2 || ptrs[TexCoord0].Type != Float) {
		return false
	}
	if m.Has(Color) && (ptrs[Color].Size != SizeBGRA || ptrs[Color].Type != UnsignedByte) {
		return false
	}
	if m.Has(TexCoord1) && (ptrs[TexCoord1].Size != 2 || ptrs[TexCoord1].Type != Float) {
		return false
	}
	if m.Has(Normal) && (ptrs[Normal].Size != 3 || ptrs[Normal].Type != Float) {
		return false
	}
	return true
}
