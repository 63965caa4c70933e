package attrib

import (
	"errors"
	"testing"

	"pvrgl/internal/glerr"
)

func TestSetPointerValidation(t *testing.T) {
	tests := []struct {
		name string
		a    Attribute
		size int
		typ  Type
		want error
	}{
		{"position 2", Position, 2, Float, nil},
		{"position 4", Position, 4, Short, nil},
		{"position 1", Position, 1, Float, glerr.InvalidValue},
		{"position 5", Position, 5, Float, glerr.InvalidValue},
		{"color 3", Color, 3, UnsignedByte, nil},
		{"color bgra", Color, SizeBGRA, UnsignedByte, nil},
		{"color 2", Color, 2, Float, glerr.InvalidValue},
		{"texcoord 1", TexCoord0, 1, Float, nil},
		{"texcoord 4", TexCoord1, 4, Float, nil},
		{"texcoord 0", TexCoord0, 0, Float, glerr.InvalidValue},
		{"unknown type", Position, 3, Type(0x1234), glerr.InvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			before := s.Pointer(tt.a)
			err := s.SetPointer(tt.a, tt.size, tt.typ, 0, []byte{1, 2, 3, 4})
			if tt.want == nil {
				if err != nil {
					t.Fatalf("SetPointer() = %v, want nil", err)
				}
				if got := s.Pointer(tt.a); got.Size != tt.size || got.Type != tt.typ {
					t.Errorf("pointer = %+v", got)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("SetPointer() = %v, want %v", err, tt.want)
			}
			after := s.Pointer(tt.a)
			if after.Size != before.Size || after.Type != before.Type || after.Data != nil {
				t.Errorf("failed SetPointer changed state: %+v -> %+v", before, after)
			}
		})
	}
}

func TestNormalPointerSize(t *testing.T) {
	s := NewState()
	if err := s.SetNormalPointer(UnsignedInt2101010Rev, 0, nil); err != nil {
		t.Fatal(err)
	}
	if got := s.Pointer(Normal).Size; got != 1 {
		t.Errorf("packed normal size = %d, want 1", got)
	}
	if err := s.SetPointer(Normal, 99, Float, 0, nil); err != nil {
		t.Fatal(err)
	}
	if got := s.Pointer(Normal).Size; got != 3 {
		t.Errorf("float normal size = %d, want 3", got)
	}
	if err := s.SetNormalPointer(Type(1), 0, nil); !errors.Is(err, glerr.InvalidEnum) {
		t.Errorf("bad normal type err = %v", err)
	}
}

func TestElemStride(t *testing.T) {
	tests := []struct {
		p    Pointer
		want int
	}{
		{Pointer{Type: Float, Size: 3}, 12},
		{Pointer{Type: UnsignedByte, Size: SizeBGRA}, 4},
		{Pointer{Type: Double, Size: 2}, 16},
		{Pointer{Type: Short, Size: 3, Stride: 32}, 32},
		{Pointer{Type: UnsignedInt2101010Rev, Size: 1}, 4},
	}
	for _, tt := range tests {
		if got := tt.p.ElemStride(); got != tt.want {
			t.Errorf("%+v.ElemStride() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

// canonical returns pointers that all match the hardware layout.
func canonical() [NumAttributes]Pointer {
	var p [NumAttributes]Pointer
	p[Position] = Pointer{Type: Float, Size: 3}
	p[Color] = Pointer{Type: UnsignedByte, Size: SizeBGRA}
	p[TexCoord0] = Pointer{Type: Float, Size: 2}
	p[TexCoord1] = Pointer{Type: Float, Size: 2}
	p[Normal] = Pointer{Type: Float, Size: 3}
	return p
}

// offending returns a non-canonical descriptor for a.
func offending(a Attribute) Pointer {
	switch a {
	case Position:
		return Pointer{Type: Float, Size: 2}
	case Color:
		return Pointer{Type: UnsignedByte, Size: 4}
	case TexCoord0, TexCoord1:
		return Pointer{Type: UnsignedShort, Size: 2}
	}
	return Pointer{Type: UnsignedInt2101010Rev, Size: 1}
}

func TestFastPathPowerSet(t *testing.T) {
	for m := Mask(0); m < 1<<NumAttributes; m++ {
		ptrs := canonical()
		if !IsFastPathCompatible(m, &ptrs) {
			t.Errorf("mask %05b: canonical layout rejected", m)
		}
		for a := Position; a < NumAttributes; a++ {
			ptrs := canonical()
			ptrs[a] = offending(a)
			got := IsFastPathCompatible(m, &ptrs)
			want := !m.Has(a)
			if got != want {
				t.Errorf("mask %05b with bad %v: got %v, want %v", m, a, got, want)
			}
		}
	}
}

func TestRecalcFastPath(t *testing.T) {
	s := NewState()
	if !s.RecalcFastPath() {
		t.Fatalf("nothing enabled should be fast-path compatible")
	}
	s.Enable(Position)
	if s.RecalcFastPath() {
		t.Fatalf("default 4-float position must not be fast path")
	}
	if err := s.SetPointer(Position, 3, Float, 0, nil); err != nil {
		t.Fatal(err)
	}
	if !s.RecalcFastPath() || !s.FastPath() {
		t.Errorf("3-float position should be fast path")
	}
	s.Enable(Color)
	if s.RecalcFastPath() {
		t.Errorf("default float color should disable fast path")
	}
	s.Disable(Color)
	if !s.RecalcFastPath() {
		t.Errorf("disabling color should restore fast path")
	}
}
