package pvr

import (
	"testing"
	"unsafe"
)

func TestVertexLayout(t *testing.T) {
	if got := unsafe.Sizeof(Vertex{}); got != RecordSize {
		t.Fatalf("sizeof(Vertex) = %d, want %d", got, RecordSize)
	}
	if got := unsafe.Sizeof(PolyHeader{}); got != RecordSize {
		t.Fatalf("sizeof(PolyHeader) = %d, want %d", got, RecordSize)
	}
	if got := unsafe.Offsetof(Vertex{}.BGRA); got != 24 {
		t.Errorf("color offset = %d, want 24", got)
	}
	if got := unsafe.Offsetof(Vertex{}.W); got != 28 {
		t.Errorf("w offset = %d, want 28", got)
	}
}

func TestVertexBinary(t *testing.T) {
	v := Vertex{
		Flags: CmdVertexEOL,
		XYZ:   [3]float32{1, -2, 0.5},
		UV:    [2]float32{0.25, 0.75},
		BGRA:  RGBA(10, 20, 30, 40),
		W:     2,
	}
	b, err := v.AppendBinary(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != RecordSize {
		t.Fatalf("encoded %d bytes, want %d", len(b), RecordSize)
	}
	// color word sits at byte 24 in B, G, R, A order
	if b[24] != 30 || b[25] != 20 || b[26] != 10 || b[27] != 40 {
		t.Errorf("color bytes = %v, want [30 20 10 40]", b[24:28])
	}
	if got := DecodeRecord(b); got != v {
		t.Errorf("DecodeRecord = %+v, want %+v", got, v)
	}
}

func TestColor(t *testing.T) {
	c := RGBA(0x11, 0x22, 0x33, 0x44)
	if got := c.ARGB(); got != 0x44112233 {
		t.Errorf("ARGB() = %#x, want 0x44112233", got)
	}

	var s Color
	s.AddSat(R, 200)
	s.AddSat(R, 200)
	if s[R] != 255 {
		t.Errorf("saturating add = %d, want 255", s[R])
	}

	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{3, 255},
	}
	for _, tt := range tests {
		if got := FloatToByte(tt.in); got != tt.want {
			t.Errorf("FloatToByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompileDecode(t *testing.T) {
	cxt := DefaultContext()
	cxt.ListType = ListTranslucent
	cxt.Gen.Alpha = true
	cxt.Blend = BlendState{Src: BlendZero, Dst: BlendDestColor}
	cxt.Depth.Comparison = DepthEqual
	cxt.Txr = TxrState{Enable: true, Env: TxrEnvModulate, Width: 64, Height: 32, Base: 7}

	var hdr PolyHeader
	Compile(&hdr, &cxt)

	rec := hdr.AsVertex()
	if !IsHeader(&rec) {
		t.Fatalf("IsHeader(%#x) = false", rec.Flags)
	}
	if rec.IsVertex() {
		t.Fatalf("header record reported as vertex")
	}
	if got := HeaderFromVertex(&rec); got != hdr {
		t.Fatalf("HeaderFromVertex = %+v, want %+v", got, hdr)
	}

	got := hdr.Decode()
	if got.ListType != ListTranslucent {
		t.Errorf("ListType = %d", got.ListType)
	}
	if got.Depth.Comparison != DepthEqual {
		t.Errorf("Depth = %d", got.Depth.Comparison)
	}
	if got.Blend.Src != BlendZero || got.Blend.Dst != BlendDestColor {
		t.Errorf("Blend = %+v", got.Blend)
	}
	if !got.Txr.Enable || got.Txr.Base != 7 || got.Txr.Width != 64 || got.Txr.Height != 32 {
		t.Errorf("Txr = %+v", got.Txr)
	}
	if got.Gen.Shading != ShadeGouraud || !got.Gen.Alpha {
		t.Errorf("Gen = %+v", got.Gen)
	}
}
