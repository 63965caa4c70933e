package submit

import (
	"testing"

	"pvrgl/internal/polylist"
	"pvrgl/internal/pvr"
)

func TestTargetBegin(t *testing.T) {
	out := polylist.New(pvr.ListOpaque)
	out.PushBack(pvr.Vertex{Flags: pvr.CmdVertexEOL})

	tg := NewTarget()
	tg.Begin(out, 6)
	if tg.HeaderOffset != 1 || tg.StartOffset != 2 {
		t.Fatalf("offsets = %d/%d, want 1/2", tg.HeaderOffset, tg.StartOffset)
	}
	if out.Size() != 8 {
		t.Fatalf("list size = %d, want 8", out.Size())
	}
	if len(tg.Vertices()) != 6 || len(tg.ExtraSlice()) != 6 {
		t.Fatalf("vertices=%d extras=%d", len(tg.Vertices()), len(tg.ExtraSlice()))
	}

	var h pvr.PolyHeader
	cxt := pvr.DefaultContext()
	pvr.Compile(&h, &cxt)
	tg.SetHeader(h)
	if !pvr.IsHeader(tg.Header()) {
		t.Errorf("header slot does not hold a header")
	}

	tg.SetCount(9)
	if out.Size() != 11 || tg.Extras.Len() != 9 {
		t.Errorf("after SetCount(9): list=%d extras=%d", out.Size(), tg.Extras.Len())
	}

	tg.Abort()
	if out.Size() != 1 {
		t.Errorf("after Abort list size = %d, want 1", out.Size())
	}
}

func TestExtrasNeverShrinkStorage(t *testing.T) {
	var e Extras
	e.Resize(100)
	e.Slice()[99].ST = [2]float32{1, 1}
	c := cap(e.buf)
	e.Resize(10)
	if cap(e.buf) != c {
		t.Errorf("capacity changed on shrink: %d -> %d", c, cap(e.buf))
	}
	e.Resize(100)
	if e.Slice()[99].ST != [2]float32{} {
		t.Errorf("regrown extras not zeroed")
	}
}
