package polylist

import (
	"testing"

	"pvrgl/internal/pvr"
)

func TestExtendAndResize(t *testing.T) {
	l := New(pvr.ListOpaque)
	if start := l.Extend(3); start != 0 {
		t.Fatalf("Extend start = %d, want 0", start)
	}
	l.At(2).Flags = pvr.CmdVertexEOL

	start := l.Extend(300)
	if start != 3 || l.Size() != 303 {
		t.Fatalf("after second Extend start=%d size=%d", start, l.Size())
	}
	if l.At(2).Flags != pvr.CmdVertexEOL {
		t.Errorf("growth lost existing record")
	}

	l.Resize(2)
	if l.Size() != 2 {
		t.Fatalf("Resize(2) size = %d", l.Size())
	}
	l.Resize(4)
	if l.At(2).Flags != 0 || l.At(3).Flags != 0 {
		t.Errorf("re-grown records are not zeroed: %+v %+v", *l.At(2), *l.At(3))
	}
}

func TestPushBackClear(t *testing.T) {
	l := New(pvr.ListTranslucent)
	l.PushBack(pvr.Vertex{Flags: pvr.CmdVertex}, pvr.Vertex{Flags: pvr.CmdVertexEOL})
	if got := l.Back().Flags; got != pvr.CmdVertexEOL {
		t.Errorf("Back().Flags = %#x", got)
	}
	b, err := l.AppendBinary(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 2*pvr.RecordSize {
		t.Errorf("binary length = %d", len(b))
	}

	c := cap(l.recs)
	l.Clear()
	if l.Size() != 0 || cap(l.recs) != c {
		t.Errorf("Clear size=%d cap=%d, want 0 and %d", l.Size(), cap(l.recs), c)
	}
}
