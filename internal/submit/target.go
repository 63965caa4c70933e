package submit

import (
	"pvrgl/internal/polylist"
	"pvrgl/internal/pvr"
)

// Extra holds the per-vertex data the hardware record has no room for.
// Extras are indexed identically to the vertices of the current batch.
type Extra struct {
	ST [2]float32
	N  [3]float32
}

// Extras is a scratch arena of Extra records. It grows on demand and never
// releases storage, so steady-state draws do not allocate.
type Extras struct {
	buf []Extra
}

// Resize sets the record count to n. Contents past the old length are
// zeroed; shrinking keeps capacity.
func (e *Extras) Resize(n int) {
	if n > cap(e.buf) {
		buf := make([]Extra, n, n+n/2)
		copy(buf, e.buf)
		e.buf = buf
		return
	}
	old := len(e.buf)
	e.buf = e.buf[:n]
	if n > old {
		clear(e.buf[old:])
	}
}

// Len returns the record count.
func (e *Extras) Len() int { return len(e.buf) }

// Slice returns all records.
func (e *Extras) Slice() []Extra { return e.buf }

// Target describes where in a command list the current batch lives: one
// header record at HeaderOffset followed by Count vertices at StartOffset.
type Target struct {
	Output       *polylist.List
	HeaderOffset int
	StartOffset  int
	Count        int
	Extras       *Extras
}

// NewTarget returns a target with its own extras arena.
func NewTarget() *Target {
	return &Target{Extras: &Extras{}}
}

// Begin points the target at the end of out and reserves room for a header
// and count vertices, plus count extras.
func (t *Target) Begin(out *polylist.List, count int) {
	t.Output = out
	t.Count = count
	t.HeaderOffset = out.Size()
	t.StartOffset = t.HeaderOffset + 1
	t.Extras.Resize(count)
	out.Extend(count + 1)
}

// Vertices returns the batch's vertex records. The slice is invalidated by
// anything that grows the output list.
func (t *Target) Vertices() []pvr.Vertex {
	return t.Output.Slice(t.StartOffset, t.Count)
}

// ExtraSlice returns the batch's extras.
func (t *Target) ExtraSlice() []Extra {
	return t.Extras.Slice()[:t.Count]
}

// SetHeader stores h in the header slot.
func (t *Target) SetHeader(h pvr.PolyHeader) {
	*t.Output.At(t.HeaderOffset) = h.AsVertex()
}

// Header returns the header slot as a record.
func (t *Target) Header() *pvr.Vertex {
	return t.Output.At(t.HeaderOffset)
}

// SetCount resizes the batch after a stage added or removed vertices. The
// output list and the extras are kept in step.
func (t *Target) SetCount(n int) {
	t.Count = n
	t.Output.Resize(t.StartOffset + n)
	t.Extras.Resize(n)
}

// Abort removes the batch from the output list.
func (t *Target) Abort() {
	if t.Output != nil {
		t.Output.Resize(t.HeaderOffset)
	}
	t.Count = 0
}
