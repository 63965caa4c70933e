package polylist

import "pvrgl/internal/pvr"

// chunkSize is the minimum growth step, in records.
const chunkSize = 256

// List is an append-only command list of 32-byte records: polygon headers
// followed by the vertices they describe. Storage is kept across Clear so a
// list reused every frame stops allocating once it reaches its peak size.
type List struct {
	Type uint32
	recs []pvr.Vertex
}

// New returns an empty list of the given polygon list type.
func New(listType uint32) *List {
	return &List{Type: listType}
}

// Size returns the number of records.
func (l *List) Size() int { return len(l.recs) }

// growFor ensures that n more records fit without reallocating.
func (l *List) growFor(n int) {
	if len(l.recs)+n <= cap(l.recs) {
		return
	}
	sz := 2 * cap(l.recs)
	if sz < chunkSize {
		sz = chunkSize
	}
	if sz < len(l.recs)+n {
		sz = (len(l.recs) + n + chunkSize - 1) / chunkSize * chunkSize
	}
	recs := make([]pvr.Vertex, len(l.recs), sz)
	copy(recs, l.recs)
	l.recs = recs
}

// Extend appends n zeroed records and returns the index of the first.
func (l *List) Extend(n int) int {
	start := len(l.recs)
	l.Resize(start + n)
	return start
}

// Resize sets the record count. New records are zeroed; shrinking keeps the
// backing storage.
func (l *List) Resize(n int) {
	if n <= len(l.recs) {
		l.recs = l.recs[:n]
		return
	}
	old := len(l.recs)
	l.growFor(n - old)
	l.recs = l.recs[:n]
	clear(l.recs[old:])
}

// PushBack appends records and returns the index of the first one.
func (l *List) PushBack(recs ...pvr.Vertex) int {
	start := len(l.recs)
	l.growFor(len(recs))
	l.recs = append(l.recs, recs...)
	return start
}

// At returns the record at index i.
func (l *List) At(i int) *pvr.Vertex { return &l.recs[i] }

// Slice returns records [start, start+n). The slice aliases the list until
// the next call that grows it.
func (l *List) Slice(start, n int) []pvr.Vertex { return l.recs[start : start+n] }

// Back returns the last record.
func (l *List) Back() *pvr.Vertex { return &l.recs[len(l.recs)-1] }

// Records returns every record in the list.
func (l *List) Records() []pvr.Vertex { return l.recs }

// Clear empties the list, keeping its storage.
func (l *List) Clear() { l.recs = l.recs[:0] }

// AppendBinary appends the raw 32-byte encoding of every record to b.
func (l *List) AppendBinary(b []byte) ([]byte, error) {
	var err error
	for i := range l.recs {
		if b, err = l.recs[i].AppendBinary(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}
