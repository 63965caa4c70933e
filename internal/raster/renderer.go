// Package raster is a software preview of what the tile-based GPU would draw
// from a set of command lists. It is a reference renderer for inspecting
// pipeline output, not a model of the hardware's tiling.
package raster

import (
	"image"
	"image/color"

	"pvrgl/internal/polylist"
	"pvrgl/internal/pvr"
)

// Textures resolves the texture names carried in polygon headers.
type Textures interface {
	Lookup(name uint32) *image.NRGBA
}

// Stats counts what a renderer has drawn since it was created.
type Stats struct {
	Batches   int
	Triangles int
	Culled    int
}

// Renderer draws command lists into a frame buffer.
type Renderer struct {
	FB       *FrameBuffer
	Textures Textures
	Stats    Stats
}

// NewRenderer returns a renderer over a cleared w×h frame buffer.
func NewRenderer(w, h int, tex Textures) *Renderer {
	return &Renderer{FB: NewFrameBuffer(w, h), Textures: tex}
}

// Clear resets color to c and depth to the far value.
func (r *Renderer) Clear(c color.NRGBA) { r.FB.Clear(c) }

// Render draws the lists in hardware order: opaque, punch-through, then
// translucent. Nil lists are skipped.
func (r *Renderer) Render(opaque, punchThrough, translucent *polylist.List) *image.NRGBA {
	for _, l := range []*polylist.List{opaque, punchThrough, translucent} {
		if l != nil {
			r.Draw(l)
		}
	}
	return r.FB.Image()
}

func (r *Renderer) state(h pvr.PolyHeader) State {
	st := State{PolyContext: h.Decode()}
	if st.Txr.Enable && r.Textures != nil {
		st.Tex = r.Textures.Lookup(st.Txr.Base)
	}
	return st
}

// Draw walks one command list. Vertices before the first header are
// ignored, as is a trailing strip without an end-of-strip flag.
func (r *Renderer) Draw(l *polylist.List) {
	recs := l.Records()
	var st State
	have := false
	start := 0
	for i := range recs {
		v := &recs[i]
		if pvr.IsHeader(v) {
			st = r.state(pvr.HeaderFromVertex(v))
			have = true
			start = i + 1
			r.Stats.Batches++
			continue
		}
		if !have || !v.IsVertex() || !v.EndOfStrip() {
			continue
		}
		r.strip(recs[start:i+1], &st)
		start = i + 1
	}
}

// strip draws a triangle strip. Every other triangle has its first two
// vertices swapped so all of them share the strip's winding.
func (r *Renderer) strip(s []pvr.Vertex, st *State) {
	for k := 0; k+2 < len(s); k++ {
		tri := [3]*pvr.Vertex{&s[k], &s[k+1], &s[k+2]}
		if k%2 == 1 {
			tri[0], tri[1] = tri[1], tri[0]
		}
		if RasterizeTriangle(r.FB, tri, st) {
			r.Stats.Triangles++
		} else {
			r.Stats.Culled++
		}
	}
}
