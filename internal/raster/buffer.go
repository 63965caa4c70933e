package raster

import (
	"image"
	"image/color"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Depth follows the hardware convention: larger is nearer, 0 is the far
// clear value.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H
}

// NewFrameBuffer allocates a transparent color buffer and a cleared
// z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   make([]float64, n),
	}
}

// Clear fills the color buffer with c and resets depth.
func (fb *FrameBuffer) Clear(c color.NRGBA) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3] = c.R, c.G, c.B, c.A
	}
	clear(fb.ZBuf)
}

// Image copies the color buffer into a new image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
