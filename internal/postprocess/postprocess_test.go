package postprocess

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

func filled(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsample(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	src := filled(64, 32, red)

	got := Downsample(src, 32, 16)
	if got.Bounds().Dx() != 32 || got.Bounds().Dy() != 16 {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.NRGBAAt(16, 8); c.R < 254 || c.G > 1 || c.A < 254 {
		t.Errorf("center = %v, want %v", c, red)
	}
	if Downsample(src, 64, 32) != src {
		t.Errorf("same-size downsample copied the image")
	}
}

func TestDownsampleKeepsEdgeColor(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	c := DownsampleWith(src, 1, 1, draw.ApproxBiLinear).NRGBAAt(0, 0)
	if c.R < 240 || c.A < 100 || c.A > 160 {
		t.Errorf("edge pixel = %v, want full red at about half coverage", c)
	}
}

func TestCropAndCenter(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	opaque := color.NRGBA{G: 255, A: 255}
	for y := 4; y < 8; y++ {
		for x := 20; x < 28; x++ {
			src.SetNRGBA(x, y, opaque)
		}
	}
	got := CropAndCenter(src, 16, 16, 1)
	if c := got.NRGBAAt(8, 8); c.A == 0 {
		t.Errorf("center transparent after crop: %v", c)
	}
	if c := got.NRGBAAt(8, 0); c.A != 0 {
		t.Errorf("letterbox not transparent: %v", c)
	}
}

func TestFlipVertical(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	top := color.NRGBA{R: 1, A: 255}
	src.SetNRGBA(1, 0, top)
	got := FlipVertical(src)
	if c := got.NRGBAAt(1, 1); c != top {
		t.Errorf("flipped pixel = %v, want %v", c, top)
	}
}
