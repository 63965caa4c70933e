package raster

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"testing"

	"pvrgl/internal/gl"
	"pvrgl/internal/pvr"
)

func floats(v ...float32) []byte {
	b := make([]byte, 0, len(v)*4)
	for _, f := range v {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

func quad(z float32) []byte {
	return floats(
		-1, -1, z,
		1, -1, z,
		1, 1, z,
		-1, 1, z,
	)
}

// solid returns a BGRA color array of n copies of c.
func solid(n int, c color.NRGBA) []byte {
	b := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		b = append(b, c.B, c.G, c.R, c.A)
	}
	return b
}

func drawQuad(t *testing.T, c *gl.Context, z float32, col color.NRGBA) {
	t.Helper()
	for _, err := range []error{
		c.VertexPointer(3, gl.Float, 0, quad(z)),
		c.ColorPointer(gl.BGRA, gl.UnsignedByte, 0, solid(4, col)),
		c.EnableClientState(gl.VertexArray),
		c.EnableClientState(gl.ColorArray),
		c.DrawArrays(gl.Quads, 0, 4),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
}

func render(c *gl.Context) (*Renderer, *image.NRGBA) {
	w, h := c.Surface()
	r := NewRenderer(w, h, c.Textures())
	r.Clear(color.NRGBA{A: 255})
	return r, r.Render(c.Lists())
}

func TestRenderQuad(t *testing.T) {
	c := gl.New(gl.WithSurface(64, 32))
	red := color.NRGBA{R: 255, A: 255}
	drawQuad(t, c, 0, red)

	r, img := render(c)
	if got := img.NRGBAAt(32, 16); got != red {
		t.Errorf("center = %v, want %v", got, red)
	}
	if got := img.NRGBAAt(0, 0); got != red {
		t.Errorf("corner = %v, want %v", got, red)
	}
	if r.Stats.Batches != 1 || r.Stats.Triangles != 2 {
		t.Errorf("stats = %+v", r.Stats)
	}
}

func TestDepthTest(t *testing.T) {
	c := gl.New(gl.WithSurface(16, 16))
	if err := c.Enable(gl.DepthTest); err != nil {
		t.Fatal(err)
	}
	green := color.NRGBA{G: 255, A: 255}
	drawQuad(t, c, 0.5, color.NRGBA{R: 255, A: 255})
	drawQuad(t, c, -0.5, green)
	drawQuad(t, c, 0.5, color.NRGBA{B: 255, A: 255})

	_, img := render(c)
	if got := img.NRGBAAt(8, 8); got != green {
		t.Errorf("pixel = %v, want the nearest quad %v", got, green)
	}
}

func TestBlend(t *testing.T) {
	c := gl.New(gl.WithSurface(16, 16))
	drawQuad(t, c, 0, color.NRGBA{R: 200, A: 255})
	if err := c.Enable(gl.Blend); err != nil {
		t.Fatal(err)
	}
	if err := c.BlendFunc(gl.One, gl.One); err != nil {
		t.Fatal(err)
	}
	drawQuad(t, c, 0, color.NRGBA{R: 100, G: 50, A: 255})

	_, img := render(c)
	got := img.NRGBAAt(8, 8)
	if got.R != 255 || got.G != 50 {
		t.Errorf("additive blend = %v, want R saturated and G 50", got)
	}
}

func TestMultitextureModulates(t *testing.T) {
	c := gl.New(gl.WithSurface(16, 16))
	tex := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	want := color.NRGBA{R: 100, G: 200, B: 50, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tex.SetNRGBA(x, y, want)
		}
	}
	for _, err := range []error{
		c.ActiveTexture(gl.Texture1),
		c.BindTexture(gl.Texture2D, c.GenTextures(1)[0]),
		c.TexImage2D(tex),
		c.Enable(gl.Texture2D),
		c.ClientActiveTexture(gl.Texture1),
		c.TexCoordPointer(2, gl.Float, 0, floats(0, 0, 1, 0, 1, 1, 0, 1)),
		c.EnableClientState(gl.TextureCoordArray),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	drawQuad(t, c, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	_, img := render(c)
	if got := img.NRGBAAt(8, 8); got != want {
		t.Errorf("modulated pixel = %v, want %v", got, want)
	}
}

func TestCulling(t *testing.T) {
	ccw := floats(-1, -1, 0, 1, -1, 0, -1, 1, 0)
	cw := floats(-1, -1, 0, -1, 1, 0, 1, -1, 0)
	tests := []struct {
		name  string
		verts []byte
		drawn int
	}{
		{"front facing", ccw, 1},
		{"back facing", cw, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := gl.New(gl.WithSurface(16, 16))
			for _, err := range []error{
				c.Enable(gl.CullFace),
				c.VertexPointer(3, gl.Float, 0, tt.verts),
				c.EnableClientState(gl.VertexArray),
				c.DrawArrays(gl.Triangles, 0, 3),
			} {
				if err != nil {
					t.Fatal(err)
				}
			}
			r, _ := render(c)
			if r.Stats.Triangles != tt.drawn {
				t.Errorf("drew %d triangles, want %d", r.Stats.Triangles, tt.drawn)
			}
		})
	}
}

func TestSampleTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{R: 0, A: 255})
	tex.SetNRGBA(1, 0, color.NRGBA{R: 200, A: 255})

	if r, _, _, _ := SampleTexture(tex, 0.5, 0); r != 100 {
		t.Errorf("bilinear midpoint R = %d, want 100", r)
	}
	if r, _, _, _ := SampleNearest(tex, 0.75, 0); r != 200 {
		t.Errorf("nearest R = %d, want 200", r)
	}
	if r, _, _, _ := SampleNearest(tex, -0.25, 0); r != 200 {
		t.Errorf("wrapped nearest R = %d, want 200", r)
	}
}

func TestDepthPass(t *testing.T) {
	if !depthPass(pvr.DepthGreater, 0.7, 0.2) || depthPass(pvr.DepthGreater, 0.2, 0.7) {
		t.Errorf("greater comparison wrong")
	}
	if !depthPass(pvr.DepthEqual, 0.5, 0.5) || depthPass(pvr.DepthNever, 1, 0) {
		t.Errorf("equal/never comparison wrong")
	}
}
