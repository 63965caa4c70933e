// Package postprocess finishes rendered preview frames: downsampling from
// the supersampled frame buffer, cropping and orientation.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled frame to w×h. Filtering runs on
// premultiplied alpha so edges against a transparent clear color do not
// pick up dark fringes. Frames already no larger than w×h are returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	return DownsampleWith(img, w, h, draw.CatmullRom)
}

// DownsampleWith is Downsample with a caller-chosen kernel; draw.ApproxBiLinear
// is the cheap choice for large batches.
func DownsampleWith(img *image.NRGBA, w, h int, k draw.Interpolator) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	// RGBA is the premultiplied form; Copy converts on the way in and out.
	premul := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(premul, image.Point{}, img, b, draw.Src, nil)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	k.Scale(scaled, scaled.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	draw.Copy(out, image.Point{}, scaled, scaled.Bounds(), draw.Src, nil)
	return out
}
