package pvr

import "encoding/binary"

// Channel positions inside a packed Color. In memory the bytes are B, G, R, A,
// which reads back as a little-endian ARGB word.
const (
	B = 0
	G = 1
	R = 2
	A = 3
)

// Color is a packed 8-bit-per-channel vertex color.
type Color [4]uint8

// White is opaque white, the default for a disabled color array.
var White = Color{0xff, 0xff, 0xff, 0xff}

// RGBA packs channels given in r, g, b, a order.
func RGBA(r, g, b, a uint8) Color {
	var c Color
	c[R], c[G], c[B], c[A] = r, g, b, a
	return c
}

// ARGB returns the color as a 32-bit ARGB word.
func (c Color) ARGB() uint32 { return binary.LittleEndian.Uint32(c[:]) }

// Floats unpacks the color to normalized r, g, b, a.
func (c Color) Floats() [4]float32 {
	const scale = 1.0 / 255.0
	return [4]float32{
		float32(c[R]) * scale,
		float32(c[G]) * scale,
		float32(c[B]) * scale,
		float32(c[A]) * scale,
	}
}

// AddSat adds v to channel ch, saturating at 255.
func (c *Color) AddSat(ch int, v uint8) {
	room := 255 - c[ch]
	if v > room {
		v = room
	}
	c[ch] += v
}

// FloatToByte scales a normalized value to a byte, clamped to [0,255].
func FloatToByte(f float32) uint8 {
	f = f * 255
	if !(f > 0) {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}
