// Package primitive marks primitive boundaries in a generated vertex run and
// rewrites the topologies the hardware cannot consume directly.
package primitive

import (
	"errors"
	"fmt"

	"pvrgl/internal/glerr"
	"pvrgl/internal/pvr"
	"pvrgl/internal/submit"
)

// Mode is a primitive topology. Values match the legacy enumerants.
type Mode uint32

const (
	Points        Mode = 0x0000
	Lines         Mode = 0x0001
	LineLoop      Mode = 0x0002
	LineStrip     Mode = 0x0003
	Triangles     Mode = 0x0004
	TriangleStrip Mode = 0x0005
	TriangleFan   Mode = 0x0006
	Quads         Mode = 0x0007
	QuadStrip     Mode = 0x0008
	Polygon       Mode = 0x0009
)

func (m Mode) String() string {
	switch m {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineLoop:
		return "line_loop"
	case LineStrip:
		return "line_strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle_strip"
	case TriangleFan:
		return "triangle_fan"
	case Quads:
		return "quads"
	case QuadStrip:
		return "quad_strip"
	case Polygon:
		return "polygon"
	}
	return fmt.Sprintf("mode(%#x)", uint32(m))
}

// IsLine reports whether m is a line topology.
func (m Mode) IsLine() bool {
	return m == Lines || m == LineLoop || m == LineStrip
}

// MaxFan is the largest fan the assembler rewrites in one go. The packed
// primitive count is eight bits wide; larger fans must be split by the
// caller.
const MaxFan = 255

// ErrFanTooLarge is returned for fans longer than MaxFan.
var ErrFanTooLarge = errors.New("fan exceeds packed primitive count")

// NormalizePolygon maps a polygon of count vertices onto the topology that
// draws it: a triangle, a quad, or a fan.
func NormalizePolygon(m Mode, count int) Mode {
	if m != Polygon {
		return m
	}
	switch count {
	case 3:
		return Triangles
	case 4:
		return Quads
	}
	return TriangleFan
}

// TargetCount returns how many vertex records a draw of count input
// vertices occupies after assembly. Incomplete trailing primitives are
// dropped; a result of zero means nothing is drawn.
func TargetCount(m Mode, count int) int {
	switch m {
	case Triangles:
		return count - count%3
	case Quads:
		return count - count%4
	case TriangleFan:
		if count < 3 {
			return 0
		}
		return (count - 2) * 3
	case TriangleStrip:
		if count < 3 {
			return 0
		}
		return count
	}
	return 0
}

// Assemble sets end-of-strip flags on the first n generated vertices of vs
// and reorders them as the topology requires. ex is permuted in step with
// vs. For fans, vs and ex must already have room for TargetCount(m, n)
// records.
func Assemble(vs []pvr.Vertex, ex []submit.Extra, m Mode, n int) error {
	switch m {
	case Triangles:
		for i := 2; i < n; i += 3 {
			vs[i].Flags = pvr.CmdVertexEOL
		}
	case Quads:
		for i := 3; i < n; i += 4 {
			vs[i-1], vs[i] = vs[i], vs[i-1]
			ex[i-1], ex[i] = ex[i], ex[i-1]
			vs[i].Flags = pvr.CmdVertexEOL
		}
	case TriangleStrip:
		if n > 0 {
			vs[n-1].Flags = pvr.CmdVertexEOL
		}
	case TriangleFan:
		if n > MaxFan {
			return fmt.Errorf("primitive: assemble %d-vertex fan: %w", n, ErrFanTooLarge)
		}
		expandFan(vs, n)
		expandFan(ex, n)
		for i := 2; i < (n-2)*3; i += 3 {
			vs[i].Flags = pvr.CmdVertexEOL
		}
	default:
		return glerr.New(glerr.UnsupportedOperation, "assemble "+m.String())
	}
	return nil
}

// expandFan rewrites the n-vertex fan at the front of s into n-2 separate
// triangles (s[0], s[k+1], s[k+2]). It works back to front; the write index
// never drops below the read index, so no unread source is overwritten.
func expandFan[T any](s []T, n int) {
	if n < 3 {
		return
	}
	apex := s[0]
	for k := n - 3; k >= 0; k-- {
		d := 3 * k
		s[d+2] = s[k+2]
		s[d+1] = s[k+1]
		s[d] = apex
	}
}
