// Package clip removes geometry that lies entirely behind the near plane
// before the perspective divide. Strips are culled whole; nothing is split.
package clip

import (
	"pvrgl/internal/pvr"
	"pvrgl/internal/submit"
)

// NearCuller drops every strip whose vertices all satisfy z < -w in clip
// space. Strips that straddle the plane are kept unchanged.
type NearCuller struct {
	// Dropped counts strips removed since the last reset.
	Dropped int
}

// Clip compacts the target's vertex run in place, keeping its extras in
// step, and returns the new vertex count. The caller resizes the target.
// Flat shading does not affect whole-strip culling.
func (c *NearCuller) Clip(t *submit.Target, flat bool) int {
	vs := t.Vertices()
	ex := t.ExtraSlice()

	w := 0
	start := 0
	for i := range vs {
		if !vs[i].EndOfStrip() && i != len(vs)-1 {
			continue
		}
		strip := vs[start : i+1]
		if behind(strip) {
			c.Dropped++
		} else {
			if w != start {
				copy(vs[w:], strip)
				copy(ex[w:], ex[start:i+1])
			}
			w += len(strip)
		}
		start = i + 1
	}
	return w
}

func behind(strip []pvr.Vertex) bool {
	for i := range strip {
		if strip[i].XYZ[2] >= -strip[i].W {
			return false
		}
	}
	return true
}
