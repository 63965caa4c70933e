package scene

import (
	"fmt"

	"pvrgl/internal/gl"
)

var capabilities = map[string]gl.Enum{
	"cull_face":       gl.CullFace,
	"lighting":        gl.Lighting,
	"color_material":  gl.ColorMaterial,
	"depth_test":      gl.DepthTest,
	"normalize":       gl.Normalize,
	"alpha_test":      gl.AlphaTest,
	"blend":           gl.Blend,
	"near_z_clipping": gl.NearZClipping,
	"light0":          gl.Light0,
	"light1":          gl.Light0 + 1,
	"light2":          gl.Light0 + 2,
	"light3":          gl.Light0 + 3,
	"light4":          gl.Light0 + 4,
	"light5":          gl.Light0 + 5,
	"light6":          gl.Light0 + 6,
	"light7":          gl.Light7,
}

var modes = map[string]gl.Mode{
	"points":         gl.Points,
	"lines":          gl.Lines,
	"line_loop":      gl.LineLoop,
	"line_strip":     gl.LineStrip,
	"triangles":      gl.Triangles,
	"triangle_strip": gl.TriangleStrip,
	"triangle_fan":   gl.TriangleFan,
	"quads":          gl.Quads,
	"quad_strip":     gl.QuadStrip,
	"polygon":        gl.Polygon,
}

var types = map[string]gl.Type{
	"byte":                gl.Byte,
	"ubyte":               gl.UnsignedByte,
	"short":               gl.Short,
	"ushort":              gl.UnsignedShort,
	"int":                 gl.Int,
	"uint":                gl.UnsignedInt,
	"float":               gl.Float,
	"double":              gl.Double,
	"uint_2_10_10_10_rev": gl.UnsignedInt2101010Rev,
}

var blendFactors = map[string]gl.Enum{
	"zero":                gl.Zero,
	"one":                 gl.One,
	"src_color":           gl.SrcColor,
	"one_minus_src_color": gl.OneMinusSrcColor,
	"src_alpha":           gl.SrcAlpha,
	"one_minus_src_alpha": gl.OneMinusSrcAlpha,
	"dst_alpha":           gl.DstAlpha,
	"one_minus_dst_alpha": gl.OneMinusDstAlpha,
	"dst_color":           gl.DstColor,
	"one_minus_dst_color": gl.OneMinusDstColor,
}

var depthFuncs = map[string]gl.Enum{
	"never":    gl.Never,
	"less":     gl.Less,
	"equal":    gl.Equal,
	"lequal":   gl.LEqual,
	"greater":  gl.Greater,
	"notequal": gl.NotEqual,
	"gequal":   gl.GEqual,
	"always":   gl.Always,
}

var colorMaterialModes = map[string]gl.Param{
	"ambient":             gl.Ambient,
	"diffuse":             gl.Diffuse,
	"specular":            gl.Specular,
	"emission":            gl.Emission,
	"ambient_and_diffuse": gl.AmbientAndDiffuse,
}

var filters = map[string]gl.Enum{
	"":        gl.Linear,
	"linear":  gl.Linear,
	"nearest": gl.Nearest,
}

var envs = map[string]gl.Enum{
	"":         gl.Modulate,
	"modulate": gl.Modulate,
	"decal":    gl.Decal,
	"replace":  gl.Replace,
}

// lookup maps a scene name through m, naming the kind of value in the
// error when it is unknown.
func lookup[V any](m map[string]V, kind, name string) (V, error) {
	v, ok := m[name]
	if !ok {
		return v, fmt.Errorf("unknown %s %q", kind, name)
	}
	return v, nil
}
